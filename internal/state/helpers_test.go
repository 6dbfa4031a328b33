package state

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/five82/albumfeed/internal/transport"
)

type countingFetcher struct {
	calls int
	body  []byte
}

func (f *countingFetcher) Fetch(context.Context, transport.Request) (transport.Response, error) {
	f.calls++
	return transport.Response{StatusCode: 200, Body: f.body}, nil
}

func feedBody(t *testing.T, ids ...string) []byte {
	t.Helper()
	entries := make([]any, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, map[string]any{
			"im:name":        map[string]any{"label": "Album " + id},
			"im:price":       map[string]any{"label": "$1"},
			"rights":         map[string]any{"label": "r"},
			"im:artist":      map[string]any{"label": "artist"},
			"category":       map[string]any{"attributes": map[string]any{"label": "Pop"}},
			"im:releaseDate": map[string]any{"label": "2020", "attributes": map[string]any{"label": "2020"}},
			"id":             map[string]any{"attributes": map[string]any{"im:id": id}},
			"link":           map[string]any{"attributes": map[string]any{"href": "https://store/" + id}},
		})
	}
	data, err := json.Marshal(map[string]any{"feed": map[string]any{"entry": entries}})
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return data
}
