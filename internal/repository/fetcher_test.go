package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/five82/albumfeed/internal/transport"
)

// countingFetcher serves a canned feed and records every request.
type countingFetcher struct {
	mu     sync.Mutex
	urls   []string
	status int
	body   []byte
	err    error
}

func (f *countingFetcher) Fetch(_ context.Context, req transport.Request) (transport.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, req.URL)
	if f.err != nil {
		return transport.Response{}, f.err
	}
	status := f.status
	if status == 0 {
		status = 200
	}
	return transport.Response{StatusCode: status, Body: f.body}, nil
}

func (f *countingFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

func feedEntry(id, name string) map[string]any {
	return map[string]any{
		"im:name":        map[string]any{"label": name},
		"im:image":       []any{map[string]any{"label": "https://img/" + id, "attributes": map[string]any{"height": "170"}}},
		"im:itemCount":   map[string]any{"label": "10"},
		"im:price":       map[string]any{"label": "$1.00", "attributes": map[string]any{"amount": "1.00", "currency": "USD"}},
		"rights":         map[string]any{"label": "rights"},
		"im:artist":      map[string]any{"label": "artist " + id},
		"category":       map[string]any{"attributes": map[string]any{"label": "Rock"}},
		"im:releaseDate": map[string]any{"label": "2020-01-01", "attributes": map[string]any{"label": "January 1, 2020"}},
		"id":             map[string]any{"attributes": map[string]any{"im:id": id}},
		"link":           map[string]any{"attributes": map[string]any{"href": "https://store/" + id}},
	}
}

func feedBody(t *testing.T, ids ...string) []byte {
	t.Helper()
	entries := make([]any, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, feedEntry(id, fmt.Sprintf("Album %s", id)))
	}
	data, err := json.Marshal(map[string]any{"feed": map[string]any{"entry": entries}})
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return data
}
