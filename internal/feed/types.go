package feed

import (
	"bytes"
	"encoding/json"
)

// Artwork heights published by the feed for each resolution bucket.
const (
	artworkHeightSmall  = "55"
	artworkHeightMedium = "60"
	artworkHeightLarge  = "170"
)

// response mirrors the top-level document returned by the top albums feed.
type response struct {
	Feed *envelope `json:"feed"`
}

type envelope struct {
	Entry *oneOrMany[entry] `json:"entry"`
}

// entry is one chart position in wire form. Pointer fields distinguish a
// missing key from an empty value so required fields can be validated.
type entry struct {
	ID          *identifier        `json:"id"`
	Name        *label             `json:"im:name"`
	Artist      *label             `json:"im:artist"`
	Images      oneOrMany[image]   `json:"im:image"`
	ItemCount   *label             `json:"im:itemCount"`
	Price       *price             `json:"im:price"`
	Rights      *label             `json:"rights"`
	Category    *category          `json:"category"`
	ReleaseDate *releaseDate       `json:"im:releaseDate"`
	Link        oneOrMany[linkRef] `json:"link"`
}

type label struct {
	Label *string `json:"label"`
}

type identifier struct {
	Label      string `json:"label"`
	Attributes *struct {
		ID *string `json:"im:id"`
	} `json:"attributes"`
}

type image struct {
	Label      string `json:"label"`
	Attributes struct {
		Height string `json:"height"`
	} `json:"attributes"`
}

type price struct {
	Label      *string `json:"label"`
	Attributes struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	} `json:"attributes"`
}

type category struct {
	Attributes *struct {
		Label *string `json:"label"`
		Term  string  `json:"term"`
	} `json:"attributes"`
}

type releaseDate struct {
	Label      *string `json:"label"`
	Attributes *struct {
		Label *string `json:"label"`
	} `json:"attributes"`
}

type linkRef struct {
	Attributes *struct {
		Rel  string  `json:"rel"`
		Href *string `json:"href"`
	} `json:"attributes"`
}

// oneOrMany accepts either a JSON array or a single object. The feed collapses
// one-element arrays into bare objects (for example limit=1 responses).
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single T
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*o = oneOrMany[T]{single}
		return nil
	}
	var many []T
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*o = many
	return nil
}
