// Package feed decodes the top albums feed payload into catalog albums.
//
// Decoding is all-or-nothing: a missing required field anywhere in the payload
// fails the whole call with a *catalog.PayloadError and no albums. Artwork,
// numeric price and item count are best-effort and never fail a decode.
package feed

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/albumfeed/internal/catalog"
)

// Decode parses raw feed bytes into albums, preserving feed order.
func Decode(raw []byte) ([]catalog.Album, error) {
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &catalog.PayloadError{Entry: -1, Field: "json", Err: err}
	}
	if resp.Feed == nil {
		return nil, &catalog.PayloadError{Entry: -1, Field: "feed"}
	}
	if resp.Feed.Entry == nil {
		return nil, &catalog.PayloadError{Entry: -1, Field: "feed.entry"}
	}

	entries := *resp.Feed.Entry
	albums := make([]catalog.Album, 0, len(entries))
	for i, e := range entries {
		album, err := e.toDomain(i)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, nil
}

func (e entry) toDomain(index int) (catalog.Album, error) {
	req := requirer{index: index}

	id := req.text("id.attributes.im:id", e.idValue())
	if req.missing == "" && strings.TrimSpace(id) == "" {
		req.missing = "id.attributes.im:id"
	}
	name := req.text("im:name.label", e.Name.value())
	artist := req.text("im:artist.label", e.Artist.value())
	priceLabel := req.text("im:price.label", e.priceLabel())
	rights := req.text("rights.label", e.Rights.value())
	genre := req.text("category.attributes.label", e.genre())
	released := req.text("im:releaseDate.label", e.releaseRaw())
	releasedDisplay := req.text("im:releaseDate.attributes.label", e.releaseDisplay())
	href := req.text("link.attributes.href", e.href())

	if err := req.err(); err != nil {
		return catalog.Album{}, err
	}

	album := catalog.Album{
		ID:                   id,
		Name:                 name,
		ArtistName:           artist,
		Genre:                genre,
		ArtworkSmall:         e.artwork(artworkHeightSmall),
		ArtworkMedium:        e.artwork(artworkHeightMedium),
		ArtworkLarge:         e.artwork(artworkHeightLarge),
		Price:                priceLabel,
		ReleaseDate:          released,
		ReleaseDateFormatted: releasedDisplay,
		ItemCount:            parseCount(e.ItemCount.value()),
		Copyright:            rights,
		URL:                  href,
	}
	if e.Price != nil {
		album.PriceAmount = parseAmount(e.Price.Attributes.Amount)
		album.Currency = strings.TrimSpace(e.Price.Attributes.Currency)
	}
	return album, nil
}

// requirer records the first missing required field of an entry.
type requirer struct {
	index   int
	missing string
}

func (r *requirer) text(field string, v *string) string {
	if v == nil {
		if r.missing == "" {
			r.missing = field
		}
		return ""
	}
	return *v
}

func (r *requirer) err() error {
	if r.missing == "" {
		return nil
	}
	return &catalog.PayloadError{Entry: r.index, Field: r.missing}
}

func (l *label) value() *string {
	if l == nil {
		return nil
	}
	return l.Label
}

func (e entry) idValue() *string {
	if e.ID == nil || e.ID.Attributes == nil {
		return nil
	}
	return e.ID.Attributes.ID
}

func (e entry) priceLabel() *string {
	if e.Price == nil {
		return nil
	}
	return e.Price.Label
}

func (e entry) genre() *string {
	if e.Category == nil || e.Category.Attributes == nil {
		return nil
	}
	return e.Category.Attributes.Label
}

func (e entry) releaseRaw() *string {
	if e.ReleaseDate == nil {
		return nil
	}
	return e.ReleaseDate.Label
}

func (e entry) releaseDisplay() *string {
	if e.ReleaseDate == nil || e.ReleaseDate.Attributes == nil {
		return nil
	}
	return e.ReleaseDate.Attributes.Label
}

// href prefers the "alternate" link when the feed lists several.
func (e entry) href() *string {
	var first *string
	for _, l := range e.Link {
		if l.Attributes == nil || l.Attributes.Href == nil {
			continue
		}
		if l.Attributes.Rel == "alternate" {
			return l.Attributes.Href
		}
		if first == nil {
			first = l.Attributes.Href
		}
	}
	return first
}

func (e entry) artwork(height string) string {
	for _, img := range e.Images {
		if strings.TrimSpace(img.Attributes.Height) == height {
			return img.Label
		}
	}
	return ""
}

func parseCount(v *string) int {
	if v == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseAmount(v string) decimal.NullDecimal {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
