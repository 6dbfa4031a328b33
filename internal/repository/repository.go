// Package repository composes transport, decoding and caching into the two
// read operations the rest of the program needs: the top-N list and a lookup
// by id.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/albumfeed/internal/catalog"
	"github.com/five82/albumfeed/internal/feed"
	"github.com/five82/albumfeed/internal/transport"
)

const (
	// DefaultLimit is the list size used for the fallback fetch in GetByID and
	// the default cache capacity.
	DefaultLimit = 100
	// DefaultFeedURL is the US top albums feed.
	DefaultFeedURL = "https://itunes.apple.com/us/rss/topalbums"
)

// Source is the read surface consumed by the view models and the HTTP API.
type Source interface {
	ListTop(ctx context.Context, limit int) ([]catalog.Album, error)
	GetByID(ctx context.Context, id string) (catalog.Album, error)
}

// Ensure Repository implements Source at compile time.
var _ Source = (*Repository)(nil)

// Options configures a Repository.
type Options struct {
	FeedURL string
	Cache   Cache
	Logger  *slog.Logger
}

// Repository fetches albums through a transport.Fetcher and records every
// decoded album in its cache.
type Repository struct {
	fetcher transport.Fetcher
	feedURL string
	cache   Cache
	logger  *slog.Logger
}

// New builds a Repository. A nil cache gets a BoundedCache of DefaultLimit.
func New(fetcher transport.Fetcher, opts Options) *Repository {
	feedURL := strings.TrimRight(strings.TrimSpace(opts.FeedURL), "/")
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewBoundedCache(DefaultLimit)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		fetcher: fetcher,
		feedURL: feedURL,
		cache:   cache,
		logger:  logger,
	}
}

// ListTop fetches the first limit albums of the feed in feed order. Every
// decoded album is cached before returning. Failures populate nothing.
func (r *Repository) ListTop(ctx context.Context, limit int) ([]catalog.Album, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("list top %d: %w", limit, catalog.ErrInvalidLimit)
	}
	reqURL := r.listURL(limit)
	resp, err := r.fetcher.Fetch(ctx, transport.Request{Method: "GET", URL: reqURL})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &catalog.TransportError{Method: "GET", URL: reqURL, StatusCode: resp.StatusCode}
	}
	albums, err := feed.Decode(resp.Body)
	if err != nil {
		r.logger.Warn("feed decode failed", slog.String("url", reqURL), slog.Any("error", err))
		return nil, err
	}
	for _, a := range albums {
		r.cache.Put(a.ID, a)
	}
	r.logger.Debug("feed listed", slog.Int("limit", limit), slog.Int("albums", len(albums)))
	return albums, nil
}

// GetByID serves id from the cache when present. On a miss it performs exactly
// one ListTop(DefaultLimit) and searches the fetched albums.
func (r *Repository) GetByID(ctx context.Context, id string) (catalog.Album, error) {
	if a, ok := r.cache.Get(id); ok {
		return a, nil
	}
	r.logger.Debug("album cache miss", slog.String("id", id))
	albums, err := r.ListTop(ctx, DefaultLimit)
	if err != nil {
		return catalog.Album{}, err
	}
	for _, a := range albums {
		if a.ID == id {
			return a, nil
		}
	}
	return catalog.Album{}, fmt.Errorf("album %q: %w", id, catalog.ErrNotFound)
}

// CacheLen reports how many albums are cached.
func (r *Repository) CacheLen() int { return r.cache.Len() }

func (r *Repository) listURL(limit int) string {
	return fmt.Sprintf("%s/limit=%d/json", r.feedURL, limit)
}
