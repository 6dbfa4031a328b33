package repository

import (
	"sync"

	"github.com/five82/albumfeed/internal/catalog"
)

// Cache maps album ids to albums. Implementations must be safe for concurrent
// use; a Get never observes a partially written album.
type Cache interface {
	Get(id string) (catalog.Album, bool)
	Put(id string, album catalog.Album)
	Len() int
	Capacity() int
}

// Ensure BoundedCache implements Cache at compile time.
var _ Cache = (*BoundedCache)(nil)

// BoundedCache holds at most Capacity albums and evicts the oldest insertion
// once full. Re-putting an existing id replaces it in place (last write wins)
// without refreshing its position.
type BoundedCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]catalog.Album
	order    []string
}

// NewBoundedCache returns an empty cache. A capacity below one is treated as
// DefaultLimit.
func NewBoundedCache(capacity int) *BoundedCache {
	if capacity < 1 {
		capacity = DefaultLimit
	}
	return &BoundedCache{
		capacity: capacity,
		items:    make(map[string]catalog.Album, capacity),
		order:    make([]string, 0, capacity),
	}
}

func (c *BoundedCache) Get(id string) (catalog.Album, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.items[id]
	return a, ok
}

func (c *BoundedCache) Put(id string, album catalog.Album) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; ok {
		c.items[id] = album
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[id] = album
	c.order = append(c.order, id)
}

func (c *BoundedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *BoundedCache) Capacity() int { return c.capacity }
