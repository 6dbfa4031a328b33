package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/five82/albumfeed/internal/catalog"
)

func TestBoundedCache_LastWriteWins(t *testing.T) {
	c := NewBoundedCache(2)
	c.Put("a", catalog.Album{ID: "a", Name: "first"})
	c.Put("a", catalog.Album{ID: "a", Name: "second"})

	got, ok := c.Get("a")
	if !ok || got.Name != "second" {
		t.Fatalf("Get(a) = %#v, %v, want second", got, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestBoundedCache_EvictsOldestInsertion(t *testing.T) {
	c := NewBoundedCache(2)
	c.Put("a", catalog.Album{ID: "a"})
	c.Put("b", catalog.Album{ID: "b"})
	c.Put("a", catalog.Album{ID: "a", Name: "updated"})
	c.Put("c", catalog.Album{ID: "c"})

	if _, ok := c.Get("a"); ok {
		t.Fatalf("Get(a) found, want evicted")
	}
	for _, id := range []string{"b", "c"} {
		if _, ok := c.Get(id); !ok {
			t.Fatalf("Get(%s) missing", id)
		}
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestBoundedCache_DefaultCapacity(t *testing.T) {
	if got := NewBoundedCache(0).Capacity(); got != DefaultLimit {
		t.Fatalf("Capacity = %d, want %d", got, DefaultLimit)
	}
}

func TestBoundedCache_ConcurrentAccess(t *testing.T) {
	c := NewBoundedCache(50)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := fmt.Sprintf("%d-%d", w, i%60)
				c.Put(id, catalog.Album{ID: id})
				if a, ok := c.Get(id); ok && a.ID != id {
					t.Errorf("Get(%s) returned album %s", id, a.ID)
				}
			}
		}(w)
	}
	wg.Wait()
	if c.Len() > c.Capacity() {
		t.Fatalf("Len = %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}
