package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of a Store.
type Snapshot[T any] struct {
	View                View[T]
	Generation          uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed fetches
}

// IsOffline returns true when the feed has been unreachable for multiple
// fetches in a row.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the current view of one screen. Every fetch sequence opens a
// new generation with Begin; Commit only applies the result of the latest
// generation, so a slow fetch can never overwrite a newer one.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	clone    func(T) T
}

// NewStore returns a Store holding initial. clone, when non-nil, copies
// payloads on the way in and out.
func NewStore[T any](initial View[T], clone func(T) T) *Store[T] {
	s := &Store[T]{clone: clone}
	s.snapshot.View = s.copyView(initial)
	return s
}

// Begin stores the loading view of a new fetch sequence and returns its
// generation.
func (s *Store[T]) Begin(loading View[T]) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Generation++
	s.snapshot.View = s.copyView(loading)
	return s.snapshot.Generation
}

// Commit applies the outcome of generation gen. It reports false and changes
// nothing when a newer generation has started since.
func (s *Store[T]) Commit(gen uint64, view View[T], err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return false
	}
	s.snapshot.View = s.copyView(view)
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// View returns a copy of the current view.
func (s *Store[T]) View() View[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyView(s.snapshot.View)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.View = s.copyView(s.snapshot.View)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store[T]) copyView(v View[T]) View[T] {
	if s.clone != nil {
		v.Payload = s.clone(v.Payload)
	}
	return v
}
