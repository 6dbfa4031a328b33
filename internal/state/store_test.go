package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_BeginCommitAndSnapshotClone(t *testing.T) {
	s := NewStore(loadingView[[]ListRow]("Top", "loading"), cloneRows)

	gen := s.Begin(loadingView[[]ListRow]("Top", "loading again"))
	if gen != 1 {
		t.Fatalf("Begin generation = %d, want 1", gen)
	}
	if got := s.View().Message; got != "loading again" {
		t.Fatalf("Message = %q, want loading again", got)
	}

	before := time.Now()
	rows := []ListRow{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	if !s.Commit(gen, loadedView("Top", rows), nil) {
		t.Fatalf("Commit(latest) = false, want true")
	}
	rows[0].Title = "mutated"

	snap := s.Snapshot()
	if snap.View.Phase != PhaseLoaded || len(snap.View.Payload) != 2 {
		t.Fatalf("snapshot view = %#v, want loaded with 2 rows", snap.View)
	}
	if snap.View.Payload[0].Title != "A" {
		t.Fatalf("Commit should clone payload; got %q want A", snap.View.Payload[0].Title)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.View.Payload[0].Title = "changed"
	if s.View().Payload[0].Title != "A" {
		t.Fatalf("Snapshot should clone payload")
	}
}

func TestStore_CommitIgnoresStaleGeneration(t *testing.T) {
	s := NewStore(loadingView[[]ListRow]("Top", ""), cloneRows)

	older := s.Begin(loadingView[[]ListRow]("Top", "first"))
	newer := s.Begin(loadingView[[]ListRow]("Top", "second"))

	if !s.Commit(newer, loadedView("Top", []ListRow{{ID: "new"}}), nil) {
		t.Fatalf("Commit(newer) = false, want true")
	}
	if s.Commit(older, errorView[[]ListRow]("Top", "err", "retry"), errors.New("late")) {
		t.Fatalf("Commit(older) = true, want false")
	}

	snap := s.Snapshot()
	if snap.View.Phase != PhaseLoaded || snap.View.Payload[0].ID != "new" {
		t.Fatalf("view = %#v, want newer result", snap.View)
	}
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("stale commit leaked error metadata: %v / %d", snap.LastError, snap.ConsecutiveFailures)
	}
}

func TestStore_ErrorIsClonedInSnapshot(t *testing.T) {
	s := NewStore[DetailView](loadingView[DetailView]("Album", ""), nil)
	gen := s.Begin(loadingView[DetailView]("Album", ""))

	origErr := errors.New("boom")
	s.Commit(gen, errorView[DetailView]("Album", "failed", "retry"), origErr)

	snap := s.Snapshot()
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should wrap the original")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	s := NewStore[DetailView](loadingView[DetailView]("Album", ""), nil)

	fail := func() {
		gen := s.Begin(loadingView[DetailView]("Album", ""))
		s.Commit(gen, errorView[DetailView]("Album", "failed", "retry"), errors.New("fail"))
	}

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}
	fail()
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	fail()
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	gen := s.Begin(loadingView[DetailView]("Album", ""))
	s.Commit(gen, loadedView("Album", DetailView{ID: "1"}), nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
