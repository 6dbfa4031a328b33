// Package state turns asynchronous album fetches into renderable screen
// states for the album list and album detail screens.
//
// # Overview
//
// Each screen is a View: a constant Title plus exactly one of three phases.
//
//	PhaseLoading  Message
//	PhaseLoaded   Payload ([]ListRow or DetailView)
//	PhaseError    Message, RetryLabel
//
// Transitions are computed by two pure functions:
//
//	ReduceList(current, event, labels)   → (next, effect)
//	ReduceDetail(current, event, labels) → (next, effect)
//
// An EffectFetch result tells the driver to call the repository and feed the
// outcome back as EventLoaded or EventFailed.
//
// # List Semantics
//
//   - EventInitialize: no-op when the list is already loaded
//   - EventRefresh, EventRetry: always fetch
//   - EventLoaded: rows sorted by title, byte-wise and stable
//   - EventFailed: generic error message and retry label
//
// The error kind (transport, malformed payload, not found) is never shown;
// every failure collapses to the same Error view.
//
// # Drivers
//
// ListModel and DetailModel bind the reducers to a repository and a
// Localizer. Work is split in two steps so a UI can show the loading view
// immediately and fetch elsewhere:
//
//	ticket, ok := list.Start(state.EventRefresh) // loading view now visible
//	if ok {
//		go list.Run(ctx, ticket)              // fetch + commit
//	}
//
// Initialize, Refresh, Retry (list) and Load, Retry (detail) do both steps
// on the calling goroutine.
//
// # Store and Stale Results
//
// Store keeps the current view behind a sync.RWMutex and hands out defensive
// copies. Every Start opens a new generation; Commit applies a result only if
// its generation is still the latest. A refresh started later always wins,
// even when an earlier fetch completes after it.
//
// Snapshot adds metadata for the status line:
//
//   - LastUpdated: time of the last committed result
//   - LastError: most recent committed failure (nil on success)
//   - ConsecutiveFailures: reset on success; IsOffline at two or more
//
// # Localization
//
// Titles are resolved once when a model is built. Loading, error and retry
// strings are resolved at the start of every fetch sequence, so a locale
// change applies from the next fetch. A nil Localizer or a missing key
// yields "".
package state
