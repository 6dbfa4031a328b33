package state

import (
	"slices"
	"strings"

	"github.com/five82/albumfeed/internal/catalog"
)

// EventKind identifies what happened to a view.
type EventKind int

const (
	// EventInitialize loads the list unless it is already loaded.
	EventInitialize EventKind = iota
	// EventRefresh reloads the list unconditionally.
	EventRefresh
	// EventRetry reloads after an error, or any time it is requested.
	EventRetry
	// EventLoad starts a detail fetch.
	EventLoad
	// EventLoaded carries a fetch result.
	EventLoaded
	// EventFailed carries a fetch error.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventInitialize:
		return "initialize"
	case EventRefresh:
		return "refresh"
	case EventRetry:
		return "retry"
	case EventLoad:
		return "load"
	case EventLoaded:
		return "loaded"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Effect tells the driver whether to start a fetch after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectFetch
)

// ListEvent is an input to ReduceList.
type ListEvent struct {
	Kind   EventKind
	Albums []catalog.Album
	Err    error
}

// DetailEvent is an input to ReduceDetail.
type DetailEvent struct {
	Kind  EventKind
	Album catalog.Album
	Err   error
}

// ReduceList computes the next list view. It never performs I/O.
func ReduceList(current ListState, ev ListEvent, labels Labels) (ListState, Effect) {
	switch ev.Kind {
	case EventInitialize:
		if current.Phase == PhaseLoaded {
			return current, EffectNone
		}
		return loadingView[[]ListRow](current.Title, labels.Loading), EffectFetch
	case EventRefresh, EventRetry:
		return loadingView[[]ListRow](current.Title, labels.Loading), EffectFetch
	case EventLoaded:
		return loadedView(current.Title, SortRows(ev.Albums)), EffectNone
	case EventFailed:
		return errorView[[]ListRow](current.Title, labels.Error, labels.Retry), EffectNone
	default:
		return current, EffectNone
	}
}

// ReduceDetail computes the next detail view. It never performs I/O.
func ReduceDetail(current DetailState, ev DetailEvent, labels Labels) (DetailState, Effect) {
	switch ev.Kind {
	case EventLoad, EventRetry:
		return loadingView[DetailView](current.Title, labels.Loading), EffectFetch
	case EventLoaded:
		return loadedView(current.Title, detailFromAlbum(ev.Album)), EffectNone
	case EventFailed:
		return errorView[DetailView](current.Title, labels.Error, labels.Retry), EffectNone
	default:
		return current, EffectNone
	}
}

// SortRows maps albums to rows ordered by title, comparing bytes so
// uppercase sorts before lowercase. Equal titles keep feed order.
func SortRows(albums []catalog.Album) []ListRow {
	rows := make([]ListRow, 0, len(albums))
	for _, a := range albums {
		rows = append(rows, rowFromAlbum(a))
	}
	slices.SortStableFunc(rows, func(a, b ListRow) int {
		return strings.Compare(a.Title, b.Title)
	})
	return rows
}
