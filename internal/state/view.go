package state

import (
	"github.com/five82/albumfeed/internal/catalog"
)

// Phase is the active variant of a View.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// View is what a screen renders. Exactly one phase is active: Message is the
// loading or error text, RetryLabel is set only in PhaseError and Payload only
// in PhaseLoaded. Title never changes after construction.
type View[T any] struct {
	Title      string
	Phase      Phase
	Message    string
	RetryLabel string
	Payload    T
}

func loadingView[T any](title, message string) View[T] {
	return View[T]{Title: title, Phase: PhaseLoading, Message: message}
}

func loadedView[T any](title string, payload T) View[T] {
	return View[T]{Title: title, Phase: PhaseLoaded, Payload: payload}
}

func errorView[T any](title, message, retry string) View[T] {
	return View[T]{Title: title, Phase: PhaseError, Message: message, RetryLabel: retry}
}

// ListRow is one line of the album list.
type ListRow struct {
	ID       string
	Title    string
	Subtitle string
	ImageURL string
}

// DetailView is the payload of a loaded detail screen.
type DetailView struct {
	ID          string
	Name        string
	ArtistName  string
	ImageURL    string
	ReleaseDate string
	Genres      string
	TrackCount  int
	Price       string
	Copyright   string
	StoreURL    string
}

// ListState and DetailState are the views the two reducers produce.
type (
	ListState   = View[[]ListRow]
	DetailState = View[DetailView]
)

func rowFromAlbum(a catalog.Album) ListRow {
	return ListRow{
		ID:       a.ID,
		Title:    a.Name,
		Subtitle: a.ArtistName,
		ImageURL: a.ArtworkMedium,
	}
}

func detailFromAlbum(a catalog.Album) DetailView {
	return DetailView{
		ID:          a.ID,
		Name:        a.Name,
		ArtistName:  a.ArtistName,
		ImageURL:    a.ArtworkLarge,
		ReleaseDate: a.ReleaseDateFormatted,
		Genres:      a.Genre,
		TrackCount:  a.ItemCount,
		Price:       a.Price,
		Copyright:   a.Copyright,
		StoreURL:    a.URL,
	}
}

func cloneRows(rows []ListRow) []ListRow {
	if rows == nil {
		return nil
	}
	dup := make([]ListRow, len(rows))
	copy(dup, rows)
	return dup
}
