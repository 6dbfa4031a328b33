package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/five82/albumfeed/internal/catalog"
	"github.com/five82/albumfeed/internal/repository"
)

// AlbumLister is the part of the repository the list model uses.
type AlbumLister interface {
	ListTop(ctx context.Context, limit int) ([]catalog.Album, error)
}

// AlbumGetter is the part of the repository the detail model uses.
type AlbumGetter interface {
	GetByID(ctx context.Context, id string) (catalog.Album, error)
}

// Ticket is a started fetch sequence. It carries the labels resolved when the
// sequence began so the outcome is rendered in the same locale.
type Ticket struct {
	Generation uint64
	labels     Labels
	id         string
}

// ListModel drives ReduceList against a repository and keeps the result in a
// Store. Start is serialized internally; Run may be called from any
// goroutine.
type ListModel struct {
	mu     sync.Mutex
	source AlbumLister
	loc    Localizer
	store  *Store[[]ListRow]
	logger *slog.Logger
}

// NewListModel resolves the title once and starts in the loading phase.
func NewListModel(source AlbumLister, loc Localizer, logger *slog.Logger) *ListModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	initial := loadingView[[]ListRow](text(loc, KeyListTitle), text(loc, KeyListLoading))
	return &ListModel{
		source: source,
		loc:    loc,
		store:  NewStore(initial, cloneRows),
		logger: logger,
	}
}

// Start applies kind (EventInitialize, EventRefresh or EventRetry) and reports
// whether a fetch must follow. The loading view is visible once Start returns.
func (m *ListModel) Start(kind EventKind) (Ticket, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	labels := listLabels(m.loc)
	next, effect := ReduceList(m.store.View(), ListEvent{Kind: kind}, labels)
	if effect != EffectFetch {
		return Ticket{}, false
	}
	gen := m.store.Begin(next)
	return Ticket{Generation: gen, labels: labels}, true
}

// Run performs the fetch for t and commits the outcome unless a newer
// sequence has started. It returns the fetch error, if any.
func (m *ListModel) Run(ctx context.Context, t Ticket) error {
	albums, err := m.source.ListTop(ctx, repository.DefaultLimit)

	ev := ListEvent{Kind: EventLoaded, Albums: albums}
	if err != nil {
		ev = ListEvent{Kind: EventFailed, Err: err}
	}
	current := m.store.View()
	next, _ := ReduceList(current, ev, t.labels)
	if !m.store.Commit(t.Generation, next, err) {
		m.logger.Debug("discarded stale list result", slog.Uint64("generation", t.Generation))
		return err
	}
	if err != nil {
		m.logger.Warn("album list fetch failed", slog.Any("error", err))
	}
	return err
}

func (m *ListModel) dispatch(ctx context.Context, kind EventKind) error {
	t, ok := m.Start(kind)
	if !ok {
		return nil
	}
	return m.Run(ctx, t)
}

// Initialize loads the list unless it is already loaded.
func (m *ListModel) Initialize(ctx context.Context) error {
	return m.dispatch(ctx, EventInitialize)
}

// Refresh reloads the list even when it is already loaded.
func (m *ListModel) Refresh(ctx context.Context) error {
	return m.dispatch(ctx, EventRefresh)
}

// Retry reloads the list.
func (m *ListModel) Retry(ctx context.Context) error {
	return m.dispatch(ctx, EventRetry)
}

// View returns the current list view.
func (m *ListModel) View() ListState { return m.store.View() }

// Snapshot returns the view with fetch metadata.
func (m *ListModel) Snapshot() Snapshot[[]ListRow] { return m.store.Snapshot() }

// DetailModel drives ReduceDetail for one album id.
type DetailModel struct {
	mu     sync.Mutex
	source AlbumGetter
	loc    Localizer
	id     string
	store  *Store[DetailView]
	logger *slog.Logger
}

// NewDetailModel resolves the title once and starts in the loading phase.
func NewDetailModel(source AlbumGetter, id string, loc Localizer, logger *slog.Logger) *DetailModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	initial := loadingView[DetailView](text(loc, KeyDetailTitle), text(loc, KeyDetailLoading))
	return &DetailModel{
		source: source,
		loc:    loc,
		id:     id,
		store:  NewStore[DetailView](initial, nil),
		logger: logger,
	}
}

// ID is the album this model shows.
func (m *DetailModel) ID() string { return m.id }

// Start applies kind (EventLoad or EventRetry) and reports whether a fetch
// must follow.
func (m *DetailModel) Start(kind EventKind) (Ticket, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	labels := detailLabels(m.loc)
	next, effect := ReduceDetail(m.store.View(), DetailEvent{Kind: kind}, labels)
	if effect != EffectFetch {
		return Ticket{}, false
	}
	gen := m.store.Begin(next)
	return Ticket{Generation: gen, labels: labels, id: m.id}, true
}

// Run fetches the album for t and commits the outcome unless a newer
// sequence has started.
func (m *DetailModel) Run(ctx context.Context, t Ticket) error {
	album, err := m.source.GetByID(ctx, t.id)

	ev := DetailEvent{Kind: EventLoaded, Album: album}
	if err != nil {
		ev = DetailEvent{Kind: EventFailed, Err: err}
	}
	next, _ := ReduceDetail(m.store.View(), ev, t.labels)
	if !m.store.Commit(t.Generation, next, err) {
		m.logger.Debug("discarded stale detail result",
			slog.String("id", t.id),
			slog.Uint64("generation", t.Generation))
		return err
	}
	if err != nil {
		m.logger.Warn("album detail fetch failed", slog.String("id", t.id), slog.Any("error", err))
	}
	return err
}

// Load fetches the album.
func (m *DetailModel) Load(ctx context.Context) error {
	t, ok := m.Start(EventLoad)
	if !ok {
		return nil
	}
	return m.Run(ctx, t)
}

// Retry fetches the album again.
func (m *DetailModel) Retry(ctx context.Context) error {
	t, ok := m.Start(EventRetry)
	if !ok {
		return nil
	}
	return m.Run(ctx, t)
}

// View returns the current detail view.
func (m *DetailModel) View() DetailState { return m.store.View() }

// Snapshot returns the view with fetch metadata.
func (m *DetailModel) Snapshot() Snapshot[DetailView] { return m.store.Snapshot() }
