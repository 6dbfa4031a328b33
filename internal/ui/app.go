// Package ui provides the Bubble Tea terminal shell for albumfeed.
package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/albumfeed/internal/logging"
	"github.com/five82/albumfeed/internal/prefs"
	"github.com/five82/albumfeed/internal/repository"
	"github.com/five82/albumfeed/internal/resources"
	"github.com/five82/albumfeed/internal/state"
)

// Screen is the active screen.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenLogs
)

// logTailLines is how much of the log file the log screen shows.
const logTailLines = 500

// Options configures the UI.
type Options struct {
	Context    context.Context
	Repository repository.Source
	Catalog    *resources.Catalog
	Prefs      prefs.Prefs
	PrefsPath  string
	LogFile    string
	Logger     *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	repo      repository.Source
	catalog   *resources.Catalog
	prefs     prefs.Prefs
	prefsPath string
	logFile   string
	logger    *slog.Logger

	// UI state
	theme      Theme
	keys       keyMap
	screen     Screen
	prevScreen Screen
	width      int
	height     int
	ready      bool

	// List state
	list        *state.ListModel
	selectedRow int

	// Detail state
	detail         *state.DetailModel
	detailViewport viewport.Model

	// Log state
	logViewport viewport.Model
	logLines    []string
	logErr      error

	spinner  spinner.Model
	showHelp bool
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	p := opts.Prefs
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = prefs.Defaults().Theme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	var loc state.Localizer
	if opts.Catalog != nil {
		loc = opts.Catalog
	}

	return Model{
		ctx:       ctx,
		repo:      opts.Repository,
		catalog:   opts.Catalog,
		prefs:     p,
		prefsPath: prefsPath,
		logFile:   opts.LogFile,
		logger:    logger,
		theme:     GetTheme(p.Theme),
		keys:      DefaultKeyMap(),
		screen:    ScreenList,
		list:      state.NewListModel(opts.Repository, loc, logger.With("component", "list")),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.startList(state.EventInitialize),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.contentHeight())
			m.logViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.detailViewport.Width = msg.Width
		m.detailViewport.Height = m.contentHeight()
		m.logViewport.Width = msg.Width
		m.logViewport.Height = m.contentHeight()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case listResultMsg:
		m.clampSelection()
		return m, nil

	case detailResultMsg:
		if m.detail != nil && m.detail.ID() == msg.id {
			m.updateDetailViewport()
			m.detailViewport.GotoTop()
		}
		return m, nil

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		m.logViewport.GotoBottom()
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save preferences failed", slog.Any("error", msg.err))
			m.notice = "Could not save preferences"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()
	case key.Matches(msg, m.keys.CycleLocale):
		return m, m.cycleLocale()
	case key.Matches(msg, m.keys.ViewLogs) && m.screen != ScreenLogs:
		m.prevScreen = m.screen
		m.screen = ScreenLogs
		return m, readLogCmd(m.logFile)
	}

	switch m.screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.list.View()
	count := len(view.Payload)

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.startList(state.EventRefresh)
	case key.Matches(msg, m.keys.Retry):
		return m, m.startList(state.EventRetry)
	case key.Matches(msg, m.keys.Open):
		if view.Phase == state.PhaseError {
			return m, m.startList(state.EventRetry)
		}
		if view.Phase != state.PhaseLoaded || m.selectedRow >= count {
			return m, nil
		}
		return m, m.openDetail(view.Payload[m.selectedRow].ID)
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(count-1, 0)
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow = max(m.selectedRow-m.contentHeight(), 0)
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow = max(min(m.selectedRow+m.contentHeight(), count-1), 0)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenList
		return m, nil
	case key.Matches(msg, m.keys.Retry), key.Matches(msg, m.keys.Refresh):
		return m, m.startDetail(state.EventRetry)
	case key.Matches(msg, m.keys.Open):
		if m.detail != nil && m.detail.View().Phase == state.PhaseError {
			return m, m.startDetail(state.EventRetry)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = m.prevScreen
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, readLogCmd(m.logFile)
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// startList applies kind to the list model and, when it asks for a fetch,
// returns the command that performs it.
func (m *Model) startList(kind state.EventKind) tea.Cmd {
	ticket, ok := m.list.Start(kind)
	if !ok {
		return nil
	}
	return tea.Batch(runListCmd(m.ctx, m.list, ticket), m.spinner.Tick)
}

func (m *Model) openDetail(id string) tea.Cmd {
	var loc state.Localizer
	if m.catalog != nil {
		loc = m.catalog
	}
	m.detail = state.NewDetailModel(m.repo, id, loc, m.logger.With("component", "detail"))
	m.screen = ScreenDetail
	m.updateDetailViewport()
	return m.startDetail(state.EventLoad)
}

func (m *Model) startDetail(kind state.EventKind) tea.Cmd {
	if m.detail == nil {
		return nil
	}
	ticket, ok := m.detail.Start(kind)
	if !ok {
		return nil
	}
	m.updateDetailViewport()
	return tea.Batch(runDetailCmd(m.ctx, m.detail, ticket), m.spinner.Tick)
}

func (m *Model) cycleTheme() tea.Cmd {
	next := NextTheme(m.theme.Name)
	m.theme = GetTheme(next)
	m.prefs.Theme = next
	m.updateDetailViewport()
	return savePrefsCmd(m.prefsPath, m.prefs)
}

func (m *Model) cycleLocale() tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	tag := m.catalog.SetLocale(m.catalog.NextLocale().String())
	m.prefs.Locale = tag.String()
	m.notice = resources.DisplayName(tag)
	m.updateDetailViewport()
	return savePrefsCmd(m.prefsPath, m.prefs)
}

func (m *Model) clampSelection() {
	count := len(m.list.View().Payload)
	if m.selectedRow >= count {
		m.selectedRow = max(count-1, 0)
	}
}

func (m Model) anyLoading() bool {
	if m.list.View().Phase == state.PhaseLoading {
		return true
	}
	return m.detail != nil && m.detail.View().Phase == state.PhaseLoading
}

// contentHeight is the space left for the active screen after the header
// and footer lines.
func (m Model) contentHeight() int {
	return max(m.height-3, 1)
}

// text resolves a UI string from the catalog.
func (m Model) text(key string) string {
	if m.catalog == nil {
		return ""
	}
	return m.catalog.Text(key)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
