package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/albumfeed/internal/catalog"
	"github.com/five82/albumfeed/internal/prefs"
	"github.com/five82/albumfeed/internal/resources"
	"github.com/five82/albumfeed/internal/state"
)

type fakeRepo struct {
	mu        sync.Mutex
	albums    []catalog.Album
	err       error
	listCalls int
	getCalls  int
}

func (f *fakeRepo) ListTop(_ context.Context, _ int) ([]catalog.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.albums, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (catalog.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.err != nil {
		return catalog.Album{}, f.err
	}
	for _, a := range f.albums {
		if a.ID == id {
			return a, nil
		}
	}
	return catalog.Album{}, catalog.ErrNotFound
}

func sampleAlbums() []catalog.Album {
	return []catalog.Album{
		{ID: "z", Name: "Zebra", ArtistName: "Zed", Genre: "Rock", ItemCount: 11, Price: "$9.99", Copyright: "(c) Zed", URL: "https://store/z"},
		{ID: "a", Name: "Alpha", ArtistName: "Ann", Genre: "Pop", ItemCount: 7, Price: "$7.99", Copyright: "(c) Ann", URL: "https://store/a"},
	}
}

func newTestModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()
	cat, err := resources.Load("en")
	if err != nil {
		t.Fatalf("resources.Load returned error: %v", err)
	}
	m := New(Options{
		Repository: repo,
		Catalog:    cat,
		Prefs:      prefs.Defaults(),
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		LogFile:    filepath.Join(t.TempDir(), "albumfeed.log"),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

// run executes cmd and feeds every resulting message back into the model.
// Spinner ticks are dropped so the loop terminates.
func run(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
		return m
	case spinner.TickMsg, tea.QuitMsg, nil:
		return m
	}
	next, follow := m.Update(msg)
	return run(next.(Model), follow)
}

func press(m Model, keys string) Model {
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return run(next.(Model), cmd)
}

func TestModel_InitLoadsSortedList(t *testing.T) {
	repo := &fakeRepo{albums: sampleAlbums()}
	m := newTestModel(t, repo)
	m = run(m, m.Init())

	view := m.list.View()
	if view.Phase != state.PhaseLoaded {
		t.Fatalf("Phase = %v, want loaded", view.Phase)
	}
	if view.Payload[0].Title != "Alpha" || view.Payload[1].Title != "Zebra" {
		t.Fatalf("rows = %#v, want Alpha before Zebra", view.Payload)
	}
	out := m.View()
	if !strings.Contains(out, "Top Albums") || !strings.Contains(out, "Alpha") {
		t.Fatalf("View() missing title or rows:\n%s", out)
	}
	if strings.Index(out, "Alpha") > strings.Index(out, "Zebra") {
		t.Fatalf("View() renders Zebra before Alpha")
	}
}

func TestModel_OpenDetailAndBack(t *testing.T) {
	repo := &fakeRepo{albums: sampleAlbums()}
	m := newTestModel(t, repo)
	m = run(m, m.Init())

	m = press(m, "down")
	m = press(m, "enter")
	if m.screen != ScreenDetail {
		t.Fatalf("screen = %v, want detail", m.screen)
	}
	detail := m.detail.View()
	if detail.Phase != state.PhaseLoaded || detail.Payload.ID != "z" {
		t.Fatalf("detail = %#v, want loaded album z", detail)
	}
	out := m.View()
	for _, want := range []string{"Zebra", "Artist: Zed", "Tracks: 11", "https://store/z"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q:\n%s", want, out)
		}
	}

	m = press(m, "esc")
	if m.screen != ScreenList {
		t.Fatalf("screen = %v, want list", m.screen)
	}
}

func TestModel_ListErrorAndRetry(t *testing.T) {
	repo := &fakeRepo{err: errors.New("offline")}
	m := newTestModel(t, repo)
	m = run(m, m.Init())

	view := m.list.View()
	if view.Phase != state.PhaseError {
		t.Fatalf("Phase = %v, want error", view.Phase)
	}
	out := m.View()
	if !strings.Contains(out, "Could not load the album list.") || !strings.Contains(out, "Retry") {
		t.Fatalf("View() missing error or retry label:\n%s", out)
	}

	repo.mu.Lock()
	repo.err = nil
	repo.albums = sampleAlbums()
	repo.mu.Unlock()

	m = press(m, "enter")
	if got := m.list.View().Phase; got != state.PhaseLoaded {
		t.Fatalf("Phase after retry = %v, want loaded", got)
	}
	if repo.listCalls != 2 {
		t.Fatalf("ListTop calls = %d, want 2", repo.listCalls)
	}
}

func TestModel_RefreshRefetchesWhenLoaded(t *testing.T) {
	repo := &fakeRepo{albums: sampleAlbums()}
	m := newTestModel(t, repo)
	m = run(m, m.Init())
	m = press(m, "r")
	if repo.listCalls != 2 {
		t.Fatalf("ListTop calls = %d, want 2", repo.listCalls)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t, &fakeRepo{albums: sampleAlbums()})
	m = press(m, "T")

	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load returned error: %v", err)
	}
	if saved.Theme != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", saved.Theme)
	}
}

func TestModel_CycleLocaleAppliesToNextFetch(t *testing.T) {
	repo := &fakeRepo{err: errors.New("offline")}
	m := newTestModel(t, repo)
	m = run(m, m.Init())

	// en -> es
	m = press(m, "L")
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load returned error: %v", err)
	}
	if saved.Locale != "es" {
		t.Fatalf("saved locale = %q, want es", saved.Locale)
	}

	m = press(m, "R")
	view := m.list.View()
	if view.Message != "No se pudo cargar la lista de álbumes." || view.RetryLabel != "Reintentar" {
		t.Fatalf("view = %#v, want Spanish labels", view)
	}
	if view.Title != "Top Albums" {
		t.Fatalf("Title = %q, want title kept from construction", view.Title)
	}
}

func TestModel_LogScreenShowsTail(t *testing.T) {
	m := newTestModel(t, &fakeRepo{albums: sampleAlbums()})
	if err := os.WriteFile(m.logFile, []byte("first line\nsecond line\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m = press(m, "l")
	if m.screen != ScreenLogs {
		t.Fatalf("screen = %v, want logs", m.screen)
	}
	if len(m.logLines) != 2 || m.logLines[1] != "second line" {
		t.Fatalf("logLines = %v", m.logLines)
	}
	if !strings.Contains(m.View(), "second line") {
		t.Fatalf("View() missing log content:\n%s", m.View())
	}

	m = press(m, "esc")
	if m.screen != ScreenList {
		t.Fatalf("screen = %v, want list", m.screen)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	m = press(m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = press(m, "x")
	if m.showHelp {
		t.Fatalf("help overlay still shown after key press")
	}
}

func TestModel_StatusLineMarksFeedUnreachable(t *testing.T) {
	repo := &fakeRepo{err: errors.New("offline")}
	m := newTestModel(t, repo)
	m = run(m, m.Init())

	if line := m.statusLine(); strings.Contains(line, "Feed unreachable") {
		t.Fatalf("statusLine after one failure = %q, want no unreachable marker", line)
	}

	m = press(m, "R")
	line := m.statusLine()
	if !strings.Contains(line, "2 failed fetches") || !strings.Contains(line, "Feed unreachable") {
		t.Fatalf("statusLine after two failures = %q", line)
	}
}

func TestModel_EnterIgnoresSelectionPastShrunkList(t *testing.T) {
	repo := &fakeRepo{albums: sampleAlbums()}
	m := newTestModel(t, repo)
	m = run(m, m.Init())
	m = press(m, "down")
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want 1", m.selectedRow)
	}

	// A refresh commits fewer rows before its result message is handled.
	repo.mu.Lock()
	repo.albums = sampleAlbums()[:1]
	repo.mu.Unlock()
	ticket, ok := m.list.Start(state.EventRefresh)
	if !ok {
		t.Fatal("Start(EventRefresh) = false, want fetch")
	}
	if err := m.list.Run(context.Background(), ticket); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	m = press(m, "enter")
	if m.screen != ScreenList {
		t.Fatalf("screen = %v, want list", m.screen)
	}
	if repo.getCalls != 0 {
		t.Fatalf("GetByID calls = %d, want 0", repo.getCalls)
	}
}
