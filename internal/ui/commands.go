package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/albumfeed/internal/logging"
	"github.com/five82/albumfeed/internal/prefs"
	"github.com/five82/albumfeed/internal/state"
)

// Messages

type listResultMsg struct {
	generation uint64
	err        error
}

type detailResultMsg struct {
	id         string
	generation uint64
	err        error
}

type logLinesMsg struct {
	lines []string
	err   error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func runListCmd(ctx context.Context, list *state.ListModel, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		err := list.Run(ctx, t)
		return listResultMsg{generation: t.Generation, err: err}
	}
}

func runDetailCmd(ctx context.Context, detail *state.DetailModel, t state.Ticket) tea.Cmd {
	id := detail.ID()
	return func() tea.Msg {
		err := detail.Run(ctx, t)
		return detailResultMsg{id: id, generation: t.Generation, err: err}
	}
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logging.Tail(path, logTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}
