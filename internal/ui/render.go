package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/albumfeed/internal/resources"
	"github.com/five82/albumfeed/internal/state"
)

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	var body string
	switch m.screen {
	case ScreenDetail:
		body = m.renderDetail()
	case ScreenLogs:
		body = m.logViewport.View()
	default:
		body = m.renderList()
	}
	return lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(body)
}

// renderHeader shows the logo, the active screen title and the status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var title string
	var phase state.Phase
	switch m.screen {
	case ScreenDetail:
		v := m.detail.View()
		title, phase = v.Title, v.Phase
	case ScreenLogs:
		title, phase = "Log", state.PhaseLoaded
	default:
		v := m.list.View()
		title, phase = v.Title, v.Phase
	}

	left := styles.Logo.Render("albumfeed") + "  " + styles.Text.Bold(true).Render(title) + " " +
		styles.PhaseStyle(phase).Render(phase.String())
	right := styles.MutedText.Render(m.statusLine())

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// statusLine reports when the list last loaded and how many fetches failed
// in a row.
func (m Model) statusLine() string {
	snap := m.list.Snapshot()
	var parts []string
	switch {
	case snap.LastUpdated.IsZero():
		parts = append(parts, m.text("status_never"))
	default:
		parts = append(parts, m.format("status_updated", snap.LastUpdated.Format(time.TimeOnly)))
	}
	if snap.ConsecutiveFailures > 0 {
		parts = append(parts, m.format("status_failures", snap.ConsecutiveFailures))
	}
	if snap.IsOffline() {
		parts = append(parts, m.text("status_offline"))
	}
	if m.catalog != nil {
		parts = append(parts, resources.DisplayName(m.catalog.Locale()))
	}
	parts = append(parts, m.theme.Name)
	return strings.Join(nonEmpty(parts), " · ")
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.notice != "" {
		return styles.Footer.Width(m.width).Render(styles.WarningText.Render(m.notice))
	}
	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.AccentText.Render(h.Key)+" "+h.Desc)
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, "  "))
}

func (m Model) renderList() string {
	styles := m.theme.Styles()
	view := m.list.View()

	switch view.Phase {
	case state.PhaseLoading:
		return m.renderLoading(view.Message)
	case state.PhaseError:
		return m.renderError(view.Message, view.RetryLabel)
	}
	if len(view.Payload) == 0 {
		return styles.MutedText.Render("No albums")
	}

	height := m.contentHeight()
	start, end := visibleWindow(len(view.Payload), m.selectedRow, height)
	rankWidth := len(fmt.Sprint(len(view.Payload))) + 1
	titleWidth := max(m.width/2, 20)

	var b strings.Builder
	for i := start; i < end; i++ {
		row := view.Payload[i]
		line := padRight(fmt.Sprintf("%d.", i+1), rankWidth) + " " +
			padRight(truncate(row.Title, titleWidth), titleWidth) + "  " +
			truncate(row.Subtitle, max(m.width-titleWidth-rankWidth-4, 10))
		if i == m.selectedRow {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	view := m.detail.View()
	switch view.Phase {
	case state.PhaseLoading:
		return m.renderLoading(view.Message)
	case state.PhaseError:
		return m.renderError(view.Message, view.RetryLabel)
	}
	return m.detailViewport.View()
}

// detailContent renders a loaded album for the detail viewport.
func (m Model) detailContent(d state.DetailView) string {
	styles := m.theme.Styles()
	lines := []string{
		styles.AccentText.Bold(true).Render(d.Name),
		"",
		m.format("album_detail_artist", d.ArtistName),
		m.format("album_detail_released", d.ReleaseDate),
		m.format("album_detail_genre", d.Genres),
		m.format("album_detail_tracks", d.TrackCount),
		m.format("album_detail_price", d.Price),
		"",
		styles.MutedText.Render(m.format("album_detail_copyright", d.Copyright)),
		styles.InfoText.Render(m.format("album_detail_store", d.StoreURL)),
	}
	if d.ImageURL != "" {
		lines = append(lines, styles.FaintText.Render(d.ImageURL))
	}
	return styles.Panel.Width(max(m.width-2, 20)).Render(strings.Join(lines, "\n"))
}

func (m *Model) updateDetailViewport() {
	if !m.ready || m.detail == nil {
		return
	}
	view := m.detail.View()
	if view.Phase != state.PhaseLoaded {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.detailContent(view.Payload))
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	switch {
	case m.logErr != nil:
		m.logViewport.SetContent(styles.DangerText.Render(m.logErr.Error()))
	case len(m.logLines) == 0:
		m.logViewport.SetContent(styles.MutedText.Render("Log is empty"))
	default:
		m.logViewport.SetContent(strings.Join(m.logLines, "\n"))
	}
}

func (m Model) renderLoading(message string) string {
	styles := m.theme.Styles()
	return m.spinner.View() + " " + styles.MutedText.Render(message)
}

func (m Model) renderError(message, retry string) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(message))
	if retry != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Selected.Padding(0, 1).Render(retry))
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render("enter / R"))
	}
	return b.String()
}

func (m Model) format(key string, args ...any) string {
	if m.catalog == nil {
		return ""
	}
	return m.catalog.Format(key, args...)
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
