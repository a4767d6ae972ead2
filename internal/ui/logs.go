package ui

import (
	"bytes"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wayfare/internal/logtail"
)

// logState holds the log view state.
type logState struct {
	path    string
	follow  bool
	content string
	err     error
}

type logsMsg struct {
	content string
	err     error
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-2, 1), max(m.height-4, 1))
}

// updateLogViewport resizes the viewport and applies the latest content.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(m.height-4, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	switch {
	case m.logState.err != nil:
		m.logViewport.SetContent(m.theme.Styles().DangerText.Render("Cannot read log: " + m.logState.err.Error()))
	case m.logState.content == "":
		m.logViewport.SetContent(m.theme.Styles().MutedText.Render("No log entries yet"))
	default:
		m.logViewport.SetContent(m.logState.content)
	}
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	title := "Log " + truncate(m.logState.path, max(m.width-20, 10))
	if m.logState.follow {
		title += " · following"
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, max(m.height-2, 3), true)
}

// refreshLogs reads the tail of the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logState.path
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logtail.DefaultLines)
		if err != nil {
			return logsMsg{err: err}
		}
		var buf bytes.Buffer
		if err := logtail.Render(&buf, lines, true); err != nil {
			return logsMsg{err: err}
		}
		return logsMsg{content: buf.String()}
	}
}

func (m *Model) handleLogs(msg logsMsg) {
	m.logState.content = msg.content
	m.logState.err = msg.err
	m.updateLogViewport()
}
