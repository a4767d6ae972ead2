package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/state"
)

// renderHeader renders the status line: logo, route, dates and search state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot

	parts := []string{bg.Render("wayfare", styles.Logo)}
	if !snap.HasSearched && !m.searching() {
		parts = append(parts, bg.Render("Ready to search", styles.MutedText))
		return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	}

	p := snap.Params
	parts = append(parts, bg.Render(p.Origin+" → "+p.Destination, styles.Text.Bold(true)))
	dates := p.DepartureDate
	if p.ReturnDate != "" {
		dates += " to " + p.ReturnDate
	}
	parts = append(parts, bg.Render(dates, styles.MutedText))

	switch {
	case m.searching() || snap.Loading:
		parts = append(parts, bg.Render(m.spinner.View()+" Searching...", styles.WarningText.Bold(true)))
	case snap.LastError != nil:
		parts = append(parts, bg.Render("● "+classifyError(snap.LastError), styles.DangerText))
	default:
		parts = append(parts,
			bg.Render("Offers:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", len(snap.Results.Offers)), styles.Text),
			bg.Render("Sort:", styles.MutedText)+bg.Space()+bg.Render(snap.Sort.String(), styles.AccentText),
			bg.Render("Page:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d/%d", snap.Page+1, snap.TotalPages()), styles.Text),
		)
	}
	if !snap.LastUpdated.IsZero() && m.width >= 100 {
		parts = append(parts, bg.Render(snap.LastUpdated.Format("15:04:05"), styles.FaintText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// classifyError returns a short label for a failed search.
func classifyError(err error) string {
	var apiErr *flights.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API %d", apiErr.StatusCode)
	case errors.Is(err, state.ErrInvalidResponse), errors.Is(err, flights.ErrInvalidResponse):
		return "INVALID RESPONSE"
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// describeError is the sentence shown in the results pane for a failed
// search. Backend messages are shown as sent.
func describeError(err error) string {
	var apiErr *flights.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, state.ErrInvalidResponse) {
		return "The response structure is invalid."
	}
	return err.Error()
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	switch {
	case m.showDetail:
		commands = []cmd{{"j/k", "Scroll"}, {"ctrl+d/u", "Half page"}, {"esc", "Close"}}
	case m.currentView == ViewSearch:
		commands = []cmd{{"tab", "Next"}, {"ctrl+n/p", "Suggestion"}, {"enter", "Accept/Search"}, {"ctrl+s", "Search"}}
		if m.snapshot.HasSearched {
			commands = append(commands, cmd{"esc", "Results"})
		}
		commands = append(commands, cmd{"F1", "Help"})
	case m.currentView == ViewLogs:
		follow := "Pause"
		if !m.logState.follow {
			follow = "Follow"
		}
		commands = []cmd{{"Space", follow}, {"j/k", "Scroll"}, {"esc", "Back"}, {"?", "More"}}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"p", "Price"},
			{"d", "Duration"},
			{"[/]", "Page"},
			{"/", "Search"},
			{"L", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

// truncate shortens s to n runes, ending with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
