package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/itinerary"
	"github.com/five82/wayfare/internal/state"
)

// lowSeats is the seat count at or below which an offer is flagged.
const lowSeats = 3

// resultRow is one itinerary line of the results list. Offer-level cells
// are only set on the first line of an offer.
type resultRow struct {
	offer    int // index into the page
	number   string
	schedule string
	route    string
	flight   string
	stops    string
	total    string
	seats    string
	lowSeats bool
	price    string
	per      string
}

// buildRows lays out the page offers; first is the 1-based number of the
// first offer on the page.
func buildRows(offers []flights.Offer, first int, loc *time.Location) []resultRow {
	var rows []resultRow
	for i, offer := range offers {
		price, err := itinerary.FormatPriceString(offer.Price.Total, offer.Price.Currency)
		if err != nil {
			price = "n/a"
		}
		per, err := itinerary.PerTraveler(offer)
		if err != nil {
			per = "n/a"
		} else {
			per += " pp"
		}
		for j, it := range offer.Itineraries {
			leg := itinerary.DescribeLeg(it, loc)
			row := resultRow{
				offer:    i,
				schedule: leg.Schedule(),
				route:    leg.Route(),
				flight:   leg.FlightTime,
				stops:    leg.StopsLabel,
			}
			if leg.Summary.Stops > 0 {
				row.total = leg.TotalTime + " total"
			}
			if j == 0 {
				row.number = "#" + strconv.Itoa(first+i)
				row.seats = plural(offer.NumberOfBookableSeats, "seat", "seats")
				row.lowSeats = offer.NumberOfBookableSeats > 0 && offer.NumberOfBookableSeats <= lowSeats
				row.price = price
				row.per = per
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// renderResults renders the results pane.
func (m Model) renderResults() string {
	contentHeight := max(m.height-2, 3)
	snap := m.snapshot
	title := fmt.Sprintf("Offers (%d)", len(snap.Results.Offers))
	if snap.TotalPages() > 1 {
		title += fmt.Sprintf(" · page %d/%d", snap.Page+1, snap.TotalPages())
	}
	return m.renderTitledBox(title, m.resultsBody(m.width-2, m.theme.FocusBg), m.width, contentHeight, true)
}

func (m Model) resultsBody(width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	snap := m.snapshot

	message := func(text string, style lipgloss.Style) string {
		return bg.FillLine(bg.Render(text, style), width)
	}
	switch {
	case m.searching() || snap.Loading:
		return message(m.spinner.View()+" Searching flights...", styles.WarningText)
	case snap.LastError != nil:
		return message("Search failed: "+describeError(snap.LastError), styles.DangerText) + "\n" +
			message("Press / to edit the search.", styles.MutedText)
	case !snap.HasSearched:
		return message("No search yet. Press / to search.", styles.MutedText)
	case len(snap.Results.Offers) == 0:
		return message("No flights found for this search.", styles.MutedText)
	}

	offers := snap.PageOffers()
	per := snap.PerPage
	if per <= 0 {
		per = state.DefaultPerPage
	}
	rows := buildRows(offers, snap.Page*per+1, m.location())
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, m.formatRow(row, row.offer == m.cursor, width, bgColor))
	}
	return strings.Join(lines, "\n")
}

// formatRow renders one row; the selected offer uses the selection colors
// for every cell.
func (m Model) formatRow(row resultRow, selected bool, width int, bgColor string) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	text, muted, accent := styles.Text, styles.MutedText, styles.AccentText
	seats := muted
	if row.lowSeats {
		seats = styles.DangerText
	}
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		text, muted, accent, seats = sel, sel, sel.Bold(true), sel
	}

	cell := func(value string, w int, style lipgloss.Style) string {
		return bg.Render(fmt.Sprintf("%-*s", w, truncate(value, w)), style) + bg.Spaces(2)
	}
	line := cell(row.number, 4, muted) +
		cell(row.schedule, 13, text) +
		cell(row.route, 17, text) +
		cell(row.flight, 8, muted) +
		cell(row.stops, 8, muted) +
		cell(row.total, 14, muted) +
		cell(row.seats, 9, seats) +
		cell(row.price, 12, accent) +
		bg.Render(row.per, muted)
	return bg.FillLine(line, width)
}
