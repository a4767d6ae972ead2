package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/itinerary"
)

// detailWidth is the overlay width; narrower terminals use the full width.
const detailWidth = 96

func (m Model) detailSize() (int, int) {
	w := min(m.width, detailWidth)
	h := max(m.height-4, 3)
	return w, h
}

// updateDetailViewport re-renders the selected offer into the overlay.
func (m *Model) updateDetailViewport() {
	w, h := m.detailSize()
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(w-4, h-2)
	}
	m.detailViewport.Width = w - 4
	m.detailViewport.Height = h - 2
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	offer, ok := m.snapshot.Selected()
	if !ok {
		m.detailViewport.SetContent(m.theme.Styles().MutedText.Render("Offer no longer available"))
		return
	}
	m.detailViewport.SetContent(detailContent(offer, m.snapshot.Results.Dictionaries, m.location(), m.theme.Styles()))
}

// renderDetail renders the details overlay centered over the main area.
func (m Model) renderDetail() string {
	w, h := m.detailSize()
	title := "Offer details"
	if offer, ok := m.snapshot.Selected(); ok {
		title = "Offer " + offer.ID
	}
	if pct := m.detailViewport.ScrollPercent(); m.detailViewport.TotalLineCount() > m.detailViewport.Height {
		title += fmt.Sprintf(" · %.0f%%", pct*100)
	}
	return m.placeCentered(m.renderTitledBox(title, m.detailViewport.View(), w, h, true))
}

// detailContent lists every itinerary, segment, fare detail and the price
// breakdown of an offer.
func detailContent(offer flights.Offer, dicts *flights.Dictionaries, loc *time.Location, styles Styles) string {
	var b strings.Builder
	heading := styles.AccentText.Bold(true)

	for i, it := range offer.Itineraries {
		leg := itinerary.DescribeLeg(it, loc)
		name := "Itinerary"
		if offer.RoundTrip() {
			name = "Outbound"
			if i == 1 {
				name = "Return"
			}
		}
		b.WriteString(heading.Render(name))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s · %s · %s", leg.Route(), leg.FlightTime, leg.StopsLabel)))
		b.WriteString("\n")
		if leg.Summary.Stops > 0 {
			b.WriteString(styles.MutedText.Render("Total journey time: " + leg.TotalTime))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		for j, seg := range it.Segments {
			writeSegment(&b, offer, seg, dicts, loc, styles)
			if j < len(it.Segments)-1 {
				next := it.Segments[j+1]
				line := itinerary.DescribeLayover(seg.Arrival.IATACode, seg.Arrival.At, next.Departure.At)
				b.WriteString(styles.WarningText.Render("  " + line))
				b.WriteString("\n\n")
			}
		}
		b.WriteString("\n")
	}

	writePrice(&b, offer, styles)
	return strings.TrimRight(b.String(), "\n")
}

func writeSegment(b *strings.Builder, offer flights.Offer, seg flights.Segment, dicts *flights.Dictionaries, loc *time.Location, styles Styles) {
	dep := itinerary.Normalize(seg.Departure.At, loc)
	arr := itinerary.Normalize(seg.Arrival.At, loc)

	fmt.Fprintf(b, "%s  %s\n",
		styles.Text.Bold(true).Render(dep.Date+"  "+dep.Time+" → "+arr.Time),
		styles.MutedText.Render(itinerary.FormatDurationToken(seg.Duration)))
	fmt.Fprintf(b, "  %s → %s\n", endpoint(seg.Departure), endpoint(seg.Arrival))

	carrier := seg.FlightNumber() + " · " + dicts.CarrierLabel(seg.CarrierCode)
	if op := seg.OperatingCarrier(); op != seg.CarrierCode {
		carrier += " · operated by " + dicts.CarrierLabel(op)
	}
	if seg.Aircraft.Code != "" {
		carrier += " · " + dicts.AircraftName(seg.Aircraft.Code)
	}
	b.WriteString("  " + styles.Text.Render(carrier) + "\n")

	for _, tp := range offer.TravelerPricings {
		fd, ok := tp.FareDetailFor(seg.ID)
		if !ok {
			continue
		}
		b.WriteString("  " + styles.InfoText.Render(travelerLabel(tp)+": "+fareLine(fd)) + "\n")
		for _, a := range fd.Amenities {
			b.WriteString("    " + styles.FaintText.Render(amenityLine(a)) + "\n")
		}
	}
}

func endpoint(ep flights.Endpoint) string {
	if ep.Terminal == "" {
		return ep.IATACode
	}
	return ep.IATACode + " T" + ep.Terminal
}

func travelerLabel(tp flights.TravelerPricing) string {
	label := "Traveler " + tp.TravelerID
	if tp.TravelerType != "" {
		label += " (" + strings.ToLower(tp.TravelerType) + ")"
	}
	return label
}

func fareLine(fd flights.FareDetail) string {
	parts := []string{fd.Cabin}
	if fd.ClassType != "" {
		parts = append(parts, "class "+fd.ClassType)
	}
	if fd.FareBasis != "" {
		parts = append(parts, "fare "+fd.FareBasis)
	}
	if bags := baggage(fd.IncludedCheckedBags); bags != "" {
		parts = append(parts, "checked "+bags)
	}
	if bags := baggage(fd.IncludedCabinBags); bags != "" {
		parts = append(parts, "cabin "+bags)
	}
	return strings.Join(parts, " · ")
}

func baggage(b *flights.Baggage) string {
	switch {
	case b == nil:
		return ""
	case b.Quantity > 0:
		return plural(b.Quantity, "bag", "bags")
	case b.Weight > 0:
		return fmt.Sprintf("%d %s", b.Weight, b.WeightUnit)
	default:
		return "none"
	}
}

func amenityLine(a flights.Amenity) string {
	line := a.Description
	if a.IsChargeable {
		line += " (chargeable)"
	}
	if a.AmenityProvider.Name != "" {
		line += " · " + a.AmenityProvider.Name
	}
	return line
}

func writePrice(b *strings.Builder, offer flights.Offer, styles Styles) {
	b.WriteString(styles.AccentText.Bold(true).Render("Price"))
	b.WriteString("\n")
	breakdown, err := itinerary.Breakdown(offer.Price, len(offer.TravelerPricings))
	if err != nil {
		b.WriteString(styles.DangerText.Render("  Price unavailable: " + err.Error()))
		b.WriteString("\n")
		return
	}
	row := func(label, value string) {
		fmt.Fprintf(b, "  %s%s\n", styles.MutedText.Render(fmt.Sprintf("%-22s", label)), styles.Text.Render(value))
	}
	row("Base", breakdown.Base)
	row("Taxes and fees", breakdown.Fees)
	row("Total", breakdown.Total)
	row(fmt.Sprintf("Per traveler (%d)", breakdown.Travelers), breakdown.PerTraveler)
	if offer.LastTicketingDate != "" {
		row("Last ticketing date", offer.LastTicketingDate)
	}
	row("Seats left", fmt.Sprintf("%d", offer.NumberOfBookableSeats))
}
