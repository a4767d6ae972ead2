package itinerary

import (
	"fmt"
	"math"
	"time"

	"github.com/five82/wayfare/internal/flights"
)

// Leg is the list-row view of one itinerary.
type Leg struct {
	Departure   Normalized
	Arrival     Normalized
	Origin      string
	Destination string
	Via         []string
	FlightTime  string
	StopsLabel  string
	TotalTime   string
	Summary     Summary
}

// DescribeLeg prepares the schedule, route and timing cells of a results
// row. Times are normalized into loc.
func DescribeLeg(it flights.Itinerary, loc *time.Location) Leg {
	leg := Leg{
		Departure:  Normalize(flights.Timestamp{}, loc),
		Arrival:    Normalize(flights.Timestamp{}, loc),
		FlightTime: FormatDurationToken(it.Duration),
		Summary:    Summarize(it),
	}
	if first, ok := it.First(); ok {
		leg.Origin = first.Departure.IATACode
		leg.Departure = Normalize(first.Departure.At, loc)
	}
	if last, ok := it.Last(); ok {
		leg.Destination = last.Arrival.IATACode
		leg.Arrival = Normalize(last.Arrival.At, loc)
	}
	for _, gap := range leg.Summary.Layovers {
		leg.Via = append(leg.Via, gap.Airport)
	}
	leg.StopsLabel = StopsLabel(leg.Summary.Stops)
	leg.TotalTime = FormatTotalMinutes(leg.Summary.TotalMinutes)
	return leg
}

// Route renders "MEX → CUN" or "MEX → MTY → CUN".
func (l Leg) Route() string {
	out := l.Origin
	for _, via := range l.Via {
		out += " → " + via
	}
	return out + " → " + l.Destination
}

// Schedule renders "14:30 → 17:00".
func (l Leg) Schedule() string {
	return l.Departure.Time + " → " + l.Arrival.Time
}

// StopsLabel renders "Nonstop", "1 stop" or "n stops".
func StopsLabel(stops int) string {
	switch {
	case stops <= 0:
		return "Nonstop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// Stats summarizes a result set for headers.
type Stats struct {
	Count            int
	CheapestOffer    string
	CheapestTotal    string
	CheapestCurrency string
	ShortestMinutes  int
}

// Overview reports the cheapest priced offer and the shortest reported
// duration of a result set. Offers without a parseable total are never the
// cheapest.
func Overview(offers []flights.Offer) Stats {
	st := Stats{Count: len(offers)}
	cheapest := math.Inf(1)
	for i, o := range offers {
		if v, ok := priceValue(o); ok && v < cheapest {
			cheapest = v
			st.CheapestOffer = o.ID
			st.CheapestTotal = o.Price.Total
			st.CheapestCurrency = o.Price.Currency
		}
		if m := ReportedMinutes(o); i == 0 || m < st.ShortestMinutes {
			st.ShortestMinutes = m
		}
	}
	return st
}
