package itinerary

import "github.com/five82/wayfare/internal/flights"

// LayoverGap is the connection between segment Index and Index+1.
type LayoverGap struct {
	Index   int
	Airport string
	Minutes int
	OK      bool
}

// Summary aggregates the timing of one itinerary.
type Summary struct {
	SegmentMinutes  []int
	Layovers        []LayoverGap
	Stops           int
	ReportedMinutes int
	LayoverMinutes  int
	TotalMinutes    int
}

// Summarize derives the segment, layover and total journey minutes of an
// itinerary. TotalMinutes is the itinerary's own reported duration plus the
// layovers; a gap that is not a layover contributes nothing.
func Summarize(it flights.Itinerary) Summary {
	s := Summary{
		SegmentMinutes:  make([]int, len(it.Segments)),
		ReportedMinutes: ParseDuration(it.Duration),
	}
	for i, seg := range it.Segments {
		s.SegmentMinutes[i] = ParseDuration(seg.Duration)
	}
	if n := len(it.Segments); n > 1 {
		s.Stops = n - 1
		s.Layovers = make([]LayoverGap, 0, n-1)
		for i := 0; i < n-1; i++ {
			arrival := it.Segments[i].Arrival
			minutes, ok := Layover(arrival.At, it.Segments[i+1].Departure.At)
			s.Layovers = append(s.Layovers, LayoverGap{
				Index:   i,
				Airport: arrival.IATACode,
				Minutes: minutes,
				OK:      ok,
			})
			s.LayoverMinutes += minutes
		}
	}
	s.TotalMinutes = s.ReportedMinutes + s.LayoverMinutes
	return s
}

// ReportedMinutes sums the reported durations of every itinerary of an
// offer, without layovers.
func ReportedMinutes(offer flights.Offer) int {
	total := 0
	for _, it := range offer.Itineraries {
		total += ParseDuration(it.Duration)
	}
	return total
}
