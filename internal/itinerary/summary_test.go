package itinerary

import (
	"testing"

	"github.com/five82/wayfare/internal/flights"
)

func segment(id, from, to string, dep, arr flights.Timestamp, duration string) flights.Segment {
	return flights.Segment{
		ID:        id,
		Departure: flights.Endpoint{IATACode: from, At: dep},
		Arrival:   flights.Endpoint{IATACode: to, At: arr},
		Duration:  duration,
	}
}

func TestSummarizeWithLayover(t *testing.T) {
	it := flights.Itinerary{
		Duration: "PT2H30M",
		Segments: []flights.Segment{
			segment("1", "MEX", "MTY", flights.ISOTimestamp("2024-03-05T14:30:00"), flights.ISOTimestamp("2024-03-05T16:00:00"), "PT1H30M"),
			segment("2", "MTY", "CUN", flights.ISOTimestamp("2024-03-05T16:45:00"), flights.ISOTimestamp("2024-03-05T17:45:00"), "PT1H"),
		},
	}
	s := Summarize(it)
	if s.Stops != 1 {
		t.Fatalf("Stops = %d, want 1", s.Stops)
	}
	if s.ReportedMinutes != 150 || s.LayoverMinutes != 45 || s.TotalMinutes != 195 {
		t.Fatalf("summary = %+v, want 150 + 45 = 195", s)
	}
	if got := FormatTotalMinutes(s.TotalMinutes); got != "3h 15m" {
		t.Fatalf("FormatTotalMinutes = %q, want 3h 15m", got)
	}
	if len(s.SegmentMinutes) != 2 || s.SegmentMinutes[0] != 90 || s.SegmentMinutes[1] != 60 {
		t.Fatalf("SegmentMinutes = %v", s.SegmentMinutes)
	}
	if len(s.Layovers) != 1 || s.Layovers[0].Airport != "MTY" || !s.Layovers[0].OK {
		t.Fatalf("Layovers = %+v", s.Layovers)
	}
}

func TestSummarizeSingleSegment(t *testing.T) {
	it := flights.Itinerary{
		Duration: "PT5H",
		Segments: []flights.Segment{
			segment("1", "MEX", "JFK", flights.TupleTimestamp(2024, 3, 5, 8, 0), flights.TupleTimestamp(2024, 3, 5, 15, 0), "PT5H"),
		},
	}
	s := Summarize(it)
	if s.Stops != 0 || len(s.Layovers) != 0 {
		t.Fatalf("summary = %+v, want no stops", s)
	}
	if s.TotalMinutes != 300 {
		t.Fatalf("TotalMinutes = %d, want 300", s.TotalMinutes)
	}
}

func TestSummarizeIgnoresNonLayoverGaps(t *testing.T) {
	it := flights.Itinerary{
		Duration: "PT3H",
		Segments: []flights.Segment{
			segment("1", "MEX", "MTY", flights.ISOTimestamp("2024-03-05T14:30:00"), flights.ISOTimestamp("2024-03-05T16:00:00"), "PT1H30M"),
			segment("2", "MTY", "CUN", flights.ISOTimestamp("2024-03-05T15:00:00"), flights.ISOTimestamp("2024-03-05T16:30:00"), "PT1H30M"),
			segment("3", "CUN", "MIA", flights.ISOTimestamp("bogus"), flights.ISOTimestamp("2024-03-05T20:00:00"), "PT1H"),
		},
	}
	s := Summarize(it)
	if s.Stops != 2 {
		t.Fatalf("Stops = %d, want 2", s.Stops)
	}
	if s.LayoverMinutes != 0 || s.TotalMinutes != 180 {
		t.Fatalf("summary = %+v, want no layover minutes", s)
	}
	for _, gap := range s.Layovers {
		if gap.OK {
			t.Fatalf("gap %+v reported as layover", gap)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(flights.Itinerary{})
	if s.Stops != 0 || s.TotalMinutes != 0 || len(s.SegmentMinutes) != 0 {
		t.Fatalf("summary = %+v, want zero", s)
	}
}
