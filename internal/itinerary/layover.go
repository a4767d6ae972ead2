package itinerary

import (
	"fmt"
	"math"

	"github.com/five82/wayfare/internal/flights"
)

// Layover returns the gap in whole minutes between an arrival and the next
// departure, rounded to the nearest minute. ok is false when the gap is not
// positive or either endpoint cannot be read.
func Layover(arrival, nextDeparture flights.Timestamp) (int, bool) {
	arr := Normalize(arrival, nil)
	dep := Normalize(nextDeparture, nil)
	if !arr.Valid || !dep.Valid {
		return 0, false
	}
	minutes := int(math.Round(dep.Instant.Sub(arr.Instant).Minutes()))
	if minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// DescribeLayover renders "Layover at XXX: 0h 45m" or
// "Layover at XXX: No layover".
func DescribeLayover(airport string, arrival, nextDeparture flights.Timestamp) string {
	minutes, ok := Layover(arrival, nextDeparture)
	if !ok {
		return fmt.Sprintf("Layover at %s: No layover", airport)
	}
	return fmt.Sprintf("Layover at %s: %s", airport, FormatTotalMinutes(minutes))
}
