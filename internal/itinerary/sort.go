package itinerary

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/wayfare/internal/flights"
)

// SortKey selects the field offers are ordered by.
type SortKey string

const (
	SortNone     SortKey = ""
	SortPrice    SortKey = "price"
	SortDuration SortKey = "duration"
)

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortConfig is the active ordering. The zero value keeps input order.
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the config after the user picks key: the same key flips
// direction, any other key starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key {
		if c.Direction == Descending {
			return SortConfig{Key: key, Direction: Ascending}
		}
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

// String renders e.g. "price ↑"; the zero config renders "none".
func (c SortConfig) String() string {
	if c.Key == SortNone {
		return "none"
	}
	arrow := "↑"
	if c.Direction == Descending {
		arrow = "↓"
	}
	return string(c.Key) + " " + arrow
}

// ParseSortKey accepts "price" or "duration" in any case.
func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortPrice:
		return SortPrice, true
	case SortDuration:
		return SortDuration, true
	case SortNone:
		return SortNone, true
	default:
		return SortNone, false
	}
}

// SortOffers returns a sorted copy of offers; the input is left untouched.
// Ties keep their input order. Offers whose total cannot be parsed sort
// after every priced offer in both directions.
func SortOffers(offers []flights.Offer, cfg SortConfig) []flights.Offer {
	out := slices.Clone(offers)
	if cfg.Key == SortNone || len(out) < 2 {
		return out
	}
	sign := 1
	if cfg.Direction == Descending {
		sign = -1
	}
	var value func(flights.Offer) (float64, bool)
	switch cfg.Key {
	case SortPrice:
		value = priceValue
	case SortDuration:
		value = func(o flights.Offer) (float64, bool) { return float64(ReportedMinutes(o)), true }
	default:
		return out
	}
	slices.SortStableFunc(out, func(a, b flights.Offer) int {
		va, okA := value(a)
		vb, okB := value(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return sign * cmp.Compare(va, vb)
	})
	return out
}

// priceValue reports false for totals that are not finite numbers.
func priceValue(o flights.Offer) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(o.Price.Total), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
