package itinerary

import (
	"strings"
	"time"

	"github.com/five82/wayfare/internal/flights"
)

// Placeholders rendered for timestamps that cannot be read.
const (
	InvalidTime = "--:--"
	InvalidDate = "--/--/----"
)

const (
	timeLayout = "15:04"
	dateLayout = "01/02/2006"
)

// naiveLayouts are ISO forms without a zone; they are read as wall clock.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalized is the display form of a timestamp.
type Normalized struct {
	// Instant is only meaningful when Valid is true. Wall-clock values are
	// carried in UTC so they compare with each other as written.
	Instant time.Time
	Valid   bool
	Time    string
	Date    string
}

// Normalize reads either timestamp form. loc is the display zone for
// offset-bearing ISO strings; nil means UTC.
func Normalize(ts flights.Timestamp, loc *time.Location) Normalized {
	instant, ok := resolve(ts, loc)
	if !ok {
		return Normalized{Time: InvalidTime, Date: InvalidDate}
	}
	return Normalized{
		Instant: instant,
		Valid:   true,
		Time:    instant.Format(timeLayout),
		Date:    instant.Format(dateLayout),
	}
}

func resolve(ts flights.Timestamp, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch ts.Kind {
	case flights.TimestampTuple:
		return fromParts(ts.Parts)
	case flights.TimestampISO:
		return parseISO(ts.ISO, loc)
	default:
		return time.Time{}, false
	}
}

func fromParts(p [5]int) (time.Time, bool) {
	year, month, day, hour, minute := p[0], p[1], p[2], p[3], p[4]
	if month < 1 || month > 12 || day < 1 || day > 31 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalises overflow such as Feb 30; reject it instead.
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func parseISO(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
