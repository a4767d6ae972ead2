package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	iso8601 "github.com/senseyeio/duration"
)

var (
	hoursGroup   = regexp.MustCompile(`(\d+)H`)
	minutesGroup = regexp.MustCompile(`(\d+)M`)
)

// ParseDuration returns the whole minutes in a PT#H#M token. The hour and
// minute groups are read independently; absent groups count as zero and
// days and seconds are ignored. It never fails.
func ParseDuration(token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	if strings.HasPrefix(token, "PT") {
		if d, err := iso8601.ParseISO8601(token); err == nil {
			return d.TH*60 + d.TM
		}
	}
	return groupValue(hoursGroup, token)*60 + groupValue(minutesGroup, token)
}

func groupValue(re *regexp.Regexp, token string) int {
	m := re.FindStringSubmatch(token)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// FormatTotalMinutes renders minutes as "{h}h {m}m", keeping zero hours.
func FormatTotalMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatCompactMinutes renders minutes with zero components dropped, e.g.
// "1d 2h 5m", "2h", "45m". Zero renders "0m".
func FormatCompactMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	days := minutes / (24 * 60)
	hours := (minutes % (24 * 60)) / 60
	mins := minutes % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}

// FormatDurationToken rewrites a raw token for display: "PT2H30M" becomes
// "2h 30m" and "PT0H" becomes "0h". Only the first H and M markers are
// replaced.
func FormatDurationToken(token string) string {
	out := strings.Replace(token, "PT", "", 1)
	out = strings.Replace(out, "H", "h ", 1)
	out = strings.Replace(out, "M", "m", 1)
	return strings.TrimSpace(out)
}
