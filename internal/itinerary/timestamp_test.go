package itinerary

import (
	"testing"
	"time"

	"github.com/five82/wayfare/internal/flights"
)

func TestNormalize(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cases := []struct {
		name     string
		ts       flights.Timestamp
		loc      *time.Location
		valid    bool
		wantTime string
		wantDate string
	}{
		{name: "tuple", ts: flights.TupleTimestamp(2024, 3, 5, 14, 30), valid: true, wantTime: "14:30", wantDate: "03/05/2024"},
		{name: "tuple ignores zone", ts: flights.TupleTimestamp(2024, 3, 5, 14, 30), loc: tokyo, valid: true, wantTime: "14:30", wantDate: "03/05/2024"},
		{name: "naive iso", ts: flights.ISOTimestamp("2024-03-05T14:30:00"), valid: true, wantTime: "14:30", wantDate: "03/05/2024"},
		{name: "naive iso minutes", ts: flights.ISOTimestamp("2024-12-31T23:05"), valid: true, wantTime: "23:05", wantDate: "12/31/2024"},
		{name: "utc instant", ts: flights.ISOTimestamp("2024-03-05T14:30:00Z"), valid: true, wantTime: "14:30", wantDate: "03/05/2024"},
		{name: "offset to utc", ts: flights.ISOTimestamp("2024-03-05T20:30:00-06:00"), valid: true, wantTime: "02:30", wantDate: "03/06/2024"},
		{name: "instant to display zone", ts: flights.ISOTimestamp("2024-03-05T14:30:00Z"), loc: tokyo, valid: true, wantTime: "23:30", wantDate: "03/05/2024"},
		{name: "garbage", ts: flights.ISOTimestamp("not a date"), wantTime: InvalidTime, wantDate: InvalidDate},
		{name: "empty", ts: flights.ISOTimestamp(""), wantTime: InvalidTime, wantDate: InvalidDate},
		{name: "unset", ts: flights.Timestamp{}, wantTime: InvalidTime, wantDate: InvalidDate},
		{name: "invalid kind", ts: flights.Timestamp{Kind: flights.TimestampInvalid, Raw: "42"}, wantTime: InvalidTime, wantDate: InvalidDate},
		{name: "month out of range", ts: flights.TupleTimestamp(2024, 13, 5, 14, 30), wantTime: InvalidTime, wantDate: InvalidDate},
		{name: "day overflow", ts: flights.TupleTimestamp(2023, 2, 30, 10, 0), wantTime: InvalidTime, wantDate: InvalidDate},
		{name: "hour out of range", ts: flights.TupleTimestamp(2024, 3, 5, 24, 0), wantTime: InvalidTime, wantDate: InvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.ts, tc.loc)
			if got.Valid != tc.valid {
				t.Fatalf("Valid = %v, want %v", got.Valid, tc.valid)
			}
			if got.Time != tc.wantTime || got.Date != tc.wantDate {
				t.Fatalf("Normalize = %q %q, want %q %q", got.Time, got.Date, tc.wantTime, tc.wantDate)
			}
			if !tc.valid && !got.Instant.IsZero() {
				t.Fatalf("Instant = %v, want zero for invalid input", got.Instant)
			}
		})
	}
}

func TestNormalizeFormsAgree(t *testing.T) {
	a := Normalize(flights.TupleTimestamp(2024, 3, 5, 14, 30), nil)
	b := Normalize(flights.ISOTimestamp("2024-03-05T14:30:00"), nil)
	if !a.Instant.Equal(b.Instant) {
		t.Fatalf("tuple %v and iso %v should be the same wall clock", a.Instant, b.Instant)
	}
}
