package flights

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestTimestampUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  TimestampKind
		iso   string
		parts [5]int
	}{
		{name: "iso", input: `"2024-03-05T14:30:00"`, kind: TimestampISO, iso: "2024-03-05T14:30:00"},
		{name: "tuple", input: `[2024, 3, 5, 14, 30]`, kind: TimestampTuple, parts: [5]int{2024, 3, 5, 14, 30}},
		{name: "short tuple", input: `[2024, 3, 5]`, kind: TimestampTuple, parts: [5]int{2024, 3, 5, 0, 0}},
		{name: "too short", input: `[2024, 3]`, kind: TimestampInvalid},
		{name: "mixed tuple", input: `[2024, "3", 5]`, kind: TimestampInvalid},
		{name: "number", input: `1709649000`, kind: TimestampInvalid},
		{name: "object", input: `{"at": 1}`, kind: TimestampInvalid},
		{name: "null", input: `null`, kind: TimestampUnset},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ep Endpoint
			if err := json.Unmarshal([]byte(`{"iataCode": "MEX", "at": `+tc.input+`}`), &ep); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			got := ep.At
			if got.Kind != tc.kind {
				t.Fatalf("kind = %v, want %v", got.Kind, tc.kind)
			}
			if got.ISO != tc.iso || got.Parts != tc.parts {
				t.Fatalf("timestamp = %#v", got)
			}
			if tc.kind == TimestampInvalid && got.Raw == "" {
				t.Fatalf("Raw empty for invalid input")
			}
		})
	}
}

func TestTimestampKindString(t *testing.T) {
	cases := map[TimestampKind]string{
		TimestampUnset:    "unset",
		TimestampISO:      "iso",
		TimestampTuple:    "tuple",
		TimestampInvalid:  "invalid",
		TimestampKind(42): "TimestampKind(42)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("TimestampKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
	if got := fmt.Sprintf("%#v", TimestampTuple); got != "flights.TimestampTuple" {
		t.Errorf("%%#v of TimestampTuple = %q", got)
	}
}

func TestTimestampMarshalPreservesForm(t *testing.T) {
	cases := map[string]Timestamp{
		`"2024-03-05T14:30:00Z"`: ISOTimestamp("2024-03-05T14:30:00Z"),
		`[2024,3,5,14,30]`:       TupleTimestamp(2024, 3, 5, 14, 30),
		`null`:                   {},
	}
	for want, ts := range cases {
		got, err := json.Marshal(ts)
		if err != nil {
			t.Fatalf("Marshal(%v) returned error: %v", ts, err)
		}
		if string(got) != want {
			t.Fatalf("Marshal = %s, want %s", got, want)
		}
	}
}

func TestSegmentHelpers(t *testing.T) {
	seg := Segment{CarrierCode: "AM", Number: "612"}
	if seg.FlightNumber() != "AM612" {
		t.Fatalf("FlightNumber = %q", seg.FlightNumber())
	}
	if seg.OperatingCarrier() != "AM" {
		t.Fatalf("OperatingCarrier without operating = %q, want AM", seg.OperatingCarrier())
	}
	seg.Operating = &Operating{CarrierCode: "DL"}
	if seg.OperatingCarrier() != "DL" {
		t.Fatalf("OperatingCarrier = %q, want DL", seg.OperatingCarrier())
	}

	it := Itinerary{}
	if _, ok := it.First(); ok {
		t.Fatalf("First on empty itinerary returned ok")
	}
	it.Segments = []Segment{{ID: "1"}, {ID: "2"}}
	if first, _ := it.First(); first.ID != "1" {
		t.Fatalf("First = %q", first.ID)
	}
	if last, _ := it.Last(); last.ID != "2" {
		t.Fatalf("Last = %q", last.ID)
	}
}

func TestDictionariesFallback(t *testing.T) {
	var nilDict *Dictionaries
	if nilDict.CarrierName("AM") != "AM" || nilDict.AircraftName("738") != "738" {
		t.Fatalf("nil dictionaries should fall back to codes")
	}
	if nilDict.CarrierLabel("AM") != "AM" {
		t.Fatalf("CarrierLabel on nil = %q", nilDict.CarrierLabel("AM"))
	}
	d := &Dictionaries{Carriers: map[string]string{"AM": "AEROMEXICO"}, Aircraft: map[string]string{"738": "BOEING 737-800"}}
	if d.CarrierLabel("AM") != "AEROMEXICO (AM)" {
		t.Fatalf("CarrierLabel = %q", d.CarrierLabel("AM"))
	}
	if d.CarrierLabel("DL") != "DL" {
		t.Fatalf("CarrierLabel unknown = %q", d.CarrierLabel("DL"))
	}
	if d.AircraftName("738") != "BOEING 737-800" {
		t.Fatalf("AircraftName = %q", d.AircraftName("738"))
	}
}

func TestTravelerPricingFareDetailFor(t *testing.T) {
	tp := TravelerPricing{FareDetailsBySegment: []FareDetail{{SegmentID: "1", Cabin: "ECONOMY"}, {SegmentID: "2", Cabin: "BUSINESS"}}}
	fd, ok := tp.FareDetailFor("2")
	if !ok || fd.Cabin != "BUSINESS" {
		t.Fatalf("FareDetailFor(2) = %#v, %v", fd, ok)
	}
	if _, ok := tp.FareDetailFor("9"); ok {
		t.Fatalf("FareDetailFor(9) returned ok")
	}
}
