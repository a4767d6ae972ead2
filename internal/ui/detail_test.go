package ui

import (
	"strings"
	"testing"

	"github.com/five82/wayfare/internal/flights"
)

func TestDetailContent(t *testing.T) {
	dicts := &flights.Dictionaries{
		Carriers: map[string]string{"AM": "AEROMEXICO"},
		Aircraft: map[string]string{"738": "BOEING 737-800"},
	}
	offer := roundTripOffer()
	offer.Itineraries[0].Segments[0].Departure.Terminal = "1"
	offer.Itineraries[0].Segments[0].Aircraft.Code = "738"
	offer.Itineraries[0].Segments[1].Operating = &flights.Operating{CarrierCode: "AM"}

	got := detailContent(offer, dicts, nil, GetTheme("Slate").Styles())

	for _, want := range []string{
		"Outbound",
		"Return",
		"MEX → MTY → CUN",
		"Total journey time: 3h 15m",
		"MEX T1 → MTY",
		"AM101",
		"AEROMEXICO",
		"BOEING 737-800",
		"Layover at MTY: 0h 45m",
		"Traveler 1 (adult): ECONOMY · class Y · fare YLOW · checked 1 bag",
		"SNACK (chargeable)",
		"250.00 USD",
		"Per traveler (2)",
		"125.00 USD",
		"Taxes and fees",
		"50.00 USD",
		"2024-03-08",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("detail content missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "operated by") {
		t.Fatalf("same operating carrier rendered as operated by:\n%s", got)
	}
}

func TestDetailContentOneWay(t *testing.T) {
	offer := roundTripOffer()
	offer.Itineraries = offer.Itineraries[1:]
	offer.Itineraries[0].Segments[0].Operating = &flights.Operating{CarrierCode: "Y4"}
	offer.Price.Total = "bad"

	got := detailContent(offer, nil, nil, GetTheme("").Styles())
	if !strings.Contains(got, "Itinerary") || strings.Contains(got, "Outbound") {
		t.Fatalf("one-way heading wrong:\n%s", got)
	}
	if !strings.Contains(got, "operated by Y4") {
		t.Fatalf("missing operating carrier:\n%s", got)
	}
	if !strings.Contains(got, "Price unavailable") {
		t.Fatalf("unparseable price not reported:\n%s", got)
	}
}

func TestBaggage(t *testing.T) {
	tests := []struct {
		in   *flights.Baggage
		want string
	}{
		{nil, ""},
		{&flights.Baggage{Quantity: 2}, "2 bags"},
		{&flights.Baggage{Weight: 23, WeightUnit: "KG"}, "23 KG"},
		{&flights.Baggage{}, "none"},
	}
	for _, tt := range tests {
		if got := baggage(tt.in); got != tt.want {
			t.Errorf("baggage(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
