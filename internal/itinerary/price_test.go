package itinerary

import (
	"math"
	"strings"
	"testing"

	"github.com/five82/wayfare/internal/flights"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		code   string
		want   string
	}{
		{250, "USD", "$250.00"},
		{1234.5, "USD", "$1,234.50"},
		{0, "usd", "$0.00"},
		{99, "EUR", "€99.00"},
		{-5, "USD", "-$5.00"},
	}
	for _, tc := range cases {
		got, err := FormatPrice(tc.amount, tc.code)
		if err != nil {
			t.Fatalf("FormatPrice(%v, %q) returned error: %v", tc.amount, tc.code, err)
		}
		if got != tc.want {
			t.Fatalf("FormatPrice(%v, %q) = %q, want %q", tc.amount, tc.code, got, tc.want)
		}
	}
}

func TestFormatPriceErrors(t *testing.T) {
	for _, code := range []string{"ZZZ", "", "dollars"} {
		if _, err := FormatPrice(10, code); err == nil {
			t.Fatalf("FormatPrice(10, %q) returned nil error", code)
		}
	}
	if _, err := FormatPrice(math.NaN(), "USD"); err == nil {
		t.Fatalf("FormatPrice(NaN) returned nil error")
	}
	if _, err := FormatPriceString("abc", "USD"); err == nil {
		t.Fatalf("FormatPriceString(abc) returned nil error")
	}
}

func TestFormatPriceString(t *testing.T) {
	got, err := FormatPriceString("1234.50", "USD")
	if err != nil || got != "$1,234.50" {
		t.Fatalf("FormatPriceString = %q, %v", got, err)
	}
}

func TestBreakdown(t *testing.T) {
	b, err := Breakdown(flights.Price{Currency: "USD", Total: "250.00", Base: "200.00"}, 2)
	if err != nil {
		t.Fatalf("Breakdown returned error: %v", err)
	}
	want := PriceBreakdown{Base: "200.00 USD", Fees: "50.00 USD", Total: "250.00 USD", PerTraveler: "125.00 USD", Travelers: 2, CurrencyCode: "USD"}
	if b != want {
		t.Fatalf("Breakdown = %+v, want %+v", b, want)
	}

	b, err = Breakdown(flights.Price{Currency: "EUR", Total: "99.99"}, 0)
	if err != nil {
		t.Fatalf("Breakdown returned error: %v", err)
	}
	if b.Fees != "0.00 EUR" || b.PerTraveler != "99.99 EUR" || b.Travelers != 1 {
		t.Fatalf("Breakdown without base = %+v", b)
	}

	if _, err := Breakdown(flights.Price{Total: "x"}, 1); err == nil {
		t.Fatalf("Breakdown with bad total returned nil error")
	}
}

func TestPerTraveler(t *testing.T) {
	o := flights.Offer{
		Price:            flights.Price{Currency: "USD", Total: "300.00"},
		TravelerPricings: []flights.TravelerPricing{{TravelerID: "1"}, {TravelerID: "2"}, {TravelerID: "3"}},
	}
	got, err := PerTraveler(o)
	if err != nil || got != "$100.00" {
		t.Fatalf("PerTraveler = %q, %v", got, err)
	}
	o.Price.Currency = "ZZZ"
	if _, err := PerTraveler(o); err == nil || !strings.Contains(err.Error(), "unknown currency") {
		t.Fatalf("PerTraveler with bad code error = %v", err)
	}
}
