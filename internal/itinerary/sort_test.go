package itinerary

import (
	"testing"

	"github.com/five82/wayfare/internal/flights"
)

func offer(id, total string, durations ...string) flights.Offer {
	o := flights.Offer{ID: id, Price: flights.Price{Currency: "USD", Total: total}}
	for _, d := range durations {
		o.Itineraries = append(o.Itineraries, flights.Itinerary{Duration: d})
	}
	return o
}

func ids(offers []flights.Offer) string {
	out := ""
	for _, o := range offers {
		out += o.ID
	}
	return out
}

func TestSortOffersByPriceIsStable(t *testing.T) {
	in := []flights.Offer{offer("A", "300"), offer("B", "100"), offer("C", "100")}
	got := SortOffers(in, SortConfig{Key: SortPrice, Direction: Ascending})
	if ids(got) != "BCA" {
		t.Fatalf("order = %s, want BCA", ids(got))
	}
	if ids(in) != "ABC" {
		t.Fatalf("input mutated: %s", ids(in))
	}
}

func TestSortOffersDirectionReverses(t *testing.T) {
	in := []flights.Offer{offer("A", "100"), offer("B", "200"), offer("C", "300")}
	asc := SortOffers(in, SortConfig{Key: SortPrice, Direction: Ascending})
	desc := SortOffers(in, SortConfig{Key: SortPrice, Direction: Descending})
	if ids(asc) != "ABC" || ids(desc) != "CBA" {
		t.Fatalf("asc = %s, desc = %s", ids(asc), ids(desc))
	}
}

func TestSortOffersByDuration(t *testing.T) {
	in := []flights.Offer{
		offer("A", "100", "PT5H", "PT5H"),
		offer("B", "100", "PT2H30M"),
		offer("C", "100", "PT3H", "PT1H"),
	}
	got := SortOffers(in, SortConfig{Key: SortDuration, Direction: Ascending})
	if ids(got) != "BCA" {
		t.Fatalf("order = %s, want BCA", ids(got))
	}
}

func TestSortOffersUnparseablePriceLast(t *testing.T) {
	in := []flights.Offer{offer("A", "n/a"), offer("B", "200"), offer("C", ""), offer("D", "50")}
	got := SortOffers(in, SortConfig{Key: SortPrice, Direction: Ascending})
	if ids(got) != "DBAC" {
		t.Fatalf("order = %s, want DBAC", ids(got))
	}

	got = SortOffers(in, SortConfig{Key: SortPrice, Direction: Descending})
	if ids(got) != "BDAC" {
		t.Fatalf("descending order = %s, want BDAC", ids(got))
	}
}

func TestSortOffersZeroConfigKeepsOrder(t *testing.T) {
	in := []flights.Offer{offer("C", "3"), offer("A", "1"), offer("B", "2")}
	if got := SortOffers(in, SortConfig{}); ids(got) != "CAB" {
		t.Fatalf("order = %s, want CAB", ids(got))
	}
	if got := SortOffers(nil, SortConfig{Key: SortPrice}); len(got) != 0 {
		t.Fatalf("SortOffers(nil) = %v", got)
	}
}

func TestSortConfigToggle(t *testing.T) {
	cfg := SortConfig{}.Toggle(SortPrice)
	if cfg != (SortConfig{Key: SortPrice, Direction: Ascending}) {
		t.Fatalf("first toggle = %+v", cfg)
	}
	cfg = cfg.Toggle(SortPrice)
	if cfg.Direction != Descending {
		t.Fatalf("second toggle = %+v, want desc", cfg)
	}
	cfg = cfg.Toggle(SortDuration)
	if cfg != (SortConfig{Key: SortDuration, Direction: Ascending}) {
		t.Fatalf("new key = %+v, want duration asc", cfg)
	}
	if cfg.String() != "duration ↑" || (SortConfig{}).String() != "none" {
		t.Fatalf("String = %q", cfg.String())
	}
}

func TestParseSortKey(t *testing.T) {
	if k, ok := ParseSortKey(" Price "); !ok || k != SortPrice {
		t.Fatalf("ParseSortKey(Price) = %q, %v", k, ok)
	}
	if _, ok := ParseSortKey("seats"); ok {
		t.Fatalf("ParseSortKey(seats) ok")
	}
}
