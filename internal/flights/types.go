package flights

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OffersResponse mirrors the payload returned by /api/flights.
type OffersResponse struct {
	Meta         *Meta         `json:"meta"`
	Data         []Offer       `json:"data"`
	Dictionaries *Dictionaries `json:"dictionaries,omitempty"`
}

// Meta carries the result count and the self link of a search.
type Meta struct {
	Count int   `json:"count"`
	Links Links `json:"links"`
}

// Links holds the backend's HATEOAS links.
type Links struct {
	Self string `json:"self"`
}

// Offer is a priced flight bundle: one itinerary for one-way trips, two for
// round trips (index 0 outbound, index 1 return).
type Offer struct {
	ID                     string            `json:"id"`
	Source                 string            `json:"source"`
	InstantTicketing       bool              `json:"instantTicketingRequired"`
	NonHomogeneous         bool              `json:"nonHomogeneous"`
	OneWay                 bool              `json:"oneWay"`
	LastTicketingDate      string            `json:"lastTicketingDate"`
	NumberOfBookableSeats  int               `json:"numberOfBookableSeats"`
	Itineraries            []Itinerary       `json:"itineraries"`
	Price                  Price             `json:"price"`
	PricingOptions         PricingOptions    `json:"pricingOptions"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
}

// RoundTrip reports whether the offer has a return itinerary.
func (o Offer) RoundTrip() bool {
	return len(o.Itineraries) > 1
}

// Itinerary is one direction of travel. Its Duration is reported by the
// backend independently of the segment durations.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// First returns the departing segment.
func (it Itinerary) First() (Segment, bool) {
	if len(it.Segments) == 0 {
		return Segment{}, false
	}
	return it.Segments[0], true
}

// Last returns the arriving segment.
func (it Itinerary) Last() (Segment, bool) {
	if len(it.Segments) == 0 {
		return Segment{}, false
	}
	return it.Segments[len(it.Segments)-1], true
}

// Segment is a single flight leg between two airports.
type Segment struct {
	ID              string     `json:"id"`
	Departure       Endpoint   `json:"departure"`
	Arrival         Endpoint   `json:"arrival"`
	CarrierCode     string     `json:"carrierCode"`
	Number          string     `json:"number"`
	Aircraft        Aircraft   `json:"aircraft"`
	Operating       *Operating `json:"operating,omitempty"`
	Duration        string     `json:"duration"`
	NumberOfStops   int        `json:"numberOfStops"`
	BlacklistedInEU bool       `json:"blacklistedInEU"`
}

// OperatingCarrier returns the operating carrier code, falling back to the
// marketing carrier when the backend omits it.
func (s Segment) OperatingCarrier() string {
	if s.Operating != nil && s.Operating.CarrierCode != "" {
		return s.Operating.CarrierCode
	}
	return s.CarrierCode
}

// FlightNumber joins the carrier code and number, e.g. "AM612".
func (s Segment) FlightNumber() string {
	return s.CarrierCode + s.Number
}

// Endpoint is the departure or arrival side of a segment.
type Endpoint struct {
	IATACode string    `json:"iataCode"`
	Terminal string    `json:"terminal,omitempty"`
	At       Timestamp `json:"at"`
}

// Aircraft identifies the equipment flying a segment.
type Aircraft struct {
	Code string `json:"code"`
}

// Operating identifies the carrier actually operating a segment.
type Operating struct {
	CarrierCode string `json:"carrierCode"`
}

// Price is expressed as decimal strings, exactly as the backend sends it.
type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	Fees       []Fee  `json:"fees,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

// Fee is a single fee line of a price.
type Fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// PricingOptions describes fare-type flags of an offer.
type PricingOptions struct {
	FareType                []string `json:"fareType"`
	IncludedCheckedBagsOnly bool     `json:"includedCheckedBagsOnly"`
}

// TravelerPricing is the price share and fare details of one traveler.
type TravelerPricing struct {
	TravelerID           string       `json:"travelerId"`
	FareOption           string       `json:"fareOption"`
	TravelerType         string       `json:"travelerType"`
	Price                Price        `json:"price"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

// FareDetailFor returns the fare detail attached to the given segment id.
func (tp TravelerPricing) FareDetailFor(segmentID string) (FareDetail, bool) {
	for _, fd := range tp.FareDetailsBySegment {
		if fd.SegmentID == segmentID {
			return fd, true
		}
	}
	return FareDetail{}, false
}

// FareDetail describes cabin, class and allowances of one traveler on one segment.
type FareDetail struct {
	SegmentID           string    `json:"segmentId"`
	Cabin               string    `json:"cabin"`
	FareBasis           string    `json:"fareBasis"`
	ClassType           string    `json:"classType"`
	IncludedCheckedBags *Baggage  `json:"includedCheckedBags,omitempty"`
	IncludedCabinBags   *Baggage  `json:"includedCabinBags,omitempty"`
	Amenities           []Amenity `json:"amenities,omitempty"`
}

// Baggage is a weight or piece allowance.
type Baggage struct {
	Weight     int    `json:"weight"`
	WeightUnit string `json:"weightUnit"`
	Quantity   int    `json:"quantity,omitempty"`
}

// Amenity is an in-flight service attached to a fare.
type Amenity struct {
	Description     string          `json:"description"`
	IsChargeable    bool            `json:"isChargeable"`
	AmenityType     string          `json:"amenityType"`
	AmenityProvider AmenityProvider `json:"amenityProvider"`
}

// AmenityProvider names who provides an amenity.
type AmenityProvider struct {
	Name string `json:"name"`
}

// Dictionaries are the side tables returned next to the offers.
type Dictionaries struct {
	Locations  map[string]DictionaryLocation `json:"locations,omitempty"`
	Aircraft   map[string]string             `json:"aircraft,omitempty"`
	Currencies map[string]string             `json:"currencies,omitempty"`
	Carriers   map[string]string             `json:"carriers,omitempty"`
}

// DictionaryLocation is a location entry of the dictionaries table.
type DictionaryLocation struct {
	CityCode       string  `json:"cityCode"`
	CountryCode    string  `json:"countryCode"`
	Name           *string `json:"name"`
	DetailedName   *string `json:"detailedName"`
	TimeZoneOffset *string `json:"timeZoneOffset"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// CarrierName returns the carrier's display name, or the code itself.
func (d *Dictionaries) CarrierName(code string) string {
	if d != nil {
		if name, ok := d.Carriers[code]; ok && name != "" {
			return name
		}
	}
	return code
}

// CarrierLabel renders "Name (CODE)" when the name is known, else the code.
func (d *Dictionaries) CarrierLabel(code string) string {
	name := d.CarrierName(code)
	if name == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// AircraftName returns the aircraft's display name, or the code itself.
func (d *Dictionaries) AircraftName(code string) string {
	if d != nil {
		if name, ok := d.Aircraft[code]; ok && name != "" {
			return name
		}
	}
	return code
}

// TimestampKind tags which wire form a Timestamp arrived in.
type TimestampKind int

const (
	TimestampUnset TimestampKind = iota
	TimestampISO
	TimestampTuple
	TimestampInvalid
)

func (k TimestampKind) String() string {
	switch k {
	case TimestampUnset:
		return "unset"
	case TimestampISO:
		return "iso"
	case TimestampTuple:
		return "tuple"
	case TimestampInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("TimestampKind(%d)", int(k))
	}
}

// GoString names the constant, so %#v and pretty dumps stay readable.
func (k TimestampKind) GoString() string {
	switch k {
	case TimestampUnset:
		return "flights.TimestampUnset"
	case TimestampISO:
		return "flights.TimestampISO"
	case TimestampTuple:
		return "flights.TimestampTuple"
	case TimestampInvalid:
		return "flights.TimestampInvalid"
	default:
		return fmt.Sprintf("flights.TimestampKind(%d)", int(k))
	}
}

// Timestamp is either an ISO-8601 string or a numeric tuple
// [year, month, day, hour, minute] (month 1-indexed). The form is decided once
// at decode time; malformed input decodes to TimestampInvalid instead of
// failing the whole response.
type Timestamp struct {
	Kind  TimestampKind
	ISO   string
	Parts [5]int
	Raw   string
}

// ISOTimestamp builds a string-form timestamp.
func ISOTimestamp(value string) Timestamp {
	return Timestamp{Kind: TimestampISO, ISO: value}
}

// TupleTimestamp builds a tuple-form timestamp.
func TupleTimestamp(year, month, day, hour, minute int) Timestamp {
	return Timestamp{Kind: TimestampTuple, Parts: [5]int{year, month, day, hour, minute}}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*t = Timestamp{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			t.Kind, t.Raw = TimestampInvalid, string(trimmed)
			return nil
		}
		t.Kind, t.ISO = TimestampISO, s
		return nil
	case '[':
		var parts []float64
		if err := json.Unmarshal(trimmed, &parts); err != nil || len(parts) < 3 {
			t.Kind, t.Raw = TimestampInvalid, string(trimmed)
			return nil
		}
		t.Kind = TimestampTuple
		for i := 0; i < len(t.Parts) && i < len(parts); i++ {
			t.Parts[i] = int(parts[i])
		}
		return nil
	default:
		t.Kind, t.Raw = TimestampInvalid, string(trimmed)
		return nil
	}
}

// MarshalJSON implements json.Marshaler, preserving the wire form.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TimestampISO:
		return json.Marshal(t.ISO)
	case TimestampTuple:
		return json.Marshal(t.Parts[:])
	case TimestampInvalid:
		if json.Valid([]byte(t.Raw)) {
			return []byte(t.Raw), nil
		}
		return json.Marshal(t.Raw)
	default:
		return []byte("null"), nil
	}
}

// String renders the timestamp roughly as received, for logs.
func (t Timestamp) String() string {
	switch t.Kind {
	case TimestampISO:
		return t.ISO
	case TimestampTuple:
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", t.Parts[0], t.Parts[1], t.Parts[2], t.Parts[3], t.Parts[4])
	case TimestampInvalid:
		return t.Raw
	default:
		return ""
	}
}

// LocationsResponse mirrors the payload returned by /api/locations.
type LocationsResponse struct {
	Meta LocationsMeta `json:"meta"`
	Data []Location    `json:"data"`
}

// LocationsMeta carries the result count of a location lookup.
type LocationsMeta struct {
	Count int `json:"count"`
}

// Location is an airport or city returned by the lookup endpoint.
type Location struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	SubType        string  `json:"subType"`
	Name           string  `json:"name"`
	DetailedName   string  `json:"detailedName"`
	TimeZoneOffset string  `json:"timeZoneOffset"`
	IATACode       string  `json:"iataCode"`
	GeoCode        GeoCode `json:"geoCode"`
	Address        Address `json:"address"`
}

// Label renders "CODE - Name" the way suggestions are listed.
func (l Location) Label() string {
	if l.Name == "" {
		return l.IATACode
	}
	return l.IATACode + " - " + l.Name
}

// GeoCode is a latitude/longitude pair.
type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is the postal context of a location.
type Address struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	RegionCode  string `json:"regionCode"`
}
