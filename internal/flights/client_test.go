package flights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIURL)
	}

	u, err = parseBaseURL("https://api.example.com:8443/v1?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "https://api.example.com:8443" {
		t.Fatalf("url = %q, want https://api.example.com:8443", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

const offersPayload = `{
  "meta": {"count": 1, "links": {"self": "http://test/api/flights"}},
  "data": [{
    "id": "1",
    "oneWay": false,
    "numberOfBookableSeats": 3,
    "itineraries": [{
      "duration": "PT2H30M",
      "segments": [{
        "id": "10",
        "departure": {"iataCode": "MEX", "terminal": "1", "at": [2024, 3, 5, 14, 30]},
        "arrival": {"iataCode": "CUN", "at": "2024-03-05T17:00:00"},
        "carrierCode": "AM",
        "number": "612",
        "aircraft": {"code": "738"},
        "operating": {"carrierCode": "AM"},
        "duration": "PT2H30M",
        "numberOfStops": 0
      }]
    }],
    "price": {"currency": "USD", "total": "250.00", "base": "200.00", "grandTotal": "250.00"},
    "validatingAirlineCodes": ["AM"],
    "travelerPricings": [{"travelerId": "1", "travelerType": "ADULT", "price": {"currency": "USD", "total": "250.00"}}]
  }],
  "dictionaries": {"carriers": {"AM": "AEROMEXICO"}, "aircraft": {"738": "BOEING 737-800"}}
}`

func TestClient_SearchOffersEncodesQueryAndDecodes(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/flights" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(offersPayload))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.SearchOffers(ctx, SearchRequest{
		Origin:        "MEX",
		Destination:   "CUN",
		DepartureDate: "2030-03-05",
		ReturnDate:    "2030-03-09",
		Adults:        2,
		Infants:       1,
		TravelClass:   ClassBusiness,
		CurrencyCode:  "USD",
		MaxPrice:      900,
		NonStop:       true,
	})
	if err != nil {
		t.Fatalf("SearchOffers returned error: %v", err)
	}

	want := map[string]string{
		"originLocationCode":      "MEX",
		"destinationLocationCode": "CUN",
		"departureDate":           "2030-03-05",
		"returnDate":              "2030-03-09",
		"adults":                  "2",
		"children":                "0",
		"infants":                 "1",
		"travelClass":             "BUSINESS",
		"currencyCode":            "USD",
		"maxPrice":                "900",
		"nonStop":                 "true",
		"max":                     "15",
	}
	for key, value := range want {
		if got := gotQuery.Get(key); got != value {
			t.Fatalf("query %s = %q, want %q (query %v)", key, got, value, gotQuery)
		}
	}
	if gotQuery.Has("includedAirlineCodes") {
		t.Fatalf("query has includedAirlineCodes, want omitted")
	}

	if got := gotHeaders.Get("Accept"); got != "application/json" {
		t.Fatalf("Accept = %q, want application/json", got)
	}
	if ua := gotHeaders.Get("User-Agent"); !strings.HasPrefix(ua, "wayfare/") {
		t.Fatalf("User-Agent = %q, want wayfare/*", ua)
	}
	if _, err := uuid.Parse(gotHeaders.Get("X-Request-Id")); err != nil {
		t.Fatalf("X-Request-Id = %q, want uuid: %v", gotHeaders.Get("X-Request-Id"), err)
	}

	if resp.Meta.Count != 1 || len(resp.Data) != 1 {
		t.Fatalf("response = %#v, want one offer", resp)
	}
	seg := resp.Data[0].Itineraries[0].Segments[0]
	if seg.Departure.At.Kind != TimestampTuple || seg.Departure.At.Parts != [5]int{2024, 3, 5, 14, 30} {
		t.Fatalf("departure at = %#v, want tuple", seg.Departure.At)
	}
	if seg.Arrival.At.Kind != TimestampISO || seg.Arrival.At.ISO != "2024-03-05T17:00:00" {
		t.Fatalf("arrival at = %#v, want ISO string", seg.Arrival.At)
	}
	if got := resp.Dictionaries.CarrierLabel("AM"); got != "AEROMEXICO (AM)" {
		t.Fatalf("CarrierLabel = %q", got)
	}
}

func TestClient_SearchOffersRejectsMissingMetaOrData(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"no meta": `{"data": []}`,
		"no data": `{"meta": {"count": 0}}`,
		"empty":   `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.SearchOffers(context.Background(), SearchRequest{Origin: "MEX"})
			if !errors.Is(err, ErrInvalidResponse) {
				t.Fatalf("SearchOffers error = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestClient_SearchLocationsDefaults(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/locations" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"meta": {"count": 1}, "data": [{"iataCode": "CUN", "name": "CANCUN INTL", "subType": "AIRPORT"}]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := c.SearchLocations(context.Background(), LocationQuery{Keyword: "CAN"})
	if err != nil {
		t.Fatalf("SearchLocations returned error: %v", err)
	}
	if gotQuery.Get("subType") != "AIRPORT" || gotQuery.Get("view") != "LIGHT" || gotQuery.Get("pageLimit") != "10" || gotQuery.Get("keyword") != "CAN" {
		t.Fatalf("query = %v, want AIRPORT/LIGHT/10/CAN", gotQuery)
	}
	if len(resp.Data) != 1 || resp.Data[0].Label() != "CUN - CANCUN INTL" {
		t.Fatalf("data = %#v", resp.Data)
	}

	if _, err := c.SearchLocations(context.Background(), LocationQuery{Keyword: "  "}); err == nil {
		t.Fatalf("SearchLocations with blank keyword returned nil error")
	}
}

func TestClient_APIErrorCarriesBackendMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/flights":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status": 400, "error": "Bad Request", "message": "The number of infants cannot exceed the number of adults", "code": "VALIDATION"}`))
		case "/api/locations":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.SearchOffers(context.Background(), SearchRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("SearchOffers error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "VALIDATION" {
		t.Fatalf("APIError = %#v", apiErr)
	}
	if !strings.Contains(apiErr.Error(), "infants cannot exceed") {
		t.Fatalf("Error() = %q, want backend message", apiErr.Error())
	}
	if apiErr.RequestID == "" {
		t.Fatalf("RequestID empty")
	}

	_, err = c.SearchLocations(context.Background(), LocationQuery{Keyword: "MEX"})
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("SearchLocations error = %v, want status 500 error", err)
	}
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithUserAgent("custom/1"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.SearchOffers(context.Background(), SearchRequest{})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("SearchOffers error = %v, want decode response error", err)
	}
}
