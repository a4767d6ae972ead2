package flights

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxResults caps the number of offers requested per search.
const DefaultMaxResults = 15

const dateLayout = "2006-01-02"

// Travel classes accepted by the backend.
const (
	ClassEconomy        = "ECONOMY"
	ClassPremiumEconomy = "PREMIUM_ECONOMY"
	ClassBusiness       = "BUSINESS"
	ClassFirst          = "FIRST"
)

// TravelClasses lists the accepted travel classes in display order.
var TravelClasses = []string{ClassEconomy, ClassPremiumEconomy, ClassBusiness, ClassFirst}

// Currencies lists the currency codes the backend accepts.
var Currencies = []string{"USD", "MXN", "EUR"}

var (
	iataPattern         = regexp.MustCompile(`^[A-Z]{3}$`)
	airlineListPattern  = regexp.MustCompile(`^[A-Z0-9]+(,[A-Z0-9]+)*$`)
	maxSeatedTravelers  = 9
	maxTravelersPerType = 9
)

// SearchRequest is the flight-offer query sent to /api/flights.
type SearchRequest struct {
	Origin               string
	Destination          string
	DepartureDate        string // YYYY-MM-DD
	ReturnDate           string // optional, YYYY-MM-DD
	Adults               int
	Children             int
	Infants              int
	TravelClass          string
	IncludedAirlineCodes string
	ExcludedAirlineCodes string
	NonStop              bool
	CurrencyCode         string
	MaxPrice             int // zero means no limit
	Max                  int // zero uses DefaultMaxResults
}

// FieldError describes one rejected field of a request.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the request against the backend's contract. today is the
// caller's current date; departure and return must fall after it. All
// violations are joined into one error whose parts are *FieldError.
func (r SearchRequest) Validate(today time.Time) error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !iataPattern.MatchString(r.Origin) {
		fail("origin", "must be a 3-letter uppercase IATA code")
	}
	if !iataPattern.MatchString(r.Destination) {
		fail("destination", "must be a 3-letter uppercase IATA code")
	}
	if r.Origin != "" && r.Origin == r.Destination {
		fail("destination", "must differ from origin")
	}

	day := truncateDay(today)
	departure, depErr := time.Parse(dateLayout, r.DepartureDate)
	switch {
	case strings.TrimSpace(r.DepartureDate) == "":
		fail("departureDate", "is required")
	case depErr != nil:
		fail("departureDate", "must use YYYY-MM-DD")
	case !departure.After(day):
		fail("departureDate", "must be in the future")
	}
	if strings.TrimSpace(r.ReturnDate) != "" {
		ret, err := time.Parse(dateLayout, r.ReturnDate)
		switch {
		case err != nil:
			fail("returnDate", "must use YYYY-MM-DD")
		case !ret.After(day):
			fail("returnDate", "must be in the future")
		case depErr == nil && ret.Before(departure):
			fail("returnDate", "must be on or after the departure date")
		}
	}

	if r.Adults < 1 || r.Adults > maxTravelersPerType {
		fail("adults", "must be between 1 and %d", maxTravelersPerType)
	}
	if r.Children < 0 || r.Children > maxTravelersPerType {
		fail("children", "must be between 0 and %d", maxTravelersPerType)
	}
	if r.Infants < 0 || r.Infants > maxTravelersPerType {
		fail("infants", "must be between 0 and %d", maxTravelersPerType)
	}
	if r.Adults+r.Children > maxSeatedTravelers {
		fail("travelers", "adults and children together cannot exceed %d", maxSeatedTravelers)
	}
	if r.Infants > r.Adults {
		fail("infants", "cannot exceed the number of adults")
	}

	if r.TravelClass != "" && !slices.Contains(TravelClasses, r.TravelClass) {
		fail("travelClass", "must be one of %s", strings.Join(TravelClasses, ", "))
	}
	if r.CurrencyCode != "" && !slices.Contains(Currencies, r.CurrencyCode) {
		fail("currencyCode", "must be one of %s", strings.Join(Currencies, ", "))
	}
	if r.MaxPrice < 0 {
		fail("maxPrice", "cannot be negative")
	}
	if r.Max < 0 || r.Max > 250 {
		fail("max", "must be between 1 and 250")
	}
	if r.IncludedAirlineCodes != "" && !airlineListPattern.MatchString(r.IncludedAirlineCodes) {
		fail("includedAirlineCodes", "must be comma-separated airline codes")
	}
	if r.ExcludedAirlineCodes != "" && !airlineListPattern.MatchString(r.ExcludedAirlineCodes) {
		fail("excludedAirlineCodes", "must be comma-separated airline codes")
	}

	return errors.Join(errs...)
}

// Values encodes the request as /api/flights query parameters.
func (r SearchRequest) Values() url.Values {
	values := url.Values{}
	values.Set("originLocationCode", r.Origin)
	values.Set("destinationLocationCode", r.Destination)
	values.Set("departureDate", r.DepartureDate)
	if r.ReturnDate != "" {
		values.Set("returnDate", r.ReturnDate)
	}
	values.Set("adults", strconv.Itoa(r.Adults))
	values.Set("children", strconv.Itoa(r.Children))
	values.Set("infants", strconv.Itoa(r.Infants))
	if r.TravelClass != "" {
		values.Set("travelClass", r.TravelClass)
	}
	if r.IncludedAirlineCodes != "" {
		values.Set("includedAirlineCodes", r.IncludedAirlineCodes)
	}
	if r.ExcludedAirlineCodes != "" {
		values.Set("excludedAirlineCodes", r.ExcludedAirlineCodes)
	}
	values.Set("nonStop", strconv.FormatBool(r.NonStop))
	if r.CurrencyCode != "" {
		values.Set("currencyCode", r.CurrencyCode)
	}
	if r.MaxPrice > 0 {
		values.Set("maxPrice", strconv.Itoa(r.MaxPrice))
	}
	limit := r.Max
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	values.Set("max", strconv.Itoa(limit))
	return values
}

// Location sub-types accepted by /api/locations.
const (
	SubTypeAirport = "AIRPORT"
	SubTypeCity    = "CITY"
)

// LocationQuery is the autocomplete query sent to /api/locations.
type LocationQuery struct {
	SubType     string
	Keyword     string
	CountryCode string
	PageLimit   int
	PageOffset  int
	View        string // LIGHT or FULL
}

// Values encodes the query, applying AIRPORT, LIGHT and a page limit of 10
// when unset.
func (q LocationQuery) Values() url.Values {
	values := url.Values{}
	subType := q.SubType
	if subType == "" {
		subType = SubTypeAirport
	}
	values.Set("subType", subType)
	values.Set("keyword", q.Keyword)
	if q.CountryCode != "" {
		values.Set("countryCode", q.CountryCode)
	}
	limit := q.PageLimit
	if limit <= 0 {
		limit = 10
	}
	values.Set("pageLimit", strconv.Itoa(limit))
	if q.PageOffset > 0 {
		values.Set("pageOffset", strconv.Itoa(q.PageOffset))
	}
	view := q.View
	if view == "" {
		view = "LIGHT"
	}
	values.Set("view", view)
	return values
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
