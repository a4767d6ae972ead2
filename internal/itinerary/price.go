package itinerary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/five82/wayfare/internal/flights"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders amount as an en-US currency string with two fraction
// digits and thousands grouping, e.g. "$1,234.50" or "MX$10.00". Codes whose
// symbol is the code itself render with a space, e.g. "CHF 10.00". Unknown
// codes are an error.
func FormatPrice(amount float64, code string) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("format price: amount %v is not finite", amount)
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(normalized)
	if err != nil {
		return "", fmt.Errorf("format price: unknown currency %q: %w", code, err)
	}
	symbol := printer.Sprint(currency.Symbol(unit))
	if symbol == unit.String() {
		symbol += " "
	}
	digits := printer.Sprint(number.Decimal(math.Abs(amount), number.Scale(2)))
	if amount < 0 && digits != "0.00" {
		return "-" + symbol + digits, nil
	}
	return symbol + digits, nil
}

// FormatPriceString parses an API decimal string and formats it with
// FormatPrice.
func FormatPriceString(total, code string) (string, error) {
	amount, err := parseAmount(total)
	if err != nil {
		return "", err
	}
	return FormatPrice(amount, code)
}

// PriceBreakdown is the per-offer price split shown in the details view.
// Every value is formatted to two decimals followed by the currency code.
type PriceBreakdown struct {
	Base         string
	Fees         string
	Total        string
	PerTraveler  string
	Travelers    int
	CurrencyCode string
}

// Breakdown splits a price into base, fees (total minus base), total and the
// per-traveler share. travelers below 1 is treated as 1.
func Breakdown(price flights.Price, travelers int) (PriceBreakdown, error) {
	total, err := parseAmount(price.Total)
	if err != nil {
		return PriceBreakdown{}, err
	}
	base := total
	if strings.TrimSpace(price.Base) != "" {
		if base, err = parseAmount(price.Base); err != nil {
			return PriceBreakdown{}, err
		}
	}
	if travelers < 1 {
		travelers = 1
	}
	code := strings.ToUpper(strings.TrimSpace(price.Currency))
	render := func(v float64) string {
		return strings.TrimSpace(strconv.FormatFloat(v, 'f', 2, 64) + " " + code)
	}
	return PriceBreakdown{
		Base:         render(base),
		Fees:         render(total - base),
		Total:        render(total),
		PerTraveler:  render(total / float64(travelers)),
		Travelers:    travelers,
		CurrencyCode: code,
	}, nil
}

// PerTraveler formats the total split across the offer's traveler pricings.
func PerTraveler(offer flights.Offer) (string, error) {
	total, err := parseAmount(offer.Price.Total)
	if err != nil {
		return "", err
	}
	n := len(offer.TravelerPricings)
	if n < 1 {
		n = 1
	}
	return FormatPrice(total/float64(n), offer.Price.Currency)
}

func parseAmount(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse amount %q: not finite", value)
	}
	return v, nil
}
