// Package itinerary derives the timing and pricing figures shown for flight
// offers.
//
// # Overview
//
// Everything here is a pure function over the wire types of package flights.
// Nothing blocks, allocates shared state or logs, so the UI can call these
// helpers from View without caching.
//
// # Durations
//
// Durations arrive as ISO-8601 tokens such as "PT2H30M". ParseDuration counts
// only the hour and minute groups:
//
//	ParseDuration("PT2H30M")  // 150
//	ParseDuration("PT5H")     // 300
//	ParseDuration("P1DT2H")   // 120, the day group is ignored
//	ParseDuration("")         // 0
//
// Two renderings exist and are not interchangeable. FormatTotalMinutes always
// prints both components ("0h 45m") and is used wherever a total journey time
// is shown. FormatCompactMinutes drops zero components and carries whole days
// ("1d 2h 5m") for list summaries.
//
// # Timestamps
//
// Normalize turns either timestamp form into a display time ("14:30") and date
// ("03/05/2024"). Tuples and offset-free ISO strings are wall-clock values and
// are shown as written. ISO strings carrying an offset are instants and are
// converted into the display zone first. Unparseable input yields
// Valid=false with "--:--" and "--/--/----".
//
// # Layovers and summaries
//
// Layover measures the gap between an arrival and the next departure. A zero or
// negative gap, or an invalid endpoint, reports "no layover" and contributes 0
// to totals. Summarize folds an itinerary into segment minutes, layovers, the
// stop count and the total journey time (reported duration plus layovers).
//
// # Sorting and prices
//
// SortOffers orders a copy of the offers by price or total reported duration,
// ascending or descending, keeping ties in input order. FormatPrice renders
// en-US currency strings through golang.org/x/text and is the only helper that
// returns an error: an unknown currency code is reported, never guessed.
package itinerary
