package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/five82/wayfare/internal/config"
	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/itinerary"
	"github.com/five82/wayfare/internal/logging"
	"github.com/five82/wayfare/internal/logtail"
	"github.com/five82/wayfare/internal/lookup"
	"github.com/five82/wayfare/internal/state"
)

// PrintOptions control how RunSearch writes results.
type PrintOptions struct {
	Sort itinerary.SortConfig
	Dump bool // print the decoded results instead of the table
}

const unavailable = "n/a"

// RunSearch performs one search and prints every offer as a table on w.
func RunSearch(ctx context.Context, opts Options, req flights.SearchRequest, w io.Writer, out PrintOptions) error {
	rt, err := boot(opts, logging.ModeConsole)
	if err != nil {
		return err
	}
	defer func() { _ = rt.closer.Close() }()

	if req.CurrencyCode == "" {
		req.CurrencyCode = rt.prefs.Currency
	}
	if req.TravelClass == "" {
		req.TravelClass = rt.prefs.TravelClass
	}

	if err := req.Validate(time.Now()); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	store := state.NewStore(rt.cfg.PageSize)
	store.SetSort(out.Sort)
	searcher := NewSearcher(rt.client, store, rt.cfg.MaxResults, rt.log)

	var (
		wg      conc.WaitGroup
		pair    lookup.Pair
		pairErr error
	)
	wg.Go(func() {
		pair, pairErr = rt.lookup.ResolvePair(ctx, req.Origin, req.Destination)
	})
	searchErr := searcher.Run(ctx, req)
	wg.Wait()

	if searchErr != nil {
		return fmt.Errorf("search: %w", searchErr)
	}
	if pairErr != nil {
		rt.log.Warn().Err(pairErr).Msg("airport names unavailable")
	}

	snap := store.Snapshot()
	if out.Dump {
		_, err := pretty.Fprintf(w, "%# v\n", snap.Results)
		return err
	}
	return writeOffers(w, rt.cfg, snap, pair, rt.log)
}

func writeOffers(w io.Writer, cfg config.Config, snap state.Snapshot, pair lookup.Pair, log zerolog.Logger) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	muted := r.NewStyle().Faint(true)

	params := snap.Params
	heading := routeHeading(params.Origin, pair.Origin) + " → " + routeHeading(params.Destination, pair.Destination)
	dates := params.DepartureDate
	if params.ReturnDate != "" {
		dates += " to " + params.ReturnDate
	}
	fmt.Fprintln(w, title.Render(heading))
	fmt.Fprintln(w, muted.Render(dates+" · "+travelersLabel(params)+" · times in "+cfg.DisplayTimeZone))

	offers := snap.Sorted()
	if len(offers) == 0 {
		fmt.Fprintln(w, "No flights found.")
		return nil
	}

	var (
		rows       [][]string
		returnRows = map[int]bool{}
	)
	for i, offer := range offers {
		total, per := priceCells(offer, log)
		seats := strconv.Itoa(offer.NumberOfBookableSeats)
		for j, it := range offer.Itineraries {
			leg := itinerary.DescribeLeg(it, cfg.Location)
			row := []string{"", leg.Departure.Date, leg.Schedule(), leg.Route(), leg.FlightTime, leg.StopsLabel, leg.TotalTime, "", "", ""}
			if j == 0 {
				row[0], row[7], row[8], row[9] = strconv.Itoa(i+1), seats, total, per
			} else {
				returnRows[len(rows)] = true
			}
			rows = append(rows, row)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(muted).
		Headers("#", "Date", "Depart → Arrive", "Route", "Flight", "Stops", "Total time", "Seats", "Price", "Per traveler").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := r.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return cell.Bold(true)
			case returnRows[row]:
				return cell.Faint(true)
			}
			return cell
		})
	fmt.Fprintln(w, t.String())

	stats := itinerary.Overview(offers)
	footer := plural(stats.Count, "offer", "offers") + " · sort " + snap.Sort.String()
	if stats.CheapestOffer != "" {
		if cheapest, err := itinerary.FormatPriceString(stats.CheapestTotal, stats.CheapestCurrency); err == nil {
			footer += " · cheapest " + cheapest
		}
	}
	footer += " · shortest " + itinerary.FormatCompactMinutes(stats.ShortestMinutes)
	fmt.Fprintln(w, muted.Render(footer))
	return nil
}

func priceCells(offer flights.Offer, log zerolog.Logger) (string, string) {
	total, err := itinerary.FormatPriceString(offer.Price.Total, offer.Price.Currency)
	if err != nil {
		log.Warn().Err(err).Str("offer", offer.ID).Msg("cannot format price")
		return unavailable, unavailable
	}
	per, err := itinerary.PerTraveler(offer)
	if err != nil {
		return total, unavailable
	}
	return total, per
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func routeHeading(code string, loc *flights.Location) string {
	if loc == nil || loc.Name == "" {
		return code
	}
	return code + " (" + loc.Name + ")"
}

func travelersLabel(req flights.SearchRequest) string {
	var parts []string
	add := func(n int, one, many string) {
		if n > 0 {
			parts = append(parts, plural(n, one, many))
		}
	}
	add(req.Adults, "adult", "adults")
	add(req.Children, "child", "children")
	add(req.Infants, "infant", "infants")
	label := strings.Join(parts, ", ")
	if req.TravelClass != "" {
		label += " · " + strings.ReplaceAll(strings.ToLower(req.TravelClass), "_", " ")
	}
	return label
}

// RunLocations prints airport or city suggestions for keyword.
func RunLocations(ctx context.Context, opts Options, keyword, subType string, w io.Writer) error {
	if len(strings.TrimSpace(keyword)) < lookup.MinKeywordLength {
		return fmt.Errorf("keyword needs at least %d characters", lookup.MinKeywordLength)
	}
	rt, err := boot(opts, logging.ModeConsole)
	if err != nil {
		return err
	}
	defer func() { _ = rt.closer.Close() }()

	matches, err := rt.lookup.Suggest(ctx, strings.ToUpper(subType), keyword)
	if err != nil {
		return fmt.Errorf("lookup %q: %w", keyword, err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No locations found.")
		return nil
	}

	r := lipgloss.NewRenderer(w)
	rows := make([][]string, 0, len(matches))
	for _, loc := range matches {
		rows = append(rows, []string{loc.IATACode, loc.Name, loc.Address.CityName, loc.Address.CountryName, loc.SubType})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Code", "Name", "City", "Country", "Type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.NewStyle().Bold(true).Padding(0, 1)
			}
			return r.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.String())
	return nil
}

// RunLogs prints the last lines of the TUI log file, keeping events at or
// above level. An empty level keeps everything.
func RunLogs(opts Options, lines int, level string, color bool, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	threshold := zerolog.TraceLevel
	if strings.TrimSpace(level) != "" {
		if threshold, err = zerolog.ParseLevel(strings.ToLower(level)); err != nil {
			return fmt.Errorf("parse level: %w", err)
		}
	}
	entries, err := logtail.Read(cfg.LogFile, lines)
	if err != nil {
		return err
	}
	entries = logtail.Filter(entries, threshold)
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No log entries in %s\n", cfg.LogFile)
		return err
	}
	return logtail.Render(w, entries, color)
}
