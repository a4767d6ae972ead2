package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/five82/wayfare/internal/app"
	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/itinerary"
	"github.com/five82/wayfare/internal/logtail"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "wayfare: %v\n", err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wayfare",
		Usage: "search flight offers from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file path (default ~/.config/wayfare/config.toml)"},
			&cli.StringFlag{Name: "prefs", Usage: "preferences file path (default ~/.config/wayfare/prefs.toml)"},
			&cli.StringFlag{Name: "api-url", Usage: "backend base URL", EnvVars: []string{"WAYFARE_API_URL"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: func(c *cli.Context) error {
			return app.Run(c.Context, options(c))
		},
		Commands: []*cli.Command{
			searchCommand(),
			locationsCommand(),
			logsCommand(),
		},
	}
}

func options(c *cli.Context) app.Options {
	return app.Options{
		ConfigPath: c.String("config"),
		PrefsPath:  c.String("prefs"),
		APIURL:     c.String("api-url"),
		LogLevel:   c.String("log-level"),
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "run one search and print the offers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "origin IATA code", Required: true},
			&cli.StringFlag{Name: "to", Usage: "destination IATA code", Required: true},
			&cli.StringFlag{Name: "depart", Usage: "departure date YYYY-MM-DD", Required: true},
			&cli.StringFlag{Name: "return", Usage: "return date YYYY-MM-DD"},
			&cli.IntFlag{Name: "adults", Value: 1},
			&cli.IntFlag{Name: "children"},
			&cli.IntFlag{Name: "infants"},
			&cli.StringFlag{Name: "class", Usage: "ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST"},
			&cli.StringFlag{Name: "currency", Usage: "USD, MXN or EUR"},
			&cli.BoolFlag{Name: "non-stop"},
			&cli.IntFlag{Name: "max-price", Usage: "highest total price; 0 means no limit"},
			&cli.IntFlag{Name: "max", Usage: "number of offers to request; 0 uses max_results from the config"},
			&cli.StringFlag{Name: "sort", Usage: "price or duration"},
			&cli.BoolFlag{Name: "desc", Usage: "sort descending"},
			&cli.BoolFlag{Name: "dump", Usage: "print the decoded results instead of a table"},
		},
		Action: func(c *cli.Context) error {
			req := flights.SearchRequest{
				Origin:        c.String("from"),
				Destination:   c.String("to"),
				DepartureDate: c.String("depart"),
				ReturnDate:    c.String("return"),
				Adults:        c.Int("adults"),
				Children:      c.Int("children"),
				Infants:       c.Int("infants"),
				TravelClass:   c.String("class"),
				CurrencyCode:  c.String("currency"),
				NonStop:       c.Bool("non-stop"),
				MaxPrice:      c.Int("max-price"),
				Max:           c.Int("max"),
			}
			out := app.PrintOptions{Dump: c.Bool("dump")}
			if raw := c.String("sort"); raw != "" {
				key, ok := itinerary.ParseSortKey(raw)
				if !ok {
					return fmt.Errorf("unknown sort %q: use price or duration", raw)
				}
				out.Sort = itinerary.SortConfig{Key: key, Direction: itinerary.Ascending}
				if c.Bool("desc") {
					out.Sort.Direction = itinerary.Descending
				}
			}
			return app.RunSearch(c.Context, options(c), req, c.App.Writer, out)
		},
	}
}

func locationsCommand() *cli.Command {
	return &cli.Command{
		Name:      "locations",
		Usage:     "look up airports and cities by keyword",
		ArgsUsage: "<keyword>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "AIRPORT or CITY", Value: flights.SubTypeAirport},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("locations takes exactly one keyword")
			}
			return app.RunLocations(c.Context, options(c), c.Args().First(), c.String("type"), c.App.Writer)
		},
	}
}

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "print the tail of the wayfare log",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "lines", Aliases: []string{"n"}, Value: logtail.DefaultLines},
			&cli.StringFlag{Name: "level", Usage: "hide entries below this level"},
			&cli.BoolFlag{Name: "color", Usage: "colorize levels"},
		},
		Action: func(c *cli.Context) error {
			return app.RunLogs(options(c), c.Int("lines"), c.String("level"), c.Bool("color"), c.App.Writer)
		},
	}
}
