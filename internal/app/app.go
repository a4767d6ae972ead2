package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/five82/wayfare/internal/config"
	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/logging"
	"github.com/five82/wayfare/internal/lookup"
	"github.com/five82/wayfare/internal/prefs"
	"github.com/five82/wayfare/internal/state"
	"github.com/five82/wayfare/internal/ui"
)

// Options configure the wayfare application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/wayfare/prefs.toml
	APIURL     string // overrides api_url when set
	LogLevel   string // overrides log_level when set

	// Stderr receives console logs for the non-interactive commands; nil
	// means os.Stderr.
	Stderr io.Writer
}

type runtime struct {
	cfg    config.Config
	prefs  prefs.Prefs
	log    zerolog.Logger
	closer io.Closer
	client *flights.Client
	lookup *lookup.Service
}

func boot(opts Options, mode logging.Mode) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	log, closer, err := logging.New(logging.Options{
		Mode:    mode,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: opts.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := flights.NewClient(cfg.APIURL, flights.WithLogger(log))
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init flights client: %w", err)
	}

	svc := lookup.NewService(client, lookup.Config{
		RatePerSecond: cfg.LookupRate,
		Burst:         cfg.LookupBurst,
		CacheTTL:      cfg.LookupCacheTTL,
	}, log)

	return &runtime{cfg: cfg, prefs: userPrefs, log: log, closer: closer, client: client, lookup: svc}, nil
}

// Run boots the wayfare TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := boot(opts, logging.ModeFile)
	if err != nil {
		return err
	}
	defer func() { _ = rt.closer.Close() }()

	store := state.NewStore(rt.cfg.PageSize)
	searcher := NewSearcher(rt.client, store, rt.cfg.MaxResults, rt.log)
	defer searcher.Cancel()

	rt.log.Info().Str("api_url", rt.client.BaseURL()).Msg("starting tui")

	uiOpts := ui.Options{
		Context:   ctx,
		Searcher:  searcher,
		Lookup:    rt.lookup,
		Store:     store,
		Config:    &rt.cfg,
		Prefs:     rt.prefs,
		PrefsPath: opts.PrefsPath,
		Log:       rt.log,
	}
	return ui.Run(uiOpts)
}
