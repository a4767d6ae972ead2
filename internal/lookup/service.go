package lookup

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"

	"github.com/five82/wayfare/internal/flights"
)

const (
	// MinKeywordLength is the shortest input that triggers a lookup.
	MinKeywordLength = 2
	suggestionLimit  = 10
)

// ErrNotFound is returned by Resolve when the backend has no match.
var ErrNotFound = errors.New("location not found")

// Config tunes the lookup service.
type Config struct {
	RatePerSecond float64
	Burst         int
	CacheTTL      time.Duration
}

// DefaultConfig matches the config file defaults.
func DefaultConfig() Config {
	return Config{RatePerSecond: 5, Burst: 5, CacheTTL: 5 * time.Minute}
}

// Service resolves free text to airports and cities. Calls are rate limited
// and answers are cached for the life of the process.
type Service struct {
	searcher flights.LocationSearcher
	limiter  *rate.Limiter
	cache    *Cache[[]flights.Location]
	ttl      time.Duration
	log      zerolog.Logger
}

// NewService wraps searcher.
func NewService(searcher flights.LocationSearcher, cfg Config, log zerolog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = defaults.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	return &Service{
		searcher: searcher,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		cache:    NewCache(slices.Clone[[]flights.Location]),
		ttl:      cfg.CacheTTL,
		log:      log,
	}
}

// Suggest returns up to ten locations matching input. Input shorter than two
// characters returns nothing without calling the backend.
func (s *Service) Suggest(ctx context.Context, subType, input string) ([]flights.Location, error) {
	keyword := strings.ToUpper(strings.TrimSpace(input))
	if len([]rune(keyword)) < MinKeywordLength {
		return nil, nil
	}
	return s.query(ctx, flights.LocationQuery{SubType: subType, Keyword: keyword, PageLimit: suggestionLimit})
}

// Resolve looks up a single code and returns its first match.
func (s *Service) Resolve(ctx context.Context, subType, code string) (flights.Location, error) {
	keyword := strings.ToUpper(strings.TrimSpace(code))
	if keyword == "" {
		return flights.Location{}, ErrNotFound
	}
	found, err := s.query(ctx, flights.LocationQuery{SubType: subType, Keyword: keyword, PageLimit: 1})
	if err != nil {
		return flights.Location{}, err
	}
	if len(found) == 0 {
		return flights.Location{}, ErrNotFound
	}
	return found[0], nil
}

// Pair holds the resolved endpoints of a route; a nil side was not found.
type Pair struct {
	Origin      *flights.Location
	Destination *flights.Location
}

// ResolvePair resolves both airport codes concurrently. Unknown codes leave
// their side nil; any other failure is returned.
func (s *Service) ResolvePair(ctx context.Context, origin, destination string) (Pair, error) {
	var out Pair
	p := pool.New().WithErrors().WithContext(ctx)
	resolveInto := func(code string, dst **flights.Location) {
		p.Go(func(ctx context.Context) error {
			loc, err := s.Resolve(ctx, flights.SubTypeAirport, code)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("resolve %s: %w", code, err)
			}
			*dst = &loc
			return nil
		})
	}
	resolveInto(origin, &out.Origin)
	resolveInto(destination, &out.Destination)
	if err := p.Wait(); err != nil {
		return Pair{}, err
	}
	return out, nil
}

func (s *Service) query(ctx context.Context, q flights.LocationQuery) ([]flights.Location, error) {
	key := cacheKey(q)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for lookup slot: %w", err)
	}
	resp, err := s.searcher.SearchLocations(ctx, q)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("keyword", q.Keyword).Int("results", len(resp.Data)).Msg("location lookup")
	s.cache.Set(key, resp.Data, s.ttl)
	return slices.Clone(resp.Data), nil
}

func cacheKey(q flights.LocationQuery) string {
	subType := q.SubType
	if subType == "" {
		subType = flights.SubTypeAirport
	}
	return fmt.Sprintf("%s|%s|%d", subType, q.Keyword, q.PageLimit)
}
