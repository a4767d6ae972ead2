package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/state"
)

// ErrSuperseded is returned by Searcher.Run when a newer search started
// before this one finished.
var ErrSuperseded = errors.New("search superseded by a newer one")

// Searcher runs flight searches against the store. Starting a search cancels
// the one still in flight.
type Searcher struct {
	client     flights.OfferSearcher
	store      *state.Store
	log        zerolog.Logger
	maxResults int
	now        func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSearcher binds client and store. maxResults fills SearchRequest.Max
// when the request leaves it zero.
func NewSearcher(client flights.OfferSearcher, store *state.Store, maxResults int, log zerolog.Logger) *Searcher {
	if maxResults <= 0 {
		maxResults = flights.DefaultMaxResults
	}
	return &Searcher{
		client:     client,
		store:      store,
		log:        log,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// Run validates req, records it in the store and fetches offers. Validation
// failures leave the store untouched. It blocks until the response lands.
func (s *Searcher) Run(ctx context.Context, req flights.SearchRequest) error {
	if req.Max == 0 {
		req.Max = s.maxResults
	}
	if err := req.Validate(s.now()); err != nil {
		return err
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	gen := s.store.BeginSearch(req)
	s.mu.Unlock()

	started := time.Now()
	resp, err := s.client.SearchOffers(searchCtx, req)

	if !s.store.CompleteSearch(gen, resp, err) {
		s.log.Debug().Uint64("generation", gen).Msg("discarded stale search result")
		return ErrSuperseded
	}

	route := req.Origin + "-" + req.Destination
	if err != nil {
		s.log.Error().Err(err).Str("route", route).Uint64("generation", gen).Msg("search failed")
		return err
	}
	if resp == nil || resp.Meta == nil || resp.Data == nil {
		s.log.Error().Str("route", route).Msg("search returned an invalid response")
		return state.ErrInvalidResponse
	}
	s.log.Info().
		Str("route", route).
		Int("offers", len(resp.Data)).
		Dur("elapsed", time.Since(started)).
		Uint64("generation", gen).
		Msg("search complete")
	return nil
}

// Cancel aborts the in-flight search, if any.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
