package state

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jinzhu/copier"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/itinerary"
)

// DefaultPerPage is the number of offers shown per results page.
const DefaultPerPage = 15

// ErrInvalidResponse is recorded when a search returns without a result set.
var ErrInvalidResponse = errors.New("the response structure is invalid")

// Results is the payload of the latest completed search.
type Results struct {
	Offers       []flights.Offer
	Dictionaries *flights.Dictionaries
	Count        int
}

// Snapshot is a point-in-time copy of the search state.
type Snapshot struct {
	Params      flights.SearchRequest
	HasSearched bool
	Loading     bool
	Results     Results
	LastError   error
	LastUpdated time.Time
	SelectedID  string
	Page        int
	PerPage     int
	Sort        itinerary.SortConfig
	Generation  uint64
}

// Sorted returns every offer in the active sort order.
func (s Snapshot) Sorted() []flights.Offer {
	return itinerary.SortOffers(s.Results.Offers, s.Sort)
}

// TotalPages is never below one, so an empty result set still has page 0.
func (s Snapshot) TotalPages() int {
	return totalPages(len(s.Results.Offers), s.perPage())
}

// PageOffers returns the sorted offers of the current page.
func (s Snapshot) PageOffers() []flights.Offer {
	sorted := s.Sorted()
	per := s.perPage()
	start := s.Page * per
	if start >= len(sorted) {
		return nil
	}
	end := min(start+per, len(sorted))
	return sorted[start:end]
}

// Selected returns the offer open in the details view.
func (s Snapshot) Selected() (flights.Offer, bool) {
	if s.SelectedID == "" {
		return flights.Offer{}, false
	}
	for _, o := range s.Results.Offers {
		if o.ID == s.SelectedID {
			return o, true
		}
	}
	return flights.Offer{}, false
}

func (s Snapshot) perPage() int {
	if s.PerPage <= 0 {
		return DefaultPerPage
	}
	return s.PerPage
}

func totalPages(n, per int) int {
	if n <= 0 {
		return 1
	}
	return (n + per - 1) / per
}

// Store owns the search state. Every mutation goes through one of its
// methods; readers take Snapshot copies.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a Store with the given page size; non-positive uses
// DefaultPerPage.
func NewStore(perPage int) *Store {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Store{snapshot: Snapshot{PerPage: perPage}}
}

// BeginSearch records params as the active query and returns its
// generation. Selection and the last error are cleared; the previous results
// stay visible until the new ones land.
func (s *Store) BeginSearch(params flights.SearchRequest) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Generation++
	s.snapshot.Params = params
	s.snapshot.HasSearched = true
	s.snapshot.Loading = true
	s.snapshot.LastError = nil
	s.snapshot.SelectedID = ""
	s.snapshot.Page = 0
	return s.snapshot.Generation
}

// CompleteSearch applies the outcome of the search started as gen. It
// returns false, changing nothing, when a newer search has begun since.
func (s *Store) CompleteSearch(gen uint64, resp *flights.OffersResponse, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Page = 0
	s.snapshot.SelectedID = ""

	if err == nil && (resp == nil || resp.Meta == nil || resp.Data == nil) {
		err = ErrInvalidResponse
	}
	if err != nil {
		s.snapshot.Results = Results{}
		s.snapshot.LastError = err
		return true
	}
	s.snapshot.Results = Results{
		Offers:       resp.Data,
		Dictionaries: resp.Dictionaries,
		Count:        resp.Meta.Count,
	}
	s.snapshot.LastError = nil
	return true
}

// SelectOffer opens the details view for id. Unknown ids are ignored.
func (s *Store) SelectOffer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.snapshot.Results.Offers {
		if o.ID == id {
			s.snapshot.SelectedID = id
			return true
		}
	}
	return false
}

// ClearSelection closes the details view.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SelectedID = ""
}

// SetPage moves to page p; values outside [0, TotalPages) are ignored.
func (s *Store) SetPage(p int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p < 0 || p >= s.snapshot.TotalPages() {
		return false
	}
	s.snapshot.Page = p
	return true
}

// ToggleSort applies a sort key pick and returns to the first page.
func (s *Store) ToggleSort(key itinerary.SortKey) itinerary.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Sort = s.snapshot.Sort.Toggle(key)
	s.snapshot.Page = 0
	return s.snapshot.Sort
}

// SetSort replaces the sort config outright.
func (s *Store) SetSort(cfg itinerary.SortConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Sort = cfg
	s.snapshot.Page = 0
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Results = Results{}
	if err := copier.CopyWithOption(&snap.Results, &s.snapshot.Results, copier.Option{DeepCopy: true}); err != nil {
		snap.Results = Results{
			Offers:       slices.Clone(s.snapshot.Results.Offers),
			Dictionaries: s.snapshot.Results.Dictionaries,
			Count:        s.snapshot.Results.Count,
		}
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
