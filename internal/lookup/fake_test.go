package lookup

import (
	"context"
	"strings"
	"sync"

	"github.com/five82/wayfare/internal/flights"
)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []flights.LocationQuery
	byCode  map[string][]flights.Location
	failFor string
}

func (f *fakeSearcher) SearchLocations(ctx context.Context, q flights.LocationQuery) (*flights.LocationsResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failFor != "" && q.Keyword == f.failFor {
		return nil, &flights.APIError{Path: "/api/locations", StatusCode: 500}
	}
	var out []flights.Location
	for code, locs := range f.byCode {
		if strings.HasPrefix(code, q.Keyword) {
			out = append(out, locs...)
		}
	}
	if q.PageLimit > 0 && len(out) > q.PageLimit {
		out = out[:q.PageLimit]
	}
	return &flights.LocationsResponse{Meta: flights.LocationsMeta{Count: len(out)}, Data: out}, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
