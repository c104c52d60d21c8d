// Package weathertest provides an in-memory weather.Provider for tests.
package weathertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// Compile-time verification that Stub implements weather.Provider and weather.Lifecycle.
var (
	_ weather.Provider  = (*Stub)(nil)
	_ weather.Lifecycle = (*Stub)(nil)
)

// Stub serves canned snapshots keyed by location.
// Locations without an entry miss with errors.ErrNotFound (current) or an
// empty slice (forecast).
type Stub struct {
	mu        sync.Mutex
	current   map[string]weather.Snapshot
	forecasts map[string][]weather.Snapshot

	// Block, when non-nil, is waited on by every fetch (or ctx.Done()).
	Block chan struct{}

	// Err, when non-nil, is returned by every fetch.
	Err error

	Opens       int
	Closes      int
	CurrentHits int
	ForecastReq []int // days argument of each FetchForecast call
}

// NewStub creates an empty stub provider.
func NewStub() *Stub {
	return &Stub{
		current:   make(map[string]weather.Snapshot),
		forecasts: make(map[string][]weather.Snapshot),
	}
}

// SetCurrent registers the current observation for location.
func (s *Stub) SetCurrent(location string, snap weather.Snapshot) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current[location] = snap

	return s
}

// SetForecast registers forecast samples for location.
func (s *Stub) SetForecast(location string, snaps []weather.Snapshot) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forecasts[location] = snaps

	return s
}

// Open implements weather.Lifecycle.
func (s *Stub) Open(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Opens++

	return nil
}

// Close implements weather.Lifecycle.
func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Closes++

	return nil
}

// FetchCurrent implements weather.Provider.
func (s *Stub) FetchCurrent(ctx context.Context, location string) (*weather.Snapshot, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.CurrentHits++

	if s.Err != nil {
		return nil, s.Err
	}

	snap, ok := s.current[location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotFound, location)
	}

	return &snap, nil
}

// FetchForecast implements weather.Provider.
func (s *Stub) FetchForecast(ctx context.Context, location string, days int) ([]weather.Snapshot, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ForecastReq = append(s.ForecastReq, days)

	if s.Err != nil {
		return nil, s.Err
	}

	snaps := s.forecasts[location]

	limit := weather.ForecastLimit(days, len(snaps))
	out := make([]weather.Snapshot, limit)
	copy(out, snaps[:limit])

	return out, nil
}

func (s *Stub) wait(ctx context.Context) error {
	if s.Block == nil {
		return nil
	}

	select {
	case <-s.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
