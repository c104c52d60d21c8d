package weather

import (
	"context"
	"time"
)

// SamplesPerDay is the number of forecast entries the upstream API returns
// for one day (one sample every three hours).
const SamplesPerDay = 8

// Snapshot is one point-in-time weather observation.
type Snapshot struct {
	Location    string
	Temperature float64 // °C
	FeelsLike   float64 // °C
	Humidity    int     // percent
	Description string
	WindSpeed   float64 // m/s
	Pressure    int     // hPa
	Visibility  int     // metres
	Timestamp   time.Time
}

// Provider fetches weather data for a location.
//
// FetchCurrent returns an error wrapping errors.ErrNotFound (or a transport
// error) when no observation is available. FetchForecast returns at most
// days*SamplesPerDay snapshots; an empty slice with a nil error means the
// upstream answered without entries.
type Provider interface {
	FetchCurrent(ctx context.Context, location string) (*Snapshot, error)
	FetchForecast(ctx context.Context, location string, days int) ([]Snapshot, error)
}

// Lifecycle is implemented by providers that hold process-wide resources
// such as a network connection pool.
//
// Open is called once before the first request; Close releases the
// resources and must be safe to call more than once.
type Lifecycle interface {
	Open(ctx context.Context) error
	Close() error
}

// ForecastLimit returns how many of available samples cover days days.
// It never overflows: any days beyond what available can cover yields
// available.
func ForecastLimit(days, available int) int {
	if days <= 0 || available <= 0 {
		return 0
	}

	if days > available/SamplesPerDay {
		return available
	}

	return days * SamplesPerDay
}
