package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"time"

	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App runs the weather command.
type App struct {
	// Provider answers weather queries. Required.
	Provider weather.Provider

	// Timeout bounds the provider call. Zero means no extra bound.
	Timeout time.Duration

	Stdout io.Writer
	Stderr io.Writer

	// Decorate enables emoji headings.
	Decorate bool

	// Logger receives diagnostic output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// Run parses args, performs one lookup and prints the report.
func (a *App) Run(ctx context.Context, args []string) int {
	log := a.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log = log.With("component", "cli")

	parsed, err := ParseArgs(args, a.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}

		NewPrinter(a.Stderr, a.Decorate).Failure("Error: " + err.Error())

		return ExitUsage
	}

	out := NewPrinter(a.Stdout, a.Decorate)

	if lc, ok := a.Provider.(weather.Lifecycle); ok {
		if err := lc.Open(ctx); err != nil {
			out.Failure("Error: " + err.Error())

			return ExitFailure
		}

		defer func() {
			if err := lc.Close(); err != nil {
				log.Warn("Failed to close provider", "error", err)
			}
		}()
	}

	if a.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	out.Progress(parsed)

	if parsed.Forecast {
		snaps, err := a.Provider.FetchForecast(ctx, parsed.Location, parsed.Days)
		if err != nil || len(snaps) == 0 {
			log.Warn("Forecast unavailable", "location", parsed.Location, "error", err)
			out.Failure("Failed to fetch forecast")

			return ExitFailure
		}

		out.Forecast(parsed.Location, parsed.Days, snaps)

		return ExitOK
	}

	snap, err := a.Provider.FetchCurrent(ctx, parsed.Location)
	if err != nil {
		log.Warn("Weather data unavailable", "location", parsed.Location, "error", err)
		out.Failure("Failed to fetch weather data")

		return ExitFailure
	}

	out.Weather(snap)

	return ExitOK
}
