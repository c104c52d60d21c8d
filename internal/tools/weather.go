package tools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// Tool names.
const (
	CurrentWeatherTool = "get_current_weather"
	ForecastTool       = "get_weather_forecast"
)

const (
	// DefaultForecastDays is used when get_weather_forecast omits days.
	DefaultForecastDays = 5

	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 10 * time.Second
)

// Config configures the weather tools.
type Config struct {
	// Provider answers weather queries. Required.
	Provider weather.Provider

	// Timeout bounds each provider call. Zero means DefaultTimeout.
	Timeout time.Duration

	// Logger receives tool tracking output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// weatherTools binds the tool handlers to a provider.
type weatherTools struct {
	log      *slog.Logger
	provider weather.Provider
	timeout  time.Duration
}

// Register adds get_current_weather and get_weather_forecast to reg.
func Register(reg *registry.Registry, cfg Config) error {
	if cfg.Provider == nil {
		return fmt.Errorf("weather tools: provider required")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	w := &weatherTools{
		log:      log.With("component", "tools"),
		provider: cfg.Provider,
		timeout:  timeout,
	}

	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)}

	if err := reg.Register(registry.Descriptor{
		Name:        CurrentWeatherTool,
		Description: "Get current weather data for a location",
		InputSchema: registry.ObjectSchema(
			registry.Property{
				Name:        "location",
				Type:        "string",
				Description: "City name or coordinates",
				Required:    true,
			},
		),
		Annotations: readOnly,
	}, w.current); err != nil {
		return err
	}

	return reg.Register(registry.Descriptor{
		Name:        ForecastTool,
		Description: "Get weather forecast for a location",
		InputSchema: registry.ObjectSchema(
			registry.Property{
				Name:        "location",
				Type:        "string",
				Description: "City name or coordinates",
				Required:    true,
			},
			registry.Property{
				Name:        "days",
				Type:        "integer",
				Description: "Number of days (default: 5)",
				Default:     DefaultForecastDays,
				Minimum:     registry.Float(1),
			},
		),
		Annotations: readOnly,
	}, w.forecast)
}

// current implements get_current_weather.
func (w *weatherTools) current(ctx context.Context, args registry.Arguments) (any, error) {
	location, err := requireLocation(args)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	snap, err := w.provider.FetchCurrent(ctx, location)
	if err != nil {
		miss := &errors.DataUnavailableError{
			Location: location,
			Message:  "Failed to fetch weather data for " + location,
			Err:      timeoutCause(ctx, err),
		}
		w.log.Warn("Weather data unavailable", "location", location, "error", miss)

		return DataError{Error: miss.Message}, nil
	}

	w.log.Debug("Current weather served", "location", location)

	return NewCurrentWeather(snap), nil
}

// forecast implements get_weather_forecast.
func (w *weatherTools) forecast(ctx context.Context, args registry.Arguments) (any, error) {
	location, err := requireLocation(args)
	if err != nil {
		return nil, err
	}

	days := DefaultForecastDays
	if _, present := args["days"]; present {
		n, ok := args.Int("days")
		if !ok {
			return nil, &errors.InvalidArgumentsError{Field: "days", Reason: "days must be a whole number no larger than 2147483647"}
		}

		days = n
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	snaps, err := w.provider.FetchForecast(ctx, location, days)
	if err != nil || len(snaps) == 0 {
		miss := &errors.DataUnavailableError{
			Location: location,
			Message:  "Failed to fetch forecast for " + location,
			Err:      timeoutCause(ctx, err),
		}
		w.log.Warn("Forecast unavailable", "location", location, "days", days, "error", miss)

		return DataError{Error: miss.Message}, nil
	}

	w.log.Debug("Forecast served", "location", location, "entries", len(snaps))

	return NewForecast(location, snaps), nil
}

func requireLocation(args registry.Arguments) (string, error) {
	location := args.String("location")
	if strings.TrimSpace(location) == "" {
		return "", &errors.InvalidArgumentsError{Field: "location", Reason: "Location is required"}
	}

	return location, nil
}

// timeoutCause tags err with ErrProviderTimeout when the call's deadline fired.
func timeoutCause(ctx context.Context, err error) error {
	if ctx.Err() != context.DeadlineExceeded {
		return err
	}

	if err == nil {
		return errors.ErrProviderTimeout
	}

	return fmt.Errorf("%w: %w", errors.ErrProviderTimeout, err)
}

func boolPtr(b bool) *bool {
	return &b
}
