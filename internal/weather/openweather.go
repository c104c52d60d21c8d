package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
)

const (
	// DefaultBaseURL is the OpenWeatherMap data API root.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// APIKeyEnv is the environment variable holding the OpenWeatherMap key.
	APIKeyEnv = "OPENWEATHER_API_KEY"

	// maxResponseSize bounds how much of an upstream body is read.
	maxResponseSize = 4 * 1024 * 1024 // 4MB
)

// Compile-time verification that OpenWeather implements Provider and Lifecycle.
var (
	_ Provider  = (*OpenWeather)(nil)
	_ Lifecycle = (*OpenWeather)(nil)
)

// OpenWeatherConfig configures an OpenWeather provider.
type OpenWeatherConfig struct {
	// APIKey is the OpenWeatherMap application key.
	// If empty, every call fails with a ConfigurationError.
	APIKey string

	// BaseURL overrides DefaultBaseURL (useful for tests and proxies).
	BaseURL string

	// HTTPClient is used instead of a provider-owned client.
	// A caller-supplied client is never closed by the provider.
	HTTPClient *http.Client

	// Logger receives request tracking output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// OpenWeather implements Provider over the OpenWeatherMap REST API.
type OpenWeather struct {
	log     *slog.Logger
	apiKey  string
	baseURL string

	mu         sync.Mutex
	client     *http.Client
	ownsClient bool
	closed     bool
}

// NewOpenWeather creates a provider. No network resources are acquired until
// Open or the first request.
func NewOpenWeather(cfg OpenWeatherConfig) *OpenWeather {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &OpenWeather{
		log:     log.With("component", "openweather"),
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  cfg.HTTPClient,
	}
}

// Configured reports whether an API key is present.
func (o *OpenWeather) Configured() bool {
	return o.apiKey != ""
}

// Open acquires the provider's HTTP connection pool.
// Calling Open on an already open provider is a no-op.
func (o *OpenWeather) Open(_ context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return errors.ErrSessionClosed
	}

	if o.client != nil {
		return nil
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		o.client = &http.Client{}
	} else {
		o.client = &http.Client{Transport: transport.Clone()}
	}

	o.ownsClient = true

	if !o.Configured() {
		o.log.Error("OpenWeather API key not found", "env", APIKeyEnv)
	}

	o.log.Info("OpenWeather provider opened", "base_url", o.baseURL)

	return nil
}

// Close releases idle connections held by a provider-owned client.
// It's safe to call Close multiple times.
func (o *OpenWeather) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}

	o.closed = true

	if o.ownsClient && o.client != nil {
		o.client.CloseIdleConnections()
		o.log.Info("OpenWeather provider closed")
	}

	return nil
}

// FetchCurrent returns the current observation for location.
func (o *OpenWeather) FetchCurrent(ctx context.Context, location string) (*Snapshot, error) {
	var payload observation
	if err := o.get(ctx, "weather", location, &payload); err != nil {
		o.log.Error("Failed to fetch weather data", "location", location, "error", err)

		return nil, err
	}

	snap := payload.snapshot(location)

	o.log.Info("Weather data fetched", "location", location)

	return &snap, nil
}

// FetchForecast returns up to days*SamplesPerDay forecast samples for location.
func (o *OpenWeather) FetchForecast(ctx context.Context, location string, days int) ([]Snapshot, error) {
	var payload struct {
		List []observation `json:"list"`
	}

	if err := o.get(ctx, "forecast", location, &payload); err != nil {
		o.log.Error("Failed to fetch forecast", "location", location, "error", err)

		return nil, err
	}

	limit := ForecastLimit(days, len(payload.List))

	forecasts := make([]Snapshot, 0, limit)
	for _, item := range payload.List[:limit] {
		forecasts = append(forecasts, item.snapshot(location))
	}

	o.log.Info("Forecast data fetched", "location", location, "entries", len(forecasts))

	return forecasts, nil
}

// get performs a GET on {baseURL}/{endpoint} and decodes the JSON body into out.
func (o *OpenWeather) get(ctx context.Context, endpoint, location string, out any) error {
	if !o.Configured() {
		return &errors.ConfigurationError{Key: APIKeyEnv}
	}

	client, err := o.httpClient(ctx)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", o.apiKey)
	query.Set("units", "metric")

	reqURL := o.baseURL + "/" + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	o.log.Debug("Requesting OpenWeather", "endpoint", endpoint, "location", location)

	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %w", errors.ErrProviderTimeout, err)
		}

		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	o.log.Debug("OpenWeather responded",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errors.ErrNotFound, location)
	case resp.StatusCode != http.StatusOK:
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}

// httpClient returns the client, opening the provider lazily when needed.
func (o *OpenWeather) httpClient(ctx context.Context) (*http.Client, error) {
	o.mu.Lock()
	client, closed := o.client, o.closed
	o.mu.Unlock()

	if closed {
		return nil, errors.ErrSessionClosed
	}

	if client != nil {
		return client, nil
	}

	if err := o.Open(ctx); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	return o.client, nil
}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweather %s returned status %d", e.Endpoint, e.StatusCode)
}

// observation mirrors the fields read from the /weather payload and from
// each /forecast list entry.
type observation struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"` //nolint:tagliatelle // upstream uses snake_case
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
}

func (o observation) snapshot(location string) Snapshot {
	var description string
	if len(o.Weather) > 0 {
		description = o.Weather[0].Description
	}

	return Snapshot{
		Location:    location,
		Temperature: o.Main.Temp,
		FeelsLike:   o.Main.FeelsLike,
		Humidity:    o.Main.Humidity,
		Description: description,
		WindSpeed:   o.Wind.Speed,
		Pressure:    o.Main.Pressure,
		Visibility:  o.Visibility,
		Timestamp:   time.Unix(o.Dt, 0).UTC(),
	}
}
