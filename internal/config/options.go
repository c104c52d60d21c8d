// Package config provides configuration types for the weather MCP server.
package config

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey     = weather.APIKeyEnv
	EnvBaseURL    = "OPENWEATHER_BASE_URL"
	EnvTimeout    = "WEATHER_MCP_TIMEOUT"
	EnvInitPolicy = "WEATHER_MCP_INIT_POLICY"
	EnvLogLevel   = "WEATHER_MCP_LOG_LEVEL"
)

const (
	// DefaultProviderTimeout bounds each provider call.
	DefaultProviderTimeout = 10 * time.Second

	// DefaultServerName is reported in the initialize result.
	DefaultServerName = "weather-mcp-server"

	// DefaultServerVersion is reported in the initialize result.
	DefaultServerVersion = "1.0.0"
)

// ServerInfo identifies the server in the initialize handshake.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Options configures the weather MCP server.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Provider answers weather queries.
	// If nil, an OpenWeatherMap provider is built from APIKey, BaseURL and HTTPClient.
	Provider weather.Provider

	// APIKey is the OpenWeatherMap API key.
	APIKey string

	// BaseURL overrides the OpenWeatherMap endpoint root.
	BaseURL string

	// HTTPClient is used for provider requests.
	// If nil, the provider owns a client opened on initialize.
	HTTPClient *http.Client

	// ProviderTimeout bounds each provider call.
	// Zero means DefaultProviderTimeout.
	ProviderTimeout time.Duration

	// InitPolicy controls tool calls that arrive before initialize.
	// Empty means InitPolicyAuto.
	InitPolicy InitPolicy

	// ServerInfo is reported in the initialize result.
	ServerInfo ServerInfo
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (o *Options) ApplyDefaults() {
	if o.ProviderTimeout <= 0 {
		o.ProviderTimeout = DefaultProviderTimeout
	}

	if o.InitPolicy == "" {
		o.InitPolicy = InitPolicyAuto
	}

	if o.ServerInfo.Name == "" {
		o.ServerInfo.Name = DefaultServerName
	}

	if o.ServerInfo.Version == "" {
		o.ServerInfo.Version = DefaultServerVersion
	}
}

// FromEnv reads options from the environment through getenv.
// Unset variables leave the corresponding field zero.
func FromEnv(getenv func(string) string) (*Options, error) {
	opts := &Options{
		APIKey:  strings.TrimSpace(getenv(EnvAPIKey)),
		BaseURL: strings.TrimSpace(getenv(EnvBaseURL)),
	}

	if raw := strings.TrimSpace(getenv(EnvTimeout)); raw != "" {
		timeout, err := ParseTimeout(raw)
		if err != nil {
			return nil, &errors.ConfigurationError{Key: EnvTimeout, Reason: err.Error()}
		}

		opts.ProviderTimeout = timeout
	}

	if raw := strings.TrimSpace(getenv(EnvInitPolicy)); raw != "" {
		policy, err := ParseInitPolicy(raw)
		if err != nil {
			return nil, &errors.ConfigurationError{Key: EnvInitPolicy, Reason: err.Error()}
		}

		opts.InitPolicy = policy
	}

	return opts, nil
}

// ParseTimeout accepts whole seconds ("10") or a Go duration ("1500ms").
func ParseTimeout(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, strconv.ErrRange
		}

		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}

	if d <= 0 {
		return 0, strconv.ErrRange
	}

	return d, nil
}

// ParseLogLevel maps a level name to a slog.Level. Empty means info.
func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level

	if strings.TrimSpace(raw) == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, &errors.ConfigurationError{Key: EnvLogLevel, Reason: err.Error()}
	}

	return level, nil
}
