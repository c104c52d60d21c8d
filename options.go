package weathermcp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wagiedev/weather-mcp-go/internal/config"
)

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options on top of defaults.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	options.ApplyDefaults()

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithProvider sets the weather provider.
// If not set, an OpenWeatherMap provider is built from the API key.
func WithProvider(provider Provider) Option {
	return func(o *Options) {
		o.Provider = provider
	}
}

// WithAPIKey sets the OpenWeatherMap API key.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithBaseURL overrides the OpenWeatherMap endpoint root.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for provider requests.
// The server never closes a caller-supplied client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithProviderTimeout bounds each provider call.
func WithProviderTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.ProviderTimeout = timeout
	}
}

// WithInitPolicy controls requests that arrive before initialize.
// Aliases such as "lenient" and "require" are normalized.
func WithInitPolicy(policy InitPolicy) Option {
	return func(o *Options) {
		o.InitPolicy = InitPolicy(config.NormalizeInitPolicy(string(policy)))
	}
}

// WithServerInfo sets the name and version reported by initialize.
func WithServerInfo(name, version string) Option {
	return func(o *Options) {
		o.ServerInfo = ServerInfo{Name: name, Version: version}
	}
}

// WithOptions copies every field of base. Later options override it.
// It is typically used with options read by config.FromEnv.
func WithOptions(base *Options) Option {
	return func(o *Options) {
		if base != nil {
			*o = *base
		}
	}
}
