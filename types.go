package weathermcp

import (
	"github.com/wagiedev/weather-mcp-go/internal/config"
	"github.com/wagiedev/weather-mcp-go/internal/tools"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// Options configures a Server. Build it with Option values.
type Options = config.Options

// ServerInfo identifies the server in the initialize handshake.
type ServerInfo = config.ServerInfo

// InitPolicy controls requests that arrive before initialize.
type InitPolicy = config.InitPolicy

// Init policies.
const (
	// InitPolicyAuto initializes the session on the first tool call.
	InitPolicyAuto = config.InitPolicyAuto

	// InitPolicyStrict rejects tools/list and tools/call before initialize.
	InitPolicyStrict = config.InitPolicyStrict
)

// Snapshot is one point-in-time weather observation.
type Snapshot = weather.Snapshot

// Provider fetches weather data for a location.
type Provider = weather.Provider

// Lifecycle is implemented by providers that hold resources.
type Lifecycle = weather.Lifecycle

// CurrentWeather is the payload of get_current_weather.
type CurrentWeather = tools.CurrentWeather

// Forecast is the payload of get_weather_forecast.
type Forecast = tools.Forecast

// ForecastEntry is one sample of a Forecast.
type ForecastEntry = tools.ForecastEntry

// DataError is the payload returned when the provider has no data.
type DataError = tools.DataError

// Tool names.
const (
	CurrentWeatherTool = tools.CurrentWeatherTool
	ForecastTool       = tools.ForecastTool
)
