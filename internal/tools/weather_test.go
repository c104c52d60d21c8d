package tools

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
	"github.com/wagiedev/weather-mcp-go/internal/weather/weathertest"
)

var observedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func londonSnapshot() weather.Snapshot {
	return weather.Snapshot{
		Location:    "London",
		Temperature: 15.2,
		FeelsLike:   14.0,
		Humidity:    72,
		Description: "light rain",
		WindSpeed:   4.1,
		Pressure:    1009,
		Visibility:  9000,
		Timestamp:   observedAt,
	}
}

func forecastSamples(n int) []weather.Snapshot {
	snaps := make([]weather.Snapshot, n)
	for i := range snaps {
		snaps[i] = weather.Snapshot{
			Location:    "London",
			Temperature: 10 + float64(i),
			Humidity:    60,
			Description: "overcast clouds",
			WindSpeed:   3,
			Timestamp:   observedAt.Add(time.Duration(i) * 3 * time.Hour),
		}
	}

	return snaps
}

func newRegistry(t *testing.T, provider weather.Provider, timeout time.Duration) *registry.Registry {
	t.Helper()

	reg := registry.New(nil)
	require.NoError(t, Register(reg, Config{Provider: provider, Timeout: timeout}))

	return reg
}

func invokeJSON(t *testing.T, reg *registry.Registry, tool, args string) string {
	t.Helper()

	result, err := reg.Invoke(context.Background(), tool, json.RawMessage(args))
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	return string(data)
}

func TestRegister_Descriptors(t *testing.T) {
	reg := newRegistry(t, weathertest.NewStub(), 0)

	data, err := json.Marshal(reg.List())
	require.NoError(t, err)

	require.JSONEq(t, `[
		{
			"name": "get_current_weather",
			"description": "Get current weather data for a location",
			"inputSchema": {
				"type": "object",
				"properties": {
					"location": {"type": "string", "description": "City name or coordinates"}
				},
				"required": ["location"]
			}
		},
		{
			"name": "get_weather_forecast",
			"description": "Get weather forecast for a location",
			"inputSchema": {
				"type": "object",
				"properties": {
					"location": {"type": "string", "description": "City name or coordinates"},
					"days": {"type": "integer", "description": "Number of days (default: 5)", "default": 5, "minimum": 1}
				},
				"required": ["location"]
			}
		}
	]`, string(data))

	tools := reg.Tools()
	require.Len(t, tools, 2)
	require.NotNil(t, tools[0].Annotations)
	require.True(t, tools[0].Annotations.ReadOnlyHint)
}

func TestRegister_RequiresProvider(t *testing.T) {
	require.Error(t, Register(registry.New(nil), Config{}))
}

func TestCurrentWeather_London(t *testing.T) {
	stub := weathertest.NewStub().SetCurrent("London", londonSnapshot())
	reg := newRegistry(t, stub, 0)

	got := invokeJSON(t, reg, CurrentWeatherTool, `{"location":"London"}`)

	require.JSONEq(t, `{
		"location": "London",
		"temperature": "15.2°C",
		"feels_like": "14.0°C",
		"humidity": "72%",
		"description": "light rain",
		"wind_speed": "4.1 m/s",
		"pressure": "1009 hPa",
		"visibility": "9000 m",
		"timestamp": "2024-05-01T12:00:00+00:00"
	}`, got)
}

func TestCurrentWeather_Idempotent(t *testing.T) {
	stub := weathertest.NewStub().SetCurrent("London", londonSnapshot())
	reg := newRegistry(t, stub, 0)

	first := invokeJSON(t, reg, CurrentWeatherTool, `{"location":"London"}`)
	second := invokeJSON(t, reg, CurrentWeatherTool, `{"location":"London"}`)

	require.Equal(t, first, second)
	require.Equal(t, 2, stub.CurrentHits)
}

func TestCurrentWeather_Miss(t *testing.T) {
	reg := newRegistry(t, weathertest.NewStub(), 0)

	got := invokeJSON(t, reg, CurrentWeatherTool, `{"location":"Atlantis"}`)

	require.JSONEq(t, `{"error":"Failed to fetch weather data for Atlantis"}`, got)
}

func TestMiss_LogsDataUnavailable(t *testing.T) {
	var logs bytes.Buffer

	reg := registry.New(nil)
	require.NoError(t, Register(reg, Config{
		Provider: weathertest.NewStub(),
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
	}))

	invokeJSON(t, reg, CurrentWeatherTool, `{"location":"Atlantis"}`)
	invokeJSON(t, reg, ForecastTool, `{"location":"Atlantis","days":2}`)

	out := logs.String()
	require.Contains(t, out, `error="Failed to fetch weather data for Atlantis: location not found: Atlantis"`)
	require.Contains(t, out, `error="Failed to fetch forecast for Atlantis"`)
}

func TestCurrentWeather_ProviderError(t *testing.T) {
	stub := weathertest.NewStub()
	stub.Err = &errors.ConfigurationError{Key: weather.APIKeyEnv}
	reg := newRegistry(t, stub, 0)

	got := invokeJSON(t, reg, CurrentWeatherTool, `{"location":"Paris"}`)

	require.JSONEq(t, `{"error":"Failed to fetch weather data for Paris"}`, got)
}

func TestCurrentWeather_Timeout(t *testing.T) {
	stub := weathertest.NewStub().SetCurrent("London", londonSnapshot())
	stub.Block = make(chan struct{})
	defer close(stub.Block)

	reg := newRegistry(t, stub, 20*time.Millisecond)

	start := time.Now()
	got := invokeJSON(t, reg, CurrentWeatherTool, `{"location":"London"}`)

	require.JSONEq(t, `{"error":"Failed to fetch weather data for London"}`, got)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestCurrentWeather_BlankLocation(t *testing.T) {
	reg := newRegistry(t, weathertest.NewStub(), 0)

	_, err := reg.Invoke(context.Background(), CurrentWeatherTool, json.RawMessage(`{"location":"   "}`))

	invalid, ok := stderrors.AsType[*errors.InvalidArgumentsError](err)
	require.True(t, ok)
	require.Equal(t, "location", invalid.Field)
	require.Equal(t, CurrentWeatherTool, invalid.Tool)
}

func TestForecast_Atlantis(t *testing.T) {
	stub := weathertest.NewStub().SetForecast("Atlantis", nil)
	reg := newRegistry(t, stub, 0)

	got := invokeJSON(t, reg, ForecastTool, `{"location":"Atlantis","days":3}`)

	require.JSONEq(t, `{"error":"Failed to fetch forecast for Atlantis"}`, got)
	require.Equal(t, []int{3}, stub.ForecastReq)
}

func TestForecast_DefaultDays(t *testing.T) {
	stub := weathertest.NewStub().SetForecast("London", forecastSamples(48))
	reg := newRegistry(t, stub, 0)

	result, err := reg.Invoke(context.Background(), ForecastTool, json.RawMessage(`{"location":"London"}`))
	require.NoError(t, err)

	forecast, ok := result.(Forecast)
	require.True(t, ok)
	require.Equal(t, "London", forecast.Location)
	require.Len(t, forecast.Forecast, DefaultForecastDays*weather.SamplesPerDay)
	require.Equal(t, []int{DefaultForecastDays}, stub.ForecastReq)
}

func TestForecast_Entries(t *testing.T) {
	stub := weathertest.NewStub().SetForecast("London", forecastSamples(10))
	reg := newRegistry(t, stub, 0)

	result, err := reg.Invoke(context.Background(), ForecastTool, json.RawMessage(`{"location":"London","days":1}`))
	require.NoError(t, err)

	forecast := result.(Forecast)
	require.Len(t, forecast.Forecast, weather.SamplesPerDay)
	require.Equal(t, ForecastEntry{
		Timestamp:   "2024-05-01T15:00:00+00:00",
		Temperature: "11.0°C",
		Description: "overcast clouds",
		Humidity:    "60%",
		WindSpeed:   "3.0 m/s",
	}, forecast.Forecast[1])
}

func TestForecast_RejectsZeroDays(t *testing.T) {
	stub := weathertest.NewStub()
	reg := newRegistry(t, stub, 0)

	_, err := reg.Invoke(context.Background(), ForecastTool, json.RawMessage(`{"location":"London","days":0}`))

	_, ok := stderrors.AsType[*errors.InvalidArgumentsError](err)
	require.True(t, ok)
	require.Empty(t, stub.ForecastReq)
}

func TestForecast_RejectsHugeDays(t *testing.T) {
	stub := weathertest.NewStub().SetForecast("London", forecastSamples(40))
	reg := newRegistry(t, stub, 0)

	_, err := reg.Invoke(context.Background(), ForecastTool, json.RawMessage(`{"location":"London","days":2000000000000000000}`))

	invalid, ok := stderrors.AsType[*errors.InvalidArgumentsError](err)
	require.True(t, ok, "got %v", err)
	require.Equal(t, "days", invalid.Field)
	require.Empty(t, stub.ForecastReq)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 14, want: "14.0"},
		{in: 15.2, want: "15.2"},
		{in: -3, want: "-3.0"},
		{in: 0, want: "0.0"},
		{in: 4.125, want: "4.125"},
		{in: math.NaN(), want: "NaN"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, "2024-05-01T12:00:00+00:00", FormatTimestamp(observedAt))
	require.Equal(t, "2024-05-01T12:00:00.250000+00:00", FormatTimestamp(observedAt.Add(250*time.Millisecond)))
}
