package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRPCError(t *testing.T) {
	root := errors.New("unexpected end of JSON input")
	err := &RPCError{Code: CodeParseError, Message: "Parse error", Err: root}

	require.Equal(t, "rpc error -32700: Parse error", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsWeatherMCPError())
}

func TestDuplicateToolError(t *testing.T) {
	err := &DuplicateToolError{Name: "get_current_weather"}

	require.Equal(t, `tool "get_current_weather" already registered`, err.Error())
	require.True(t, err.IsWeatherMCPError())
}

func TestUnknownToolError(t *testing.T) {
	err := &UnknownToolError{Name: "get_tides"}

	require.Equal(t, "Unknown tool: get_tides", err.Error())
	require.True(t, err.IsWeatherMCPError())
}

func TestInvalidArgumentsError(t *testing.T) {
	tests := []struct {
		name string
		err  *InvalidArgumentsError
		want string
	}{
		{
			name: "field and reason",
			err:  &InvalidArgumentsError{Tool: "get_weather_forecast", Field: "days", Reason: "expected integer, got string"},
			want: `invalid arguments for get_weather_forecast: field "days": expected integer, got string`,
		},
		{
			name: "field only falls back to cause",
			err:  &InvalidArgumentsError{Field: "location", Err: errors.New("missing")},
			want: `invalid arguments: field "location": missing`,
		},
		{
			name: "bare",
			err:  &InvalidArgumentsError{},
			want: "invalid arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
			require.True(t, tt.err.IsWeatherMCPError())
		})
	}
}

func TestToolExecutionError(t *testing.T) {
	root := errors.New("boom")
	err := &ToolExecutionError{Tool: "get_current_weather", Err: root}

	require.Equal(t, "tool get_current_weather failed: boom", err.Error())
	require.ErrorIs(t, err, root)

	var target *ToolExecutionError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "get_current_weather", target.Tool)
}

func TestDataUnavailableError(t *testing.T) {
	err := &DataUnavailableError{
		Location: "Atlantis",
		Message:  "Failed to fetch forecast for Atlantis",
		Err:      ErrNotFound,
	}

	require.Equal(t, "Failed to fetch forecast for Atlantis: location not found", err.Error())
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, err.IsWeatherMCPError())

	bare := &DataUnavailableError{Message: "Failed to fetch weather data for Paris"}
	require.Equal(t, "Failed to fetch weather data for Paris", bare.Error())
	require.NoError(t, bare.Unwrap())
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Key: "OPENWEATHER_API_KEY"}
	require.Equal(t, "configuration error: OPENWEATHER_API_KEY is not set", err.Error())

	err = &ConfigurationError{Key: "WEATHER_MCP_TIMEOUT", Reason: "must be positive"}
	require.Equal(t, "configuration error: WEATHER_MCP_TIMEOUT: must be positive", err.Error())
	require.True(t, err.IsWeatherMCPError())
}
