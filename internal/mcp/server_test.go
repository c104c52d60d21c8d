package mcp

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/weather-mcp-go/internal/config"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
	"github.com/wagiedev/weather-mcp-go/internal/tools"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
	"github.com/wagiedev/weather-mcp-go/internal/weather/weathertest"
)

var serverInfo = config.ServerInfo{Name: "weather-test", Version: "0.0.1"}

func weatherRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	stub := weathertest.NewStub().SetCurrent("London", weather.Snapshot{
		Location:    "London",
		Temperature: 15.2,
		FeelsLike:   14.0,
		Humidity:    72,
		Description: "light rain",
		WindSpeed:   4.1,
		Pressure:    1009,
		Visibility:  9000,
		Timestamp:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	reg := registry.New(nil)
	require.NoError(t, tools.Register(reg, tools.Config{Provider: stub}))

	return reg
}

// connect starts server on an in-memory transport and returns a client session.
func connect(t *testing.T, server *mcpgo.Server) *mcpgo.ClientSession {
	t.Helper()

	ctx := context.Background()
	serverTransport, clientTransport := mcpgo.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestNewServer_ListTools(t *testing.T) {
	session := connect(t, NewServer(weatherRegistry(t), serverInfo, nil))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}

	require.ElementsMatch(t, []string{tools.CurrentWeatherTool, tools.ForecastTool}, names)
}

func TestNewServer_CallTool(t *testing.T) {
	session := connect(t, NewServer(weatherRegistry(t), serverInfo, nil))

	result, err := session.CallTool(context.Background(), &mcpgo.CallToolParams{
		Name:      tools.CurrentWeatherTool,
		Arguments: map[string]any{"location": "London"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(ResultText(result)), &payload))
	require.Equal(t, "15.2°C", payload["temperature"])
	require.Equal(t, "2024-05-01T12:00:00+00:00", payload["timestamp"])
}

func TestNewServer_CallToolInvalidArguments(t *testing.T) {
	session := connect(t, NewServer(weatherRegistry(t), serverInfo, nil))

	result, err := session.CallTool(context.Background(), &mcpgo.CallToolParams{
		Name:      tools.ForecastTool,
		Arguments: map[string]any{"days": 2},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, ResultText(result), "location")
}

func TestNewHTTPHandler(t *testing.T) {
	httpServer := httptest.NewServer(NewHTTPHandler(NewServer(weatherRegistry(t), serverInfo, nil)))
	t.Cleanup(httpServer.Close)

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "http-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(context.Background(), &mcpgo.StreamableClientTransport{Endpoint: httpServer.URL}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	result, err := session.CallTool(context.Background(), &mcpgo.CallToolParams{
		Name:      tools.CurrentWeatherTool,
		Arguments: map[string]any{"location": "Atlantis"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.JSONEq(t, `{"error":"Failed to fetch weather data for Atlantis"}`, ResultText(result))
}

func TestToolHandler_Direct(t *testing.T) {
	handler := ToolHandler(weatherRegistry(t), tools.CurrentWeatherTool, nil)

	result, err := handler(context.Background(), &mcpgo.CallToolRequest{
		Params: &mcpgo.CallToolParamsRaw{
			Name:      tools.CurrentWeatherTool,
			Arguments: json.RawMessage(`{"location":"London"}`),
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Contains(t, ResultText(result), `"location": "London"`)

	result, err = handler(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestResults(t *testing.T) {
	require.Equal(t, "ok", ResultText(TextResult("ok")))
	require.False(t, TextResult("ok").IsError)

	errResult := ErrorResult("bad")
	require.True(t, errResult.IsError)
	require.Equal(t, "bad", ResultText(errResult))

	require.Empty(t, ResultText(nil))
}
