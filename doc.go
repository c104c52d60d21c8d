// Package weathermcp provides a Model Context Protocol server that exposes
// weather lookups as tools.
//
// Two tools are registered:
//
//   - get_current_weather: current conditions for a city name or coordinates
//   - get_weather_forecast: a 3-hourly forecast for up to N days (default 5)
//
// Weather data comes from a Provider. By default the OpenWeatherMap REST API
// is used, keyed by the OPENWEATHER_API_KEY environment variable or
// WithAPIKey.
//
// # Basic Usage
//
// Serve MCP over standard input and output:
//
//	ctx := context.Background()
//	err := weathermcp.WithServer(ctx, func(s *weathermcp.Server) error {
//	    return s.ServeStdio(ctx)
//	},
//	    weathermcp.WithAPIKey(os.Getenv("OPENWEATHER_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Each input line is one JSON-RPC 2.0 request. Each response is written as
// a single line. Notifications get no response. Malformed lines produce an
// error response and the loop continues.
//
// # Other Frontends
//
// The same tools can be served over the MCP streamable HTTP transport with
// Server.HTTPHandler, or as a small REST API with Server.WebHandler:
//
//	mux := http.NewServeMux()
//	mux.Handle("/mcp", s.HTTPHandler())
//	mux.Handle("/", s.WebHandler())
//
// # Initialization
//
// By default a tools/call that arrives before initialize initializes the
// session implicitly. WithInitPolicy(weathermcp.InitPolicyStrict) rejects
// tools/list and tools/call until the client has sent initialize.
//
// # Logging
//
// All components log through log/slog. Pass a logger with WithLogger; without
// one the server is silent. Never log to stdout when serving stdio.
//
// # Error Handling
//
// Protocol failures become JSON-RPC error responses with the standard codes
// (CodeParseError, CodeInvalidRequest, CodeMethodNotFound, CodeInvalidParams,
// CodeInternalError). A provider that has no data for a location yields a
// successful result whose payload carries an "error" field (DataError).
//
//	if _, ok := errors.AsType[*weathermcp.InvalidArgumentsError](err); ok {
//	    // bad tool arguments
//	}
package weathermcp
