package weathermcp

import (
	"context"
	"fmt"
)

// WithServer manages server lifecycle with automatic cleanup.
//
// This helper creates a server with the provided options, executes the
// callback function, and ensures the provider is released via Close() when
// done, including when the callback fails or panics.
//
// If Close() fails, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := weathermcp.WithServer(ctx, func(s *weathermcp.Server) error {
//	    return s.ServeStdio(ctx)
//	},
//	    weathermcp.WithLogger(log),
//	    weathermcp.WithAPIKey(os.Getenv("OPENWEATHER_API_KEY")),
//	)
func WithServer(ctx context.Context, fn func(*Server) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	server, err := NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			server.log.Warn("failed to close server", "error", closeErr)
		}
	}()

	return fn(server)
}
