// Command weather-mcp serves the weather tools over the Model Context
// Protocol.
//
// By default it speaks newline-delimited JSON-RPC on stdin and stdout. With
// -http it serves the streamable HTTP transport instead.
//
//	weather-mcp [-http addr] [-init-policy auto|strict] [-timeout 10s] [-log-level info]
//
// The API key is read from OPENWEATHER_API_KEY. Logs go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	weathermcp "github.com/wagiedev/weather-mcp-go"
	"github.com/wagiedev/weather-mcp-go/internal/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("weather-mcp", flag.ContinueOnError)
	httpAddr := fs.String("http", "", "serve MCP over streamable HTTP on this address instead of stdio")
	initPolicy := fs.String("init-policy", os.Getenv(config.EnvInitPolicy), "handling of requests before initialize: auto or strict")
	timeout := fs.String("timeout", os.Getenv(config.EnvTimeout), "provider call timeout (seconds or Go duration)")
	logLevel := fs.String("log-level", os.Getenv(config.EnvLogLevel), "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	log, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 2
	}

	opts, err := config.FromEnv(func(key string) string {
		switch key {
		case config.EnvInitPolicy:
			return *initPolicy
		case config.EnvTimeout:
			return *timeout
		default:
			return os.Getenv(key)
		}
	})
	if err != nil {
		log.Error("Invalid configuration", "error", err)

		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = weathermcp.WithServer(ctx, func(s *weathermcp.Server) error {
		if *httpAddr != "" {
			return serveHTTP(ctx, log, s, *httpAddr)
		}

		return s.ServeStdio(ctx)
	},
		weathermcp.WithOptions(opts),
		weathermcp.WithLogger(log),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Server stopped", "error", err)

		return 1
	}

	return 0
}

// serveHTTP serves the streamable HTTP transport until ctx is cancelled.
func serveHTTP(ctx context.Context, log *slog.Logger, s *weathermcp.Server, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Serving MCP over HTTP", "addr", addr)

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
