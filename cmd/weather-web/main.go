// Command weather-web serves the weather tools as a REST API with a browser
// front page.
//
//	weather-web [-addr :5001] [-timeout 10s] [-log-level info]
//
// Endpoints:
//
//	GET  /                      browser front page
//	POST /api/weather/current   {"location": "London"}
//	POST /api/weather/forecast  {"location": "London", "days": 5}
//	GET  /api/status            API key check
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	weathermcp "github.com/wagiedev/weather-mcp-go"
	"github.com/wagiedev/weather-mcp-go/internal/config"
)

const (
	defaultAddr     = ":5001"
	shutdownTimeout = 5 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("weather-web", flag.ContinueOnError)
	addr := fs.String("addr", defaultAddr, "listen address")
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
		if key == config.EnvTimeout {
			return *timeout
		}

		return os.Getenv(key)
	})
	if err != nil {
		log.Error("Invalid configuration", "error", err)

		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = weathermcp.WithServer(ctx, func(s *weathermcp.Server) error {
		srv := &http.Server{
			Addr:              *addr,
			Handler:           s.WebHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			log.Info("Serving weather web frontend", "addr", *addr)

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
	},
		weathermcp.WithOptions(opts),
		weathermcp.WithLogger(log),
	)
	if err != nil {
		log.Error("Server stopped", "error", err)

		return 1
	}

	return 0
}
