// Command weather prints current weather or a forecast for a location.
//
//	weather <location> [--forecast|-f] [--days|-d N]
//
// The API key is read from OPENWEATHER_API_KEY.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wagiedev/weather-mcp-go/internal/cli"
	"github.com/wagiedev/weather-mcp-go/internal/config"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

func main() {
	os.Exit(run())
}

func run() int {
	level := os.Getenv(config.EnvLogLevel)
	if level == "" {
		level = "warn"
	}

	log, err := config.NewLogger(os.Stderr, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return cli.ExitUsage
	}

	opts, err := config.FromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return cli.ExitUsage
	}

	opts.ApplyDefaults()

	if opts.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: %s environment variable not set\n", config.EnvAPIKey)

		return cli.ExitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Provider: weather.NewOpenWeather(weather.OpenWeatherConfig{
			APIKey:  opts.APIKey,
			BaseURL: opts.BaseURL,
			Logger:  log,
		}),
		Timeout:  opts.ProviderTimeout,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Decorate: cli.IsTerminal(os.Stdout),
		Logger:   log,
	}

	return app.Run(ctx, os.Args[1:])
}
