package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// DefaultDays is the forecast length when --days is not given.
const DefaultDays = 5

// Args are the parsed command line arguments.
type Args struct {
	Location string
	Forecast bool
	Days     int
}

// ParseArgs parses args (without the program name). Flags may be
// interleaved with the location.
func ParseArgs(args []string, output io.Writer) (*Args, error) {
	parsed := &Args{Days: DefaultDays}

	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: weather <location> [--forecast|-f] [--days|-d N]")
		fmt.Fprintln(fs.Output(), "Get weather information for a city name or coordinates.")
		fs.PrintDefaults()
	}

	fs.BoolVar(&parsed.Forecast, "forecast", false, "Get weather forecast")
	fs.BoolVar(&parsed.Forecast, "f", false, "Get weather forecast (shorthand)")
	fs.IntVar(&parsed.Days, "days", DefaultDays, "Number of days for forecast")
	fs.IntVar(&parsed.Days, "d", DefaultDays, "Number of days for forecast (shorthand)")

	var positional []string

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		if fs.NArg() == 0 {
			break
		}

		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	switch len(positional) {
	case 0:
		fs.Usage()

		return nil, fmt.Errorf("location is required")
	case 1:
	default:
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}

	parsed.Location = strings.TrimSpace(positional[0])
	if parsed.Location == "" {
		return nil, fmt.Errorf("location is required")
	}

	if parsed.Days < 1 {
		return nil, fmt.Errorf("--days must be at least 1, got %d", parsed.Days)
	}

	return parsed, nil
}
