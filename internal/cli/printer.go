package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/wagiedev/weather-mcp-go/internal/tools"
	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// forecastListLimit caps the number of forecast samples printed.
const forecastListLimit = 8

// Printer renders human-readable weather reports.
type Printer struct {
	w        io.Writer
	decorate bool
}

// NewPrinter creates a Printer. With decorate set, headings carry emoji.
func NewPrinter(w io.Writer, decorate bool) *Printer {
	return &Printer{w: w, decorate: decorate}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

func (p *Printer) icon(emoji string) string {
	if !p.decorate {
		return ""
	}

	return emoji + " "
}

// Progress announces a lookup.
func (p *Printer) Progress(args *Args) {
	if args.Forecast {
		fmt.Fprintf(p.w, "%sGetting %d-day forecast for %s...\n", p.icon("📅"), args.Days, args.Location)

		return
	}

	fmt.Fprintf(p.w, "%sGetting current weather for %s...\n", p.icon("🌤️"), args.Location)
}

// Weather prints a current observation.
func (p *Printer) Weather(s *weather.Snapshot) {
	fmt.Fprintf(p.w, "%sWeather in %s:\n", p.icon("🌤️"), s.Location)
	fmt.Fprintf(p.w, "   Temperature: %s°C\n", tools.FormatFloat(s.Temperature))
	fmt.Fprintf(p.w, "   Feels like: %s°C\n", tools.FormatFloat(s.FeelsLike))
	fmt.Fprintf(p.w, "   Humidity: %d%%\n", s.Humidity)
	fmt.Fprintf(p.w, "   Conditions: %s\n", s.Description)
	fmt.Fprintf(p.w, "   Wind: %s m/s\n", tools.FormatFloat(s.WindSpeed))
	fmt.Fprintf(p.w, "   Pressure: %d hPa\n", s.Pressure)
	fmt.Fprintf(p.w, "   Visibility: %d m\n", s.Visibility)
	fmt.Fprintf(p.w, "   Updated: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
}

// Forecast prints up to the first eight forecast samples.
func (p *Printer) Forecast(location string, days int, snaps []weather.Snapshot) {
	fmt.Fprintf(p.w, "%s%d-Day Forecast for %s:\n", p.icon("📅"), days, location)

	for i, s := range snaps[:min(len(snaps), forecastListLimit)] {
		fmt.Fprintf(p.w, "   %d. %s: %s°C, %s\n",
			i+1,
			s.Timestamp.Format("01/02 15:04"),
			tools.FormatFloat(s.Temperature),
			s.Description,
		)
	}
}

// Failure prints a failure line.
func (p *Printer) Failure(msg string) {
	fmt.Fprintf(p.w, "%s%s\n", p.icon("❌"), msg)
}
