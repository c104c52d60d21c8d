package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wagiedev/weather-mcp-go/internal/weather"
)

// CurrentWeather is the get_current_weather result payload.
type CurrentWeather struct {
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"` //nolint:tagliatelle // wire format uses snake_case
	Humidity    string `json:"humidity"`
	Description string `json:"description"`
	WindSpeed   string `json:"wind_speed"` //nolint:tagliatelle // wire format uses snake_case
	Pressure    string `json:"pressure"`
	Visibility  string `json:"visibility"`
	Timestamp   string `json:"timestamp"`
}

// ForecastEntry is one sample in a Forecast payload.
type ForecastEntry struct {
	Timestamp   string `json:"timestamp"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"` //nolint:tagliatelle // wire format uses snake_case
}

// Forecast is the get_weather_forecast result payload.
type Forecast struct {
	Location string          `json:"location"`
	Forecast []ForecastEntry `json:"forecast"`
}

// DataError is the payload returned when the provider has no data.
type DataError struct {
	Error string `json:"error"`
}

// NewCurrentWeather formats a snapshot for callers.
func NewCurrentWeather(s *weather.Snapshot) CurrentWeather {
	return CurrentWeather{
		Location:    s.Location,
		Temperature: FormatFloat(s.Temperature) + "°C",
		FeelsLike:   FormatFloat(s.FeelsLike) + "°C",
		Humidity:    strconv.Itoa(s.Humidity) + "%",
		Description: s.Description,
		WindSpeed:   FormatFloat(s.WindSpeed) + " m/s",
		Pressure:    strconv.Itoa(s.Pressure) + " hPa",
		Visibility:  strconv.Itoa(s.Visibility) + " m",
		Timestamp:   FormatTimestamp(s.Timestamp),
	}
}

// NewForecast formats forecast samples for callers.
func NewForecast(location string, snaps []weather.Snapshot) Forecast {
	entries := make([]ForecastEntry, 0, len(snaps))
	for _, s := range snaps {
		entries = append(entries, ForecastEntry{
			Timestamp:   FormatTimestamp(s.Timestamp),
			Temperature: FormatFloat(s.Temperature) + "°C",
			Description: s.Description,
			Humidity:    strconv.Itoa(s.Humidity) + "%",
			WindSpeed:   FormatFloat(s.WindSpeed) + " m/s",
		})
	}

	return Forecast{Location: location, Forecast: entries}
}

// FormatFloat renders f in its shortest form, always keeping one decimal
// digit: 14 -> "14.0", 15.25 -> "15.25".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}

	return s
}

// FormatTimestamp renders t as ISO 8601 with a numeric UTC offset.
// Microseconds are included only when non-zero.
//
// Provider snapshots are in UTC, so results end in "+00:00". Callers that
// expect the server's local wall-clock time without an offset must convert.
func FormatTimestamp(t time.Time) string {
	if micros := t.Nanosecond() / 1000; micros != 0 {
		return t.Format("2006-01-02T15:04:05") + fmt.Sprintf(".%06d", micros) + t.Format("-07:00")
	}

	return t.Format("2006-01-02T15:04:05-07:00")
}
