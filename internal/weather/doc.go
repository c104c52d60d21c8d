// Package weather defines the weather provider capability and its
// OpenWeatherMap implementation.
//
// A Provider answers two questions: what is the weather now, and what is the
// forecast for the next few days. The OpenWeather type implements Provider
// over the OpenWeatherMap REST API (metric units, 3-hour forecast samples).
//
// Provider failures are returned as errors, never panics. Callers decide how
// a miss is surfaced; the tool layer turns every miss into a data-level
// result rather than a protocol error.
package weather
