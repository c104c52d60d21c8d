// Package tools defines the built-in weather tools and their result payloads.
//
// Two tools are provided: get_current_weather and get_weather_forecast. Both
// call a weather.Provider under a bounded timeout. A provider miss is not a
// failure of the tool: it is reported as a result payload of the form
// {"error": "..."} so that protocol errors and missing data travel on
// different channels.
package tools
