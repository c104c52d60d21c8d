package errors

import (
	"errors"
	"fmt"
	"strings"
)

// WeatherMCPError is the base interface for all server errors.
type WeatherMCPError interface {
	error
	IsWeatherMCPError() bool
}

// Compile-time verification that all error types implement WeatherMCPError.
var (
	_ WeatherMCPError = (*RPCError)(nil)
	_ WeatherMCPError = (*DuplicateToolError)(nil)
	_ WeatherMCPError = (*UnknownToolError)(nil)
	_ WeatherMCPError = (*InvalidArgumentsError)(nil)
	_ WeatherMCPError = (*ToolExecutionError)(nil)
	_ WeatherMCPError = (*DataUnavailableError)(nil)
	_ WeatherMCPError = (*ConfigurationError)(nil)
)

// JSON-RPC 2.0 reserved error codes plus the MCP "server not initialized" code.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotInitialized = -32002
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotFound indicates the provider has no data for a location.
	ErrNotFound = errors.New("location not found")

	// ErrNotInitialized indicates a method that requires the initialize
	// handshake was called before it.
	ErrNotInitialized = errors.New("server not initialized")

	// ErrSessionClosed indicates the session was closed and cannot be reused.
	ErrSessionClosed = errors.New("session closed")

	// ErrProviderTimeout indicates a provider call exceeded its time budget.
	ErrProviderTimeout = errors.New("provider timeout")
)

// RPCError is a protocol-level failure carried in a JSON-RPC error envelope.
type RPCError struct {
	Code    int
	Message string
	Err     error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *RPCError) IsWeatherMCPError() bool { return true }

// DuplicateToolError indicates a tool name was registered twice.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q already registered", e.Name)
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *DuplicateToolError) IsWeatherMCPError() bool { return true }

// UnknownToolError indicates a call named a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Name
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *UnknownToolError) IsWeatherMCPError() bool { return true }

// InvalidArgumentsError indicates tool arguments failed validation.
// Field is empty when the failure is not tied to a single property.
type InvalidArgumentsError struct {
	Tool   string
	Field  string
	Reason string
	Err    error
}

func (e *InvalidArgumentsError) Error() string {
	var b strings.Builder

	b.WriteString("invalid arguments")

	if e.Tool != "" {
		fmt.Fprintf(&b, " for %s", e.Tool)
	}

	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}

	switch {
	case e.Reason != "":
		fmt.Fprintf(&b, ": %s", e.Reason)
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *InvalidArgumentsError) IsWeatherMCPError() bool { return true }

// ToolExecutionError wraps a failure returned by a tool handler.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *ToolExecutionError) IsWeatherMCPError() bool { return true }

// DataUnavailableError indicates the provider returned no data for a request.
// Message is the text surfaced to callers in the result payload.
type DataUnavailableError struct {
	Location string
	Message  string
	Err      error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *DataUnavailableError) IsWeatherMCPError() bool { return true }

// ConfigurationError indicates a required setting is missing or invalid.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
	}

	return fmt.Sprintf("configuration error: %s is not set", e.Key)
}

// IsWeatherMCPError implements WeatherMCPError.
func (e *ConfigurationError) IsWeatherMCPError() bool { return true }
