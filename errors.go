package weathermcp

import "github.com/wagiedev/weather-mcp-go/internal/errors"

// Re-export error types from internal package

// WeatherMCPError is the base interface for all server errors.
type WeatherMCPError = errors.WeatherMCPError

// RPCError is a protocol-level failure carried in a JSON-RPC error envelope.
type RPCError = errors.RPCError

// DuplicateToolError indicates a tool name was registered twice.
type DuplicateToolError = errors.DuplicateToolError

// UnknownToolError indicates a call named a tool that is not registered.
type UnknownToolError = errors.UnknownToolError

// InvalidArgumentsError indicates tool arguments failed validation.
type InvalidArgumentsError = errors.InvalidArgumentsError

// ToolExecutionError wraps a failure returned by a tool handler.
type ToolExecutionError = errors.ToolExecutionError

// DataUnavailableError indicates the provider returned no data for a request.
type DataUnavailableError = errors.DataUnavailableError

// ConfigurationError indicates a required setting is missing or invalid.
type ConfigurationError = errors.ConfigurationError

// Re-export sentinel errors from internal package.
var (
	// ErrNotFound indicates the provider has no data for a location.
	ErrNotFound = errors.ErrNotFound

	// ErrNotInitialized indicates a call arrived before initialize under the strict policy.
	ErrNotInitialized = errors.ErrNotInitialized

	// ErrSessionClosed indicates the server was closed and cannot be reused.
	ErrSessionClosed = errors.ErrSessionClosed

	// ErrProviderTimeout indicates a provider call exceeded its time budget.
	ErrProviderTimeout = errors.ErrProviderTimeout
)

// JSON-RPC error codes used in error responses.
const (
	CodeParseError     = errors.CodeParseError
	CodeInvalidRequest = errors.CodeInvalidRequest
	CodeMethodNotFound = errors.CodeMethodNotFound
	CodeInvalidParams  = errors.CodeInvalidParams
	CodeInternalError  = errors.CodeInternalError
	CodeNotInitialized = errors.CodeNotInitialized
)
