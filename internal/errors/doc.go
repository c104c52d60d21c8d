// Package errors defines error types for the weather MCP server.
//
// The types fall into four families that callers handle differently:
//
//   - Protocol errors (RPCError) become JSON-RPC error envelopes.
//   - Tool errors (UnknownToolError, InvalidArgumentsError, DuplicateToolError,
//     ToolExecutionError) are raised by the tool registry.
//   - Data errors (DataUnavailableError) are business-level misses that are
//     reported as a normal tool result, never as an envelope.
//   - Configuration errors (ConfigurationError) make every provider call miss.
//
// All error types support unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
