package protocol

import (
	"encoding/json"
)

// Version is the JSON-RPC version every message must carry.
const Version = "2.0"

// ProtocolVersion is the MCP protocol revision reported by initialize.
const ProtocolVersion = "2024-11-05"

// Method names.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

// Request is a JSON-RPC 2.0 request or notification.
//
// Wire format:
//
//	{"jsonrpc": "2.0", "id": 1, "method": "tools/list", "params": {...}}
type Request struct {
	JSONRPC string `json:"jsonrpc"`

	// ID is kept byte-for-byte so responses echo it exactly.
	// Empty for notifications.
	ID json.RawMessage `json:"id,omitempty"`

	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no id.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is set.
//
// Wire format for success:
//
//	{"jsonrpc": "2.0", "id": 1, "result": {...}}
//
// Wire format for error:
//
//	{"jsonrpc": "2.0", "id": 1, "error": {"code": -32601, "message": "..."}}
type Response struct {
	JSONRPC string `json:"jsonrpc"`

	// ID marshals as null when nil.
	ID json.RawMessage `json:"id"`

	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// IsError checks if the response is an error response.
func (r *Response) IsError() bool {
	return r.Error != nil
}

// Error is the error member of a Response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ClientInfo identifies the client in the initialize handshake.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeParams are the params of an initialize request.
type InitializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities,omitempty"`
	ClientInfo      *ClientInfo    `json:"clientInfo,omitempty"`
}

// CallToolParams are the params of a tools/call request.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}
