package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/wagiedev/weather-mcp-go/internal/config"
	"github.com/wagiedev/weather-mcp-go/internal/errors"
	"github.com/wagiedev/weather-mcp-go/internal/registry"
)

// Config configures a Dispatcher.
type Config struct {
	// Registry holds the tools served by tools/list and tools/call. Required.
	Registry *registry.Registry

	// Session tracks the handshake. If nil, a session without a provider
	// lifecycle is created.
	Session *Session

	// ServerInfo is reported by initialize.
	ServerInfo config.ServerInfo

	// InitPolicy controls requests that arrive before initialize.
	// Empty means config.InitPolicyAuto.
	InitPolicy config.InitPolicy

	// Logger receives protocol tracking output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// Dispatcher routes JSON-RPC requests to the session and the tool registry.
//
// The Dispatcher handles:
//   - Parsing one line into a Request
//   - Envelope validation (jsonrpc version, method)
//   - The initialize handshake and the init policy
//   - tools/list and tools/call against the registry
//   - Mapping failures to JSON-RPC error codes
type Dispatcher struct {
	log      *slog.Logger
	registry *registry.Registry
	session  *Session
	info     config.ServerInfo
	policy   config.InitPolicy
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	session := cfg.Session
	if session == nil {
		session = NewSession(log, nil)
	}

	policy := cfg.InitPolicy
	if policy == "" {
		policy = config.InitPolicyAuto
	}

	info := cfg.ServerInfo
	if info.Name == "" {
		info.Name = config.DefaultServerName
	}

	if info.Version == "" {
		info.Version = config.DefaultServerVersion
	}

	return &Dispatcher{
		log:      log.With("component", "protocol", "session_id", session.ID()),
		registry: cfg.Registry,
		session:  session,
		info:     info,
		policy:   policy,
	}
}

// Session returns the dispatcher's session.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// HandleMessage processes one raw message and returns the encoded response.
// ok is false when no response must be written (notifications).
func (d *Dispatcher) HandleMessage(ctx context.Context, line []byte) ([]byte, bool) {
	line = bytes.TrimSpace(line)

	var resp *Response

	if !json.Valid(line) {
		d.log.Error("Parse error", "bytes", len(line))

		resp = errorResponse(nil, &errors.RPCError{Code: errors.CodeParseError, Message: "Parse error"})
	} else {
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			d.log.Error("Invalid request", "error", err)

			resp = errorResponse(peekID(line), &errors.RPCError{Code: errors.CodeInvalidRequest, Message: "Invalid Request", Err: err})
		} else {
			resp = d.Handle(ctx, &req)
		}
	}

	if resp == nil {
		return nil, false
	}

	data, err := json.Marshal(resp)
	if err != nil {
		d.log.Error("Failed to marshal response", "error", err)

		data, _ = json.Marshal(errorResponse(resp.ID, &errors.RPCError{
			Code:    errors.CodeInternalError,
			Message: "Failed to encode response",
			Err:     err,
		}))
	}

	return data, true
}

// Handle processes a decoded request. It returns nil for notifications.
func (d *Dispatcher) Handle(ctx context.Context, req *Request) *Response {
	if req.JSONRPC != Version || req.Method == "" {
		d.log.Error("Invalid request", "jsonrpc", req.JSONRPC, "method", req.Method)

		return errorResponse(req.ID, &errors.RPCError{Code: errors.CodeInvalidRequest, Message: "Invalid Request"})
	}

	d.log.Debug("Handling request", "method", req.Method, "id", string(req.ID))

	result, err := d.safeRoute(ctx, req)

	if req.IsNotification() {
		if err != nil {
			d.log.Debug("Notification failed", "method", req.Method, "error", err)
		}

		return nil
	}

	if err != nil {
		rpcErr := toRPCError(err)
		d.log.Error("Request failed", "method", req.Method, "code", rpcErr.Code, "error", err)

		return errorResponse(req.ID, rpcErr)
	}

	return &Response{JSONRPC: Version, ID: req.ID, Result: result}
}

// safeRoute runs route, turning a handler panic into an internal error.
func (d *Dispatcher) safeRoute(ctx context.Context, req *Request) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Handler panicked",
				"method", req.Method,
				"panic", r,
				"stack", string(debug.Stack()),
			)

			result = nil
			err = &errors.RPCError{
				Code:    errors.CodeInternalError,
				Message: "Internal error",
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	return d.route(ctx, req)
}

// route dispatches by method name.
func (d *Dispatcher) route(ctx context.Context, req *Request) (any, error) {
	switch req.Method {
	case MethodInitialize:
		return d.handleInitialize(ctx, req.Params)

	case MethodInitialized, MethodPing:
		return map[string]any{}, nil

	case MethodToolsList:
		if err := d.checkInitialized(ctx, req.Method); err != nil {
			return nil, err
		}

		return map[string]any{"tools": d.registry.List()}, nil

	case MethodToolsCall:
		if err := d.checkInitialized(ctx, req.Method); err != nil {
			return nil, err
		}

		return d.handleToolsCall(ctx, req.Params)

	default:
		return nil, &errors.RPCError{
			Code:    errors.CodeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}
}

// handleInitialize handles the initialize method.
func (d *Dispatcher) handleInitialize(ctx context.Context, raw json.RawMessage) (any, error) {
	var params *InitializeParams

	if len(raw) > 0 && string(raw) != "null" {
		params = &InitializeParams{}
		if err := json.Unmarshal(raw, params); err != nil {
			return nil, &errors.RPCError{
				Code:    errors.CodeInvalidParams,
				Message: fmt.Sprintf("Invalid params for initialize: %v", err),
				Err:     err,
			}
		}
	}

	if err := d.session.Initialize(ctx, params); err != nil {
		return nil, err
	}

	return map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    d.info.Name,
			"version": d.info.Version,
		},
	}, nil
}

// handleToolsCall handles the tools/call method.
func (d *Dispatcher) handleToolsCall(ctx context.Context, raw json.RawMessage) (any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &errors.RPCError{Code: errors.CodeInvalidParams, Message: "Missing params for tools/call"}
	}

	var params CallToolParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &errors.RPCError{
			Code:    errors.CodeInvalidParams,
			Message: fmt.Sprintf("Invalid params for tools/call: %v", err),
			Err:     err,
		}
	}

	if params.Name == "" {
		return nil, &errors.RPCError{Code: errors.CodeInvalidParams, Message: "Missing tool name in params"}
	}

	result, err := d.registry.Invoke(ctx, params.Name, params.Arguments)
	if err != nil {
		return nil, err
	}

	text, err := EncodeResult(result)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", params.Name, err)
	}

	d.log.Debug("Tool call completed", "tool", params.Name)

	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}, nil
}

// checkInitialized applies the init policy to methods that need a session.
func (d *Dispatcher) checkInitialized(ctx context.Context, method string) error {
	if d.session.IsInitialized() {
		return nil
	}

	if d.policy == config.InitPolicyStrict {
		return &errors.RPCError{
			Code:    errors.CodeNotInitialized,
			Message: "Server not initialized",
			Err:     errors.ErrNotInitialized,
		}
	}

	if method != MethodToolsCall {
		return nil
	}

	d.log.Warn("tools/call before initialize, initializing implicitly")

	return d.session.Initialize(ctx, nil)
}

// EncodeResult renders a tool result as the text of a text content block:
// JSON with two-space indentation.
func EncodeResult(result any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(result); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// toRPCError maps a failure to its JSON-RPC error code.
func toRPCError(err error) *errors.RPCError {
	if rpcErr, ok := stderrors.AsType[*errors.RPCError](err); ok {
		return rpcErr
	}

	if _, ok := stderrors.AsType[*errors.UnknownToolError](err); ok {
		return &errors.RPCError{Code: errors.CodeMethodNotFound, Message: err.Error(), Err: err}
	}

	if _, ok := stderrors.AsType[*errors.InvalidArgumentsError](err); ok {
		return &errors.RPCError{Code: errors.CodeInvalidParams, Message: err.Error(), Err: err}
	}

	return &errors.RPCError{Code: errors.CodeInternalError, Message: err.Error(), Err: err}
}

// peekID recovers the id of a message whose other members failed to decode.
func peekID(line []byte) json.RawMessage {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}

	if json.Unmarshal(line, &envelope) != nil {
		return nil
	}

	return envelope.ID
}

func errorResponse(id json.RawMessage, err *errors.RPCError) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error: &Error{
			Code:    err.Code,
			Message: err.Message,
		},
	}
}
