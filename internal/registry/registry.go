package registry

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
)

// Handler runs a tool. It receives arguments that already passed schema
// validation and returns a JSON-serializable result.
//
// A handler may return *errors.InvalidArgumentsError for checks the schema
// cannot express; any other error is reported as a ToolExecutionError.
type Handler func(ctx context.Context, args Arguments) (any, error)

// Descriptor describes a tool at registration time.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Annotations *mcp.ToolAnnotations
}

// entry holds a registered tool and its resolved schema.
type entry struct {
	tool     *mcp.Tool
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
	handler  Handler
}

// Registry is a thread-safe, ordered tool catalog.
type Registry struct {
	log   *slog.Logger
	mu    sync.RWMutex
	order []string
	tools map[string]*entry
}

// New creates an empty registry.
// If log is nil, logging is disabled.
func New(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{
		log:   log.With("component", "registry"),
		tools: make(map[string]*entry, 4),
	}
}

// Register adds a tool. It fails with *errors.DuplicateToolError when the
// name is taken.
func (r *Registry) Register(desc Descriptor, handler Handler) error {
	if desc.Name == "" {
		return fmt.Errorf("tool name required")
	}

	if handler == nil {
		return fmt.Errorf("tool %q: handler required", desc.Name)
	}

	schema := desc.InputSchema
	if schema == nil {
		schema = &jsonschema.Schema{Type: "object"}
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("tool %q: resolve input schema: %w", desc.Name, err)
	}

	tool := NewTool(desc.Name, desc.Description, schema)
	tool.Annotations = desc.Annotations

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[desc.Name]; exists {
		return &errors.DuplicateToolError{Name: desc.Name}
	}

	r.tools[desc.Name] = &entry{
		tool:     tool,
		schema:   schema,
		resolved: resolved,
		handler:  handler,
	}
	r.order = append(r.order, desc.Name)

	r.log.Debug("Registered tool", "tool", desc.Name)

	return nil
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Tools returns the MCP tool definitions in registration order.
func (r *Registry) Tools() []*mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}

	return tools
}

// List returns {name, description, inputSchema} for every tool in
// registration order, in the shape tools/list reports.
func (r *Registry) List() []map[string]any {
	tools := r.Tools()

	result := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		toolMap := map[string]any{
			"name":        t.Name,
			"description": t.Description,
		}

		// Convert InputSchema to map[string]any so it serializes exactly as registered
		if t.InputSchema != nil {
			schemaMap, err := schemaToMap(t.InputSchema)
			if err != nil {
				r.log.Warn("Omitting unencodable input schema", "tool", t.Name, "error", err)
			} else {
				toolMap["inputSchema"] = schemaMap
			}
		}

		result = append(result, toolMap)
	}

	return result
}

func schemaToMap(schema any) (map[string]any, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal input schema: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode input schema: %w", err)
	}

	return m, nil
}

// Invoke validates rawArgs against the named tool's schema and runs its handler.
//
// Errors:
//   - *errors.UnknownToolError if no tool has that name
//   - *errors.InvalidArgumentsError if validation fails
//   - *errors.ToolExecutionError if the handler fails
func (r *Registry) Invoke(ctx context.Context, name string, rawArgs json.RawMessage) (any, error) {
	r.mu.RLock()
	e, exists := r.tools[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &errors.UnknownToolError{Name: name}
	}

	args, err := DecodeArguments(rawArgs)
	if err != nil {
		return nil, &errors.InvalidArgumentsError{Tool: name, Err: err}
	}

	if err := validate(name, e.schema, e.resolved, args); err != nil {
		r.log.Debug("Tool arguments rejected", "tool", name, "error", err)

		return nil, err
	}

	result, err := e.handler(ctx, args)
	if err != nil {
		if invalid, ok := stderrors.AsType[*errors.InvalidArgumentsError](err); ok {
			if invalid.Tool == "" {
				invalid.Tool = name
			}

			return nil, invalid
		}

		r.log.Warn("Tool handler failed", "tool", name, "error", err)

		return nil, &errors.ToolExecutionError{Tool: name, Err: err}
	}

	return result, nil
}

// DecodeArguments parses tool arguments. Absent or null arguments decode to
// an empty object; anything other than a JSON object is rejected.
func DecodeArguments(raw json.RawMessage) (Arguments, error) {
	args := make(Arguments)

	if len(raw) == 0 || string(raw) == "null" {
		return args, nil
	}

	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}

	if args == nil {
		args = make(Arguments)
	}

	return args, nil
}
