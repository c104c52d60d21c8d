package registry

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Property declares one input parameter for ObjectSchema.
type Property struct {
	Name        string
	Type        string // JSON Schema type: "string", "integer", "number", "boolean", "object", "array"
	Description string
	Required    bool
	Default     any      // nil means no default
	Minimum     *float64 // numeric types only
}

// ObjectSchema builds an object schema from parameter declarations.
// Required names are listed in declaration order.
func ObjectSchema(props ...Property) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(props)),
	}

	for _, p := range props {
		prop := &jsonschema.Schema{
			Type:        p.Type,
			Description: p.Description,
			Minimum:     p.Minimum,
		}

		if p.Default != nil {
			if data, err := json.Marshal(p.Default); err == nil {
				prop.Default = data
			}
		}

		schema.Properties[p.Name] = prop

		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	return schema
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// Float returns a pointer to f, for schema bounds.
func Float(f float64) *float64 {
	return &f
}
