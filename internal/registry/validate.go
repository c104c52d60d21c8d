package registry

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
)

// validate applies defaults to args and checks them against schema.
//
// Required and type checks run first so the error names the field; the
// resolved schema then covers the remaining keywords (minimum, enum, ...).
func validate(tool string, schema *jsonschema.Schema, resolved *jsonschema.Resolved, args Arguments) error {
	names := slices.Sorted(maps.Keys(schema.Properties))

	for _, name := range names {
		prop := schema.Properties[name]
		if _, present := args[name]; present || prop == nil || len(prop.Default) == 0 {
			continue
		}

		var def any
		if err := json.Unmarshal(prop.Default, &def); err == nil {
			args[name] = def
		}
	}

	for _, name := range schema.Required {
		if _, present := args[name]; !present {
			return &errors.InvalidArgumentsError{
				Tool:   tool,
				Field:  name,
				Reason: "required field is missing",
			}
		}
	}

	for _, name := range names {
		value, present := args[name]
		if !present || schema.Properties[name] == nil {
			continue
		}

		want := schemaTypes(schema.Properties[name])
		if len(want) == 0 || slices.ContainsFunc(want, func(t string) bool { return matchesType(t, value) }) {
			continue
		}

		return &errors.InvalidArgumentsError{
			Tool:   tool,
			Field:  name,
			Reason: fmt.Sprintf("expected %s, got %s", strings.Join(want, " or "), jsonType(value)),
		}
	}

	if resolved != nil {
		if err := resolved.Validate(map[string]any(args)); err != nil {
			return &errors.InvalidArgumentsError{Tool: tool, Err: err}
		}
	}

	return nil
}

func schemaTypes(s *jsonschema.Schema) []string {
	if s.Type != "" {
		return []string{s.Type}
	}

	return s.Types
}

func matchesType(want string, v any) bool {
	switch want {
	case "string":
		_, ok := v.(string)
		return ok
	case "integer":
		f, ok := v.(float64)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	case "number":
		_, ok := v.(float64)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	case "null":
		return v == nil
	default:
		return true
	}
}

// jsonType names the JSON type of a decoded value.
func jsonType(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if x == math.Trunc(x) {
			return "integer"
		}

		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
