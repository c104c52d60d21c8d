package config

import "fmt"

// InitPolicy controls how requests that arrive before initialize are handled.
type InitPolicy string

const (
	// InitPolicyAuto initializes the session implicitly on the first tool call.
	InitPolicyAuto InitPolicy = "auto"
	// InitPolicyStrict rejects tools/list and tools/call until initialize.
	InitPolicyStrict InitPolicy = "strict"
)

// NormalizeInitPolicy maps alias policy names to their canonical values.
//
// Aliases:
//   - "lenient" -> "auto"
//   - "require" -> "strict"
func NormalizeInitPolicy(policy string) string {
	switch policy {
	case "lenient":
		return string(InitPolicyAuto)
	case "require":
		return string(InitPolicyStrict)
	default:
		return policy
	}
}

// ParseInitPolicy normalizes policy and rejects unknown values.
func ParseInitPolicy(policy string) (InitPolicy, error) {
	switch p := InitPolicy(NormalizeInitPolicy(policy)); p {
	case InitPolicyAuto, InitPolicyStrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown init policy %q", policy)
	}
}
