package registry

import "math"

// Arguments are decoded tool arguments. Numbers are float64, as produced by
// encoding/json.
type Arguments map[string]any

// String returns the string value of key, or "" if absent or not a string.
func (a Arguments) String(key string) string {
	s, _ := a[key].(string)

	return s
}

// Int returns the integral value of key. The second result is false if the
// key is absent or does not hold a whole number within the int32 range.
func (a Arguments) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}

		return int(v), true
	case int:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}

		return v, true
	default:
		return 0, false
	}
}
