package validators

import (
	"encoding/json"
	"math"
	"strings"
)

// MissingFields reports which of the named fields are absent or null in the
// decoded body, preserving the requested order.
func MissingFields(body map[string]any, fields ...string) []string {
	var missing []string
	for _, field := range fields {
		value, ok := body[field]
		if !ok || value == nil {
			missing = append(missing, field)
		}
	}
	return missing
}

// NumberValue extracts a JSON number from a decoded value. Strings and other
// types do not coerce.
func NumberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// IntValue extracts a JSON number that holds a whole value.
func IntValue(value any) (int64, bool) {
	f, ok := NumberValue(value)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// StringValue extracts a trimmed JSON string.
func StringValue(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}
