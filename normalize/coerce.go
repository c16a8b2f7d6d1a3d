// Package normalize converts raw, untrusted telemetry payloads into the
// safe domain shapes in model. Every function here is pure and total:
// malformed input produces a placeholder value, never an error or a panic,
// and normalizing an already-normalized value is a no-op.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Dash is the placeholder shown for absent display fields.
const Dash = "-"

// displayString coerces an arbitrary decoded JSON value into a display
// string, substituting Dash for absent or empty values. Structured values
// are serialized flat rather than dropped.
func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return Dash
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Dash
		}
		return s
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Dash
		}
		return string(b)
	}
}

// isScalar reports whether a decoded JSON value is a plain scalar.
func isScalar(v any) bool {
	switch v.(type) {
	case string, float64, int, bool, json.Number:
		return true
	}
	return false
}
