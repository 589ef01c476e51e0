package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceInt converts a loosely-typed JSON value into an integer. Booking
// forms submit price and duration either as numbers or numeric strings;
// anything unparseable coerces to 0 rather than failing the request.
func CoerceInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
		return 0
	default:
		return 0
	}
}

// IsBlank reports whether a loosely-typed JSON value counts as absent for
// presence validation: nil, an empty string, or whitespace only.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
