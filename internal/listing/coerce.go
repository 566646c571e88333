package listing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Scalar parsing for raw query parameters. All of these degrade to
// "absent" on bad input instead of failing the request.

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseBool accepts only the literals "true" and "false", case-insensitively.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func validLat(v float64) bool { return v >= -90 && v <= 90 }

func validLng(v float64) bool { return v >= -180 && v <= 180 }

// Loose coercion for values arriving from JSON payloads, feature bags and
// database drivers. Numeric columns may surface as float64, json.Number,
// string or []byte depending on the source; these normalize all of them.

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		return parseFloat(n)
	case []byte:
		return parseFloat(string(n))
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		return int(f), err == nil
	case string:
		if i, ok := parseInt(n); ok {
			return i, true
		}
		if f, ok := parseFloat(n); ok {
			return int(f), true
		}
	case []byte:
		return toInt(string(n))
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		return parseBool(b)
	}
	return false, false
}
