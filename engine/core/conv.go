package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseAnyInt parses an integer from common forms. Returns false when
// unsupported.
func ParseAnyInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return int64(t), true
		}
		return 0, false
	case json.Number:
		if iv, err := t.Int64(); err == nil {
			return iv, true
		}
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
		if iv, err := strconv.ParseInt(t, 10, 64); err == nil {
			return iv, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ParseAnyFloat parses a float from common forms. Returns false when
// unsupported.
func ParseAnyFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		if fv, err := t.Float64(); err == nil {
			return fv, true
		}
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
		if fv, err := strconv.ParseFloat(t, 64); err == nil {
			return fv, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ParseAnyBool parses a boolean from common forms. Returns false when
// unsupported.
func ParseAnyBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.TrimSpace(t) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}
