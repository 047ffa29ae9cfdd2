package expression

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/logicdraft/logicdraft/engine/token"
)

// ToJSONText assembles a segment sequence in JSON-aware mode: literal runs
// are emitted verbatim (they are expected to carry JSON fragment text such as
// `{"Key": `), tokens are interpolated when the sequence holds more than one
// segment. When the assembled text parses as strict JSON it is reserialized
// in compact form; otherwise the text returns unmodified. The fallback is
// deliberate: free-form or malformed author input passes through rather than
// failing, so object/array parameters may yield non-JSON text.
func ToJSONText(segments []token.Segment) string {
	interpolate := len(segments) > 1
	var b strings.Builder
	var literals strings.Builder
	for _, seg := range segments {
		if seg.IsLiteral() {
			b.WriteString(seg.Value)
			literals.WriteString(seg.Value)
			continue
		}
		expr := seg.Value
		if !interpolate {
			b.WriteString("@" + expr)
			continue
		}
		// A token landing inside an open JSON string literal must keep the
		// surrounding quotes balanced, so its own double quotes escape.
		if insideQuotes(literals.String()) {
			expr = strings.ReplaceAll(expr, `"`, `\"`)
		}
		b.WriteString("@{" + expr + "}")
	}
	text := b.String()
	if compact, ok := reserializeJSON(text); ok {
		return compact
	}
	return text
}

// ToJSONValue parses rendered text as strict JSON, returning the parsed
// value on success and the text itself on failure.
func ToJSONValue(text string) any {
	value, ok := parseJSON(text)
	if !ok {
		return text
	}
	return value
}

// insideQuotes reports whether the literal text accumulated so far ends
// inside an unterminated double-quoted JSON string.
func insideQuotes(text string) bool {
	inside := false
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inside = !inside
		}
	}
	return inside
}

func parseJSON(text string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	// Trailing content past the first value means the text is not one JSON
	// document.
	if dec.More() {
		return nil, false
	}
	return value, true
}

func reserializeJSON(text string) (string, bool) {
	value, ok := parseJSON(text)
	if !ok {
		return "", false
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}
