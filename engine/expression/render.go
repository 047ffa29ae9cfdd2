// Package expression converts ordered value-segment sequences into the
// textual expression-language form persisted inside workflow definitions: it
// decides between the bare @expr and interpolated @{expr} shapes, applies
// format casts from a fixed conversion table, wraps path parameters with
// encodeURIComponent per their encode policy, and assembles JSON-typed values
// with a literal-text fallback when the result does not parse.
package expression

import (
	"encoding/json"
	"strings"

	"github.com/logicdraft/logicdraft/engine/core"
	"github.com/logicdraft/logicdraft/engine/token"
)

// Options drives one rendering call. The zero value renders a plain
// string-typed value with no casting or encoding.
type Options struct {
	// Type is the destination parameter's declared type.
	Type core.ValueType
	// Format is the destination's casting target format.
	Format core.ValueFormat
	// Location is where the parameter travels; encode policies only apply
	// to path-located parameters.
	Location core.ParameterLocation
	// Encode is the URL-encoding policy.
	Encode core.EncodePolicy
	// Required controls empty-value semantics upstream; an empty optional
	// path parameter renders to "" without wrappers.
	Required bool
	// ForDefinition marks definition-time serialization, which prefers
	// PreservedValue when present. Validation and display contexts leave it
	// unset.
	ForDefinition bool
	// PreservedValue is the original authored value to emit verbatim instead
	// of reconstructing from segments.
	PreservedValue any
}

// Render converts a segment sequence to its expression-language text.
func Render(segments []token.Segment, opts Options) string {
	if opts.ForDefinition && opts.PreservedValue != nil {
		return preservedValueText(opts.PreservedValue)
	}
	// Empty values short-circuit every cast and encode wrapper.
	if token.IsEmpty(segments) {
		return ""
	}
	if count := encodeCount(opts); count > 0 {
		return renderEncoded(segments, opts, count)
	}
	if st, ok := token.SingleToken(segments); ok {
		return renderSingleToken(st, opts)
	}
	if opts.Format == core.FormatDataURI {
		return "@{" + foldToDataURI(expressionParts(segments)) + "}"
	}
	return renderInterpolated(segments, opts)
}

// preservedValueText returns the preserved value as its literal string form,
// or its JSON form for structured values.
func preservedValueText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func encodeCount(opts Options) int {
	if opts.Location != core.LocationPath {
		return 0
	}
	return opts.Encode.Count()
}

// renderSingleToken handles the sole-token sequence, the only shape where the
// bare @expr form is legal: the token must be string-typed and any applied
// cast must not force interpolation.
func renderSingleToken(st token.Segment, opts Options) string {
	expr, applied, interpolate := CastExpression(st.Value, st.Format(), opts.Format)
	if st.ValueType().IsString() && (!applied || !interpolate) {
		return "@" + expr
	}
	return "@{" + expr + "}"
}

// renderInterpolated emits a mixed sequence: literal runs as-is, every token
// wrapped as @{expr} with its own cast. Adjacent parts join by textual
// adjacency, never by an explicit concat call.
func renderInterpolated(segments []token.Segment, opts Options) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.IsLiteral() {
			b.WriteString(seg.Value)
			continue
		}
		expr, _, _ := CastExpression(seg.Value, seg.Format(), opts.Format)
		b.WriteString("@{")
		b.WriteString(expr)
		b.WriteString("}")
	}
	return b.String()
}

// renderEncoded wraps the whole assembled expression in count
// encodeURIComponent calls. Multiple parts combine through an explicit concat
// so the wrapper receives a single argument.
func renderEncoded(segments []token.Segment, opts Options, count int) string {
	parts := expressionParts(segments)
	inner := parts[0]
	if len(parts) > 1 {
		inner = "concat(" + strings.Join(parts, ", ") + ")"
	}
	if opts.Format != core.FormatNone {
		if st, ok := token.SingleToken(segments); ok {
			inner, _, _ = CastExpression(st.Value, st.Format(), opts.Format)
		}
	}
	for range count {
		inner = "encodeURIComponent(" + inner + ")"
	}
	return "@{" + inner + "}"
}

// expressionParts converts segments to expression arguments: literal runs as
// quoted string literals, tokens as their raw call text.
func expressionParts(segments []token.Segment) []string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.IsLiteral() {
			parts = append(parts, quoteLiteral(seg.Value))
			continue
		}
		parts = append(parts, seg.Value)
	}
	return parts
}
