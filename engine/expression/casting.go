package expression

import (
	"strings"

	"github.com/logicdraft/logicdraft/engine/core"
)

// -----------------------------------------------------------------------------
// Casting Table
// -----------------------------------------------------------------------------

// formatPair keys the casting table on (source format, target format).
type formatPair struct {
	src core.ValueFormat
	dst core.ValueFormat
}

// castRule wraps a token's inner expression with the conversion call for its
// format pair. Rules producing text embedded in strings (byte, datauri) force
// interpolation; rules producing raw binary content stay bare-capable.
type castRule struct {
	wrap        func(expr string) string
	interpolate bool
}

// castTable is the exhaustive (source, target) conversion map. Identical
// formats never appear: matching formats cast nothing.
var castTable = map[formatPair]castRule{
	{core.FormatByte, core.FormatBinary}: {
		wrap: func(expr string) string { return "base64ToBinary(" + expr + ")" },
	},
	{core.FormatBinary, core.FormatByte}: {
		wrap:        func(expr string) string { return "base64(" + expr + ")" },
		interpolate: true,
	},
	{core.FormatDataURI, core.FormatBinary}: {
		wrap: func(expr string) string { return "decodeDataUri(" + expr + ")" },
	},
	{core.FormatDataURI, core.FormatByte}: {
		wrap:        func(expr string) string { return "base64(decodeDataUri(" + expr + "))" },
		interpolate: true,
	},
	{core.FormatBinary, core.FormatDataURI}: {
		wrap:        func(expr string) string { return "concat('data:;base64,', base64(" + expr + "))" },
		interpolate: true,
	},
	{core.FormatNone, core.FormatDataURI}: {
		wrap:        func(expr string) string { return "concat('data:;base64,', base64(" + expr + "))" },
		interpolate: true,
	},
	{core.FormatByte, core.FormatDataURI}: {
		wrap:        func(expr string) string { return "concat('data:;base64,', " + expr + ")" },
		interpolate: true,
	},
}

// CastExpression wraps expr with the conversion for the (src, dst) format
// pair. It returns the wrapped expression, whether a cast applied, and
// whether the cast's result must be string-interpolated.
func CastExpression(expr string, src, dst core.ValueFormat) (string, bool, bool) {
	if src == dst || dst == core.FormatNone {
		return expr, false, false
	}
	rule, ok := castTable[formatPair{src: src, dst: dst}]
	if !ok {
		return expr, false, false
	}
	return rule.wrap(expr), true, rule.interpolate
}

// foldToDataURI builds the multi-segment composition targeting the datauri
// format: the parts concatenate first, then URL-encode into a data URI.
func foldToDataURI(parts []string) string {
	inner := parts[0]
	if len(parts) > 1 {
		inner = "concat(" + strings.Join(parts, ", ") + ")"
	}
	return "concat('data:,', encodeURIComponent(" + inner + "))"
}

// quoteLiteral renders text as an expression-language string literal. Single
// quotes escape by doubling.
func quoteLiteral(text string) string {
	return "'" + strings.ReplaceAll(text, "'", "''") + "'"
}
