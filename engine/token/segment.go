// Package token models the editable content of an operation parameter: an
// ordered sequence of segments, each either a run of literal text or a token
// referencing an upstream output, a raw author expression, or an
// expression-function call. Concatenating the segments end-to-end
// reconstructs the authored value.
package token

import (
	"github.com/logicdraft/logicdraft/engine/core"
)

// -----------------------------------------------------------------------------
// Segment
// -----------------------------------------------------------------------------

// SegmentKind discriminates literal runs from token references.
type SegmentKind string

const (
	KindLiteral SegmentKind = "literal"
	KindToken   SegmentKind = "token"
)

// Segment is one unit of a parameter value. For literals Value is the exact
// user-visible text; for tokens it is the canonical expression-language call
// text, e.g. "triggerBody()" or "body('A1')['Id']".
type Segment struct {
	ID    core.ID     `json:"id"              yaml:"id"`
	Kind  SegmentKind `json:"kind"            yaml:"kind"`
	Value string      `json:"value"           yaml:"value"`
	Token *Token      `json:"token,omitempty" yaml:"token,omitempty"`
}

// Literal builds a literal segment with a fresh ID.
func Literal(text string) Segment {
	return Segment{ID: core.MustNewID(), Kind: KindLiteral, Value: text}
}

// NewToken builds a token segment with a fresh ID.
func NewToken(expr string, tok *Token) Segment {
	return Segment{ID: core.MustNewID(), Kind: KindToken, Value: expr, Token: tok}
}

// IsLiteral reports whether the segment is a literal text run.
func (s Segment) IsLiteral() bool {
	return s.Kind == KindLiteral
}

// IsToken reports whether the segment is a token reference.
func (s Segment) IsToken() bool {
	return s.Kind == KindToken
}

// ValueType returns the token's declared type, or ValueTypeNone for literal
// segments and tokens without a declaration.
func (s Segment) ValueType() core.ValueType {
	if s.Token == nil {
		return core.ValueTypeNone
	}
	return s.Token.Type
}

// Format returns the token's declared wire format, if any.
func (s Segment) Format() core.ValueFormat {
	if s.Token == nil {
		return core.FormatNone
	}
	return s.Token.Format
}

// -----------------------------------------------------------------------------
// Token
// -----------------------------------------------------------------------------

// Token carries the structured metadata behind a token segment.
type Token struct {
	// Key is the stable identifier of the referenced output path.
	Key string `json:"key" yaml:"key"`
	// Category classifies the reference.
	Category core.TokenCategory `json:"category" yaml:"category"`
	// Type is the declared value type of the referenced output; may be
	// absent.
	Type core.ValueType `json:"type,omitempty" yaml:"type,omitempty"`
	// Format is an optional wire-format hint (binary/byte/datauri).
	Format core.ValueFormat `json:"format,omitempty" yaml:"format,omitempty"`
	// ActionName names the upstream operation owning the output, when known.
	ActionName string `json:"actionName,omitempty" yaml:"actionName,omitempty"`
	// Expression holds the parsed call tree for function-call tokens.
	Expression *Expression `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// Text concatenates a segment sequence back into the authored value. Segment
// order is significant; no segment reorders independently of its neighbors.
func Text(segments []Segment) string {
	var out []byte
	for _, seg := range segments {
		out = append(out, seg.Value...)
	}
	return string(out)
}

// IsEmpty reports whether the sequence carries no content at all.
func IsEmpty(segments []Segment) bool {
	for _, seg := range segments {
		if seg.IsToken() || seg.Value != "" {
			return false
		}
	}
	return true
}

// SingleToken returns the sole token segment when the sequence consists of
// exactly one token, which is the precondition for the bare @expr form.
func SingleToken(segments []Segment) (Segment, bool) {
	if len(segments) == 1 && segments[0].IsToken() {
		return segments[0], true
	}
	return Segment{}, false
}
