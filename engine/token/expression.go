package token

// -----------------------------------------------------------------------------
// Expression Tree
// -----------------------------------------------------------------------------

// ExpressionKind discriminates the nodes of a parsed function-call tree.
type ExpressionKind string

const (
	ExprLiteral  ExpressionKind = "literal"
	ExprFunction ExpressionKind = "function"
)

// Expression is one node of the parsed call tree carried by function-call
// tokens: either a literal argument or a nested function call. Start and End
// are source offsets into the original text; they are metadata only and play
// no part in rendering.
type Expression struct {
	Kind ExpressionKind `json:"kind"               yaml:"kind"`
	// Value holds the literal text for ExprLiteral nodes.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	// Name holds the function name for ExprFunction nodes.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Arguments are the ordered call arguments for ExprFunction nodes.
	Arguments []*Expression `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Start     int           `json:"start,omitempty"     yaml:"start,omitempty"`
	End       int           `json:"end,omitempty"       yaml:"end,omitempty"`
}

// LiteralExpr builds a literal argument node.
func LiteralExpr(value string) *Expression {
	return &Expression{Kind: ExprLiteral, Value: value}
}

// FunctionExpr builds a function-call node.
func FunctionExpr(name string, args ...*Expression) *Expression {
	return &Expression{Kind: ExprFunction, Name: name, Arguments: args}
}
