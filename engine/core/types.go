package core

// -----------------------------------------------------------------------------
// Value Type
// -----------------------------------------------------------------------------

// ValueType is the declared data type of a parameter or token value.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeInteger ValueType = "integer"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeObject  ValueType = "object"
	ValueTypeArray   ValueType = "array"
	ValueTypeFile    ValueType = "file"
	ValueTypeAny     ValueType = "any"
	// ValueTypeNone marks an absent declaration; treated as non-string by the
	// interpolation rules.
	ValueTypeNone ValueType = ""
)

func (v ValueType) String() string {
	return string(v)
}

// IsString reports whether the declared type is exactly string. Only
// string-typed lone tokens may render in the bare @expr form.
func (v ValueType) IsString() bool {
	return v == ValueTypeString
}

// IsStructured reports whether values of this type serialize through the
// JSON-aware assembly path rather than plain string rendering.
func (v ValueType) IsStructured() bool {
	return v == ValueTypeObject || v == ValueTypeArray || v == ValueTypeAny
}

// -----------------------------------------------------------------------------
// Value Format
// -----------------------------------------------------------------------------

// ValueFormat is the wire encoding of a string-typed value. Casting functions
// convert between a token's source format and its destination's format.
type ValueFormat string

const (
	FormatNone    ValueFormat = ""
	FormatBinary  ValueFormat = "binary"
	FormatByte    ValueFormat = "byte"
	FormatDataURI ValueFormat = "datauri"
)

func (f ValueFormat) String() string {
	return string(f)
}

// -----------------------------------------------------------------------------
// Parameter Location
// -----------------------------------------------------------------------------

// ParameterLocation identifies where a parameter travels in the underlying
// request. URL-encode policies only apply to path-located parameters.
type ParameterLocation string

const (
	LocationPath     ParameterLocation = "path"
	LocationQuery    ParameterLocation = "query"
	LocationHeader   ParameterLocation = "header"
	LocationBody     ParameterLocation = "body"
	LocationFormData ParameterLocation = "formData"
)

// -----------------------------------------------------------------------------
// Encode Policy
// -----------------------------------------------------------------------------

// EncodePolicy controls how many encodeURIComponent wrappers a path-located
// parameter value receives.
type EncodePolicy string

const (
	EncodeNone   EncodePolicy = ""
	EncodeSingle EncodePolicy = "single"
	EncodeDouble EncodePolicy = "double"
)

// Count returns the number of encodeURIComponent wrappers the policy implies.
func (e EncodePolicy) Count() int {
	switch e {
	case EncodeSingle:
		return 1
	case EncodeDouble:
		return 2
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------
// Token Category
// -----------------------------------------------------------------------------

// TokenCategory classifies what a token segment references.
type TokenCategory string

const (
	// TokenOutputs references an upstream operation output.
	TokenOutputs TokenCategory = "outputs"
	// TokenExpression is a raw expression typed by the author.
	TokenExpression TokenCategory = "expression"
	// TokenFunction is a parsed expression-function call.
	TokenFunction TokenCategory = "function"
)

// -----------------------------------------------------------------------------
// Connection Reference Key Format
// -----------------------------------------------------------------------------

// ReferenceKeyFormat is the manifest-declared shape of an operation's
// connection reference.
type ReferenceKeyFormat string

const (
	ReferenceKeyFunction        ReferenceKeyFormat = "function"
	ReferenceKeyServiceProvider ReferenceKeyFormat = "serviceprovider"
)

// -----------------------------------------------------------------------------
// Retry Policy
// -----------------------------------------------------------------------------

// RetryPolicyType enumerates the retry strategies a definition may carry.
// Retries are workflow-runtime data, not serializer behavior.
type RetryPolicyType string

const (
	RetryPolicyNone        RetryPolicyType = "none"
	RetryPolicyFixed       RetryPolicyType = "fixed"
	RetryPolicyExponential RetryPolicyType = "exponential"
)

// -----------------------------------------------------------------------------
// Run After Status
// -----------------------------------------------------------------------------

// RunAfterStatus is a predecessor terminal state gating an action's start.
type RunAfterStatus string

const (
	RunAfterSucceeded RunAfterStatus = "Succeeded"
	RunAfterFailed    RunAfterStatus = "Failed"
	RunAfterSkipped   RunAfterStatus = "Skipped"
	RunAfterTimedOut  RunAfterStatus = "TimedOut"
)
