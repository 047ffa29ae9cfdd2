package core

import "errors"

// Sentinel errors surfaced by the serialization engine. Wrap with
// fmt.Errorf("...: %w", err) so callers can match via errors.Is.
var (
	// ErrMalformedPath reports a path string that strict parsing rejected.
	// The lenient parser degrades instead of returning this; it exists for
	// callers that opt into strict validation.
	ErrMalformedPath = errors.New("malformed property path")

	// ErrUnsupportedReferenceKeyFormat reports a manifest connection
	// reference format outside the known enum. Fatal: the definition shape
	// cannot be inferred.
	ErrUnsupportedReferenceKeyFormat = errors.New("unsupported connection reference key format")

	// ErrUnsupportedRetryPolicyType reports an unrecognized retry policy
	// type in the operation settings. Fatal.
	ErrUnsupportedRetryPolicyType = errors.New("unsupported retry policy type")
)
