package core

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// ID is an opaque identifier. Segment IDs are unique within their owning
// sequence and stable across edits; they carry no semantic meaning beyond
// diffing, so equality is the only operation callers may rely on.
type ID string

// NewID generates a new random ID.
func NewID() (ID, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return ID(id.String()), nil
}

// MustNewID generates a new random ID and panics on failure.
func MustNewID() ID {
	id, err := NewID()
	if err != nil {
		panic(err)
	}
	return id
}

func (i ID) String() string {
	return string(i)
}

// IsZero reports whether the ID is empty.
func (i ID) IsZero() bool {
	return i == ""
}
