package core

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// DeepCopyValue returns a deep copy of a JSON-compatible value tree. The
// serializer never returns containers that alias caller-owned structures, so
// any value taken from an input parameter is copied before assignment.
func DeepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	return deepcopy.Copy(v)
}

// DeepCopyMap returns a deep copy of the provided map[string]any.
//
// If the underlying copy cannot be asserted back to map[string]any an error
// is returned.
func DeepCopyMap(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	copied, ok := deepcopy.Copy(m).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy map")
	}
	return copied, nil
}
