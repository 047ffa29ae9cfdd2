// Package operation serializes one designer operation into its workflow
// definition JSON: assembled inputs, connection reference, retry policy,
// run-after edges, recurrence, and recursively serialized child graphs.
package operation

import (
	"fmt"

	"github.com/logicdraft/logicdraft/engine/core"
)

// Manifest is the operation-manifest collaborator contract: the declarative
// schema describing an operation's input nesting, connection requirements,
// and child-graph slots.
type Manifest struct {
	// InputsLocation is the ordered key path the assembled inputs nest
	// under. Nil means the default ["inputs"]; an explicit empty slice
	// merges inputs at the definition root.
	InputsLocation []string `json:"inputsLocation,omitempty" yaml:"inputsLocation,omitempty"`
	// ConnectionReference declares how the operation's connection is keyed
	// into the definition.
	ConnectionReference *ConnectionReference `json:"connectionReference,omitempty" yaml:"connectionReference,omitempty"`
	// Recurrence declares the trigger recurrence type, when any.
	Recurrence *RecurrenceManifest `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	// AllowChildOperations marks container operations whose graph children
	// serialize beneath them.
	AllowChildOperations bool `json:"allowChildOperations,omitempty" yaml:"allowChildOperations,omitempty"`
	// ChildOperationsLocation is the key path child actions nest under.
	// Nil means the default ["actions"].
	ChildOperationsLocation []string `json:"childOperationsLocation,omitempty" yaml:"childOperationsLocation,omitempty"`
	// SubGraphDetails maps sub-graph slot names to their serialization
	// shape.
	SubGraphDetails map[string]SubGraphDetail `json:"subGraphDetails,omitempty" yaml:"subGraphDetails,omitempty"`
}

// ConnectionReference declares the definition shape of a connection.
type ConnectionReference struct {
	ReferenceKeyFormat core.ReferenceKeyFormat `json:"referenceKeyFormat" yaml:"referenceKeyFormat"`
}

// RecurrenceManifest declares a trigger's recurrence type.
type RecurrenceManifest struct {
	Type string `json:"type" yaml:"type"`
}

// SubGraphDetail describes one sub-graph slot of a container operation.
type SubGraphDetail struct {
	// IsAdditive slots hold one entry per subgraph node (e.g. switch
	// cases); non-additive slots hold exactly one (e.g. an else branch).
	IsAdditive bool `json:"isAdditive,omitempty" yaml:"isAdditive,omitempty"`
	// Location is the key path the slot serializes under. Nil means the
	// slot name itself.
	Location []string `json:"location,omitempty" yaml:"location,omitempty"`
	// Inputs are static inputs merged into every entry of the slot.
	Inputs map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// inputsLocation resolves the manifest nesting path for assembled inputs.
func (m *Manifest) inputsLocation() []string {
	if m == nil || m.InputsLocation == nil {
		return []string{"inputs"}
	}
	return m.InputsLocation
}

// childLocation resolves the nesting path for serialized child actions.
func (m *Manifest) childLocation() []string {
	if m == nil || m.ChildOperationsLocation == nil {
		return []string{"actions"}
	}
	return m.ChildOperationsLocation
}

// connectionValue produces the key and value carrying the operation's
// connection reference. The key lands inside the assembled inputs for the
// function format and at the definition root for service providers.
func (m *Manifest) connectionValue(op *Node) (key string, value any, inInputs bool, err error) {
	if m == nil || m.ConnectionReference == nil || op.ConnectionName == "" {
		return "", nil, false, nil
	}
	switch m.ConnectionReference.ReferenceKeyFormat {
	case core.ReferenceKeyFunction:
		return "function", map[string]any{"connectionName": op.ConnectionName}, true, nil
	case core.ReferenceKeyServiceProvider:
		cfg := map[string]any{"connectionName": op.ConnectionName}
		if op.ServiceProviderID != "" {
			cfg["serviceProviderId"] = op.ServiceProviderID
		}
		return "serviceProviderConfiguration", cfg, false, nil
	default:
		return "", nil, false, fmt.Errorf(
			"%w: %q",
			core.ErrUnsupportedReferenceKeyFormat,
			m.ConnectionReference.ReferenceKeyFormat,
		)
	}
}
