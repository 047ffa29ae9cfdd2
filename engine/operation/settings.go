package operation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/logicdraft/logicdraft/engine/core"
)

// Settings is the per-operation settings bag: read-only serialization input
// collected by the designer UI.
type Settings struct {
	RetryPolicy *RetryPolicy `json:"retryPolicy,omitempty" yaml:"retryPolicy,omitempty"`
	// RunAfter maps predecessor action ids to the statuses that release this
	// action.
	RunAfter map[string][]core.RunAfterStatus `json:"runAfter,omitempty" yaml:"runAfter,omitempty"`
	// Correlation carries the client tracking id for trigger correlation.
	Correlation *Correlation `json:"correlation,omitempty" yaml:"correlation,omitempty"`
	// TriggerConditions are expression strings gating a trigger's firing.
	TriggerConditions []string `json:"triggerConditions,omitempty" yaml:"triggerConditions,omitempty"`
	// OperationOptions toggles named runtime options on or off.
	OperationOptions map[string]bool `json:"operationOptions,omitempty" yaml:"operationOptions,omitempty"`
	// Recurrence configures the trigger schedule when the manifest declares
	// a recurrence type.
	Recurrence *Recurrence `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
}

// RetryPolicy is runtime retry configuration carried as definition data.
type RetryPolicy struct {
	Type            core.RetryPolicyType `json:"type"                      yaml:"type"`
	Count           int                  `json:"count,omitempty"           yaml:"count,omitempty"`
	Interval        string               `json:"interval,omitempty"        yaml:"interval,omitempty"`
	MinimumInterval string               `json:"minimumInterval,omitempty" yaml:"minimumInterval,omitempty"`
	MaximumInterval string               `json:"maximumInterval,omitempty" yaml:"maximumInterval,omitempty"`
}

// Correlation carries tracking metadata emitted on the definition.
type Correlation struct {
	ClientTrackingID string `json:"clientTrackingId,omitempty" yaml:"clientTrackingId,omitempty"`
}

// Recurrence is the trigger schedule.
type Recurrence struct {
	Frequency string `json:"frequency"           yaml:"frequency"`
	Interval  int    `json:"interval"            yaml:"interval"`
	StartTime string `json:"startTime,omitempty" yaml:"startTime,omitempty"`
}

// serializeRetryPolicy renders the retry policy value for the definition.
// Unrecognized types are fatal: the designer cannot invent semantics for
// them.
func serializeRetryPolicy(policy *RetryPolicy) (map[string]any, error) {
	if policy == nil {
		return nil, nil
	}
	switch policy.Type {
	case core.RetryPolicyNone:
		return map[string]any{"type": string(core.RetryPolicyNone)}, nil
	case core.RetryPolicyFixed:
		return map[string]any{
			"type":     string(core.RetryPolicyFixed),
			"count":    policy.Count,
			"interval": policy.Interval,
		}, nil
	case core.RetryPolicyExponential:
		out := map[string]any{
			"type":     string(core.RetryPolicyExponential),
			"count":    policy.Count,
			"interval": policy.Interval,
		}
		if policy.MinimumInterval != "" {
			out["minimumInterval"] = policy.MinimumInterval
		}
		if policy.MaximumInterval != "" {
			out["maximumInterval"] = policy.MaximumInterval
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedRetryPolicyType, policy.Type)
	}
}

// serializeRunAfter renders the predecessor-status map. Predecessors with no
// statuses default to Succeeded.
func serializeRunAfter(runAfter map[string][]core.RunAfterStatus) map[string]any {
	if len(runAfter) == 0 {
		return nil
	}
	out := make(map[string]any, len(runAfter))
	for id, statuses := range runAfter {
		if len(statuses) == 0 {
			statuses = []core.RunAfterStatus{core.RunAfterSucceeded}
		}
		list := make([]any, len(statuses))
		for i, s := range statuses {
			list[i] = string(s)
		}
		out[id] = list
	}
	return out
}

// serializeOperationOptions joins the enabled option names with comma and
// space. Returns "" when nothing is toggled on; the key is then omitted.
func serializeOperationOptions(options map[string]bool) string {
	if len(options) == 0 {
		return ""
	}
	enabled := make([]string, 0, len(options))
	for name, on := range options {
		if on {
			enabled = append(enabled, name)
		}
	}
	sort.Strings(enabled)
	return strings.Join(enabled, ", ")
}

// serializeConditions renders trigger conditions as expression objects.
func serializeConditions(conditions []string) []any {
	if len(conditions) == 0 {
		return nil
	}
	out := make([]any, len(conditions))
	for i, expr := range conditions {
		out[i] = map[string]any{"expression": expr}
	}
	return out
}
