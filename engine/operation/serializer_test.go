package operation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicdraft/logicdraft/engine/core"
	"github.com/logicdraft/logicdraft/engine/parameter"
	"github.com/logicdraft/logicdraft/engine/token"
)

// memGraph is an in-memory Graph and ManifestProvider for tests.
type memGraph struct {
	nodes     map[string]*Node
	children  map[string][]*Node
	manifests map[string]*Manifest
}

func newMemGraph() *memGraph {
	return &memGraph{
		nodes:     make(map[string]*Node),
		children:  make(map[string][]*Node),
		manifests: make(map[string]*Manifest),
	}
}

func (g *memGraph) add(node *Node, manifest *Manifest, parentID string) {
	g.nodes[node.ID] = node
	g.manifests[node.ID] = manifest
	if parentID != "" {
		g.children[parentID] = append(g.children[parentID], node)
	}
}

func (g *memGraph) Node(id string) (*Node, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("unknown node %s", id)
	}
	return node, nil
}

func (g *memGraph) Children(id string) ([]*Node, error) {
	return g.children[id], nil
}

func (g *memGraph) Manifest(_ context.Context, id string) (*Manifest, error) {
	return g.manifests[id], nil
}

func stringParam(key, text string) *parameter.Parameter {
	return &parameter.Parameter{
		Key:   key,
		Type:  core.ValueTypeString,
		Value: []token.Segment{token.Literal(text)},
	}
}

func TestSerialize_Basics(t *testing.T) {
	t.Run("Should emit type, kind, and nested inputs", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:   "Http_request",
			Type: "Http",
			Kind: "Http",
			Parameters: []*parameter.Parameter{
				stringParam("inputs.$.method", "GET"),
				stringParam("inputs.$.uri", "https://example.com"),
			},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Http_request")
		require.NoError(t, err)
		assert.Equal(t, "Http", def["type"])
		assert.Equal(t, "Http", def["kind"])
		inputs, ok := def["inputs"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "GET", inputs["method"])
		assert.Equal(t, "https://example.com", inputs["uri"])
	})
	t.Run("Should honor a custom inputs location", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:         "Compose",
			Type:       "Compose",
			Parameters: []*parameter.Parameter{stringParam("inputs.$.value", "x")},
		}, &Manifest{InputsLocation: []string{"inputs", "parameters"}}, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Compose")
		require.NoError(t, err)
		inputs := def["inputs"].(map[string]any)
		params := inputs["parameters"].(map[string]any)
		assert.Equal(t, "x", params["value"])
	})
	t.Run("Should merge inputs at the root for an empty location", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:         "Recurrence_trigger",
			Type:       "Recurrence",
			Parameters: []*parameter.Parameter{stringParam("inputs.$.note", "n")},
		}, &Manifest{InputsLocation: []string{}}, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Recurrence_trigger")
		require.NoError(t, err)
		assert.Equal(t, "n", def["note"])
		assert.NotContains(t, def, "inputs")
	})
	t.Run("Should omit inputs when nothing serializes", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Empty", Type: "Compose"}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Empty")
		require.NoError(t, err)
		assert.NotContains(t, def, "inputs")
	})
}

func TestSerialize_Settings(t *testing.T) {
	t.Run("Should serialize run-after edges with default statuses", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:   "Second",
			Type: "Compose",
			Settings: Settings{RunAfter: map[string][]core.RunAfterStatus{
				"First":  nil,
				"Ackers": {core.RunAfterFailed, core.RunAfterTimedOut},
			}},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Second")
		require.NoError(t, err)
		runAfter := def["runAfter"].(map[string]any)
		assert.Equal(t, []any{"Succeeded"}, runAfter["First"])
		assert.Equal(t, []any{"Failed", "TimedOut"}, runAfter["Ackers"])
	})
	t.Run("Should suppress run-after on triggers", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:        "When_triggered",
			Type:      "Request",
			IsTrigger: true,
			Settings:  Settings{RunAfter: map[string][]core.RunAfterStatus{"X": nil}},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "When_triggered")
		require.NoError(t, err)
		assert.NotContains(t, def, "runAfter")
	})
	t.Run("Should join enabled operation options", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:   "Op",
			Type: "Http",
			Settings: Settings{OperationOptions: map[string]bool{
				"Asynchronous":            true,
				"DisableAsyncPattern":     false,
				"SuppressWorkflowHeaders": true,
			}},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Op")
		require.NoError(t, err)
		assert.Equal(t, "Asynchronous, SuppressWorkflowHeaders", def["operationOptions"])
	})
	t.Run("Should omit operation options when none are enabled", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:       "Op",
			Type:     "Http",
			Settings: Settings{OperationOptions: map[string]bool{"Asynchronous": false}},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Op")
		require.NoError(t, err)
		assert.NotContains(t, def, "operationOptions")
	})
	t.Run("Should place the retry policy inside inputs", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:         "Op",
			Type:       "Http",
			Parameters: []*parameter.Parameter{stringParam("inputs.$.uri", "u")},
			Settings: Settings{RetryPolicy: &RetryPolicy{
				Type:     core.RetryPolicyFixed,
				Count:    3,
				Interval: "PT20S",
			}},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Op")
		require.NoError(t, err)
		inputs := def["inputs"].(map[string]any)
		retry := inputs["retryPolicy"].(map[string]any)
		assert.Equal(t, "fixed", retry["type"])
		assert.Equal(t, 3, retry["count"])
		assert.Equal(t, "PT20S", retry["interval"])
	})
	t.Run("Should fail when nested settings meet non-object inputs", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:         "Op",
			Type:       "Http",
			Parameters: []*parameter.Parameter{stringParam("inputs.$", "whole-scalar")},
			Settings: Settings{RetryPolicy: &RetryPolicy{
				Type:     core.RetryPolicyFixed,
				Count:    2,
				Interval: "PT10S",
			}},
		}, nil, "")
		_, err := NewSerializer(g, g).Serialize(context.Background(), "Op")
		assert.ErrorContains(t, err, "non-object")
	})
	t.Run("Should fail when a function connection meets scalar inputs", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:             "Fn",
			Type:           "Function",
			ConnectionName: "azureFunc",
			Parameters:     []*parameter.Parameter{stringParam("inputs.$", "whole-scalar")},
		}, &Manifest{ConnectionReference: &ConnectionReference{
			ReferenceKeyFormat: core.ReferenceKeyFunction,
		}}, "")
		_, err := NewSerializer(g, g).Serialize(context.Background(), "Fn")
		assert.ErrorContains(t, err, "non-object")
	})
	t.Run("Should attach the retry policy when no inputs serialize", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:   "Op",
			Type: "Http",
			Settings: Settings{RetryPolicy: &RetryPolicy{
				Type:     core.RetryPolicyFixed,
				Count:    2,
				Interval: "PT10S",
			}},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Op")
		require.NoError(t, err)
		inputs := def["inputs"].(map[string]any)
		retry := inputs["retryPolicy"].(map[string]any)
		assert.Equal(t, "fixed", retry["type"])
	})
	t.Run("Should fail on an unknown retry policy type", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:       "Op",
			Type:     "Http",
			Settings: Settings{RetryPolicy: &RetryPolicy{Type: "jittered"}},
		}, nil, "")
		_, err := NewSerializer(g, g).Serialize(context.Background(), "Op")
		assert.ErrorIs(t, err, core.ErrUnsupportedRetryPolicyType)
	})
	t.Run("Should serialize trigger conditions and correlation", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:        "Trigger",
			Type:      "Request",
			IsTrigger: true,
			Settings: Settings{
				TriggerConditions: []string{"@greater(triggerBody()['n'], 1)"},
				Correlation:       &Correlation{ClientTrackingID: "track-1"},
			},
		}, nil, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Trigger")
		require.NoError(t, err)
		conditions := def["conditions"].([]any)
		require.Len(t, conditions, 1)
		assert.Equal(
			t,
			map[string]any{"expression": "@greater(triggerBody()['n'], 1)"},
			conditions[0],
		)
		correlation := def["correlation"].(map[string]any)
		assert.Equal(t, "track-1", correlation["clientTrackingId"])
	})
	t.Run("Should emit recurrence when the manifest declares it", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:        "Schedule",
			Type:      "Recurrence",
			IsTrigger: true,
			Settings:  Settings{Recurrence: &Recurrence{Frequency: "Minute", Interval: 15}},
		}, &Manifest{Recurrence: &RecurrenceManifest{Type: "Recurrence"}}, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Schedule")
		require.NoError(t, err)
		recurrence := def["recurrence"].(map[string]any)
		assert.Equal(t, "Minute", recurrence["frequency"])
		assert.Equal(t, 15, recurrence["interval"])
	})
}

func TestSerialize_Connections(t *testing.T) {
	t.Run("Should key function connections inside inputs", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:             "Fn",
			Type:           "Function",
			ConnectionName: "azureFunc",
			Parameters:     []*parameter.Parameter{stringParam("inputs.$.body", "b")},
		}, &Manifest{ConnectionReference: &ConnectionReference{
			ReferenceKeyFormat: core.ReferenceKeyFunction,
		}}, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Fn")
		require.NoError(t, err)
		inputs := def["inputs"].(map[string]any)
		fn := inputs["function"].(map[string]any)
		assert.Equal(t, "azureFunc", fn["connectionName"])
	})
	t.Run("Should key service provider connections at the root", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:                "Sql",
			Type:              "ServiceProvider",
			ConnectionName:    "sql-1",
			ServiceProviderID: "/serviceProviders/sql",
		}, &Manifest{ConnectionReference: &ConnectionReference{
			ReferenceKeyFormat: core.ReferenceKeyServiceProvider,
		}}, "")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Sql")
		require.NoError(t, err)
		cfg := def["serviceProviderConfiguration"].(map[string]any)
		assert.Equal(t, "sql-1", cfg["connectionName"])
		assert.Equal(t, "/serviceProviders/sql", cfg["serviceProviderId"])
	})
	t.Run("Should fail on an unsupported reference key format", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{
			ID:             "Odd",
			Type:           "Odd",
			ConnectionName: "conn",
		}, &Manifest{ConnectionReference: &ConnectionReference{
			ReferenceKeyFormat: "managedIdentity",
		}}, "")
		_, err := NewSerializer(g, g).Serialize(context.Background(), "Odd")
		assert.ErrorIs(t, err, core.ErrUnsupportedReferenceKeyFormat)
	})
}

func TestSerialize_ChildGraphs(t *testing.T) {
	t.Run("Should serialize child operations under the child location", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Scope_1", Type: "Scope"}, &Manifest{AllowChildOperations: true}, "")
		g.add(&Node{
			ID:         "Inner",
			Type:       "Compose",
			Parameters: []*parameter.Parameter{stringParam("inputs.$.value", "v")},
		}, nil, "Scope_1")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Scope_1")
		require.NoError(t, err)
		actions := def["actions"].(map[string]any)
		inner := actions["Inner"].(map[string]any)
		assert.Equal(t, "Compose", inner["type"])
	})
	t.Run("Should default unclassed children to operations", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Scope_0", Type: "Scope"}, &Manifest{AllowChildOperations: true}, "")
		child := &Node{ID: "Plain", Type: "Compose"}
		require.Empty(t, child.Class)
		g.add(child, nil, "Scope_0")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Scope_0")
		require.NoError(t, err)
		actions, ok := def["actions"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, actions, "Plain")
	})
	t.Run("Should flatten graph-class children into the action map", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Until_1", Type: "Until"}, &Manifest{AllowChildOperations: true}, "")
		body := &Node{ID: "Until_1-body", Class: ClassGraph}
		g.add(body, nil, "Until_1")
		g.add(&Node{ID: "Step", Type: "Compose"}, nil, "Until_1-body")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Until_1")
		require.NoError(t, err)
		actions := def["actions"].(map[string]any)
		require.Contains(t, actions, "Step")
	})
	t.Run("Should serialize additive subgraph slots one entry per node", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Switch_1", Type: "Switch"}, &Manifest{
			AllowChildOperations: true,
			SubGraphDetails: map[string]SubGraphDetail{
				"cases": {IsAdditive: true},
			},
		}, "")
		caseA := &Node{
			ID:         "Case_A",
			Class:      ClassSubgraph,
			Slot:       "cases",
			Parameters: []*parameter.Parameter{stringParam("inputs.$.case", "A")},
		}
		g.add(caseA, nil, "Switch_1")
		g.add(&Node{ID: "Case_A_action", Type: "Compose"}, nil, "Case_A")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Switch_1")
		require.NoError(t, err)
		cases := def["cases"].(map[string]any)
		entry := cases["Case_A"].(map[string]any)
		assert.Equal(t, "A", entry["case"])
		actions := entry["actions"].(map[string]any)
		assert.Contains(t, actions, "Case_A_action")
	})
	t.Run("Should place single subgraph slots at their location", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "If_1", Type: "If"}, &Manifest{
			AllowChildOperations: true,
			SubGraphDetails: map[string]SubGraphDetail{
				"else": {Location: []string{"else"}},
			},
		}, "")
		elseNode := &Node{ID: "If_1-else", Class: ClassSubgraph, Slot: "else"}
		g.add(elseNode, nil, "If_1")
		g.add(&Node{ID: "Else_action", Type: "Compose"}, nil, "If_1-else")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "If_1")
		require.NoError(t, err)
		elseBody := def["else"].(map[string]any)
		actions := elseBody["actions"].(map[string]any)
		assert.Contains(t, actions, "Else_action")
	})
	t.Run("Should merge slot static inputs over subgraph values", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Switch_2", Type: "Switch"}, &Manifest{
			AllowChildOperations: true,
			SubGraphDetails: map[string]SubGraphDetail{
				"cases": {IsAdditive: true, Inputs: map[string]any{"kind": "case"}},
			},
		}, "")
		g.add(&Node{ID: "Case_B", Class: ClassSubgraph, Slot: "cases"}, nil, "Switch_2")
		def, err := NewSerializer(g, g).Serialize(context.Background(), "Switch_2")
		require.NoError(t, err)
		cases := def["cases"].(map[string]any)
		entry := cases["Case_B"].(map[string]any)
		assert.Equal(t, "case", entry["kind"])
	})
	t.Run("Should propagate child serialization failures", func(t *testing.T) {
		g := newMemGraph()
		g.add(&Node{ID: "Scope_2", Type: "Scope"}, &Manifest{AllowChildOperations: true}, "")
		g.add(&Node{
			ID:       "Broken",
			Type:     "Http",
			Settings: Settings{RetryPolicy: &RetryPolicy{Type: "bogus"}},
		}, nil, "Scope_2")
		_, err := NewSerializer(g, g).Serialize(context.Background(), "Scope_2")
		assert.ErrorIs(t, err, core.ErrUnsupportedRetryPolicyType)
	})
}
