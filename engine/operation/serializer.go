package operation

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"golang.org/x/sync/errgroup"

	"github.com/logicdraft/logicdraft/engine/core"
	"github.com/logicdraft/logicdraft/engine/parameter"
)

// -----------------------------------------------------------------------------
// Graph Collaborators
// -----------------------------------------------------------------------------

// NodeClass classifies the children returned by the graph lookup.
type NodeClass string

const (
	ClassOperation NodeClass = "operation"
	ClassGraph     NodeClass = "graph"
	ClassSubgraph  NodeClass = "subgraph"
)

// Node is one node of the designer graph, consumed read-only.
type Node struct {
	ID    string
	Class NodeClass
	// Slot names the manifest sub-graph slot a subgraph node belongs to.
	Slot string
	// Type and Kind name the operation in the definition.
	Type string
	Kind string
	// IsTrigger suppresses runAfter and enables trigger-only surface
	// (recurrence, conditions, correlation).
	IsTrigger bool
	// ConnectionName keys the operation's connection reference.
	ConnectionName    string
	ServiceProviderID string
	Parameters        []*parameter.Parameter
	Settings          Settings
}

// class returns the node's class, defaulting the zero value to operation so
// graph implementations need not pre-normalize their nodes.
func (n *Node) class() NodeClass {
	if n.Class == "" {
		return ClassOperation
	}
	return n.Class
}

// Graph looks up nodes and their children. Implementations own an acyclic
// structure; the serializer never mutates it.
type Graph interface {
	Node(id string) (*Node, error)
	Children(id string) ([]*Node, error)
}

// ManifestProvider fetches the operation manifest for a node. Providers may
// perform I/O; the serializer passes its context through.
type ManifestProvider interface {
	Manifest(ctx context.Context, operationID string) (*Manifest, error)
}

// -----------------------------------------------------------------------------
// Serializer
// -----------------------------------------------------------------------------

// Serializer composes the expression, parameter, and manifest layers into
// full operation definitions. Each call is independent and idempotent; the
// only concurrency is the fan-out across sibling child branches.
type Serializer struct {
	graph     Graph
	manifests ManifestProvider
}

// NewSerializer builds a serializer over the given collaborators.
func NewSerializer(graph Graph, manifests ManifestProvider) *Serializer {
	return &Serializer{graph: graph, manifests: manifests}
}

// Serialize produces the definition of one operation, recursing into its
// child graphs.
func (s *Serializer) Serialize(ctx context.Context, id string) (map[string]any, error) {
	node, err := s.graph.Node(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up operation %s: %w", id, err)
	}
	manifest, err := s.manifests.Manifest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest for %s: %w", id, err)
	}
	return s.serializeNode(ctx, node, manifest)
}

func (s *Serializer) serializeNode(ctx context.Context, node *Node, manifest *Manifest) (map[string]any, error) {
	def := map[string]any{"type": node.Type}
	if node.Kind != "" {
		def["kind"] = node.Kind
	}
	if err := s.attachInputs(def, node, manifest); err != nil {
		return nil, err
	}
	if !node.IsTrigger {
		if runAfter := serializeRunAfter(node.Settings.RunAfter); runAfter != nil {
			def["runAfter"] = runAfter
		}
	}
	if manifest != nil && manifest.Recurrence != nil && node.Settings.Recurrence != nil {
		def["recurrence"] = serializeRecurrence(node.Settings.Recurrence)
	}
	if c := node.Settings.Correlation; c != nil && c.ClientTrackingID != "" {
		def["correlation"] = map[string]any{"clientTrackingId": c.ClientTrackingID}
	}
	if conditions := serializeConditions(node.Settings.TriggerConditions); conditions != nil {
		def["conditions"] = conditions
	}
	if options := serializeOperationOptions(node.Settings.OperationOptions); options != "" {
		def["operationOptions"] = options
	}
	if manifest != nil && manifest.AllowChildOperations {
		if err := s.attachChildren(ctx, def, node, manifest); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// attachInputs assembles the parameter tree, splices in the connection
// reference and retry policy, and nests the result at the manifest's inputs
// location.
func (s *Serializer) attachInputs(def map[string]any, node *Node, manifest *Manifest) error {
	inputs, present := parameter.Assemble("inputs.$", node.Parameters, true)
	connKey, connValue, connInInputs, err := manifest.connectionValue(node)
	if err != nil {
		return fmt.Errorf("failed to serialize connection for %s: %w", node.ID, err)
	}
	retry, err := serializeRetryPolicy(node.Settings.RetryPolicy)
	if err != nil {
		return fmt.Errorf("failed to serialize retry policy for %s: %w", node.ID, err)
	}
	if connInInputs || retry != nil {
		m, ok := inputs.(map[string]any)
		if !ok {
			// Connection references and retry policies nest inside the inputs
			// object; a scalar or null inputs value cannot carry them.
			if present {
				return fmt.Errorf(
					"operation %s carries settings that nest inside inputs, but its inputs serialized to a non-object value",
					node.ID,
				)
			}
			m = make(map[string]any)
		}
		if connInInputs {
			m[connKey] = connValue
		}
		if retry != nil {
			m["retryPolicy"] = retry
		}
		inputs = m
		present = true
	}
	if connKey != "" && !connInInputs {
		def[connKey] = connValue
	}
	if !present {
		return nil
	}
	nestAt(def, manifest.inputsLocation(), inputs)
	return nil
}

// nestAt writes value into def along the ordered key path. An empty path
// merges map values at the root.
func nestAt(def map[string]any, location []string, value any) {
	if len(location) == 0 {
		if m, ok := value.(map[string]any); ok {
			for k, v := range m {
				def[k] = v
			}
		}
		return
	}
	current := def
	for _, key := range location[:len(location)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[key] = next
		}
		current = next
	}
	current[location[len(location)-1]] = value
}

func serializeRecurrence(r *Recurrence) map[string]any {
	out := map[string]any{
		"frequency": r.Frequency,
		"interval":  r.Interval,
	}
	if r.StartTime != "" {
		out["startTime"] = r.StartTime
	}
	return out
}

// -----------------------------------------------------------------------------
// Child Graphs
// -----------------------------------------------------------------------------

// attachChildren serializes operation children under the manifest's child
// location and subgraph children under their slot locations. Sibling
// branches serialize concurrently and join before assembly.
func (s *Serializer) attachChildren(ctx context.Context, def map[string]any, node *Node, manifest *Manifest) error {
	children, err := s.graph.Children(node.ID)
	if err != nil {
		return fmt.Errorf("failed to list children of %s: %w", node.ID, err)
	}
	actions, err := s.serializeActions(ctx, children)
	if err != nil {
		return err
	}
	if len(actions) > 0 {
		nestAt(def, manifest.childLocation(), actions)
	}
	return s.attachSubGraphs(ctx, def, children, manifest)
}

// serializeActions fans out over operation-class children; graph-class
// children are structural and flatten into the same action map.
func (s *Serializer) serializeActions(ctx context.Context, children []*Node) (map[string]any, error) {
	type result struct {
		id  string
		def map[string]any
	}
	var ops []*Node
	for _, child := range children {
		if child.class() == ClassOperation || child.class() == ClassGraph {
			ops = append(ops, child)
		}
	}
	results := make([]result, len(ops))
	g, ctx := errgroup.WithContext(ctx)
	for i, child := range ops {
		g.Go(func() error {
			if child.class() == ClassGraph {
				nested, err := s.graph.Children(child.ID)
				if err != nil {
					return fmt.Errorf("failed to list children of %s: %w", child.ID, err)
				}
				defs, err := s.serializeActions(ctx, nested)
				if err != nil {
					return err
				}
				results[i] = result{id: "", def: defs}
				return nil
			}
			def, err := s.Serialize(ctx, child.ID)
			if err != nil {
				return err
			}
			results[i] = result{id: child.ID, def: def}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	actions := make(map[string]any)
	for _, r := range results {
		if r.id == "" {
			for k, v := range r.def {
				actions[k] = v
			}
			continue
		}
		actions[r.id] = r.def
	}
	return actions, nil
}

// attachSubGraphs serializes subgraph-class children into their manifest
// slots: additive slots keep one entry per node, single slots keep the node's
// body directly.
func (s *Serializer) attachSubGraphs(ctx context.Context, def map[string]any, children []*Node, manifest *Manifest) error {
	if manifest == nil || len(manifest.SubGraphDetails) == 0 {
		return nil
	}
	for slot, detail := range manifest.SubGraphDetails {
		location := detail.Location
		if location == nil {
			location = []string{slot}
		}
		entries := make(map[string]any)
		for _, child := range children {
			if child.class() != ClassSubgraph || child.Slot != slot {
				continue
			}
			entry, err := s.serializeSubGraph(ctx, child, detail)
			if err != nil {
				return err
			}
			if detail.IsAdditive {
				entries[child.ID] = entry
				continue
			}
			nestAt(def, location, entry)
		}
		if detail.IsAdditive && len(entries) > 0 {
			nestAt(def, location, entries)
		}
	}
	return nil
}

// serializeSubGraph builds one subgraph body: its own assembled inputs, its
// children as actions, and the slot's static inputs merged on top.
func (s *Serializer) serializeSubGraph(ctx context.Context, node *Node, detail SubGraphDetail) (map[string]any, error) {
	entry := make(map[string]any)
	if inputs, ok := parameter.Assemble("inputs.$", node.Parameters, true); ok {
		if m, isMap := inputs.(map[string]any); isMap {
			for k, v := range m {
				entry[k] = v
			}
		} else {
			entry["inputs"] = inputs
		}
	}
	children, err := s.graph.Children(node.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %s: %w", node.ID, err)
	}
	actions, err := s.serializeActions(ctx, children)
	if err != nil {
		return nil, err
	}
	if len(actions) > 0 {
		entry["actions"] = actions
	}
	if len(detail.Inputs) > 0 {
		static, err := core.DeepCopyMap(detail.Inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to copy static inputs for %s: %w", node.ID, err)
		}
		if err := mergo.Merge(&entry, static, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge static inputs for %s: %w", node.ID, err)
		}
	}
	return entry, nil
}
