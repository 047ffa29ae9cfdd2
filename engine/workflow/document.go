// Package workflow models the designer document: the node graph, per-node
// manifests, parameters, and settings that feed operation serialization. A
// document is the file-backed implementation of the graph and manifest
// collaborators the serializer consumes.
package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/logicdraft/logicdraft/engine/operation"
	"github.com/logicdraft/logicdraft/engine/parameter"
	"github.com/logicdraft/logicdraft/engine/path"
)

// NodeSpec is one node of the designer graph as authored in a document.
type NodeSpec struct {
	ID string `json:"id" yaml:"id"`
	// Class defaults to operation; graph nodes are structural containers
	// and subgraph nodes fill manifest slots.
	Class operation.NodeClass `json:"class,omitempty" yaml:"class,omitempty"`
	// Slot names the manifest sub-graph slot for subgraph nodes.
	Slot string `json:"slot,omitempty" yaml:"slot,omitempty"`
	// Parent is the owning node's id; empty marks a workflow root.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Type   string `json:"type,omitempty"   yaml:"type,omitempty"`
	Kind   string `json:"kind,omitempty"   yaml:"kind,omitempty"`
	// Trigger marks the workflow trigger node.
	Trigger           bool                   `json:"trigger,omitempty"           yaml:"trigger,omitempty"`
	ConnectionName    string                 `json:"connectionName,omitempty"    yaml:"connectionName,omitempty"`
	ServiceProviderID string                 `json:"serviceProviderId,omitempty" yaml:"serviceProviderId,omitempty"`
	Parameters        []*parameter.Parameter `json:"parameters,omitempty"        yaml:"parameters,omitempty"`
	Settings          operation.Settings     `json:"settings,omitempty"          yaml:"settings,omitempty"`
	Manifest          *operation.Manifest    `json:"manifest,omitempty"          yaml:"manifest,omitempty"`
}

// Document is a parsed designer file.
type Document struct {
	Name  string      `json:"name"  yaml:"name"`
	Nodes []*NodeSpec `json:"nodes" yaml:"nodes"`

	byID     map[string]*NodeSpec
	children map[string][]*NodeSpec
}

// Load reads and indexes a document file, accepting YAML or JSON by
// extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	}
	if err := doc.index(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FromNodes builds an indexed document from an in-memory node list.
func FromNodes(name string, nodes []*NodeSpec) (*Document, error) {
	doc := &Document{Name: name, Nodes: nodes}
	if err := doc.index(); err != nil {
		return nil, err
	}
	return doc, nil
}

// index validates node identity and parent links and builds the lookup maps.
func (d *Document) index() error {
	d.byID = make(map[string]*NodeSpec, len(d.Nodes))
	d.children = make(map[string][]*NodeSpec)
	for _, node := range d.Nodes {
		if node.ID == "" {
			return fmt.Errorf("document %q contains a node without an id", d.Name)
		}
		if _, dup := d.byID[node.ID]; dup {
			return fmt.Errorf("document %q declares node %q twice", d.Name, node.ID)
		}
		if node.Class == "" {
			node.Class = operation.ClassOperation
		}
		d.byID[node.ID] = node
	}
	for _, node := range d.Nodes {
		if node.Parent == "" {
			continue
		}
		if _, ok := d.byID[node.Parent]; !ok {
			return fmt.Errorf("node %q references unknown parent %q", node.ID, node.Parent)
		}
		d.children[node.Parent] = append(d.children[node.Parent], node)
	}
	return nil
}

// Limits bounds the document shape accepted for serialization.
type Limits struct {
	MaxNodes         int
	MaxValueSegments int
	MaxPathDepth     int
}

// Validate checks the document against the configured limits. Zero limits
// are unbounded.
func (d *Document) Validate(limits Limits) error {
	if limits.MaxNodes > 0 && len(d.Nodes) > limits.MaxNodes {
		return fmt.Errorf("document %q declares %d nodes, limit is %d", d.Name, len(d.Nodes), limits.MaxNodes)
	}
	for _, node := range d.Nodes {
		for _, p := range node.Parameters {
			if limits.MaxValueSegments > 0 && len(p.Value) > limits.MaxValueSegments {
				return fmt.Errorf(
					"parameter %q of node %q has %d segments, limit is %d",
					p.Key, node.ID, len(p.Value), limits.MaxValueSegments,
				)
			}
			if limits.MaxPathDepth > 0 && len(path.Parse(p.Key)) > limits.MaxPathDepth {
				return fmt.Errorf(
					"parameter %q of node %q exceeds path depth limit %d",
					p.Key, node.ID, limits.MaxPathDepth,
				)
			}
		}
	}
	return nil
}

// Roots returns the parentless nodes in document order.
func (d *Document) Roots() []*NodeSpec {
	var roots []*NodeSpec
	for _, node := range d.Nodes {
		if node.Parent == "" {
			roots = append(roots, node)
		}
	}
	return roots
}

func (spec *NodeSpec) node() *operation.Node {
	return &operation.Node{
		ID:                spec.ID,
		Class:             spec.Class,
		Slot:              spec.Slot,
		Type:              spec.Type,
		Kind:              spec.Kind,
		IsTrigger:         spec.Trigger,
		ConnectionName:    spec.ConnectionName,
		ServiceProviderID: spec.ServiceProviderID,
		Parameters:        spec.Parameters,
		Settings:          spec.Settings,
	}
}
