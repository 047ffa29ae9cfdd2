package workflow

import (
	"context"
	"fmt"

	"github.com/logicdraft/logicdraft/engine/operation"
	"github.com/logicdraft/logicdraft/pkg/logger"
)

// Node implements operation.Graph.
func (d *Document) Node(id string) (*operation.Node, error) {
	spec, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", id)
	}
	return spec.node(), nil
}

// Children implements operation.Graph.
func (d *Document) Children(id string) ([]*operation.Node, error) {
	specs := d.children[id]
	nodes := make([]*operation.Node, len(specs))
	for i, spec := range specs {
		nodes[i] = spec.node()
	}
	return nodes, nil
}

// Manifest implements operation.ManifestProvider from the manifests embedded
// in the document.
func (d *Document) Manifest(_ context.Context, id string) (*operation.Manifest, error) {
	spec, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", id)
	}
	return spec.Manifest, nil
}

// Serialize converts the whole document into a workflow definition: the
// trigger roots under "triggers", the remaining roots under "actions".
func (d *Document) Serialize(ctx context.Context) (map[string]any, error) {
	log := logger.FromContext(ctx)
	serializer := operation.NewSerializer(d, d)
	triggers := make(map[string]any)
	actions := make(map[string]any)
	for _, root := range d.Roots() {
		def, err := serializer.Serialize(ctx, root.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", root.ID, err)
		}
		if root.Trigger {
			triggers[root.ID] = def
		} else {
			actions[root.ID] = def
		}
	}
	log.Debug("serialized workflow document", "name", d.Name, "triggers", len(triggers), "actions", len(actions))
	definition := map[string]any{
		"contentVersion": "1.0.0.0",
		"triggers":       triggers,
		"actions":        actions,
	}
	return definition, nil
}
