package parameter

import (
	"github.com/logicdraft/logicdraft/engine/core"
	"github.com/logicdraft/logicdraft/engine/path"
)

// Assemble reconstructs the nested value rooted at rootKey from a flat list
// of parameters. An exact path match claims the whole subtree; otherwise
// every strict descendant is walked into containers created on demand, in
// supplied order, with last-write-wins semantics at colliding leaves. The
// second return reports whether the subtree produced any value at all.
//
// The parameter list is never mutated and the returned containers share no
// structure with it.
func Assemble(rootKey string, params []*Parameter, forDefinition bool) (any, bool) {
	root := path.Parse(rootKey)
	for _, p := range params {
		if path.Equal(root, path.Parse(p.Key)) {
			return p.SerializedValue(forDefinition)
		}
	}
	var result any
	assigned := false
	for _, p := range params {
		key := path.Parse(p.Key)
		if !path.IsAncestor(root, key) {
			continue
		}
		value, ok := p.SerializedValue(forDefinition)
		if !ok {
			continue
		}
		result = assign(result, key.RelativeTo(root), value)
		assigned = true
		if p.AlternativeKey != "" {
			alt := path.Parse(p.AlternativeKey)
			if path.IsAncestor(root, alt) {
				// The mirrored copy must not alias the primary location.
				result = assign(result, alt.RelativeTo(root), core.DeepCopyValue(value))
			}
		}
	}
	return result, assigned
}

// assign writes value at the relative path, creating intermediate containers
// on demand. The first unseen segment's kind picks the container type: index
// segments build arrays, property segments build objects. Containers of the
// wrong kind are replaced, matching ordinary property-assignment semantics.
func assign(root any, rel path.Path, value any) any {
	if len(rel) == 0 {
		return value
	}
	seg := rel[0]
	if seg.Kind == path.KindIndex {
		arr, _ := root.([]any)
		idx := seg.Index
		if seg.AnyIndex {
			idx = 0
		}
		for len(arr) <= idx {
			arr = append(arr, nil)
		}
		arr[idx] = assign(arr[idx], rel[1:], value)
		return arr
	}
	m, ok := root.(map[string]any)
	if !ok {
		m = make(map[string]any)
	}
	m[seg.Name] = assign(m[seg.Name], rel[1:], value)
	return m
}
