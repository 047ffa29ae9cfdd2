// Package parameter models an operation's named inputs and reassembles their
// flat, path-keyed list into the nested JSON shape a workflow definition
// persists.
package parameter

import (
	"github.com/logicdraft/logicdraft/engine/core"
	"github.com/logicdraft/logicdraft/engine/expression"
	"github.com/logicdraft/logicdraft/engine/token"
)

// Info is the schema metadata bag attached to a parameter.
type Info struct {
	// Format is the casting target format of the destination.
	Format core.ValueFormat `json:"format,omitempty" yaml:"format,omitempty"`
	// In is the parameter's location in the underlying request.
	In core.ParameterLocation `json:"in,omitempty" yaml:"in,omitempty"`
	// Encode is the URL-encoding policy for path-located parameters.
	Encode core.EncodePolicy `json:"encode,omitempty" yaml:"encode,omitempty"`
	// SkipSerialization excludes the parameter from assembled inputs.
	SkipSerialization bool `json:"skipSerialization,omitempty" yaml:"skipSerialization,omitempty"`
}

// Parameter is one named input of an operation.
type Parameter struct {
	// Key is the parameter's property path within the operation input
	// schema, e.g. "inputs.$.body".
	Key string `json:"key" yaml:"key"`
	// Type is the declared data type.
	Type core.ValueType `json:"type,omitempty" yaml:"type,omitempty"`
	// Value is the current editable content.
	Value []token.Segment `json:"value,omitempty" yaml:"value,omitempty"`
	// Info carries schema metadata.
	Info Info `json:"info,omitempty" yaml:"info,omitempty"`
	// Required governs whether an empty value serializes as null (required)
	// or is omitted (optional).
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
	// PreservedValue is the original authored value, emitted verbatim during
	// definition serialization when the segments cannot losslessly re-derive
	// it.
	PreservedValue any `json:"preservedValue,omitempty" yaml:"preservedValue,omitempty"`
	// AlternativeKey is a secondary path the value also writes to.
	AlternativeKey string `json:"alternativeKey,omitempty" yaml:"alternativeKey,omitempty"`
}

// renderOptions maps the parameter onto one expression rendering call.
func (p *Parameter) renderOptions(forDefinition bool) expression.Options {
	return expression.Options{
		Type:           p.Type,
		Format:         p.Info.Format,
		Location:       p.Info.In,
		Encode:         p.Info.Encode,
		Required:       p.Required,
		ForDefinition:  forDefinition,
		PreservedValue: p.PreservedValue,
	}
}

// RenderValue renders the parameter's segments to expression-language text.
func (p *Parameter) RenderValue(forDefinition bool) string {
	return expression.Render(p.Value, p.renderOptions(forDefinition))
}

// SerializedValue produces the parameter's JSON-compatible value. The second
// return reports presence: optional parameters with empty values are omitted
// entirely, while required ones serialize as null.
func (p *Parameter) SerializedValue(forDefinition bool) (any, bool) {
	if p.Info.SkipSerialization {
		return nil, false
	}
	if forDefinition && p.PreservedValue != nil {
		return core.DeepCopyValue(p.PreservedValue), true
	}
	if token.IsEmpty(p.Value) {
		if p.Required {
			return nil, true
		}
		return nil, false
	}
	switch {
	case p.Type.IsStructured():
		return expression.ToJSONValue(expression.ToJSONText(p.Value)), true
	case p.Type == core.ValueTypeInteger:
		return p.numericValue(forDefinition, true), true
	case p.Type == core.ValueTypeNumber:
		return p.numericValue(forDefinition, false), true
	case p.Type == core.ValueTypeBoolean:
		return p.booleanValue(forDefinition), true
	default:
		return p.RenderValue(forDefinition), true
	}
}

// numericValue coerces a single literal segment into a number, keeping the
// rendered expression text for token-bearing values.
func (p *Parameter) numericValue(forDefinition, integer bool) any {
	if len(p.Value) == 1 && p.Value[0].IsLiteral() {
		if integer {
			if iv, ok := core.ParseAnyInt(p.Value[0].Value); ok {
				return iv
			}
		} else if fv, ok := core.ParseAnyFloat(p.Value[0].Value); ok {
			return fv
		}
	}
	return p.RenderValue(forDefinition)
}

func (p *Parameter) booleanValue(forDefinition bool) any {
	if len(p.Value) == 1 && p.Value[0].IsLiteral() {
		if bv, ok := core.ParseAnyBool(p.Value[0].Value); ok {
			return bv
		}
	}
	return p.RenderValue(forDefinition)
}
