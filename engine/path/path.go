// Package path parses and compares the dotted property paths that key
// operation parameters, e.g. "inputs.$.body" or "inputs.$.events.[0]".
// Properties are separated by "." and array indexes written as "[n]"; the
// wildcard index "[*]" marks a schema template position that matches any
// concrete index.
package path

import (
	"strconv"
	"strings"

	"github.com/logicdraft/logicdraft/engine/core"
)

// -----------------------------------------------------------------------------
// Segment
// -----------------------------------------------------------------------------

// SegmentKind discriminates property-name segments from array-index segments.
type SegmentKind int

const (
	KindProperty SegmentKind = iota
	KindIndex
)

// Segment is one step of a property path.
type Segment struct {
	Kind SegmentKind
	// Name holds the property name for KindProperty segments.
	Name string
	// Index holds the concrete index for KindIndex segments. Ignored when
	// AnyIndex is set.
	Index int
	// AnyIndex marks the "[*]" template position that matches any concrete
	// index at the same depth.
	AnyIndex bool
}

// Property returns a property-name segment.
func Property(name string) Segment {
	return Segment{Kind: KindProperty, Name: name}
}

// Index returns a concrete array-index segment.
func Index(i int) Segment {
	return Segment{Kind: KindIndex, Index: i}
}

// Wildcard returns the any-index template segment.
func Wildcard() Segment {
	return Segment{Kind: KindIndex, AnyIndex: true}
}

// Matches reports whether s matches o under template normalization: property
// segments match by name, index segments by value, and a wildcard index
// matches any index segment.
func (s Segment) Matches(o Segment) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == KindProperty {
		return s.Name == o.Name
	}
	if s.AnyIndex || o.AnyIndex {
		return true
	}
	return s.Index == o.Index
}

// Escape renders the segment as a safe path element: index segments as their
// bracketed literal, property segments quoted when they contain path-special
// characters.
func (s Segment) Escape() string {
	if s.Kind == KindIndex {
		if s.AnyIndex {
			return "[*]"
		}
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if strings.ContainsAny(s.Name, ".[]\"") {
		return strconv.Quote(s.Name)
	}
	return s.Name
}

// -----------------------------------------------------------------------------
// Path
// -----------------------------------------------------------------------------

// Path is an ordered sequence of segments identifying a location inside a
// nested JSON structure.
type Path []Segment

// Parse splits a path string into segments. Parsing is lenient: author-typed
// text may reach this layer, so malformed input (unbalanced brackets,
// non-numeric indexes) degrades by treating the unparsed remainder as a
// single property segment instead of failing.
func Parse(s string) Path {
	p, _ := parse(s, false)
	return p
}

// ParseStrict behaves like Parse but returns core.ErrMalformedPath instead of
// degrading.
func ParseStrict(s string) (Path, error) {
	return parse(s, true)
}

func parse(s string, strict bool) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var out Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			// Empty elements between separators carry no information.
			if strict && (i == 0 || i == len(s)-1 || s[i+1] == '.') {
				return nil, core.ErrMalformedPath
			}
			i++
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				if strict {
					return nil, core.ErrMalformedPath
				}
				return append(out, Property(s[i:])), nil
			}
			body := s[i+1 : i+end]
			seg, ok := parseIndex(body)
			if !ok {
				if strict {
					return nil, core.ErrMalformedPath
				}
				return append(out, Property(s[i:])), nil
			}
			out = append(out, seg)
			i += end + 1
		case '"':
			name, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				if strict {
					return nil, core.ErrMalformedPath
				}
				return append(out, Property(s[i:])), nil
			}
			unquoted, err := strconv.Unquote(name)
			if err != nil {
				if strict {
					return nil, core.ErrMalformedPath
				}
				return append(out, Property(s[i:])), nil
			}
			out = append(out, Property(unquoted))
			i += len(name)
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			out = append(out, Property(s[i:j]))
			i = j
		}
	}
	return out, nil
}

func parseIndex(body string) (Segment, bool) {
	if body == "*" {
		return Wildcard(), true
	}
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 {
		return Segment{}, false
	}
	return Index(n), true
}

// String renders the path in its canonical dotted form.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.Escape()
	}
	return strings.Join(parts, ".")
}

// Equal reports structural equality of two paths under template
// normalization.
func Equal(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Matches(b[i]) {
			return false
		}
	}
	return true
}

// IsAncestor reports whether a is a non-empty strict prefix of b under
// template normalization.
func IsAncestor(a, b Path) bool {
	if len(a) == 0 || len(a) >= len(b) {
		return false
	}
	for i := range a {
		if !a[i].Matches(b[i]) {
			return false
		}
	}
	return true
}

// RelativeTo returns the suffix of p beyond the ancestor prefix. It assumes
// IsAncestor(ancestor, p) or Equal(ancestor, p) holds; callers check first.
func (p Path) RelativeTo(ancestor Path) Path {
	if len(ancestor) >= len(p) {
		return nil
	}
	return p[len(ancestor):]
}
