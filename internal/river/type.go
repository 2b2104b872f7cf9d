// Package river implements the River type expression language: a small
// grammar of hardware stream types such as Root<Group<Bits<3>, Bits<4>>, 1, 2, 3>.
// It parses expressions, prints them in canonical form and lowers them to a
// DOT digraph for the graph panel.
package river

import "fmt"

// Kind identifies the constructor of a River type.
type Kind int

// River type constructors.
const (
	KindBits Kind = iota
	KindRoot
	KindGroup
	KindDim
	KindNew
	KindFlat
	KindRev
	KindUnion
)

var kindNames = map[Kind]string{
	KindBits:  "Bits",
	KindRoot:  "Root",
	KindGroup: "Group",
	KindDim:   "Dim",
	KindNew:   "New",
	KindFlat:  "Flat",
	KindRev:   "Rev",
	KindUnion: "Union",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// String returns the constructor name as written in expressions.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Stream reports whether the kind wraps one element type with parameters.
func (k Kind) Stream() bool {
	switch k {
	case KindRoot, KindDim, KindNew, KindFlat, KindRev:
		return true
	default:
		return false
	}
}

// Composite reports whether the kind holds a list of field types.
func (k Kind) Composite() bool {
	return k == KindGroup || k == KindUnion
}

// Params are the N, C, U parameters of a stream type.
type Params struct {
	// Elements is the number of elements per handshake (N).
	Elements uint64
	// Complexity is the complexity level (C).
	Complexity uint64
	// UserBits is the number of user bits (U).
	UserBits uint64
}

// Type is a node of a parsed River expression. Which fields are set depends
// on Kind: Bits uses Width, stream kinds use Elem and Params, Group and
// Union use Fields.
type Type struct {
	Kind   Kind
	Width  uint64
	Elem   *Type
	Params Params
	Fields []*Type
}

// Bits returns a Bits<width> type.
func Bits(width uint64) *Type {
	return &Type{Kind: KindBits, Width: width}
}

// Stream returns a stream type of the given kind wrapping elem.
func Stream(kind Kind, elem *Type, p Params) *Type {
	return &Type{Kind: kind, Elem: elem, Params: p}
}

// Group returns a Group<fields...> type.
func Group(fields ...*Type) *Type {
	return &Type{Kind: KindGroup, Fields: fields}
}

// Union returns a Union<fields...> type.
func Union(fields ...*Type) *Type {
	return &Type{Kind: KindUnion, Fields: fields}
}

// Children returns the direct child types in declaration order.
func (t *Type) Children() []*Type {
	switch {
	case t.Kind.Stream():
		return []*Type{t.Elem}
	case t.Kind.Composite():
		return t.Fields
	default:
		return nil
	}
}

// Equal reports whether t and o describe the same type.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Width != o.Width || t.Params != o.Params {
		return false
	}
	a, b := t.Children(), o.Children()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
