// Package tp is the type system shared by the parser and the semantic
// analyzer: a small tagged variant, following the shape of the teacher
// compiler's tp.Type (itself Int/Ptr/Array/Struct nullary-or-composite
// variants), re-cut for the source language's kinds instead of machine
// types.
package tp

import "fmt"

// Kind tags a Type. List is the only composite kind; everything else is
// nullary.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
	List
	Void
	MathObject
	// Unknown is the type of an element read out of a list whose element
	// type is unknown (an empty list literal, or one whose elements
	// disagree); such a list is itself a List with a nil Elem. Unknown is
	// never user spellable and never appears as a declared type.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Void:
		return "void"
	case MathObject:
		return "mathobject"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a resolved type. Elem is non-nil only when Kind == List, and even
// then may be nil to mean "unknown element type".
type Type struct {
	Kind Kind
	Elem *Type
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == List {
		if t.Elem == nil {
			return "list<unknown>"
		}
		return "list<" + t.Elem.String() + ">"
	}
	return t.Kind.String()
}

// Primitive constructors. Returned values are always fresh so callers can
// freely mutate the result without aliasing a shared instance.
func NewInt() *Type        { return &Type{Kind: Int} }
func NewFloat() *Type      { return &Type{Kind: Float} }
func NewString() *Type     { return &Type{Kind: String} }
func NewBool() *Type       { return &Type{Kind: Bool} }
func NewVoid() *Type       { return &Type{Kind: Void} }
func NewMathObject() *Type { return &Type{Kind: MathObject} }

// NewList builds a list<elem> type. elem may be nil, meaning an unknown
// element type (an empty literal, or one with disagreeing elements).
func NewList(elem *Type) *Type { return &Type{Kind: List, Elem: elem} }

// IsNumeric reports whether t is int or float.
func IsNumeric(t *Type) bool {
	return t != nil && (t.Kind == Int || t.Kind == Float)
}

// Compatible reports whether a value of type actual may be used where
// expected is required: exact kind match, list element types recursively
// compatible (an unknown element type on either side matches anything), and
// the single implicit conversion int -> float.
func Compatible(expected, actual *Type) bool {
	if expected == nil || actual == nil {
		return false
	}

	if expected.Kind == actual.Kind {
		if expected.Kind == List {
			if expected.Elem == nil || actual.Elem == nil {
				return true
			}
			return Compatible(expected.Elem, actual.Elem)
		}
		return true
	}

	if expected.Kind == Float && actual.Kind == Int {
		return true
	}

	return false
}
