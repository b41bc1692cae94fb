package document

import (
	"slices"
)

// Tag identifies the type of a leaf value.
type Tag int

// Leaf tags. Bool, HexColor, FloatSequence and Blob are editable; String, Number and
// Null only carry labels and passthrough data.
const (
	TagNull Tag = iota
	TagBool
	TagString
	TagNumber
	TagHexColor
	TagFloatSequence
	TagBlob
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagString:
		return "string"
	case TagNumber:
		return "number"
	case TagHexColor:
		return "hex-color"
	case TagFloatSequence:
		return "float-sequence"
	case TagBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Value is the payload of a Leaf.
type Value interface {
	Tag() Tag
	isValue()
}

// Bool is a boolean flag.
type Bool bool

// HexColor is a "#RGB" or "#RRGGBB" color string.
type HexColor string

// FloatSequence is an ordered list of numbers edited as one unit.
type FloatSequence []float64

// Blob is an opaque structured value replaced wholesale on edit.
type Blob struct {
	Node Node
}

// String is an immutable text scalar.
type String string

// Number is a numeric scalar kept as its JSON literal.
type Number string

// Null is the JSON null literal.
type Null struct{}

// Tag implements Value.
func (Bool) Tag() Tag { return TagBool }

// Tag implements Value.
func (HexColor) Tag() Tag { return TagHexColor }

// Tag implements Value.
func (FloatSequence) Tag() Tag { return TagFloatSequence }

// Tag implements Value.
func (Blob) Tag() Tag { return TagBlob }

// Tag implements Value.
func (String) Tag() Tag { return TagString }

// Tag implements Value.
func (Number) Tag() Tag { return TagNumber }

// Tag implements Value.
func (Null) Tag() Tag { return TagNull }

func (Bool) isValue()          {}
func (HexColor) isValue()      {}
func (FloatSequence) isValue() {}
func (Blob) isValue()          {}
func (String) isValue()        {}
func (Number) isValue()        {}
func (Null) isValue()          {}

// ValueEqual reports whether two values have the same tag and content.
func ValueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Tag() != b.Tag() {
		return false
	}

	switch av := a.(type) {
	case FloatSequence:
		bv, _ := b.(FloatSequence)

		return slices.Equal(av, bv)
	case Blob:
		bv, _ := b.(Blob)

		return Equal(av.Node, bv.Node)
	default:
		return a == b
	}
}
