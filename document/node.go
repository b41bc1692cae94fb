package document

import (
	"errors"
	"fmt"
	"iter"
)

// ErrDuplicateKey is returned when an object is built with a repeated key.
var ErrDuplicateKey = errors.New("duplicate key")

// Kind is the container kind of a node.
type Kind int

// Node kinds.
const (
	KindLeaf Kind = iota
	KindObject
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Node is an element of a document tree: *Leaf, *Object or *Array.
type Node interface {
	Kind() Kind
}

// Leaf is a terminal node holding a Value.
type Leaf struct {
	value Value
	raw   string
}

// NewLeaf creates a leaf with no source literal; it renders canonically.
func NewLeaf(v Value) *Leaf {
	return &Leaf{value: v, raw: ""}
}

// NewLeafRaw creates a leaf that renders as raw until it is replaced.
// raw must be the JSON encoding of v.
func NewLeafRaw(v Value, raw string) *Leaf {
	return &Leaf{value: v, raw: raw}
}

// Kind implements Node.
func (*Leaf) Kind() Kind { return KindLeaf }

// Value returns the leaf payload.
func (l *Leaf) Value() Value { return l.value }

// Raw returns the JSON literal the leaf was decoded from, or "" for edited leaves.
func (l *Leaf) Raw() string { return l.raw }

// Member is one key/value entry of an Object.
type Member struct {
	Key string
	// RawKey is the quoted key as it appeared in the source, if any.
	RawKey string
	Node   Node
}

// Object is an insertion-ordered mapping with unique keys.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an object preserving the order of members.
func NewObject(members ...Member) (*Object, error) {
	obj := &Object{
		members: make([]Member, len(members)),
		index:   make(map[string]int, len(members)),
	}

	for i, m := range members {
		if _, dup := obj.index[m.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, m.Key)
		}

		obj.index[m.Key] = i
		obj.members[i] = m
	}

	return obj, nil
}

// Kind implements Node.
func (*Object) Kind() Kind { return KindObject }

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// Get returns the node stored under key.
func (o *Object) Get(key string) (Node, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}

	return o.members[i].Node, true
}

// Entry returns the i-th member in insertion order.
func (o *Object) Entry(i int) Member { return o.members[i] }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}

	return keys
}

// All iterates over members in insertion order.
func (o *Object) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Node) {
				return
			}
		}
	}
}

// with returns a copy of o where key maps to n. The key index is shared because
// replacing a value never moves a key.
func (o *Object) with(key string, n Node) *Object {
	i := o.index[key]
	members := make([]Member, len(o.members))
	copy(members, o.members)
	members[i].Node = n

	return &Object{members: members, index: o.index}
}

// Array is an ordered sequence of nodes.
type Array struct {
	items []Node
}

// NewArray builds an array from items.
func NewArray(items ...Node) *Array {
	cp := make([]Node, len(items))
	copy(cp, items)

	return &Array{items: cp}
}

// Kind implements Node.
func (*Array) Kind() Kind { return KindArray }

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// At returns the i-th item.
func (a *Array) At(i int) Node { return a.items[i] }

// All iterates over items in order.
func (a *Array) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, n := range a.items {
			if !yield(i, n) {
				return
			}
		}
	}
}

func (a *Array) with(i int, n Node) *Array {
	items := make([]Node, len(a.items))
	copy(items, a.items)
	items[i] = n

	return &Array{items: items}
}

// Equal reports structural equality. Raw literals and key spelling are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a == b {
		return true
	}

	switch av := a.(type) {
	case *Leaf:
		bv, ok := b.(*Leaf)

		return ok && ValueEqual(av.value, bv.value)
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}

		for i, m := range av.members {
			other := bv.members[i]
			if m.Key != other.Key || !Equal(m.Node, other.Node) {
				return false
			}
		}

		return true
	case *Array:
		bv, ok := b.(*Array)
		if !ok || av.Len() != bv.Len() {
			return false
		}

		for i, n := range av.items {
			if !Equal(n, bv.items[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// WalkFunc is called for every node visited by Walk. Returning false skips the
// node's children.
type WalkFunc func(path Path, node Node) bool

// Walk visits root and its descendants depth-first in document order.
// Blob contents are not entered; a Blob is a single leaf.
func Walk(root Node, fn WalkFunc) {
	walk(Path{}, root, fn)
}

func walk(path Path, node Node, fn WalkFunc) {
	if !fn(path, node) {
		return
	}

	switch n := node.(type) {
	case *Object:
		for _, m := range n.members {
			walk(path.Append(Field(m.Key)), m.Node, fn)
		}
	case *Array:
		for i, item := range n.items {
			walk(path.Append(Index(i)), item, fn)
		}
	}
}
