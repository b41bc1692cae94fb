package document

// Lookup resolves path against root and returns the node it selects.
func Lookup(root Node, path Path) (Node, error) {
	if len(path) == 0 {
		return nil, notFound(path, "empty path")
	}

	node := root

	for depth, sel := range path {
		next, err := step(node, sel, path[:depth+1])
		if err != nil {
			return nil, err
		}

		node = next
	}

	return node, nil
}

// GetAtPath returns the value of the leaf selected by path.
func GetAtPath(root Node, path Path) (Value, error) {
	node, err := Lookup(root, path)
	if err != nil {
		return nil, err
	}

	leaf, ok := node.(*Leaf)
	if !ok {
		return nil, notFound(path, "%s is not a leaf", node.Kind())
	}

	return leaf.value, nil
}

// SetAtPath returns a copy of root in which the leaf at path holds v. Every
// container on the way to the leaf is copied; everything else is shared with root.
// The leaf must already exist; no structure is created.
func SetAtPath(root Node, path Path, v Value) (Node, error) {
	return replace(root, path, func(current Node) (Node, error) {
		if _, ok := current.(*Leaf); !ok {
			return nil, notFound(path, "%s is not a leaf", current.Kind())
		}

		return NewLeaf(v), nil
	})
}

// ReplaceAtPath returns a copy of root in which the node at path is n, with the
// same sharing guarantees as SetAtPath. Any node kind may be replaced.
func ReplaceAtPath(root Node, path Path, n Node) (Node, error) {
	return replace(root, path, func(Node) (Node, error) {
		return n, nil
	})
}

func replace(root Node, path Path, fn func(Node) (Node, error)) (Node, error) {
	if len(path) == 0 {
		return nil, notFound(path, "empty path")
	}

	return rebuild(root, path, 0, fn)
}

func rebuild(node Node, path Path, depth int, fn func(Node) (Node, error)) (Node, error) {
	if depth == len(path) {
		return fn(node)
	}

	sel := path[depth]

	child, err := step(node, sel, path[:depth+1])
	if err != nil {
		return nil, err
	}

	updated, err := rebuild(child, path, depth+1, fn)
	if err != nil {
		return nil, err
	}

	if sel.isIndex {
		arr, _ := node.(*Array)

		return arr.with(sel.index, updated), nil
	}

	obj, _ := node.(*Object)

	return obj.with(sel.name, updated), nil
}

// step descends one selector; prefix is the path up to and including sel.
func step(node Node, sel Selector, prefix Path) (Node, error) {
	if sel.isIndex {
		arr, ok := node.(*Array)
		if !ok {
			return nil, notFound(prefix, "expected array, found %s", kindOf(node))
		}

		if sel.index < 0 || sel.index >= arr.Len() {
			return nil, notFound(prefix, "index %d out of range [0,%d)", sel.index, arr.Len())
		}

		return arr.items[sel.index], nil
	}

	obj, ok := node.(*Object)
	if !ok {
		return nil, notFound(prefix, "expected object, found %s", kindOf(node))
	}

	child, ok := obj.Get(sel.name)
	if !ok {
		return nil, notFound(prefix, "no field %q", sel.name)
	}

	return child, nil
}

func kindOf(node Node) string {
	if node == nil {
		return "nothing"
	}

	return node.Kind().String()
}

// Edit records one accepted leaf replacement.
type Edit struct {
	Path  Path
	Value Value
}
