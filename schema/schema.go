// Package schema binds decoded trees to the two document kinds and exposes typed
// views over them.
//
// Binding checks shape and types, and converts theme tokens into their editable
// leaf types:
//
//	themes[i].colors.*          String        -> HexColor
//	themes[i].texts.size.*      [numbers]     -> FloatSequence
//	themes[i].border.radius.*   [numbers]     -> FloatSequence
//	themes[i].padding.*         [numbers]     -> FloatSequence
//	themes[i].shadows.*[j]      any           -> Blob
//
// Feature documents need no conversion: flags already decode as Bool leaves.
// Converted leaves keep their source literal so an unedited document renders back
// to its seed.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/confedit/document"
)

// ErrUnknownKind is returned for an unrecognized document kind.
var ErrUnknownKind = errors.New("unknown document kind")

// Kind names a document kind.
type Kind string

// Document kinds.
const (
	Features Kind = "features"
	Themes   Kind = "themes"
)

// Export filenames per kind.
const (
	FeatureFilename = "screen-config-data.json"
	ThemeFilename   = "updated-theme.json"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case Features:
		return Features, nil
	case Themes:
		return Themes, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Filename returns the fixed export filename of the kind.
func (k Kind) Filename() string {
	if k == Themes {
		return ThemeFilename
	}

	return FeatureFilename
}

// Bind checks and types root according to kind.
func Bind(kind Kind, root document.Node) (document.Node, error) {
	switch kind {
	case Features:
		return BindFeatures(root)
	case Themes:
		return BindThemes(root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Load decodes and binds a seed document.
func Load(kind Kind, data []byte) (document.Node, error) {
	root, err := document.Decode(data)
	if err != nil {
		return nil, err
	}

	return Bind(kind, root)
}

func shapeError(path document.Path, format string, args ...any) error {
	return &document.PathError{
		Path: path,
		Err:  fmt.Errorf("%w: %s", document.ErrValidation, fmt.Sprintf(format, args...)),
	}
}

func object(node document.Node, path document.Path) (*document.Object, error) {
	obj, ok := node.(*document.Object)
	if !ok {
		return nil, shapeError(path, "expected object, found %s", node.Kind())
	}

	return obj, nil
}

func array(node document.Node, path document.Path) (*document.Array, error) {
	arr, ok := node.(*document.Array)
	if !ok {
		return nil, shapeError(path, "expected array, found %s", node.Kind())
	}

	return arr, nil
}

func member(obj *document.Object, key string, path document.Path) (document.Node, error) {
	node, ok := obj.Get(key)
	if !ok {
		return nil, shapeError(path.Append(document.Field(key)), "missing field")
	}

	return node, nil
}

func leafValue(node document.Node, tag document.Tag, path document.Path) (document.Value, error) {
	leaf, ok := node.(*document.Leaf)
	if !ok || leaf.Value().Tag() != tag {
		return nil, shapeError(path, "expected %s", tag)
	}

	return leaf.Value(), nil
}

func stringField(obj *document.Object, key string, path document.Path) (string, error) {
	node, err := member(obj, key, path)
	if err != nil {
		return "", err
	}

	v, err := leafValue(node, document.TagString, path.Append(document.Field(key)))
	if err != nil {
		return "", err
	}

	s, _ := v.(document.String)

	return string(s), nil
}

func boolField(obj *document.Object, key string, path document.Path) (bool, error) {
	node, err := member(obj, key, path)
	if err != nil {
		return false, err
	}

	v, err := leafValue(node, document.TagBool, path.Append(document.Field(key)))
	if err != nil {
		return false, err
	}

	b, _ := v.(document.Bool)

	return bool(b), nil
}
