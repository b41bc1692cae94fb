package schema

import (
	"strconv"

	"github.com/0xalexb/confedit/coerce"
	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/render"
)

// EditableField describes one leaf a form control can edit, with the text the
// control is prefilled with. Leaves inside a theme also carry the theme index and
// the theme-relative path that PATCH /api/themes/{index} takes.
type EditableField struct {
	Path      string `json:"path"`
	Tag       string `json:"tag"`
	Text      string `json:"text"`
	Theme     *int   `json:"theme,omitempty"`
	ThemePath string `json:"themePath,omitempty"`
}

// FieldOf describes the leaf value v found at path.
func FieldOf(path document.Path, v document.Value) EditableField {
	text, _ := FieldText(v)

	field := EditableField{
		Path: path.String(),
		Tag:  v.Tag().String(),
		Text: text,
	}

	if index, rel, ok := ThemeRelative(path); ok {
		field.Theme = &index
		field.ThemePath = rel.String()
	}

	return field
}

// Fields lists the editable leaves of root in document order.
func Fields(root document.Node) []EditableField {
	var fields []EditableField

	document.Walk(root, func(path document.Path, node document.Node) bool {
		leaf, ok := node.(*document.Leaf)
		if !ok {
			return true
		}

		if _, editable := FieldText(leaf.Value()); editable {
			fields = append(fields, FieldOf(path, leaf.Value()))
		}

		return false
	})

	return fields
}

// FieldText renders an editable value the way its form control displays it.
func FieldText(v document.Value) (string, bool) {
	switch val := v.(type) {
	case document.Bool:
		return strconv.FormatBool(bool(val)), true
	case document.HexColor:
		return string(val), true
	case document.FloatSequence:
		return coerce.FormatSequence(val), true
	case document.Blob:
		return string(render.Value(val)), true
	default:
		return "", false
	}
}
