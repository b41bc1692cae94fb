package schema

import (
	"strings"

	"github.com/0xalexb/confedit/coerce"
	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/render"
)

// Theme document field names.
const (
	fieldThemes  = "themes"
	fieldColors  = "colors"
	fieldTexts   = "texts"
	fieldSize    = "size"
	fieldShadows = "shadows"
	fieldBorder  = "border"
	fieldRadius  = "radius"
	fieldPadding = "padding"
)

// sequenceGroups are the token groups whose entries are number lists.
//
//nolint:gochecknoglobals // fixed schema table.
var sequenceGroups = []document.Path{
	{document.Field(fieldTexts), document.Field(fieldSize)},
	{document.Field(fieldBorder), document.Field(fieldRadius)},
	{document.Field(fieldPadding)},
}

// ColorToken is one named color. Value is the literal as edited, Hex its canonical
// "#rrggbb" form and RGB the channels in [0,1].
type ColorToken struct {
	Key   string     `json:"key"`
	Value string     `json:"value"`
	Hex   string     `json:"hex"`
	RGB   [3]float64 `json:"rgb"`
}

// SequenceToken is one named number list.
type SequenceToken struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// ShadowGroup lists the layers of one shadow size as compact JSON.
type ShadowGroup struct {
	Key    string   `json:"key"`
	Layers []string `json:"layers"`
}

// ThemeEntry is the typed view of one theme.
type ThemeEntry struct {
	Name         string          `json:"name"`
	Colors       []ColorToken    `json:"colors"`
	TextSizes    []SequenceToken `json:"textSizes"`
	Shadows      []ShadowGroup   `json:"shadows"`
	BorderRadius []SequenceToken `json:"borderRadius"`
	Padding      []SequenceToken `json:"padding"`
}

// BindThemes validates a theme document and converts its tokens to editable leaves.
// Top-level fields other than "themes" are passthrough and left untouched.
func BindThemes(root document.Node) (document.Node, error) {
	arr, err := themesArray(root)
	if err != nil {
		return nil, err
	}

	for i := range arr.Len() {
		root, err = bindTheme(root, themePath(i))
		if err != nil {
			return nil, err
		}
	}

	return root, nil
}

func bindTheme(root document.Node, path document.Path) (document.Node, error) {
	node, err := document.Lookup(root, path)
	if err != nil {
		return nil, err
	}

	theme, err := object(node, path)
	if err != nil {
		return nil, err
	}

	if _, err := stringField(theme, fieldName, path); err != nil {
		return nil, err
	}

	root, err = bindGroup(root, theme, path, document.Path{document.Field(fieldColors)}, colorLeaf)
	if err != nil {
		return nil, err
	}

	for _, group := range sequenceGroups {
		root, err = bindGroup(root, theme, path, group, sequenceLeaf)
		if err != nil {
			return nil, err
		}
	}

	return bindGroup(root, theme, path, document.Path{document.Field(fieldShadows)}, shadowLayers)
}

// bindGroup converts every entry of an optional token group inside theme.
func bindGroup(
	root document.Node,
	theme *document.Object,
	themePath, group document.Path,
	convert func(document.Node, document.Path) (document.Node, error),
) (document.Node, error) {
	node, present, err := groupNode(theme, themePath, group)
	if err != nil || !present {
		return root, err
	}

	groupPath := themePath.Join(group)

	obj, err := object(node, groupPath)
	if err != nil {
		return nil, err
	}

	for key, entry := range obj.All() {
		entryPath := groupPath.Append(document.Field(key))

		converted, err := convert(entry, entryPath)
		if err != nil {
			return nil, err
		}

		root, err = document.ReplaceAtPath(root, entryPath, converted)
		if err != nil {
			return nil, err
		}
	}

	return root, nil
}

// groupNode finds an optional token group. A missing member means the group is
// absent; a parent that is not an object is a shape error.
func groupNode(theme *document.Object, themePath, group document.Path) (document.Node, bool, error) {
	var node document.Node = theme

	path := themePath

	for _, sel := range group {
		obj, err := object(node, path)
		if err != nil {
			return nil, false, err
		}

		child, ok := obj.Get(sel.Name())
		if !ok {
			return nil, false, nil
		}

		node = child
		path = path.Append(sel)
	}

	return node, true, nil
}

func colorLeaf(node document.Node, path document.Path) (document.Node, error) {
	v, err := leafValue(node, document.TagString, path)
	if err != nil {
		return nil, err
	}

	s, _ := v.(document.String)

	color, err := coerce.HexColor(string(s))
	if err != nil {
		return nil, &document.PathError{Path: path, Err: err}
	}

	leaf, _ := node.(*document.Leaf)

	return document.NewLeafRaw(color, leaf.Raw()), nil
}

func sequenceLeaf(node document.Node, path document.Path) (document.Node, error) {
	arr, err := array(node, path)
	if err != nil {
		return nil, err
	}

	seq, raw, err := numbers(arr, path)
	if err != nil {
		return nil, err
	}

	return document.NewLeafRaw(seq, raw), nil
}

func shadowLayers(node document.Node, path document.Path) (document.Node, error) {
	arr, err := array(node, path)
	if err != nil {
		return nil, err
	}

	layers := make([]document.Node, arr.Len())
	for i, layer := range arr.All() {
		layers[i] = document.NewLeaf(document.Blob{Node: layer})
	}

	return document.NewArray(layers...), nil
}

func numbers(arr *document.Array, path document.Path) (document.FloatSequence, string, error) {
	seq := make(document.FloatSequence, arr.Len())
	raws := make([]string, arr.Len())

	for i, item := range arr.All() {
		itemPath := path.Append(document.Index(i))

		v, err := leafValue(item, document.TagNumber, itemPath)
		if err != nil {
			return nil, "", err
		}

		n, _ := v.(document.Number)

		f, err := coerce.FloatSequence(string(n))
		if err != nil || len(f) != 1 {
			return nil, "", shapeError(itemPath, "not a finite number")
		}

		seq[i] = f[0]
		raws[i] = string(n)
	}

	return seq, "[" + strings.Join(raws, ",") + "]", nil
}

// ThemeEntries returns the typed theme list.
func ThemeEntries(root document.Node) ([]ThemeEntry, error) {
	arr, err := themesArray(root)
	if err != nil {
		return nil, err
	}

	themes := make([]ThemeEntry, 0, arr.Len())

	for i, node := range arr.All() {
		path := themePath(i)

		obj, err := object(node, path)
		if err != nil {
			return nil, err
		}

		name, err := stringField(obj, fieldName, path)
		if err != nil {
			return nil, err
		}

		entry := ThemeEntry{
			Name:         name,
			Colors:       colorTokens(obj),
			TextSizes:    sequenceTokens(obj, sequenceGroups[0]),
			Shadows:      shadowGroups(obj),
			BorderRadius: sequenceTokens(obj, sequenceGroups[1]),
			Padding:      sequenceTokens(obj, sequenceGroups[2]),
		}

		themes = append(themes, entry)
	}

	return themes, nil
}

// ThemePath returns the path of themes[i] joined with a theme-relative path.
func ThemePath(i int, rel document.Path) document.Path {
	return themePath(i).Join(rel)
}

// ThemeRelative splits a root-based path "themes[i].rest" into i and rest. It fails
// for paths outside a theme and for the theme object itself.
func ThemeRelative(p document.Path) (int, document.Path, bool) {
	if len(p) < 3 || p[0].IsIndex() || p[0].Name() != fieldThemes || !p[1].IsIndex() {
		return 0, nil, false
	}

	return p[1].Pos(), p[2:], true
}

// Passthrough lists top-level fields of a theme document outside the schema.
func Passthrough(root document.Node) []string {
	obj, ok := root.(*document.Object)
	if !ok {
		return nil
	}

	var keys []string

	for _, key := range obj.Keys() {
		if key != fieldThemes {
			keys = append(keys, key)
		}
	}

	return keys
}

func themesArray(root document.Node) (*document.Array, error) {
	rootObj, err := object(root, document.Path{})
	if err != nil {
		return nil, err
	}

	node, err := member(rootObj, fieldThemes, document.Path{})
	if err != nil {
		return nil, err
	}

	return array(node, document.Path{document.Field(fieldThemes)})
}

func themePath(i int) document.Path {
	return document.Path{document.Field(fieldThemes), document.Index(i)}
}

func groupEntries(theme *document.Object, group document.Path) []document.Member {
	node, err := document.Lookup(theme, group)
	if err != nil {
		return nil
	}

	obj, ok := node.(*document.Object)
	if !ok {
		return nil
	}

	entries := make([]document.Member, obj.Len())
	for i := range obj.Len() {
		entries[i] = obj.Entry(i)
	}

	return entries
}

func colorTokens(theme *document.Object) []ColorToken {
	var tokens []ColorToken

	for _, m := range groupEntries(theme, document.Path{document.Field(fieldColors)}) {
		if leaf, ok := m.Node.(*document.Leaf); ok {
			if c, ok := leaf.Value().(document.HexColor); ok {
				tokens = append(tokens, ColorToken{Key: m.Key, Value: string(c)})
			}
		}
	}

	return tokens
}

func colorToken(key string, c document.HexColor) ColorToken {
	token := ColorToken{Key: key, Value: string(c)}

	// Bound colors always parse.
	parsed, err := coerce.Color(c)
	if err == nil {
		token.Hex = parsed.Hex()
		token.RGB = [3]float64{parsed.R, parsed.G, parsed.B}
	}

	return token
}

func sequenceTokens(theme *document.Object, group document.Path) []SequenceToken {
	var tokens []SequenceToken

	for _, m := range groupEntries(theme, group) {
		if leaf, ok := m.Node.(*document.Leaf); ok {
			if seq, ok := leaf.Value().(document.FloatSequence); ok {
				tokens = append(tokens, SequenceToken{Key: m.Key, Values: []float64(seq)})
			}
		}
	}

	return tokens
}

func shadowGroups(theme *document.Object) []ShadowGroup {
	var groups []ShadowGroup

	for _, m := range groupEntries(theme, document.Path{document.Field(fieldShadows)}) {
		arr, ok := m.Node.(*document.Array)
		if !ok {
			continue
		}

		group := ShadowGroup{Key: m.Key, Layers: make([]string, 0, arr.Len())}

		for _, layer := range arr.All() {
			if leaf, ok := layer.(*document.Leaf); ok {
				group.Layers = append(group.Layers, string(render.Value(leaf.Value())))
			}
		}

		groups = append(groups, group)
	}

	return groups
}
