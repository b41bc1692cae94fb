// Package render serializes document trees back to JSON.
//
// Render produces the export format: two-space indentation, one array element per
// line, members in load order. Leaves that were never edited are written using the
// literal they were decoded from, so an unedited tree renders to its seed document
// modulo whitespace.
//
// Overlay is the formatting-preserving alternative: it patches the edited leaves
// into the original seed bytes and leaves every other byte alone.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/0xalexb/confedit/document"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Indent is the per-level indentation of rendered documents.
const Indent = "  "

//nolint:gochecknoglobals // read-only formatter settings.
var prettyOptions = &pretty.Options{
	// Zero width puts every array element on its own line.
	Width:    0,
	Prefix:   "",
	Indent:   Indent,
	SortKeys: false,
}

// Render returns the indented JSON encoding of node, ending with a newline.
func Render(node document.Node) []byte {
	return pretty.PrettyOptions(Compact(node), prettyOptions)
}

// Compact returns the JSON encoding of node without insignificant whitespace
// between tokens.
func Compact(node document.Node) []byte {
	return pretty.Ugly(appendNode(nil, node))
}

// Value returns the compact JSON encoding of a single leaf value.
func Value(v document.Value) []byte {
	return appendValue(nil, v)
}

func appendNode(buf []byte, node document.Node) []byte {
	switch n := node.(type) {
	case *document.Leaf:
		if raw := n.Raw(); raw != "" {
			return append(buf, raw...)
		}

		return appendValue(buf, n.Value())
	case *document.Object:
		buf = append(buf, '{')

		for i := range n.Len() {
			if i > 0 {
				buf = append(buf, ',')
			}

			m := n.Entry(i)
			if m.RawKey != "" {
				buf = append(buf, m.RawKey...)
			} else {
				buf = gjson.AppendJSONString(buf, m.Key)
			}

			buf = append(buf, ':')
			buf = appendNode(buf, m.Node)
		}

		return append(buf, '}')
	case *document.Array:
		buf = append(buf, '[')

		for i := range n.Len() {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = appendNode(buf, n.At(i))
		}

		return append(buf, ']')
	default:
		return append(buf, "null"...)
	}
}

func appendValue(buf []byte, v document.Value) []byte {
	switch val := v.(type) {
	case document.Bool:
		return strconv.AppendBool(buf, bool(val))
	case document.HexColor:
		return gjson.AppendJSONString(buf, string(val))
	case document.String:
		return gjson.AppendJSONString(buf, string(val))
	case document.Number:
		if val == "" {
			return append(buf, '0')
		}

		return append(buf, val...)
	case document.FloatSequence:
		buf = append(buf, '[')

		for i, f := range val {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = append(buf, FormatNumber(f)...)
		}

		return append(buf, ']')
	case document.Blob:
		return appendNode(buf, val.Node)
	default:
		return append(buf, "null"...)
	}
}

// FormatNumber writes f the way JavaScript's JSON.stringify does: plain decimal
// notation from 1e-6 up to 1e21, shortest exponent form outside it.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return "null"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)

	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")

	return mantissa + "e" + sign + digits
}
