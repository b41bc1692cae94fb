package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/confedit/document"

	"github.com/tidwall/sjson"
)

// Overlay applies edits, in order, onto the original seed bytes. Bytes outside the
// edited leaves are preserved, including the seed's own indentation.
func Overlay(seed []byte, edits []document.Edit) ([]byte, error) {
	out := make([]byte, len(seed))
	copy(out, seed)

	for _, edit := range edits {
		var err error

		out, err = sjson.SetRawBytes(out, SetPath(edit.Path), Value(edit.Value))
		if err != nil {
			return nil, fmt.Errorf("overlay %s: %w", edit.Path, err)
		}
	}

	return out, nil
}

// SetPath converts a document path to sjson path syntax.
func SetPath(path document.Path) string {
	parts := make([]string, len(path))

	for i, sel := range path {
		if sel.IsIndex() {
			parts[i] = strconv.Itoa(sel.Pos())

			continue
		}

		parts[i] = escapeKey(sel.Name())
	}

	return strings.Join(parts, ".")
}

func escapeKey(key string) string {
	var b strings.Builder

	if isNumeric(key) {
		// Force object-key semantics for keys that look like indices.
		b.WriteByte(':')
	}

	for i := range len(key) {
		switch c := key[i]; c {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		case ':':
			if i == 0 {
				b.WriteByte('\\')
			}
		}

		b.WriteByte(key[i])
	}

	return b.String()
}

func isNumeric(key string) bool {
	digits := strings.TrimPrefix(key, "-")
	if digits == "" {
		return false
	}

	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}

	return true
}
