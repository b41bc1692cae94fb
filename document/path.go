package document

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned when a textual path cannot be parsed. It classifies as
// KeyNotFound.
var ErrInvalidPath = fmt.Errorf("%w: invalid path", ErrKeyNotFound)

// Selector addresses one step of a Path: an object field or an array index.
type Selector struct {
	name    string
	index   int
	isIndex bool
}

// Field selects the member named name.
func Field(name string) Selector {
	return Selector{name: name, index: 0, isIndex: false}
}

// Index selects the i-th array item.
func Index(i int) Selector {
	return Selector{name: "", index: i, isIndex: true}
}

// IsIndex reports whether s is an Index selector.
func (s Selector) IsIndex() bool { return s.isIndex }

// Name returns the field name of a Field selector.
func (s Selector) Name() string { return s.name }

// Pos returns the index of an Index selector.
func (s Selector) Pos() int { return s.index }

// String renders the selector in path syntax.
func (s Selector) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}

	return escapeField(s.name)
}

// Path is an ordered sequence of selectors from a root to a node.
type Path []Selector

// Append returns a new path with sels added; p is not modified.
func (p Path) Append(sels ...Selector) Path {
	out := make(Path, 0, len(p)+len(sels))
	out = append(out, p...)

	return append(out, sels...)
}

// Join returns p followed by q.
func (p Path) Join(q Path) Path {
	return p.Append(q...)
}

// String renders the path, e.g. "themes[0].shadows.md[1]".
func (p Path) String() string {
	var b strings.Builder

	for i, s := range p {
		if !s.isIndex && i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(s.String())
	}

	return b.String()
}

// Equal reports whether two paths select the same node.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}

	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// MustParsePath is like ParsePath but panics on error. Intended for literals.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return p
}

// ParsePath parses dotted fields and bracketed indices: "texts.size.xl", "shadows.md[0]".
// A backslash escapes '.', '[', ']' or '\' inside a field name.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var (
		path    Path
		field   strings.Builder
		inField bool
	)

	flush := func() {
		path = append(path, Field(field.String()))
		field.Reset()
		inField = false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("%w: trailing escape in %q", ErrInvalidPath, s)
			}

			i++
			field.WriteByte(s[i])

			inField = true
		case '.':
			if !inField {
				if i == 0 || s[i-1] != ']' {
					return nil, fmt.Errorf("%w: empty field at offset %d in %q", ErrInvalidPath, i, s)
				}

				if i+1 >= len(s) {
					return nil, fmt.Errorf("%w: trailing dot in %q", ErrInvalidPath, s)
				}

				continue
			}

			if i+1 >= len(s) {
				return nil, fmt.Errorf("%w: trailing dot in %q", ErrInvalidPath, s)
			}

			flush()
		case '[':
			if inField {
				flush()
			}

			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidPath, s)
			}

			n, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrInvalidPath, s[i+1:i+end], s)
			}

			path = append(path, Index(n))
			i += end
		case ']':
			return nil, fmt.Errorf("%w: unexpected ']' in %q", ErrInvalidPath, s)
		default:
			if !inField && len(path) > 0 && s[i-1] == ']' {
				return nil, fmt.Errorf("%w: missing '.' after index in %q", ErrInvalidPath, s)
			}

			field.WriteByte(c)

			inField = true
		}
	}

	if inField {
		flush()
	}

	return path, nil
}

func escapeField(name string) string {
	if !strings.ContainsAny(name, `.[]\`) {
		return name
	}

	var b strings.Builder

	for i := range len(name) {
		switch name[i] {
		case '.', '[', ']', '\\':
			b.WriteByte('\\')
		}

		b.WriteByte(name[i])
	}

	return b.String()
}
