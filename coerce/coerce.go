// Package coerce converts raw editor input into typed leaf values.
//
// The target leaf's current tag decides how input is read, and the result always
// carries the same tag:
//
//	Bool           Flip only
//	HexColor       "#RGB" or "#RRGGBB", case-insensitive
//	FloatSequence  tokens separated by ", ", each a finite float
//	Blob           any well-formed JSON document, replacing the blob wholesale
//
// Failures wrap document.ErrValidation or document.ErrParse; the caller keeps the
// prior value.
package coerce

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/0xalexb/confedit/document"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
)

// SequenceSeparator splits FloatSequence input.
const SequenceSeparator = ", "

// ErrNotEditable is returned for labels and passthrough scalars.
var ErrNotEditable = errors.New("leaf is not editable")

// Input is a raw edit: Flip or Text.
type Input interface {
	isInput()
}

// Flip inverts a Bool leaf.
type Flip struct{}

// Text is free-form input from a text control.
type Text string

func (Flip) isInput() {}
func (Text) isInput() {}

// Coerce converts in into a value with the same tag as current.
func Coerce(current document.Value, in Input) (document.Value, error) {
	switch cur := current.(type) {
	case document.Bool:
		if _, ok := in.(Flip); !ok {
			return nil, invalid("boolean leaves accept flips only")
		}

		return !cur, nil
	case document.HexColor:
		text, err := textOf(in)
		if err != nil {
			return nil, err
		}

		color, err := HexColor(text)
		if err != nil {
			return nil, err
		}

		return color, nil
	case document.FloatSequence:
		text, err := textOf(in)
		if err != nil {
			return nil, err
		}

		seq, err := FloatSequence(text)
		if err != nil {
			return nil, err
		}

		return seq, nil
	case document.Blob:
		text, err := textOf(in)
		if err != nil {
			return nil, err
		}

		blob, err := Blob(text)
		if err != nil {
			return nil, err
		}

		return blob, nil
	case nil:
		return nil, invalid("no current value")
	default:
		return nil, fmt.Errorf("%w: %w: %s", document.ErrValidation, ErrNotEditable, current.Tag())
	}
}

// HexColor validates a "#RGB" or "#RRGGBB" string. The input's letter case is kept.
func HexColor(text string) (document.HexColor, error) {
	if !isHexShape(text) {
		return "", invalid("%q is not a #RGB or #RRGGBB color", text)
	}

	return document.HexColor(text), nil
}

// Color parses c into its channels.
func Color(c document.HexColor) (colorful.Color, error) {
	if !isHexShape(string(c)) {
		return colorful.Color{}, invalid("%q is not a #RGB or #RRGGBB color", c)
	}

	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}, invalid("%q: %v", c, err)
	}

	return parsed, nil
}

// RGB returns the color's channels in [0,1].
func RGB(c document.HexColor) (r, g, b float64, err error) {
	parsed, err := Color(c)
	if err != nil {
		return 0, 0, 0, err
	}

	return parsed.R, parsed.G, parsed.B, nil
}

// Canonical returns c as lowercase "#rrggbb"; "#FA0" becomes "#ffaa00".
func Canonical(c document.HexColor) (string, error) {
	parsed, err := Color(c)
	if err != nil {
		return "", err
	}

	return parsed.Hex(), nil
}

// FloatSequence parses "4, 8, 16" into a sequence. Any bad token rejects the whole input.
func FloatSequence(text string) (document.FloatSequence, error) {
	tokens := strings.Split(text, SequenceSeparator)
	seq := make(document.FloatSequence, 0, len(tokens))

	for i, token := range tokens {
		token = strings.TrimSpace(token)

		if isHexFloat(token) {
			return nil, invalid("token %d %q is not a decimal number", i, token)
		}

		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, invalid("token %d %q is not a number", i, token)
		}

		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, invalid("token %d %q is not finite", i, token)
		}

		seq = append(seq, f)
	}

	return seq, nil
}

// FormatSequence is the inverse of FloatSequence, used to prefill text controls.
func FormatSequence(seq document.FloatSequence) string {
	parts := make([]string, len(seq))
	for i, f := range seq {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strings.Join(parts, SequenceSeparator)
}

// Blob parses text as a JSON document.
func Blob(text string) (document.Blob, error) {
	if strings.TrimSpace(text) == "" || !gjson.Valid(text) {
		return document.Blob{Node: nil}, fmt.Errorf("%w: blob is not well-formed JSON", document.ErrParse)
	}

	node, err := document.DecodeString(text)
	if err != nil {
		return document.Blob{Node: nil}, err
	}

	return document.Blob{Node: node}, nil
}

func textOf(in Input) (string, error) {
	text, ok := in.(Text)
	if !ok {
		return "", invalid("expected text input")
	}

	return string(text), nil
}

// isHexFloat reports a "0x" mantissa, which strconv accepts and decimal input does not.
func isHexFloat(token string) bool {
	unsigned := strings.TrimLeft(token, "+-")

	return len(unsigned) >= 2 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X')
}

func isHexShape(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}

	if s[0] != '#' {
		return false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'

		if !isDigit && !isLower && !isUpper {
			return false
		}
	}

	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", document.ErrValidation, fmt.Sprintf(format, args...))
}
