package document

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode parses a JSON document into a tree, preserving member order and the raw
// literal of every scalar. Duplicate keys are rejected.
func Decode(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrParse)
	}

	return convert(gjson.ParseBytes(data), Path{})
}

// DecodeString is Decode for string input.
func DecodeString(s string) (Node, error) {
	return Decode([]byte(s))
}

func convert(res gjson.Result, path Path) (Node, error) {
	switch res.Type {
	case gjson.Null:
		return NewLeafRaw(Null{}, res.Raw), nil
	case gjson.True, gjson.False:
		return NewLeafRaw(Bool(res.Bool()), res.Raw), nil
	case gjson.Number:
		return NewLeafRaw(Number(res.Raw), res.Raw), nil
	case gjson.String:
		return NewLeafRaw(String(res.Str), res.Raw), nil
	case gjson.JSON:
		if res.IsArray() {
			return convertArray(res, path)
		}

		return convertObject(res, path)
	default:
		return nil, &PathError{Path: path, Err: fmt.Errorf("%w: unexpected token", ErrParse)}
	}
}

func convertObject(res gjson.Result, path Path) (Node, error) {
	var (
		members []Member
		err     error
	)

	res.ForEach(func(key, value gjson.Result) bool {
		var child Node

		child, err = convert(value, path.Append(Field(key.Str)))
		if err != nil {
			return false
		}

		members = append(members, Member{Key: key.Str, RawKey: key.Raw, Node: child})

		return true
	})

	if err != nil {
		return nil, err
	}

	obj, err := NewObject(members...)
	if err != nil {
		return nil, &PathError{Path: path, Err: fmt.Errorf("%w: %w", ErrParse, err)}
	}

	return obj, nil
}

func convertArray(res gjson.Result, path Path) (Node, error) {
	var (
		items []Node
		err   error
	)

	res.ForEach(func(key, value gjson.Result) bool {
		var child Node

		child, err = convert(value, path.Append(Index(int(key.Num))))
		if err != nil {
			return false
		}

		items = append(items, child)

		return true
	})

	if err != nil {
		return nil, err
	}

	return &Array{items: items}, nil
}
