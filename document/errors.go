package document

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned when a path segment is absent or hits the wrong container kind.
	ErrKeyNotFound = errors.New("key not found")

	// ErrValidation is returned when an input is well-formed but not acceptable for the target leaf.
	ErrValidation = errors.New("validation error")

	// ErrParse is returned when structured input cannot be parsed.
	ErrParse = errors.New("parse error")
)

// ErrorKind classifies document errors.
type ErrorKind int

const (
	// KindUnknown is any error outside the document taxonomy.
	KindUnknown ErrorKind = iota
	// KindKeyNotFound matches ErrKeyNotFound.
	KindKeyNotFound
	// KindValidation matches ErrValidation.
	KindValidation
	// KindParse matches ErrParse.
	KindParse
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindKeyNotFound:
		return "KeyNotFound"
	case KindValidation:
		return "ValidationError"
	case KindParse:
		return "ParseError"
	case KindUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// KindOf reports which taxonomy sentinel err wraps.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrKeyNotFound):
		return KindKeyNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrParse):
		return KindParse
	default:
		return KindUnknown
	}
}

// PathError records the path an operation failed on.
type PathError struct {
	// Path is the path as far as it resolved, including the failing selector.
	Path Path
	// Err wraps one of the package sentinels.
	Err error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

func notFound(path Path, format string, args ...any) error {
	return &PathError{
		Path: path,
		Err:  fmt.Errorf("%w: %s", ErrKeyNotFound, fmt.Sprintf(format, args...)),
	}
}
