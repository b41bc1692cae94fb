package store

import (
	"errors"
	"fmt"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/schema"
)

var (
	// ErrWrongKind is returned when a command targets the other document kind.
	ErrWrongKind = errors.New("command does not apply to this document kind")

	// ErrNoDocument is returned when the store holds no snapshot of the requested kind.
	ErrNoDocument = errors.New("no document loaded")

	// ErrDuplicateDocument is returned when two seeds of the same kind are loaded.
	ErrDuplicateDocument = errors.New("document kind loaded twice")

	// ErrNilCommand is returned for a nil Command. It classifies as ValidationError.
	ErrNilCommand = fmt.Errorf("%w: nil command", document.ErrValidation)
)

// nilCommandName names a nil Command in errors and logs.
const nilCommandName = "nil"

// EditError reports a rejected command. The snapshot it was applied to is unchanged.
type EditError struct {
	Command string
	Path    document.Path
	Err     error
}

// Error implements the error interface.
func (e *EditError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Command, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *EditError) Unwrap() error {
	return e.Err
}

// Kind classifies the failure as KeyNotFound, ValidationError or ParseError.
func (e *EditError) Kind() document.ErrorKind {
	return document.KindOf(e.Err)
}

func editError(command string, path document.Path, err error) error {
	if len(path) == 0 {
		var pathErr *document.PathError
		if errors.As(err, &pathErr) {
			path = pathErr.Path
		}
	}

	return &EditError{Command: command, Path: path, Err: err}
}

func commandName(cmd Command) string {
	if cmd == nil {
		return nilCommandName
	}

	return cmd.Name()
}

func wrongKind(want, got schema.Kind) error {
	return fmt.Errorf("%w: want %s, have %s", ErrWrongKind, want, got)
}
