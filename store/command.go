package store

import (
	"fmt"

	"github.com/0xalexb/confedit/coerce"
	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/schema"
)

// Command is an edit request against one snapshot.
type Command interface {
	// Name identifies the command in errors, logs and change notifications.
	Name() string

	apply(snap *Snapshot) (*Snapshot, error)
}

// Apply runs cmd against snap. On failure it returns snap itself together with an *EditError,
// so callers can keep using the returned snapshot either way.
func Apply(snap *Snapshot, cmd Command) (*Snapshot, error) {
	if cmd == nil {
		return snap, &EditError{Command: nilCommandName, Err: ErrNilCommand}
	}

	if snap == nil {
		return nil, &EditError{Command: cmd.Name(), Err: ErrNoDocument}
	}

	next, err := cmd.apply(snap)
	if err != nil {
		return snap, err
	}

	return next, nil
}

// ToggleScreenVisibility flips the isChecked flag of a screen.
type ToggleScreenVisibility struct {
	Screen string
}

// Name implements Command.
func (ToggleScreenVisibility) Name() string { return "toggle-screen" }

func (c ToggleScreenVisibility) apply(snap *Snapshot) (*Snapshot, error) {
	if err := snap.expect(schema.Features); err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	path, err := schema.VisibilityPath(snap.root, c.Screen)
	if err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	return edit(snap, c.Name(), path, coerce.Flip{})
}

// SetOptionValue stores an explicit value for a screen or global option.
type SetOptionValue struct {
	Scope  schema.Scope
	Screen string
	Option string
	Value  bool
}

// Name implements Command.
func (SetOptionValue) Name() string { return "set-option" }

func (c SetOptionValue) apply(snap *Snapshot) (*Snapshot, error) {
	if err := snap.expect(schema.Features); err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	path, err := schema.OptionValuePath(snap.root, c.Scope, c.Screen, c.Option)
	if err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	current, err := document.GetAtPath(snap.root, path)
	if err != nil {
		return nil, editError(c.Name(), path, err)
	}

	if current.Tag() != document.TagBool {
		err := fmt.Errorf("%w: option value is %s, not bool", document.ErrValidation, current.Tag())

		return nil, editError(c.Name(), path, err)
	}

	next, err := snap.commit(path, document.Bool(c.Value))
	if err != nil {
		return nil, editError(c.Name(), path, err)
	}

	return next, nil
}

// ToggleOption flips a screen or global option.
type ToggleOption struct {
	Scope  schema.Scope
	Screen string
	Option string
}

// Name implements Command.
func (ToggleOption) Name() string { return "toggle-option" }

func (c ToggleOption) apply(snap *Snapshot) (*Snapshot, error) {
	if err := snap.expect(schema.Features); err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	path, err := schema.OptionValuePath(snap.root, c.Scope, c.Screen, c.Option)
	if err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	return edit(snap, c.Name(), path, coerce.Flip{})
}

// SetThemeField replaces one token of a theme with the coerced form of Raw.
// Path is relative to the theme entry, e.g. colors.primary or shadows.md[0].
type SetThemeField struct {
	Theme int
	Path  document.Path
	Raw   string
}

// Name implements Command.
func (SetThemeField) Name() string { return "set-theme-field" }

func (c SetThemeField) apply(snap *Snapshot) (*Snapshot, error) {
	if err := snap.expect(schema.Themes); err != nil {
		return nil, editError(c.Name(), nil, err)
	}

	path := schema.ThemePath(c.Theme, c.Path)
	if len(c.Path) == 0 {
		err := fmt.Errorf("%w: empty token path", document.ErrKeyNotFound)

		return nil, editError(c.Name(), path, err)
	}

	return edit(snap, c.Name(), path, coerce.Text(c.Raw))
}

// Reset discards every edit and returns to the seed.
type Reset struct{}

// Name implements Command.
func (Reset) Name() string { return "reset" }

func (Reset) apply(snap *Snapshot) (*Snapshot, error) {
	return snap.reset(), nil
}

// edit reads the leaf at path, coerces in against it and commits the result.
func edit(snap *Snapshot, name string, path document.Path, in coerce.Input) (*Snapshot, error) {
	current, err := document.GetAtPath(snap.root, path)
	if err != nil {
		return nil, editError(name, path, err)
	}

	value, err := coerce.Coerce(current, in)
	if err != nil {
		return nil, editError(name, path, err)
	}

	next, err := snap.commit(path, value)
	if err != nil {
		return nil, editError(name, path, err)
	}

	return next, nil
}
