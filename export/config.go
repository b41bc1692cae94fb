package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/0xalexb/confedit/store"
)

// Mode selects how a snapshot is turned into bytes.
type Mode string

const (
	// ModeRender re-serializes the whole tree with two-space indentation.
	ModeRender Mode = "render"
	// ModePreserve patches the edited leaves into the original seed bytes.
	ModePreserve Mode = "preserve"
)

// DefaultDir is where FileSink writes when no directory is configured.
const DefaultDir = "exports"

// ErrUnknownMode is returned for a mode other than render or preserve.
var ErrUnknownMode = errors.New("unknown export mode")

// ErrInvalidTTL is returned for a negative download TTL.
var ErrInvalidTTL = errors.New("ttl must not be negative")

// Config holds the export settings. Dir and Mode are the defaults of confedit apply;
// Mode and TTL drive the HTTP downloads.
type Config struct {
	Dir  string        `yaml:"dir"`
	Mode Mode          `yaml:"mode"`
	TTL  time.Duration `yaml:"ttl"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Dir == "" {
		c.Dir = DefaultDir
		changed = true
	}

	if c.Mode == "" {
		c.Mode = ModeRender
		changed = true
	}

	if c.TTL == 0 {
		c.TTL = DefaultTTL
		changed = true
	}

	return changed
}

// Validate checks the mode and TTL.
func (c *Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}

	if c.TTL < 0 {
		return ErrInvalidTTL
	}

	return nil
}

// ParseMode accepts "render" or "preserve".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRender, ModePreserve:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Document serializes snap in the given mode and returns the bytes with the export filename.
func Document(snap *store.Snapshot, mode Mode) ([]byte, string, error) {
	filename := snap.Kind().Filename()

	switch mode {
	case ModeRender, "":
		return snap.Render(), filename, nil
	case ModePreserve:
		data, err := snap.Overlay()
		if err != nil {
			return nil, "", fmt.Errorf("overlay %s: %w", snap.Kind(), err)
		}

		return data, filename, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
