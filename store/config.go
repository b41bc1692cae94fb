package store

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/0xalexb/confedit/assets"
	"github.com/0xalexb/confedit/config/fetcher/file"
	"github.com/0xalexb/confedit/schema"
)

// ErrSeedExtension is returned when a seed path does not name a .json file.
var ErrSeedExtension = errors.New("seed file must have a .json extension")

// Config selects the seed documents of a session. An empty path loads the embedded default.
type Config struct {
	Features string `yaml:"features"`
	Themes   string `yaml:"themes"`
}

// SetDefaults cleans the configured seed paths.
func (c *Config) SetDefaults() bool {
	changed := false

	for _, p := range []*string{&c.Features, &c.Themes} {
		if *p == "" {
			continue
		}

		cleaned := filepath.Clean(*p)
		if cleaned != *p {
			*p = cleaned
			changed = true
		}
	}

	return changed
}

// Validate checks that every configured seed path names a JSON file.
func (c *Config) Validate() error {
	for _, p := range []string{c.Features, c.Themes} {
		if p != "" && !strings.EqualFold(filepath.Ext(p), ".json") {
			return fmt.Errorf("%w: %q", ErrSeedExtension, p)
		}
	}

	return nil
}

// Path returns the configured seed path for kind.
func (c *Config) Path(kind schema.Kind) string {
	if kind == schema.Themes {
		return c.Themes
	}

	return c.Features
}

// LoadSeed reads the seed of kind from path, or returns the embedded default when path is empty.
func LoadSeed(kind schema.Kind, path string) ([]byte, error) {
	if path == "" {
		if kind == schema.Themes {
			return assets.Themes, nil
		}

		return assets.Features, nil
	}

	fetcher, err := file.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("loading %s seed: %w", kind, err)
	}

	return fetcher.Fetch()
}

// NewFromConfig loads both seeds named by cfg and returns a Store holding them.
func NewFromConfig(cfg *Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	snaps := make([]*Snapshot, 0, 2)

	for _, kind := range []schema.Kind{schema.Features, schema.Themes} {
		path := cfg.Path(kind)

		seed, err := LoadSeed(kind, path)
		if err != nil {
			return nil, err
		}

		snap, err := NewSnapshot(kind, seed)
		if err != nil {
			return nil, fmt.Errorf("binding %s seed: %w", kind, err)
		}

		source := path
		if source == "" {
			source = "embedded"
		}

		logger.Info("document loaded",
			slog.String("kind", string(kind)),
			slog.String("source", source),
		)

		snaps = append(snaps, snap)
	}

	return New(logger, snaps...)
}
