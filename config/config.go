package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrSectionNotFound is returned by a Parser when the requested path does not exist
// in the configuration document.
var ErrSectionNotFound = errors.New("section not found")

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter specifies a navigation path within the configuration data
// using colon (:) as the separator for nested keys. For example:
//   - "editor:documents" navigates to config["editor"]["documents"]
//   - "editor:export:ttl" navigates three levels deep
//   - "" (empty path) means parse the entire document
//
// Implementations report a missing path with an error wrapping ErrSectionNotFound.
// See config/parser/yaml for an example using goccy/go-yaml PathString.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// StaticFetcher serves configuration data held in memory.
// It backs runs without a configuration file and tests.
type StaticFetcher []byte

// Fetch returns a copy of the held data.
func (s StaticFetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(s))
	copy(result, s)

	return result, nil
}

// Provider returns a function that reads, parses, sets defaults, and validates configuration data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		return load(parser, dataSourcer, target, path, false)
	}
}

// OptionalProvider works like Provider, except that a missing section or an empty
// document leaves target untouched before defaults and validation run.
func OptionalProvider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		return load(parser, dataSourcer, target, path, true)
	}
}

func load[T any](parser Parser, dataSourcer DataFetcher, target *T, path string, optional bool) (*T, error) {
	data, err := dataSourcer.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	switch {
	case optional && len(data) == 0:
		slog.Debug("config section skipped", slog.String("path", path))
	default:
		err = parser.Parse(data, target, path)
		if optional && errors.Is(err, ErrSectionNotFound) {
			slog.Debug("config section skipped", slog.String("path", path))
		} else if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}
	}

	targetDefaulter, isDefaulter := any(target).(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Info("defaults applied", slog.String("path", path))
		}
	}

	targetValidatable, isValidatable := any(target).(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}
