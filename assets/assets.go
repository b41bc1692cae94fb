// Package assets embeds the default seed documents.
package assets

import (
	_ "embed"
)

// Features is the default feature-config seed.
//
//go:embed screen-config-data.json
//nolint:gochecknoglobals // embedded seed, copied before use.
var Features []byte

// Themes is the default theme seed.
//
//go:embed theme.json
//nolint:gochecknoglobals // embedded seed, copied before use.
var Themes []byte
