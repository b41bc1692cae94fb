package export_test

import (
	"testing"
	"time"

	"github.com/0xalexb/confedit/assets"
	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	var cfg export.Config

	assert.True(t, cfg.SetDefaults())
	assert.Equal(t, export.Config{Dir: export.DefaultDir, Mode: export.ModeRender, TTL: export.DefaultTTL}, cfg)
	assert.False(t, cfg.SetDefaults())
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     export.Config
		wantErr error
	}{
		{name: "render", cfg: export.Config{Mode: export.ModeRender}},
		{name: "preserve", cfg: export.Config{Mode: export.ModePreserve, TTL: time.Second}},
		{name: "unknown mode", cfg: export.Config{Mode: "minify"}, wantErr: export.ErrUnknownMode},
		{name: "empty mode", cfg: export.Config{}, wantErr: export.ErrUnknownMode},
		{name: "negative ttl", cfg: export.Config{Mode: export.ModeRender, TTL: -time.Second}, wantErr: export.ErrInvalidTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

// compactTheme is a seed whose own formatting differs from the rendered form.
const compactTheme = `{"themes":[{"name":"mono","colors":{"ink":"#000000","paper":"#FFFFFF"}}]}`

func TestDocument_Modes(t *testing.T) {
	t.Parallel()

	snap, err := store.NewSnapshot(schema.Themes, []byte(compactTheme))
	require.NoError(t, err)

	snap, err = store.Apply(snap, store.SetThemeField{
		Theme: 0,
		Path:  document.MustParsePath("colors.ink"),
		Raw:   "#111",
	})
	require.NoError(t, err)

	preserved, filename, err := export.Document(snap, export.ModePreserve)
	require.NoError(t, err)
	assert.Equal(t, schema.ThemeFilename, filename)
	assert.Equal(t, `{"themes":[{"name":"mono","colors":{"ink":"#111","paper":"#FFFFFF"}}]}`, string(preserved))

	rendered, _, err := export.Document(snap, export.ModeRender)
	require.NoError(t, err)
	assert.Equal(t, string(snap.Render()), string(rendered))
	assert.JSONEq(t, string(preserved), string(rendered))

	_, _, err = export.Document(snap, "minify")
	require.ErrorIs(t, err, export.ErrUnknownMode)
}

func TestDocument_FeatureFilename(t *testing.T) {
	t.Parallel()

	snap, err := store.NewSnapshot(schema.Features, assets.Features)
	require.NoError(t, err)

	data, filename, err := export.Document(snap, "")
	require.NoError(t, err)
	assert.Equal(t, schema.FeatureFilename, filename)
	assert.Equal(t, string(assets.Features), string(data))
}
