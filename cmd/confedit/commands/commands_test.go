package commands_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xalexb/confedit/assets"
	"github.com/0xalexb/confedit/cmd/confedit/commands"
	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/export"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const compactTheme = `{"version":"1","themes":[{"name":"mono","colors":{"primary":"#000000"},` +
	`"texts":{"size":{"xl":[4,8,12]}},"shadows":{}}],"fonts":{}}`

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, fs afero.Fs, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := commands.NewRootCmd(fs)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())

	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)

	return string(data)
}

func TestRender_EmbeddedSeeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind string
		seed []byte
	}{
		{kind: "features", seed: assets.Features},
		{kind: "themes", seed: assets.Themes},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()

			res := run(t, afero.NewMemMapFs(), "render", "--kind", tt.kind)

			require.NoError(t, res.err)
			assert.JSONEq(t, string(tt.seed), res.stdout)
		})
	}
}

func TestRender_SeedFileModes(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "seeds/theme.json", []byte(compactTheme), 0o600))

	preserved := run(t, fs, "render", "-k", "themes", "-s", "seeds/theme.json", "-m", "preserve")
	require.NoError(t, preserved.err)
	assert.Equal(t, compactTheme, preserved.stdout)

	rendered := run(t, fs, "render", "-k", "themes", "-s", "seeds/theme.json")
	require.NoError(t, rendered.err)
	assert.NotEqual(t, compactTheme, rendered.stdout)
	assert.JSONEq(t, compactTheme, rendered.stdout)
	assert.Contains(t, rendered.stdout, "\n  ")
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "broken.json", []byte(`{"themes":`), 0o600))

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		contains string
	}{
		{name: "missing kind", args: []string{"render"}, contains: "kind"},
		{name: "unknown kind", args: []string{"render", "-k", "layouts"}, contains: "layouts"},
		{name: "unknown mode", args: []string{"render", "-k", "themes", "-m", "zip"}, wantErr: export.ErrUnknownMode},
		{name: "missing seed", args: []string{"render", "-k", "themes", "-s", "absent.json"}, contains: "absent.json"},
		{name: "malformed seed", args: []string{"render", "-k", "themes", "-s", "broken.json"}, wantErr: document.ErrParse},
		{name: "wrong shape", args: []string{"render", "-k", "features", "-s", "broken.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, fs, tt.args...)

			require.Error(t, res.err)
			assert.Empty(t, res.stdout)

			if tt.wantErr != nil {
				require.ErrorIs(t, res.err, tt.wantErr)
			}

			if tt.contains != "" {
				assert.Contains(t, res.err.Error(), tt.contains)
			}
		})
	}
}

func TestApply_FeatureEdits(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	res := run(t, fs, "apply", "--kind", "features",
		"--toggle", "order_screen",
		"--option", "global:isDarkMode=true",
		"--option", "screen:home_screen:showCategories=true",
		"--toggle-option", "screen:order_screen:showEta",
		"--out", "exports",
	)
	require.NoError(t, res.err)

	location := filepath.Join("exports", "screen-config-data.json")
	assert.Equal(t, location, strings.TrimSpace(res.stdout))

	got := readFile(t, fs, location)

	assert.False(t, gjson.Get(got, "screens.1.isChecked").Bool())
	assert.True(t, gjson.Get(got, "globalConfig.isDarkMode.value").Bool())
	assert.True(t, gjson.Get(got, "screens.0.config.showCategories.value").Bool())
	assert.False(t, gjson.Get(got, "screens.1.config.showEta.value").Bool())
	assert.True(t, gjson.Get(got, "screens.1.config.allowNotes.value").Bool(), "untouched option")
}

func TestApply_ThemeEditsPreserve(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "theme.json", []byte(compactTheme), 0o600))

	res := run(t, fs, "apply", "-k", "themes", "-s", "theme.json", "-m", "preserve",
		"--set", "0:colors.primary=#fff",
		"--set", "0:texts.size.xl=4, 8, 16, 20",
		"-o", "out",
	)
	require.NoError(t, res.err)

	want := strings.Replace(compactTheme, `"#000000"`, `"#fff"`, 1)
	want = strings.Replace(want, `[4,8,12]`, `[4,8,16,20]`, 1)

	assert.Equal(t, want, readFile(t, fs, filepath.Join("out", "updated-theme.json")))
}

func TestApply_RejectedEditWritesNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "unknown screen",
			args:    []string{"apply", "-k", "features", "--toggle", "cart_screen"},
			wantErr: document.ErrKeyNotFound,
		},
		{
			name:    "bad color",
			args:    []string{"apply", "-k", "themes", "--set", "0:colors.primary=#12345"},
			wantErr: document.ErrValidation,
		},
		{
			name:    "theme index out of range",
			args:    []string{"apply", "-k", "themes", "--set", "9:colors.primary=#fff"},
			wantErr: document.ErrKeyNotFound,
		},
		{
			name:    "option value not bool",
			args:    []string{"apply", "-k", "features", "--option", "global:isDarkMode=maybe"},
			wantErr: commands.ErrBadEdit,
		},
		{
			name:    "option without scope",
			args:    []string{"apply", "-k", "features", "--toggle-option", "isDarkMode"},
			wantErr: commands.ErrBadEdit,
		},
		{
			name:    "screen option without screen",
			args:    []string{"apply", "-k", "features", "--toggle-option", "screen:showEta"},
			wantErr: commands.ErrBadEdit,
		},
		{
			name:    "set without value",
			args:    []string{"apply", "-k", "themes", "--set", "0:colors.primary"},
			wantErr: commands.ErrBadEdit,
		},
		{
			name:    "set with bad index",
			args:    []string{"apply", "-k", "themes", "--set", "first:colors.primary=#fff"},
			wantErr: commands.ErrBadEdit,
		},
		{
			name:    "set with bad path",
			args:    []string{"apply", "-k", "themes", "--set", "0:colors..primary=#fff"},
			wantErr: document.ErrKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()

			res := run(t, fs, append(tt.args, "-o", "out")...)

			require.ErrorIs(t, res.err, tt.wantErr)

			exists, err := afero.DirExists(fs, "out")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestApply_ExportSectionFromConfig(t *testing.T) {
	t.Parallel()

	const cfg = `editor:
  export:
    dir: from-config
    mode: preserve
`

	tests := []struct {
		name     string
		args     []string
		wantFile string
		preserve bool
	}{
		{
			name:     "section applies",
			args:     nil,
			wantFile: filepath.Join("from-config", "updated-theme.json"),
			preserve: true,
		},
		{
			name:     "flags win",
			args:     []string{"-o", "flag-dir", "-m", "render"},
			wantFile: filepath.Join("flag-dir", "updated-theme.json"),
			preserve: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "confedit.yaml", []byte(cfg), 0o600))
			require.NoError(t, afero.WriteFile(fs, "theme.json", []byte(compactTheme), 0o600))

			args := []string{"apply", "-c", "confedit.yaml", "-k", "themes", "-s", "theme.json",
				"--set", "0:colors.primary=#fff"}

			res := run(t, fs, append(args, tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.wantFile, strings.TrimSpace(res.stdout))

			got := readFile(t, fs, tt.wantFile)
			if tt.preserve {
				assert.Equal(t, strings.Replace(compactTheme, `"#000000"`, `"#fff"`, 1), got)
			} else {
				assert.Contains(t, got, "\n  \"themes\": [")
			}
		})
	}
}

func TestApply_ConfigErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("editor:\n  export:\n    mode: minify\n"), 0o600))

	res := run(t, fs, "apply", "-c", "bad.yaml", "-k", "features", "--toggle", "home_screen")
	require.ErrorIs(t, res.err, export.ErrUnknownMode)

	res = run(t, fs, "apply", "-c", "absent.yaml", "-k", "features", "--toggle", "home_screen")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "loading config")

	exists, err := afero.DirExists(fs, export.DefaultDir)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApply_LogsToStderr(t *testing.T) {
	t.Parallel()

	res := run(t, afero.NewMemMapFs(), "apply", "-k", "features", "--toggle", "home_screen",
		"--log-level", "debug", "--log-format", "text")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "msg=\"edit applied\" command=toggle-screen version=1")
	assert.Contains(t, res.stderr, "msg=\"export written\"")
	assert.Equal(t, filepath.Join(export.DefaultDir, "screen-config-data.json"), strings.TrimSpace(res.stdout))
}

func TestServe_ConfigError(t *testing.T) {
	t.Parallel()

	res := run(t, afero.NewMemMapFs(), "serve", "--config", filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "loading config")
}

func TestRoot_Help(t *testing.T) {
	t.Parallel()

	res := run(t, afero.NewMemMapFs())

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "serve")
	assert.Contains(t, res.stdout, "render")
	assert.Contains(t, res.stdout, "apply")
}
