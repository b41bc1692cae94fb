package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/confedit/config/fetcher/file"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeSeed = `[{"name":"Dark","colors":{"primary":"#112233"},"spacing":[4,8,12]}]`

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o600))
	}

	return fs
}

func TestFetcher_Fetch_OsFilesystem(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "themes.json")
	require.NoError(t, os.WriteFile(path, []byte(themeSeed), 0o600))

	fetcher, err := file.NewFetcher(path)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, themeSeed, string(data))
	assert.Equal(t, path, fetcher.Path())
}

func TestFetcher_Fetch_MemoryFilesystem(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		"seeds/themes.json": themeSeed,
		"seeds/empty.json":  "",
	})

	tests := []struct {
		name     string
		path     string
		want     string
		wantPath string
	}{
		{name: "seed document", path: "seeds/themes.json", want: themeSeed, wantPath: "seeds/themes.json"},
		{name: "uncleaned path", path: "seeds/../seeds/./themes.json", want: themeSeed, wantPath: "seeds/themes.json"},
		{name: "empty file", path: "seeds/empty.json", want: "", wantPath: "seeds/empty.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fetcher, err := file.NewFetcherFs(fs, tt.path)()
			require.NoError(t, err)

			data, err := fetcher.Fetch()

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
			assert.Equal(t, tt.wantPath, fetcher.Path())
		})
	}
}

func TestFetcher_ConstructionErrors(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{"seeds/themes.json": themeSeed})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		fetcher, err := file.NewFetcherFs(fs, "seeds/features.json")()

		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, fetcher)
		assert.Contains(t, err.Error(), "stat file")
		assert.Contains(t, err.Error(), "features.json")
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		fetcher, err := file.NewFetcherFs(fs, "seeds")()

		require.ErrorIs(t, err, file.ErrPathIsDirectory)
		assert.Nil(t, fetcher)
	})
}

func TestFetcher_Fetch_CachedAtConstruction(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{"confedit.yaml": "logging:\n  level: info\n"})

	fetcher, err := file.NewFetcherFs(fs, "confedit.yaml")()
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "confedit.yaml", []byte("logging:\n  level: debug\n"), 0o600))

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "logging:\n  level: info\n", string(data))
}

func TestFetcher_Fetch_ReturnsCopy(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{"seeds/themes.json": themeSeed})

	fetcher, err := file.NewFetcherFs(fs, "seeds/themes.json")()
	require.NoError(t, err)

	first, err := fetcher.Fetch()
	require.NoError(t, err)

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, themeSeed, string(second))
}
