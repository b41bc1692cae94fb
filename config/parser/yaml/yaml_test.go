package yaml

import (
	"testing"
	"time"

	"github.com/0xalexb/confedit/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var editorDoc = []byte(`
logging:
  level: debug
  format: text
editor:
  documents:
    features: seeds/features.json
    themes: seeds/themes.json
  export:
    dir: out
    mode: preserve
    ttl: 45s
  http:
    maxBodyBytes: 4096
    allowedOrigins:
      - http://localhost:5173
      - http://127.0.0.1:5173
  listener:
    address: ":8088"
`)

func TestParser_Parse_WholeDocument(t *testing.T) {
	t.Parallel()

	var result struct {
		Logging struct {
			Level  string `yaml:"level"`
			Format string `yaml:"format"`
		} `yaml:"logging"`
		Editor map[string]any `yaml:"editor"`
	}

	err := NewParser().Parse(editorDoc, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "debug", result.Logging.Level)
	assert.Equal(t, "text", result.Logging.Format)
	assert.Len(t, result.Editor, 4)
}

func TestParser_Parse_Sections(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	t.Run("single level", func(t *testing.T) {
		t.Parallel()

		var result struct {
			Level string `yaml:"level"`
		}

		require.NoError(t, parser.Parse(editorDoc, &result, "logging"))
		assert.Equal(t, "debug", result.Level)
	})

	t.Run("nested struct", func(t *testing.T) {
		t.Parallel()

		var result struct {
			Features string `yaml:"features"`
			Themes   string `yaml:"themes"`
		}

		require.NoError(t, parser.Parse(editorDoc, &result, "editor:documents"))
		assert.Equal(t, "seeds/features.json", result.Features)
		assert.Equal(t, "seeds/themes.json", result.Themes)
	})

	t.Run("duration leaf", func(t *testing.T) {
		t.Parallel()

		var ttl time.Duration

		require.NoError(t, parser.Parse(editorDoc, &ttl, "editor:export:ttl"))
		assert.Equal(t, 45*time.Second, ttl)
	})

	t.Run("int leaf", func(t *testing.T) {
		t.Parallel()

		var limit int64

		require.NoError(t, parser.Parse(editorDoc, &limit, "editor:http:maxBodyBytes"))
		assert.Equal(t, int64(4096), limit)
	})

	t.Run("sequence leaf", func(t *testing.T) {
		t.Parallel()

		var origins []string

		require.NoError(t, parser.Parse(editorDoc, &origins, "editor:http:allowedOrigins"))
		assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, origins)
	})

	t.Run("quoted string leaf", func(t *testing.T) {
		t.Parallel()

		var address string

		require.NoError(t, parser.Parse(editorDoc, &address, "editor:listener:address"))
		assert.Equal(t, ":8088", address)
	})
}

func TestParser_Parse_MissingSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing top level", path: "metrics"},
		{name: "missing nested", path: "editor:storage"},
		{name: "missing leaf", path: "editor:export:compress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var result map[string]any

			err := NewParser().Parse(editorDoc, &result, tt.path)

			require.ErrorIs(t, err, ErrPathNotFound)
			require.ErrorIs(t, err, config.ErrSectionNotFound)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestParser_Parse_NonMappingIntermediate(t *testing.T) {
	t.Parallel()

	var result struct{}

	err := NewParser().Parse(editorDoc, &result, "logging:level:name")

	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrSectionNotFound)
}

func TestParser_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	var result struct{}

	err := NewParser().Parse([]byte{}, &result, "editor")

	require.ErrorIs(t, err, ErrEmptyData)
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
editor: export: [
`)

	var result struct{}

	require.Error(t, NewParser().Parse(data, &result, ""))
	require.Error(t, NewParser().Parse(data, &result, "editor"))
}

func TestConvertToYAMLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "logging", expected: "$.logging"},
		{input: "editor:export", expected: "$.editor.export"},
		{input: "editor:export:ttl", expected: "$.editor.export.ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, convertToYAMLPath(tt.input))
		})
	}
}
