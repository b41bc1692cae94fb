package document_test

import (
	"testing"

	"github.com/0xalexb/confedit/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesOrderAndLiterals(t *testing.T) {
	t.Parallel()

	root := mustDecode(t, `{"zeta": 1.50, "alpha": "café", "mid": [true, null, -0.0]}`)

	obj, ok := root.(*document.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	zeta, ok := mustLookup(t, root, "zeta").(*document.Leaf)
	require.True(t, ok)
	assert.Equal(t, document.Number("1.50"), zeta.Value())
	assert.Equal(t, "1.50", zeta.Raw())

	alpha, ok := mustLookup(t, root, "alpha").(*document.Leaf)
	require.True(t, ok)
	assert.Equal(t, document.String("café"), alpha.Value())
	assert.Equal(t, `"café"`, alpha.Raw())

	mid, ok := mustLookup(t, root, "mid").(*document.Array)
	require.True(t, ok)
	require.Equal(t, 3, mid.Len())

	first, ok := mid.At(0).(*document.Leaf)
	require.True(t, ok)
	assert.Equal(t, document.Bool(true), first.Value())

	second, ok := mid.At(1).(*document.Leaf)
	require.True(t, ok)
	assert.Equal(t, document.TagNull, second.Value().Tag())
}

func TestDecode_EmptyContainers(t *testing.T) {
	t.Parallel()

	root := mustDecode(t, `{"o": {}, "a": []}`)

	obj, ok := mustLookup(t, root, "o").(*document.Object)
	require.True(t, ok)
	assert.Zero(t, obj.Len())

	arr, ok := mustLookup(t, root, "a").(*document.Array)
	require.True(t, ok)
	assert.Zero(t, arr.Len())
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"truncated object", `{"a": 1`},
		{"trailing comma", `{"a": 1,}`},
		{"bare word", `colors`},
		{"duplicate key", `{"a": 1, "b": {"c": 1, "c": 2}}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := document.DecodeString(testCase.input)

			require.ErrorIs(t, err, document.ErrParse)
			assert.Equal(t, document.KindParse, document.KindOf(err))
		})
	}
}

func TestDecode_DuplicateKeyReportsPath(t *testing.T) {
	t.Parallel()

	_, err := document.DecodeString(`{"a": 1, "b": {"c": 1, "c": 2}}`)

	require.ErrorIs(t, err, document.ErrDuplicateKey)

	var pathErr *document.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "b", pathErr.Path.String())
}

func TestWalk_DocumentOrder(t *testing.T) {
	t.Parallel()

	root := mustDecode(t, `{"b": [1, 2], "a": {"c": null}}`)

	var visited []string

	document.Walk(root, func(path document.Path, _ document.Node) bool {
		visited = append(visited, path.String())

		return true
	})

	assert.Equal(t, []string{"", "b", "b[0]", "b[1]", "a", "a.c"}, visited)
}
