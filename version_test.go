package confedit_test

import (
	"testing"

	"github.com/0xalexb/confedit"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", confedit.Version)
	require.Equal(t, "none", confedit.Commit)
	require.Equal(t, "unknown", confedit.CompiledAt)
	require.Equal(t, "dev (none, unknown)", confedit.VersionString())
}
