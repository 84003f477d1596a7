package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleter_CompletesBuiltinNames(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	c := &Completer{}
	matches, offset := c.completeCommand("ec")
	require.Len(t, matches, 1)
	assert.Equal(t, 2, offset)
	assert.Equal(t, "ho ", string(matches[0]))
}

func TestCompletePath_ListsDirectoryEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "beta"), 0o755))

	matches, offset := completePath(dir + "/")
	require.Len(t, matches, 2)
	assert.Equal(t, 0, offset)

	var suffixes []string
	for _, m := range matches {
		suffixes = append(suffixes, string(m))
	}
	assert.Contains(t, suffixes, "alpha.txt ")
	assert.Contains(t, suffixes, "beta/")
}

func TestCompletePath_FiltersByPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abacus.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zeta.txt"), nil, 0o644))

	matches, offset := completePath(filepath.Join(dir, "a"))
	assert.Equal(t, 1, offset)
	assert.Len(t, matches, 2)
}
