package commands_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/arikahn/lsh/internal/commands"
	"github.com/arikahn/lsh/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPwd_PrintsCurrentDirectory(t *testing.T) {
	cmd, ok := commands.Get("pwd")
	require.True(t, ok)

	dir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldwd)

	// Resolve symlinks the same way os.Getwd would (macOS /tmp is a symlink).
	want, err := os.Getwd()
	require.NoError(t, err)

	var stdout bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &stdout}
	status, err := cmd.Run(context.Background(), session.NewSession(), env, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, want+"\n", stdout.String())
}
