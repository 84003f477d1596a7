package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/arikahn/lsh/internal/commands"
	"github.com/arikahn/lsh/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho_JoinsArgsWithSpaces(t *testing.T) {
	cmd, ok := commands.Get("echo")
	require.True(t, ok)

	var stdout bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &stdout, Stderr: &stdout}
	status, err := cmd.Run(context.Background(), session.NewSession(), env, []string{"hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestEcho_NoArgsPrintsBlankLine(t *testing.T) {
	cmd, ok := commands.Get("echo")
	require.True(t, ok)

	var stdout bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &stdout}
	status, err := cmd.Run(context.Background(), session.NewSession(), env, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "\n", stdout.String())
}

func TestEcho_DoesNotStripFlags(t *testing.T) {
	cmd, ok := commands.Get("echo")
	require.True(t, ok)

	var stdout bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &stdout}
	_, err := cmd.Run(context.Background(), session.NewSession(), env, []string{"-n", "hello"})
	require.NoError(t, err)
	assert.Equal(t, "-n hello\n", stdout.String())
}
