package shell_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/arikahn/lsh/internal/commands"
	"github.com/arikahn/lsh/internal/session"
	"github.com/arikahn/lsh/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerMockCommands wires a handful of test-only builtins and returns a
// cleanup func that removes them again, so tests don't leak state into the
// real registry.
func registerMockCommands() func() {
	commands.Register(&commands.Command{
		Name: "mock-echo",
		Run: func(ctx context.Context, s *session.Session, env *commands.ExecutionEnv, args []string) (int, error) {
			fmt.Fprintln(env.Stdout, strings.Join(args, " "))
			return 0, nil
		},
	})
	commands.Register(&commands.Command{
		Name: "mock-upper",
		Run: func(ctx context.Context, s *session.Session, env *commands.ExecutionEnv, args []string) (int, error) {
			buf, err := io.ReadAll(env.Stdin)
			if err != nil {
				return 1, err
			}
			fmt.Fprint(env.Stdout, strings.ToUpper(string(buf)))
			return 0, nil
		},
	})
	commands.Register(&commands.Command{
		Name: "mock-fail",
		Run: func(ctx context.Context, s *session.Session, env *commands.ExecutionEnv, args []string) (int, error) {
			fmt.Fprintln(env.Stderr, "mock-fail: boom")
			return 3, nil
		},
	})

	return func() {
		delete(commands.Registry, "mock-echo")
		delete(commands.Registry, "mock-upper")
		delete(commands.Registry, "mock-fail")
	}
}

func newTestExecutor() *shell.Executor {
	return shell.NewExecutor(session.NewSession(), io.Discard)
}

func TestExecutor_SingleBuiltin(t *testing.T) {
	cleanup := registerMockCommands()
	defer cleanup()

	p, err := shell.ParsePipeline("mock-echo hello world")
	require.NoError(t, err)

	var stdout bytes.Buffer
	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestExecutor_BuiltinNonZeroStatus(t *testing.T) {
	cleanup := registerMockCommands()
	defer cleanup()

	p, err := shell.ParsePipeline("mock-fail")
	require.NoError(t, err)

	var stderr bytes.Buffer
	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), io.Discard, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 3, status)
	assert.Contains(t, stderr.String(), "boom")
}

func TestExecutor_CommandNotFound(t *testing.T) {
	p, err := shell.ParsePipeline("definitely-not-a-real-command-xyz")
	require.NoError(t, err)

	var stderr bytes.Buffer
	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), io.Discard, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 127, status)
	assert.Contains(t, stderr.String(), "command not found")
}

func TestExecutor_ExitPropagatesAsError(t *testing.T) {
	p, err := shell.ParsePipeline("exit 7")
	require.NoError(t, err)

	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), io.Discard, io.Discard)
	require.Error(t, err)

	var exitErr commands.ErrExit
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.Code)
	assert.Equal(t, 7, status)
}

func TestExecutor_Pipeline_TwoStages(t *testing.T) {
	cleanup := registerMockCommands()
	defer cleanup()

	p, err := shell.ParsePipeline("mock-echo hello | mock-upper")
	require.NoError(t, err)

	var stdout bytes.Buffer
	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "HELLO\n", stdout.String())
}

func TestExecutor_Pipeline_LastStageStatusWins(t *testing.T) {
	cleanup := registerMockCommands()
	defer cleanup()

	p, err := shell.ParsePipeline("mock-echo hello | mock-fail")
	require.NoError(t, err)

	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), io.Discard, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, status)
}

func TestExecutor_StdoutRedirection(t *testing.T) {
	cleanup := registerMockCommands()
	defer cleanup()

	dir := t.TempDir()
	target := dir + "/out.txt"

	p, err := shell.ParsePipeline(fmt.Sprintf("mock-echo redirected > %s", target))
	require.NoError(t, err)

	e := newTestExecutor()
	status, err := e.Run(context.Background(), p, strings.NewReader(""), io.Discard, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, status)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "redirected\n", string(data))
}
