package commands

import (
	"context"
	"fmt"

	"github.com/arikahn/lsh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "type",
		Description: "Describe how a name would be interpreted as a command",
		Usage:       "type NAME\n\nPrints whether NAME is a shell builtin or the absolute path it\nresolves to on PATH, or reports that it was not found.",
		Run:         typeCmd,
	})
}

func typeCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	if len(args) == 0 {
		fmt.Fprintln(env.Stderr, "type: missing operand")
		return 1, nil
	}

	name := args[0]
	if IsBuiltin(name) {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return 0, nil
	}

	path, err := ResolvePath(name)
	if err != nil {
		fmt.Fprintf(env.Stdout, "%s: not found\n", name)
		return 1, nil
	}

	fmt.Fprintf(env.Stdout, "%s is %s\n", name, path)
	return 0, nil
}
