package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/arikahn/lsh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "pwd",
		Description: "Print the current working directory",
		Usage:       "pwd",
		Run:         pwd,
	})
}

// pwd always queries the kernel directly rather than trusting any cached
// notion of the current directory.
func pwd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(env.Stderr, "pwd: %v\n", err)
		return 1, nil
	}
	fmt.Fprintln(env.Stdout, dir)
	return 0, nil
}
