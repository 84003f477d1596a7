package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/arikahn/lsh/internal/session"
)

func init() {
	Register(&Command{
		Name:        "echo",
		Description: "Output arguments to standard output",
		Usage:       "echo [string]...\n\nEvery argument is written literally, space-separated, followed by a\nnewline. No flags are recognized — a leading \"-n\" is printed as text.",
		Run:         echo,
	})
}

func echo(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	_, err := fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return 0, err
}
