package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arikahn/lsh/internal/session"
)

// ErrHomeUnset is reported when a "~"-prefixed path is given but $HOME isn't set.
var ErrHomeUnset = errors.New("HOME not set")

// ErrMissingOperand is reported when cd is run with no argument. Real
// shells treat a bare cd as cd $HOME; here it is an error instead, per an
// explicit design decision recorded alongside this builtin.
var ErrMissingOperand = errors.New("missing operand")

func init() {
	Register(&Command{
		Name:        "cd",
		Description: "Change the current working directory",
		Usage:       "cd PATH\n\nA leading \"~\" is replaced with $HOME. cd with no argument is an error.",
		Run:         cd,
	})
}

func cd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	if len(args) == 0 {
		fmt.Fprintf(env.Stderr, "cd: %v\n", ErrMissingOperand)
		return 1, nil
	}

	target := args[0]
	if strings.HasPrefix(target, "~") {
		home := os.Getenv("HOME")
		if home == "" {
			fmt.Fprintf(env.Stderr, "cd: %v\n", ErrHomeUnset)
			return 1, nil
		}
		target = home + target[1:]
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(env.Stderr, "cd: %s: %s\n", target, chdirReason(err))
		return 1, nil
	}
	return 0, nil
}

// chdirReason strips the "chdir <path>: " prefix os.Chdir's *PathError
// wraps its errno in, leaving the bare OS reason ("no such file or
// directory", "not a directory", "permission denied").
func chdirReason(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
