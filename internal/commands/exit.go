package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/arikahn/lsh/internal/session"
)

// ErrNumericRequired is returned when exit's argument isn't a base-10 integer.
var ErrNumericRequired = errors.New("numeric argument required")

// ErrExit signals that the shell itself should terminate with Code, mod 256.
// The builtin returns this rather than calling os.Exit directly so the REPL
// driver stays in control of shutdown (flushing history, closing readline)
// and so exit's argument parsing can be tested without ending the test
// process.
type ErrExit struct {
	Code int
}

func (e ErrExit) Error() string {
	return fmt.Sprintf("exit: status %d", e.Code)
}

func init() {
	Register(&Command{
		Name:        "exit",
		Description: "Exit the shell",
		Usage:       "exit [status]\n\nWith no argument exits 0. A numeric argument is taken mod 256.",
		Run:         exitCmd,
	})
}

func exitCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrExit{Code: 0}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(env.Stderr, "exit: %s: %v\n", args[0], ErrNumericRequired)
		return 1, nil
	}
	code := ((n % 256) + 256) % 256
	return code, ErrExit{Code: code}
}
