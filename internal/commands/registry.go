// Package commands implements the shell's builtins: echo, exit, type, pwd,
// cd, plus the help and history additions.
package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arikahn/lsh/internal/session"
)

// ExecutionEnv carries the I/O streams a builtin runs against. For a
// builtin running standalone these are the process's real stdio; inside a
// pipeline stage or under redirection they're swapped for a pipe end or an
// opened file by the executor.
type ExecutionEnv struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command is one registered builtin.
//
// Run's int return is the shell-visible exit status — distinct from its
// error return, which signals a genuine Go-level failure (a write to a
// closed pipe, a canceled context). A builtin can print a failure message
// to stderr and still return (1, nil): `type` on an unknown name is the
// canonical example, and its own test exercises exactly that split.
type Command struct {
	Name        string
	Description string
	Usage       string
	Run         func(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error)
}

// Registry is the builtin lookup table, keyed by command name.
var Registry = make(map[string]*Command)

func init() {
	Register(&Command{
		Name:        "help",
		Description: "Show available commands or help for a specific command",
		Usage:       "help [command]\n\nExamples:\n  help         List all builtins\n  help cd      Show detailed help for cd",
		Run:         helpCmd,
	})
	Register(&Command{
		Name:        "history",
		Description: "Show command history",
		Usage:       "history\n\nDisplays a numbered list of previously entered lines.",
		Run:         historyCmd,
	})
}

// Register adds or replaces a builtin in the registry.
func Register(cmd *Command) {
	Registry[cmd.Name] = cmd
}

// Get looks up a builtin by name.
func Get(name string) (*Command, bool) {
	cmd, ok := Registry[name]
	return cmd, ok
}

// IsBuiltin reports whether name names a registered builtin.
func IsBuiltin(name string) bool {
	_, ok := Registry[name]
	return ok
}

// PrintUsage writes a command's description and usage text to w.
func PrintUsage(cmd *Command, w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n", cmd.Name, cmd.Description)
	if cmd.Usage != "" {
		fmt.Fprintf(w, "\nUsage: %s\n", cmd.Usage)
	}
}

func helpCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	if len(args) > 0 {
		cmd, ok := Registry[args[0]]
		if !ok {
			fmt.Fprintf(env.Stderr, "help: no help topic for '%s'\n", args[0])
			return 1, nil
		}
		PrintUsage(cmd, env.Stdout)
		return 0, nil
	}

	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(env.Stdout, "Available commands:")
	for _, name := range names {
		cmd := Registry[name]
		fmt.Fprintf(env.Stdout, "  %-10s %s\n", cmd.Name, cmd.Description)
	}
	return 0, nil
}

func historyCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) (int, error) {
	hist := s.History()
	if len(hist) == 0 {
		fmt.Fprintln(env.Stdout, "No history.")
		return 0, nil
	}
	for i, line := range hist {
		fmt.Fprintf(env.Stdout, "%5d  %s\n", i+1, strings.TrimRight(line, "\n"))
	}
	return 0, nil
}
