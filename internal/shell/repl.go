package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/arikahn/lsh/internal/commands"
	"github.com/arikahn/lsh/internal/config"
	"github.com/arikahn/lsh/internal/session"
)

// Shell is the read-parse-execute loop: print a prompt, read one line,
// hand it to the executor, repeat until EOF (spec 4.8).
type Shell struct {
	Session  *session.Session
	Executor *Executor
	Log      *slog.Logger
	Prompt   string

	rl      *readline.Instance
	scanner *bufio.Scanner // used instead of rl when stdin isn't a terminal
}

// New builds a Shell. When stdin is a terminal, input goes through
// readline for line editing, history, and tab completion; otherwise
// (piped input, the common case for scripted test harnesses) it falls
// back to a plain line scanner, matching spec 4.8's note that the
// line-editor is an external collaborator, not part of the core.
func New(cfg *config.Config) (*Shell, error) {
	sess := session.NewSession()
	sh := &Shell{
		Session:  sess,
		Executor: NewExecutor(sess, os.Stderr),
		Prompt:   cfg.Prompt,
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		sh.scanner = bufio.NewScanner(os.Stdin)
		return sh, nil
	}

	historyPath, _ := config.HistoryPath()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       historyPath,
		HistoryLimit:      cfg.HistorySize,
		HistorySearchFold: true,
		AutoComplete:      NewCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}
	sh.rl = rl
	sess.HistoryGetter = sh.history
	return sh, nil
}

// Run executes the REPL loop until EOF on stdin. It returns the final
// exit status, suitable for os.Exit by the caller.
func (sh *Shell) Run(ctx context.Context) int {
	if sh.rl != nil {
		defer sh.rl.Close()
	}

	status := 0
	for {
		line, ok := sh.readLine()
		if !ok {
			return status
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		pipeline, err := ParsePipeline(line)
		if err != nil {
			sh.logParseError(err)
			continue
		}
		if pipeline == nil {
			continue
		}

		var exitErr commands.ErrExit
		status, err = sh.Executor.Run(ctx, pipeline, os.Stdin, os.Stdout, os.Stderr)
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		sh.Session.LastStatus = status
	}
}

func (sh *Shell) readLine() (string, bool) {
	if sh.rl != nil {
		line, err := sh.rl.Readline()
		return line, err == nil
	}
	fmt.Fprint(os.Stdout, sh.Prompt)
	if !sh.scanner.Scan() {
		return "", false
	}
	return sh.scanner.Text(), true
}

func (sh *Shell) logParseError(err error) {
	fmt.Fprintf(os.Stderr, "lsh: %v\n", err)
	if sh.Log != nil {
		sh.Log.Warn("parse error", "error", err.Error())
	}
}

func (sh *Shell) history() []string {
	historyPath, err := config.HistoryPath()
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return nil
	}
	var history []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			history = append(history, line)
		}
	}
	return history
}
