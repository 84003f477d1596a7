// Command lsh is a small interactive POSIX-style shell: it reads a line,
// splits it into a pipeline, dispatches each segment to a builtin or an
// externally resolved executable, and waits for completion before
// printing the next prompt.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/arikahn/lsh/internal/config"
	"github.com/arikahn/lsh/internal/logging"
	"github.com/arikahn/lsh/internal/shell"

	// Register builtins.
	_ "github.com/arikahn/lsh/internal/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsh: loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))

	sh, err := shell.New(cfg)
	if err != nil {
		log.Error("failed to start shell", "error", err.Error())
		os.Exit(1)
	}
	sh.Log = log

	status := sh.Run(context.Background())
	os.Exit(status)
}
