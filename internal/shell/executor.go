package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sourcegraph/conc/pool"

	"github.com/arikahn/lsh/internal/commands"
	"github.com/arikahn/lsh/internal/session"
)

// defaultMemoryInfo adapts gopsutil's VirtualMemory reading to the
// resource guard's injectable MemoryInfoFunc shape.
func defaultMemoryInfo() (MemoryInfo, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return MemoryInfo{}, err
	}
	return MemoryInfo{AvailableBytes: v.Available}, nil
}

// Executor runs parsed pipelines against real processes and this shell's
// builtin table.
type Executor struct {
	Session        *session.Session
	GetMemoryInfo  MemoryInfoFunc
	DiagnosticsOut io.Writer // where guard warnings and setup failures go
}

// NewExecutor returns an Executor wired to gopsutil for its resource guard.
func NewExecutor(sess *session.Session, diagnostics io.Writer) *Executor {
	return &Executor{Session: sess, GetMemoryInfo: defaultMemoryInfo, DiagnosticsOut: diagnostics}
}

// Run executes a parsed pipeline against std{in,out,err} and returns the
// pipeline's exit status (the last stage's status) plus an ErrExit if a
// builtin in the pipeline requested shell termination.
func (e *Executor) Run(ctx context.Context, p *Pipeline, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	if p == nil || len(p.Segments) == 0 {
		return 0, nil
	}
	base := &commands.ExecutionEnv{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	if len(p.Segments) == 1 {
		return e.runSingle(ctx, p.Segments[0], base)
	}
	return e.runPipeline(ctx, p.Segments, base)
}

// runSingle implements spec 4.6: builtins run in-process under a scoped
// redirection guard; anything else is resolved on PATH and really
// fork/exec'd via os/exec.
func (e *Executor) runSingle(ctx context.Context, seg *Segment, base *commands.ExecutionEnv) (int, error) {
	argv := seg.Argv()

	env, guard, err := applyRedirections(seg, base)
	if err != nil {
		fmt.Fprintf(base.Stderr, "%s: %v\n", argv[0], err)
		return 1, nil
	}
	defer guard.Release()

	if cmd, ok := commands.Get(argv[0]); ok {
		status, err := cmd.Run(ctx, e.Session, env, argv[1:])
		var exitErr commands.ErrExit
		if errors.As(err, &exitErr) {
			return status, exitErr
		}
		return status, nil
	}

	path, err := commands.ResolvePath(argv[0])
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s: command not found\n", argv[0])
		return 127, nil
	}

	c := exec.CommandContext(ctx, path, argv[1:]...)
	c.Args[0] = argv[0]
	c.Stdin, c.Stdout, c.Stderr = env.Stdin, env.Stdout, env.Stderr
	return runChild(c)
}

// runPipeline implements spec 4.7: N-1 pipes wired between N stages, each
// stage's own redirection (if any) applied after — and so overriding —
// the pipe wiring, and the last stage's status becoming the pipeline's
// status. The shell keeps its copies of the pipe ends while stages run:
// each stage's outgoing write end and incoming read end are closed as soon
// as that stage finishes, so the next stage sees EOF and a writer whose
// reader has exited gets EPIPE; closeAll releases whatever is left.
//
// A builtin appearing mid-pipeline has no process to fork; it runs in a
// supervised goroutine against its pipe ends instead, which is this
// implementation's stand-in for "fork just to get it its own fd table" —
// os/exec gives real fork+exec for external stages, but Go exposes no raw
// fork a builtin could ride along on.
func (e *Executor) runPipeline(ctx context.Context, segs []*Segment, base *commands.ExecutionEnv) (int, error) {
	n := len(segs)

	if guard := checkPipelineWidth(n, e.memInfoFunc()); guard.Abort != "" {
		fmt.Fprintf(e.diagOut(), "lsh: %s\n", guard.Abort)
		return 1, nil
	} else if guard.Warning != "" {
		fmt.Fprintf(e.diagOut(), "lsh: warning: %s\n", guard.Warning)
	}

	envs := make([]*commands.ExecutionEnv, n)
	for i := range envs {
		envs[i] = &commands.ExecutionEnv{Stdin: base.Stdin, Stdout: base.Stdout, Stderr: base.Stderr}
	}

	var pipeFiles []*os.File
	closeAll := func() {
		for _, f := range pipeFiles {
			f.Close()
		}
	}

	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closeAll()
			fmt.Fprintf(e.diagOut(), "lsh: pipeline: create pipe: %v\n", err)
			return 1, nil
		}
		pipeFiles = append(pipeFiles, r, w)
		envs[i].Stdout = w
		envs[i+1].Stdin = r
	}

	var guards []*redirectGuard
	for i, seg := range segs {
		stageEnv, guard, err := applyRedirections(seg, envs[i])
		if err != nil {
			fmt.Fprintf(base.Stderr, "%s: %v\n", seg.Argv()[0], err)
			closeAll()
			for _, g := range guards {
				g.Release()
			}
			return 1, nil
		}
		guards = append(guards, guard)
		envs[i] = stageEnv
	}
	defer func() {
		for _, g := range guards {
			g.Release()
		}
	}()

	statuses := make([]int, n)
	var exitMu sync.Mutex
	var exitRequest commands.ErrExit
	var exitRequested bool

	stagePool := pool.New().WithMaxGoroutines(n)
	for i := 0; i < n; i++ {
		i := i
		stagePool.Go(func() {
			defer closeStageWriter(envs[i], pipeFiles)
			if r, ok := envs[i].Stdin.(*os.File); ok && i > 0 {
				defer r.Close()
			}
			status, exitErr := e.runStage(ctx, segs[i], envs[i])
			statuses[i] = status
			if exitErr != nil {
				exitMu.Lock()
				exitRequested = true
				exitRequest = *exitErr
				exitMu.Unlock()
			}
		})
	}
	stagePool.Wait()
	closeAll()

	if exitRequested {
		return statuses[n-1], exitRequest
	}
	return statuses[n-1], nil
}

// runStage runs one pipeline stage, returning its status and, if it was a
// builtin that requested shell termination, the exit request.
func (e *Executor) runStage(ctx context.Context, seg *Segment, env *commands.ExecutionEnv) (int, *commands.ErrExit) {
	argv := seg.Argv()

	if cmd, ok := commands.Get(argv[0]); ok {
		status, err := cmd.Run(ctx, e.Session, env, argv[1:])
		var exitErr commands.ErrExit
		if errors.As(err, &exitErr) {
			return status, &exitErr
		}
		return status, nil
	}

	path, err := commands.ResolvePath(argv[0])
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s: command not found\n", argv[0])
		return 127, nil
	}

	c := exec.CommandContext(ctx, path, argv[1:]...)
	c.Args[0] = argv[0]
	c.Stdin, c.Stdout, c.Stderr = env.Stdin, env.Stdout, env.Stderr
	status, _ := runChild(c)
	return status, nil
}

// closeStageWriter closes this stage's write end of its outgoing pipe (if
// any) once the stage finishes, so the next stage observes EOF.
func closeStageWriter(env *commands.ExecutionEnv, pipeFiles []*os.File) {
	if f, ok := env.Stdout.(*os.File); ok {
		for _, pf := range pipeFiles {
			if pf == f {
				f.Close()
				return
			}
		}
	}
}

// runChild runs an already-configured *exec.Cmd and translates its result
// into a shell exit status: 0 on success, the child's own status if it
// exited non-zero, 126 if it couldn't be started (permission, not an
// executable), 127 is reserved for resolution failures handled earlier.
func runChild(c *exec.Cmd) (int, error) {
	err := c.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 126, nil
}

func (e *Executor) memInfoFunc() MemoryInfoFunc {
	if e.GetMemoryInfo != nil {
		return e.GetMemoryInfo
	}
	return defaultMemoryInfo
}

func (e *Executor) diagOut() io.Writer {
	if e.DiagnosticsOut != nil {
		return e.DiagnosticsOut
	}
	return os.Stderr
}
