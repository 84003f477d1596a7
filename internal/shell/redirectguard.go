package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arikahn/lsh/internal/commands"
)

// redirectGuard is a single value representing whatever files a segment's
// redirections opened. Release closes them exactly once, regardless of
// which error path got there — replacing a save/open/dup/restore sequence
// repeated at every exit point with one deferred call.
type redirectGuard struct {
	files []*os.File
}

// applyRedirections opens the segment's redirection target, if any, and
// returns an ExecutionEnv with the target fd's stream swapped to it, plus a
// guard to release afterward. base supplies the streams to fall back to
// for any fd the segment didn't redirect. Per spec, a segment carries at
// most one redirection, to fd 1 (stdout) by default or fd 2 (stderr) when
// explicitly given as `2>`/`2>>`.
func applyRedirections(seg *Segment, base *commands.ExecutionEnv) (*commands.ExecutionEnv, *redirectGuard, error) {
	env := &commands.ExecutionEnv{Stdin: base.Stdin, Stdout: base.Stdout, Stderr: base.Stderr}
	guard := &redirectGuard{}

	if seg.Redirection == nil {
		return env, guard, nil
	}

	f, err := openRedirectTarget(seg.Redirection)
	if err != nil {
		return nil, nil, err
	}
	guard.files = append(guard.files, f)

	if seg.Redirection.FD == 2 {
		env.Stderr = f
	} else {
		env.Stdout = f
	}

	return env, guard, nil
}

func openRedirectTarget(r *Redirection) (*os.File, error) {
	if err := ensureParentDir(r.Target); err != nil {
		return nil, fmt.Errorf("%s: %w", r.Target, err)
	}
	flags := os.O_WRONLY | os.O_CREATE
	if r.Mode == RedirAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(r.Target, flags, 0o666)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Target, err)
	}
	return f, nil
}

// ensureParentDir creates any missing parent directories of target, mode
// 0777 before umask, mirroring the original shell's mkdir_recursive.
func ensureParentDir(target string) error {
	dir := filepath.Dir(target)
	if dir == "." || dir == "/" {
		return nil
	}
	return os.MkdirAll(dir, 0o777)
}

// Release closes every file the guard opened. Safe to call multiple times.
func (g *redirectGuard) Release() {
	for _, f := range g.files {
		f.Close()
	}
	g.files = nil
}
