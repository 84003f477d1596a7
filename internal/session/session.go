// Package session holds the small bit of state a running shell keeps
// across commands: it does not track a virtual working directory, since
// cd/pwd operate on the real OS process directly.
package session

// Session is the state shared across builtins within one shell invocation.
type Session struct {
	// HistoryGetter returns the command history, most recent last. The
	// interactive REPL wires it to a reader of the readline history file;
	// it is nil when stdin is not a terminal and in tests that don't
	// exercise history.
	HistoryGetter func() []string

	// LastStatus is the exit status of the most recently completed
	// pipeline, surfaced to builtins that want it (and, eventually, a
	// `$?`-style prompt component).
	LastStatus int
}

// NewSession returns an empty Session ready for a fresh shell invocation.
func NewSession() *Session {
	return &Session{}
}

// History returns the current command history, or nil if none is wired.
func (s *Session) History() []string {
	if s.HistoryGetter == nil {
		return nil
	}
	return s.HistoryGetter()
}
