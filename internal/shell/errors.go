package shell

import "errors"

// Sentinel errors raised by the lexer, splitter, and redirection extractor.
// Callers match these with errors.Is; the REPL driver reports them to
// stderr and abandons the current line without touching shell state.
var (
	ErrUnterminatedSingleQuote = errors.New("unmatched single quote")
	ErrUnterminatedDoubleQuote = errors.New("unmatched double quote")
	ErrDanglingBackslash       = errors.New("dangling backslash")
	ErrEmptySegment            = errors.New("syntax error near unexpected token '|'")
	ErrMissingRedirectTarget   = errors.New("missing filename after redirection operator")
)
