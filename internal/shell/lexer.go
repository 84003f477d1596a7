package shell

import "strings"

// Word is a final, quoting-resolved argument produced by the lexer.
type Word string

// lexState names the four states of the quoting/escape state machine.
type lexState int

const (
	stateBetween lexState = iota
	stateBare
	stateSingle
	stateDouble
)

// Lex splits a single command segment (redirections already stripped) into
// words, honoring single-quote, double-quote, and backslash semantics.
//
// Adjacent quoted and unquoted runs concatenate into one word: emission only
// happens on a whitespace transition in stateBare or at end-of-input with a
// non-empty accumulator, never on a closing quote. A word that contained a
// quoted run counts as non-empty even if the run was empty, so an empty pair
// of single or double quotes yields one empty word.
func Lex(s string) ([]Word, error) {
	l := &lexer{line: s}
	return l.run()
}

type lexer struct {
	words   []Word
	current strings.Builder
	line    string
	pos     int
	state   lexState
	quoted  bool // current word contains a quoted run
}

func (l *lexer) run() ([]Word, error) {
	for l.pos < len(l.line) {
		b := l.line[l.pos]
		switch l.state {
		case stateBetween:
			if b == ' ' || b == '\t' {
				l.pos++
				continue
			}
			l.state = stateBare
			// fall through without consuming b

		case stateBare:
			switch b {
			case ' ', '\t':
				l.flush()
				l.state = stateBetween
				l.pos++
				continue
			case '\'':
				l.state = stateSingle
				l.quoted = true
				l.pos++
				continue
			case '"':
				l.state = stateDouble
				l.quoted = true
				l.pos++
				continue
			case '\\':
				if err := l.escapeBare(); err != nil {
					return nil, err
				}
				continue
			default:
				l.current.WriteByte(b)
				l.pos++
				continue
			}

		case stateSingle:
			if b == '\'' {
				l.state = stateBare
				l.pos++
				continue
			}
			l.current.WriteByte(b)
			l.pos++
			continue

		case stateDouble:
			switch b {
			case '"':
				l.state = stateBare
				l.pos++
				continue
			case '\\':
				if err := l.escapeDouble(); err != nil {
					return nil, err
				}
				continue
			default:
				l.current.WriteByte(b)
				l.pos++
				continue
			}
		}
	}

	switch l.state {
	case stateSingle:
		return nil, ErrUnterminatedSingleQuote
	case stateDouble:
		return nil, ErrUnterminatedDoubleQuote
	}
	l.flush()
	return l.words, nil
}

// escapeBare handles a backslash encountered in stateBare: the next byte is
// taken literally, except a backslash-newline pair which is a line
// continuation and is discarded entirely.
func (l *lexer) escapeBare() error {
	if l.pos+1 >= len(l.line) {
		return ErrDanglingBackslash
	}
	next := l.line[l.pos+1]
	if next == '\n' {
		l.pos += 2
		return nil
	}
	l.current.WriteByte(next)
	l.pos += 2
	return nil
}

// escapeDouble handles a backslash inside a double-quoted run. The backslash
// is dropped (and the following byte taken literally) only when that byte is
// one of \ $ " or newline; for any other byte both the backslash and the
// byte are kept.
func (l *lexer) escapeDouble() error {
	if l.pos+1 >= len(l.line) {
		return ErrDanglingBackslash
	}
	next := l.line[l.pos+1]
	switch next {
	case '\\', '$', '"', '\n':
		l.current.WriteByte(next)
	default:
		l.current.WriteByte('\\')
		l.current.WriteByte(next)
	}
	l.pos += 2
	return nil
}

func (l *lexer) flush() {
	if l.current.Len() > 0 || l.quoted {
		l.words = append(l.words, Word(l.current.String()))
		l.current.Reset()
	}
	l.quoted = false
}
