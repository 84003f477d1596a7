package shell

// quoteState is the reduced two-state (plus "none") view of quoting used by
// raw-byte scanners that need to skip over quoted regions without producing
// words — the pipeline splitter and the redirection extractor both walk the
// raw line this way before any word is ever lexed, exactly as spec section
// 4.2/4.3 describes ("tracking quote state exactly as the lexer would").
type quoteState int

const (
	quoteNone quoteState = iota
	quoteSingle
	quoteDouble
)

// topLevelIndices returns every index of sep in s that is not inside a
// single- or double-quoted region and not the literal byte following an
// unquoted backslash (an escaped operator character is not an operator).
func topLevelIndices(s string, sep byte) []int {
	var out []int
	state := quoteNone
	i := 0
	for i < len(s) {
		b := s[i]
		switch state {
		case quoteNone:
			switch b {
			case '\'':
				state = quoteSingle
				i++
			case '"':
				state = quoteDouble
				i++
			case '\\':
				i += 2
			default:
				if b == sep {
					out = append(out, i)
				}
				i++
			}
		case quoteSingle:
			if b == '\'' {
				state = quoteNone
			}
			i++
		case quoteDouble:
			switch b {
			case '"':
				state = quoteNone
				i++
			case '\\':
				i += 2
			default:
				i++
			}
		}
	}
	return out
}

// splitTopLevel splits s at every top-level (unquoted) occurrence of sep.
func splitTopLevel(s string, sep byte) []string {
	idxs := topLevelIndices(s, sep)
	if len(idxs) == 0 {
		return []string{s}
	}
	parts := make([]string, 0, len(idxs)+1)
	start := 0
	for _, idx := range idxs {
		parts = append(parts, s[start:idx])
		start = idx + 1
	}
	parts = append(parts, s[start:])
	return parts
}

// firstUnquotedSpace returns the index of the first top-level whitespace
// byte (space or tab) in s, or -1 if none exists. Used by the redirection
// extractor to find the end of a target filename.
func firstUnquotedSpace(s string) int {
	state := quoteNone
	i := 0
	for i < len(s) {
		b := s[i]
		switch state {
		case quoteNone:
			switch b {
			case '\'':
				state = quoteSingle
			case '"':
				state = quoteDouble
			case '\\':
				i++ // skip the escaped byte too, below
			case ' ', '\t':
				return i
			}
		case quoteSingle:
			if b == '\'' {
				state = quoteNone
			}
		case quoteDouble:
			switch b {
			case '"':
				state = quoteNone
			case '\\':
				i++
			}
		}
		i++
	}
	return -1
}
