package shell

import "strings"

// Pipeline is a parsed command line: one or more segments connected by `|`.
type Pipeline struct {
	Segments []*Segment
}

// Segment is a single command within a pipeline, with its words already
// lexed and its redirection (if any) already extracted and removed from
// the word list.
type Segment struct {
	Words       []Word
	Redirection *Redirection
}

// Argv returns the segment's words as plain strings, suitable for exec.
func (s *Segment) Argv() []string {
	argv := make([]string, len(s.Words))
	for i, w := range s.Words {
		argv[i] = string(w)
	}
	return argv
}

// ParsePipeline parses a raw input line into a Pipeline. The line is first
// split into segments on top-level `|` bytes (quote-aware, no tokenizing),
// then each segment has its redirection extracted and its remaining text
// lexed into words independently — the lexer never sees the `|` itself.
//
// A segment that lexes to zero words is a no-op, not an error, unless it
// sits inside a multi-stage pipeline (len(rawSegments) > 1), in which case
// it is a parse error: an empty segment can't be wired into a pipe.
func ParsePipeline(line string) (*Pipeline, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	rawSegments := splitTopLevel(line, '|')
	multiStage := len(rawSegments) > 1
	pipeline := &Pipeline{Segments: make([]*Segment, 0, len(rawSegments))}

	for _, raw := range rawSegments {
		if multiStage && strings.TrimSpace(raw) == "" {
			return nil, ErrEmptySegment
		}

		cleaned, redir, err := ExtractRedirections(raw)
		if err != nil {
			return nil, err
		}

		words, err := Lex(cleaned)
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			if multiStage {
				return nil, ErrEmptySegment
			}
			return nil, nil
		}

		pipeline.Segments = append(pipeline.Segments, &Segment{
			Words:       words,
			Redirection: redir,
		})
	}

	return pipeline, nil
}
