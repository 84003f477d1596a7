package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/arikahn/lsh/internal/commands"
)

// Completer provides tab completion against the builtin table, PATH
// executables (for the first word), and the real filesystem (for any
// later word).
type Completer struct{}

// NewCompleter returns a readline.AutoCompleter for this shell.
func NewCompleter() readline.AutoCompleter {
	return &Completer{}
}

func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line[:pos])
	words := strings.Fields(lineStr)

	firstWord := len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(lineStr, " "))
	if firstWord {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return c.completeCommand(prefix)
	}

	lastSpace := strings.LastIndex(lineStr, " ")
	partial := ""
	if lastSpace < len(lineStr)-1 {
		partial = lineStr[lastSpace+1:]
	}
	return completePath(partial)
}

// completeCommand suggests builtin names and PATH executables sharing prefix.
func (c *Completer) completeCommand(prefix string) ([][]rune, int) {
	seen := make(map[string]bool)
	var matches []string

	for name := range commands.Registry {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
			seen[name] = true
		}
	}

	for _, dir := range strings.Split(os.Getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			info, err := e.Info()
			if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
				continue
			}
			matches = append(matches, name)
			seen[name] = true
		}
	}

	sort.Strings(matches)
	result := make([][]rune, len(matches))
	for i, m := range matches {
		result[i] = []rune(m[len(prefix):] + " ")
	}
	return result, len(prefix)
}

// completePath suggests filesystem entries under the real working directory.
func completePath(partial string) ([][]rune, int) {
	searchDir := filepath.Dir(partial)
	searchPrefix := filepath.Base(partial)
	if partial == "" {
		searchDir = "."
		searchPrefix = ""
	} else if strings.HasSuffix(partial, "/") {
		searchDir = filepath.Clean(partial)
		searchPrefix = ""
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, 0
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, searchPrefix) {
			continue
		}
		if e.IsDir() {
			matches = append(matches, name+"/")
		} else {
			matches = append(matches, name)
		}
	}

	sort.Strings(matches)
	result := make([][]rune, len(matches))
	for i, m := range matches {
		suffix := m[len(searchPrefix):]
		if !strings.HasSuffix(suffix, "/") {
			suffix += " "
		}
		result[i] = []rune(suffix)
	}
	return result, len(searchPrefix)
}
