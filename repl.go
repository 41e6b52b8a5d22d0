package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterh/liner"

	"github.com/sergev/tlox/internal/config"
	"github.com/sergev/tlox/lang"
	"github.com/sergev/tlox/parser"
	"github.com/sergev/tlox/runtime"
)

// session accumulates REPL lines until they form a complete program, then
// runs them against one interpreter so globals survive between entries.
type session struct {
	in     *lang.Interpreter
	stderr io.Writer
	buffer strings.Builder
}

func newSession(stdout, stderr io.Writer) *session {
	return &session{
		in:     runtime.NewInterpreter(lang.WithOutput(stdout)),
		stderr: stderr,
	}
}

// feed adds one line. When the buffer is still incomplete it returns
// more=true. Otherwise the buffer is run (or its errors reported) and
// cleared, and entry holds the source for the history.
func (s *session) feed(line string) (entry string, more bool) {
	if s.buffer.Len() == 0 && strings.TrimSpace(line) == "" {
		return "", false
	}
	s.buffer.WriteString(line)
	s.buffer.WriteString("\n")

	src := s.buffer.String()
	prog, locals, err := runtime.Check(src)
	if err != nil && parser.IsIncomplete(err) {
		return "", true
	}
	s.buffer.Reset()
	entry = strings.TrimSpace(src)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return entry, false
	}
	if err := s.in.Interpret(prog, locals); err != nil {
		fmt.Fprintln(s.stderr, err)
	}
	return entry, false
}

// pending reports whether a partial entry is buffered.
func (s *session) pending() bool {
	return s.buffer.Len() > 0
}

func (s *session) reset() {
	s.buffer.Reset()
}

// complete offers keywords and global names for the word under the cursor.
// Liner replaces the whole line, so candidates carry the text before the word.
func (s *session) complete(line string) []string {
	start := len(line)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		start -= size
	}
	prefix := line[start:]
	if prefix == "" {
		return nil
	}

	seen := make(map[string]bool)
	var matches []string
	add := func(word string) {
		if strings.HasPrefix(word, prefix) && !seen[word] {
			seen[word] = true
			matches = append(matches, line[:start]+word)
		}
	}
	for _, kw := range parser.Keywords {
		add(kw)
	}
	for _, name := range s.in.Globals().Names() {
		add(name)
	}
	sort.Strings(matches)
	return matches
}

func runInteractiveREPL(cfg *config.Config, stdout, stderr io.Writer) int {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	sess := newSession(stdout, stderr)
	state.SetCompleter(sess.complete)

	historyPath := cfg.REPL.History
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if err := writeHistory(state, historyPath, cfg.REPL.HistoryLimit); err != nil {
				fmt.Fprintf(stderr, "tlox: save history: %v\n", err)
			}
		}()
	}

	for {
		prompt := cfg.REPL.Prompt
		if sess.pending() {
			prompt = cfg.REPL.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(stdout)
				sess.reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(stdout)
				return exitOK
			default:
				fmt.Fprintf(stderr, "read error: %v\n", err)
				return exitIO
			}
		}
		if entry, more := sess.feed(input); !more && entry != "" {
			state.AppendHistory(entry)
		}
	}
}

// writeHistory saves the most recent limit entries, or all of them when
// limit is zero.
func writeHistory(state *liner.State, path string, limit int) error {
	var buf bytes.Buffer
	if _, err := state.WriteHistory(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, trimHistory(buf.Bytes(), limit), 0o600)
}

func trimHistory(data []byte, limit int) []byte {
	if limit <= 0 {
		return data
	}
	lines := strings.SplitAfter(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) <= limit {
		return data
	}
	return []byte(strings.Join(lines[len(lines)-limit:], ""))
}
