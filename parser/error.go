package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a static diagnostic.
type Kind int

const (
	KindScan Kind = iota
	KindSyntax
	KindResolve
)

func (k Kind) String() string {
	switch k {
	case KindScan:
		return "scan"
	case KindSyntax:
		return "syntax"
	case KindResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// Error represents a static (pre-execution) error with its source location.
type Error struct {
	Kind   Kind
	Pos    Position
	Lexeme string // offending lexeme, empty when not tied to a token
	AtEnd  bool   // reported at end of input
	Msg    string

	// Incomplete marks errors caused only by input ending too early,
	// which an interactive reader can fix by asking for more lines.
	Incomplete bool
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.AtEnd:
		return fmt.Sprintf("[line %d] Error at end: %s", e.Pos.Line, e.Msg)
	case e.Lexeme != "":
		return fmt.Sprintf("[line %d] Error at '%s': %s", e.Pos.Line, e.Lexeme, e.Msg)
	default:
		return fmt.Sprintf("[line %d] Error: %s", e.Pos.Line, e.Msg)
	}
}

// ErrorList collects every static error found in one pass.
type ErrorList []*Error

func (l *ErrorList) add(err *Error) {
	*l = append(*l, err)
}

// Add appends an error to the list.
func (l *ErrorList) Add(err *Error) {
	l.add(err)
}

// Sort orders the list by source position.
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Pos.Offset < l[j].Pos.Offset
	})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	lines := make([]string, len(l))
	for i, err := range l {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, err := range l {
		out[i] = err
	}
	return out
}

// Err returns nil for an empty list, and the list itself otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// IsIncomplete reports whether err only complains about input ending early.
func IsIncomplete(err error) bool {
	var list ErrorList
	if errors.As(err, &list) {
		if len(list) == 0 {
			return false
		}
		for _, e := range list {
			if !e.Incomplete {
				return false
			}
		}
		return true
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}

// HasKind reports whether err contains a static error of the given kind.
func HasKind(err error, kind Kind) bool {
	var list ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			if e.Kind == kind {
				return true
			}
		}
		return false
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == kind
	}
	return false
}
