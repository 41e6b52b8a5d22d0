package lang

import (
	"fmt"

	"github.com/sergev/tlox/parser"
)

// RuntimeError aborts execution of the current program.
type RuntimeError struct {
	Pos parser.Position
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Pos.Line)
}

func newRuntimeError(tok parser.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Pos: tok.Pos,
		Msg: fmt.Sprintf(format, args...),
	}
}
