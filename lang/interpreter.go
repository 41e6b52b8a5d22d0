package lang

import (
	"io"
	"os"

	"github.com/sergev/tlox/parser"
	"github.com/sergev/tlox/resolver"
)

// maxCallDepth bounds nested calls so runaway recursion becomes a runtime
// error instead of exhausting the goroutine stack.
const maxCallDepth = 4096

// Interpreter executes resolved programs by walking the syntax tree.
type Interpreter struct {
	globals *Env
	locals  resolver.Locals
	out     io.Writer
	depth   int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs print statements to w instead of standard output.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = w
	}
}

// NewInterpreter constructs an interpreter rooted at a new global
// environment.
func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals: NewEnv(nil),
		locals:  make(resolver.Locals),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Globals returns the global environment.
func (in *Interpreter) Globals() *Env {
	return in.globals
}

// Output returns the writer used by print.
func (in *Interpreter) Output() io.Writer {
	return in.out
}

// DefineNative installs a host function as a global.
func (in *Interpreter) DefineNative(name string, arity int, fn NativeFunc) {
	in.globals.Define(name, NativeValue(&Native{
		Name:    name,
		NumArgs: arity,
		Fn:      fn,
	}))
}

// Interpret executes prog with the binding table produced for it by the
// resolver. Globals and earlier bindings persist between calls, so a
// session can be fed one program at a time. The first runtime error stops
// execution and is returned as a *RuntimeError.
func (in *Interpreter) Interpret(prog *parser.Program, locals resolver.Locals) error {
	if prog == nil {
		return nil
	}
	for expr, depth := range locals {
		in.locals[expr] = depth
	}
	in.depth = 0
	for _, stmt := range prog.Stmts {
		if _, err := in.execute(stmt, in.globals); err != nil {
			return err
		}
	}
	return nil
}

type flowKind int

const (
	flowNormal flowKind = iota
	flowReturn
)

// flow is the outcome of executing a statement. A return unwinds through
// enclosing statements until the function call that owns it.
type flow struct {
	kind  flowKind
	value Value
}

var normal = flow{kind: flowNormal}
