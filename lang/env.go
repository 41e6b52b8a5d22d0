package lang

import (
	"fmt"
	"sort"

	"github.com/sergev/tlox/parser"
)

// Env implements a lexical environment chain. An environment lives as long
// as the scope that created it or any closure that captured it.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in the current frame, replacing any existing
// binding of the same name in this frame.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get retrieves a binding by name, searching parents if necessary.
func (e *Env) Get(name parser.Token) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name.Lexeme]; ok {
			return val, nil
		}
	}
	return Value{}, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign updates an existing binding, searching parents if needed.
func (e *Env) Assign(name parser.Token, val Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = val
			return nil
		}
	}
	return newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Ancestor walks exactly depth parent links.
func (e *Env) Ancestor(depth int) *Env {
	env := e
	for i := 0; i < depth; i++ {
		if env.Parent() == nil {
			panic(fmt.Sprintf("lang: environment chain shorter than depth %d", depth))
		}
		env = env.Parent()
	}
	return env
}

// GetAt reads name from the environment depth links up. The binding must
// exist there; a miss means the resolver and interpreter disagree.
func (e *Env) GetAt(depth int, name string) Value {
	val, ok := e.Ancestor(depth).values[name]
	if !ok {
		panic(fmt.Sprintf("lang: %q not bound at depth %d", name, depth))
	}
	return val
}

// AssignAt writes name in the environment depth links up.
func (e *Env) AssignAt(depth int, name string, val Value) {
	env := e.Ancestor(depth)
	if _, ok := env.values[name]; !ok {
		panic(fmt.Sprintf("lang: %q not bound at depth %d", name, depth))
	}
	env.values[name] = val
}

// Names lists the names bound in this frame in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}
