package lang

import "github.com/sergev/tlox/parser"

// Callable is implemented by every value that can appear before "(".
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// NativeFunc implements a built-in function. Arguments have already been
// checked against the declared arity.
type NativeFunc func(in *Interpreter, args []Value) (Value, error)

// Native is a built-in function exposed to programs.
type Native struct {
	Name    string
	NumArgs int
	Fn      NativeFunc
}

func (n *Native) Arity() int { return n.NumArgs }

func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// Function is a user-defined function or method together with the
// environment it closes over.
type Function struct {
	decl          *parser.FunctionStmt
	closure       *Env
	isInitializer bool
}

// NewFunction builds a function value from its declaration.
func NewFunction(decl *parser.FunctionStmt, closure *Env, isInitializer bool) *Function {
	return &Function{
		decl:          decl,
		closure:       closure,
		isInitializer: isInitializer,
	}
}

func (f *Function) Name() string { return f.decl.Name.Lexeme }

func (f *Function) Arity() int { return len(f.decl.Params) }

// Bind returns a copy of the method whose closure defines "this" as inst.
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnv(f.closure)
	env.Define("this", InstanceValue(inst))
	return NewFunction(f.decl, env, f.isInitializer)
}

// Call runs the body in a fresh environment whose parent is the closure.
// An initializer always yields its receiver.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnv(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	result, err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		return Value{}, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.kind == flowReturn {
		return result.value, nil
	}
	return Nil, nil
}
