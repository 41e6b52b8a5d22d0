package lang

import "github.com/sergev/tlox/parser"

// Class holds a method table and an optional superclass.
type Class struct {
	Name       string
	Superclass *Class
	methods    map[string]*Function
}

// NewClass creates a class. methods may be nil.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	if methods == nil {
		methods = make(map[string]*Function)
	}
	return &Class{
		Name:       name,
		Superclass: superclass,
		methods:    methods,
	}
}

// FindMethod looks name up on the class, then along the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.methods[name]; ok {
			return m
		}
	}
	return nil
}

// Arity is the arity of the initializer, or zero without one.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call creates an instance and runs its initializer, if any.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return Value{}, err
		}
	}
	return InstanceValue(inst), nil
}

// Instance is an object created by calling a class.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// NewInstance creates an instance with no fields.
func NewInstance(c *Class) *Instance {
	return &Instance{
		class:  c,
		fields: make(map[string]Value),
	}
}

func (inst *Instance) Class() *Class { return inst.class }

// Get reads a field or, failing that, a method bound to the instance.
// Fields shadow methods.
func (inst *Instance) Get(name parser.Token) (Value, error) {
	if val, ok := inst.fields[name.Lexeme]; ok {
		return val, nil
	}
	if m := inst.class.FindMethod(name.Lexeme); m != nil {
		return FunctionValue(m.Bind(inst)), nil
	}
	return Value{}, newRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set creates or replaces a field.
func (inst *Instance) Set(name parser.Token, val Value) {
	inst.fields[name.Lexeme] = val
}
