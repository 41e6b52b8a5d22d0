package lang

import (
	"math"
	"strconv"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeNative
	TypeFunction
	TypeClass
	TypeInstance
)

func (t ValueType) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeNative:
		return "native function"
	case TypeFunction:
		return "function"
	case TypeClass:
		return "class"
	case TypeInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Value represents any runtime object in the interpreter.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Nil is the singleton nil value.
var Nil = Value{Type: TypeNil}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a number Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// NativeValue wraps a host function.
func NativeValue(n *Native) Value {
	return Value{Type: TypeNative, payload: n}
}

// FunctionValue wraps a user-defined function or bound method.
func FunctionValue(fn *Function) Value {
	return Value{Type: TypeFunction, payload: fn}
}

// ClassValue wraps a class.
func ClassValue(c *Class) Value {
	return Value{Type: TypeClass, payload: c}
}

// InstanceValue wraps an instance.
func InstanceValue(inst *Instance) Value {
	return Value{Type: TypeInstance, payload: inst}
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Native() *Native {
	if n, ok := v.payload.(*Native); ok {
		return n
	}
	return nil
}

func (v Value) Function() *Function {
	if fn, ok := v.payload.(*Function); ok {
		return fn
	}
	return nil
}

func (v Value) Class() *Class {
	if c, ok := v.payload.(*Class); ok {
		return c
	}
	return nil
}

func (v Value) Instance() *Instance {
	if inst, ok := v.payload.(*Instance); ok {
		return inst
	}
	return nil
}

// Callable returns the value as something that can be invoked.
func (v Value) Callable() (Callable, bool) {
	switch v.Type {
	case TypeNative:
		return v.Native(), true
	case TypeFunction:
		return v.Function(), true
	case TypeClass:
		return v.Class(), true
	}
	return nil, false
}

// String renders the value the way print does.
func (v Value) String() string {
	return Stringify(v)
}

// Stringify renders a value for output. Strings are written verbatim;
// numbers use the shortest representation that round-trips, with no
// fraction for integral values.
func Stringify(v Value) string {
	switch v.Type {
	case TypeNil:
		return "nil"
	case TypeBool:
		return strconv.FormatBool(v.Bool())
	case TypeNumber:
		return formatNumber(v.Number())
	case TypeString:
		return v.Str()
	case TypeNative:
		return "<native fn>"
	case TypeFunction:
		return "<fn " + v.Function().Name() + ">"
	case TypeClass:
		return v.Class().Name
	case TypeInstance:
		return v.Instance().Class().Name + " instance"
	default:
		return "<unknown>"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsTruthy reports whether v counts as true in a condition. Only nil and
// false are falsy.
func IsTruthy(v Value) bool {
	switch v.Type {
	case TypeNil:
		return false
	case TypeBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal implements the == operator. Values of different types are never
// equal; objects compare by identity.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNil:
		return true
	case TypeBool:
		return a.Bool() == b.Bool()
	case TypeNumber:
		return a.Number() == b.Number()
	case TypeString:
		return a.Str() == b.Str()
	default:
		return a.payload == b.payload
	}
}
