package lang

import (
	"errors"
	"fmt"

	"github.com/sergev/tlox/parser"
)

func (in *Interpreter) evaluate(expr parser.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *parser.NumberExpr:
		return NumberValue(e.Value), nil
	case *parser.StringExpr:
		return StringValue(e.Value), nil
	case *parser.BoolExpr:
		return BoolValue(e.Value), nil
	case *parser.NilExpr:
		return Nil, nil
	case *parser.GroupingExpr:
		return in.evaluate(e.Expr, env)
	case *parser.VariableExpr:
		return in.lookUpVariable(e.Name, e, env)
	case *parser.AssignExpr:
		val, err := in.evaluate(e.Value, env)
		if err != nil {
			return Value{}, err
		}
		if depth, ok := in.locals[e]; ok {
			env.AssignAt(depth, e.Name.Lexeme, val)
			return val, nil
		}
		if err := in.globals.Assign(e.Name, val); err != nil {
			return Value{}, err
		}
		return val, nil
	case *parser.LogicalExpr:
		left, err := in.evaluate(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		if e.Op.Type == parser.TokenOr {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right, env)
	case *parser.UnaryExpr:
		return in.evalUnary(e, env)
	case *parser.BinaryExpr:
		return in.evalBinary(e, env)
	case *parser.CallExpr:
		return in.evalCall(e, env)
	case *parser.GetExpr:
		obj, err := in.evaluate(e.Object, env)
		if err != nil {
			return Value{}, err
		}
		if obj.Type != TypeInstance {
			return Value{}, newRuntimeError(e.Name, "Only instances have properties.")
		}
		return obj.Instance().Get(e.Name)
	case *parser.SetExpr:
		obj, err := in.evaluate(e.Object, env)
		if err != nil {
			return Value{}, err
		}
		if obj.Type != TypeInstance {
			return Value{}, newRuntimeError(e.Name, "Only instances have fields.")
		}
		val, err := in.evaluate(e.Value, env)
		if err != nil {
			return Value{}, err
		}
		obj.Instance().Set(e.Name, val)
		return val, nil
	case *parser.ThisExpr:
		return in.lookUpVariable(e.Keyword, e, env)
	case *parser.SuperExpr:
		return in.evalSuper(e, env)
	default:
		return Value{}, fmt.Errorf("lang: unsupported expression %T", expr)
	}
}

func (in *Interpreter) lookUpVariable(name parser.Token, expr parser.Expr, env *Env) (Value, error) {
	if depth, ok := in.locals[expr]; ok {
		return env.GetAt(depth, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalUnary(e *parser.UnaryExpr, env *Env) (Value, error) {
	operand, err := in.evaluate(e.Expr, env)
	if err != nil {
		return Value{}, err
	}
	switch e.Op.Type {
	case parser.TokenBang:
		return BoolValue(!IsTruthy(operand)), nil
	case parser.TokenMinus:
		if operand.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return NumberValue(-operand.Number()), nil
	}
	return Value{}, newRuntimeError(e.Op, "Unknown unary operator '%s'.", e.Op.Lexeme)
}

func (in *Interpreter) evalBinary(e *parser.BinaryExpr, env *Env) (Value, error) {
	left, err := in.evaluate(e.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := in.evaluate(e.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch e.Op.Type {
	case parser.TokenEqualEqual:
		return BoolValue(Equal(left, right)), nil
	case parser.TokenBangEqual:
		return BoolValue(!Equal(left, right)), nil
	case parser.TokenPlus:
		switch {
		case left.Type == TypeNumber && right.Type == TypeNumber:
			return NumberValue(left.Number() + right.Number()), nil
		case left.Type == TypeString && right.Type == TypeString:
			return StringValue(left.Str() + right.Str()), nil
		}
		return Value{}, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	}

	if left.Type != TypeNumber || right.Type != TypeNumber {
		return Value{}, newRuntimeError(e.Op, "Operands must be numbers.")
	}
	a, b := left.Number(), right.Number()
	switch e.Op.Type {
	case parser.TokenMinus:
		return NumberValue(a - b), nil
	case parser.TokenStar:
		return NumberValue(a * b), nil
	case parser.TokenSlash:
		// IEEE semantics: division by zero yields an infinity or NaN.
		return NumberValue(a / b), nil
	case parser.TokenGreater:
		return BoolValue(a > b), nil
	case parser.TokenGreaterEqual:
		return BoolValue(a >= b), nil
	case parser.TokenLess:
		return BoolValue(a < b), nil
	case parser.TokenLessEqual:
		return BoolValue(a <= b), nil
	}
	return Value{}, newRuntimeError(e.Op, "Unknown binary operator '%s'.", e.Op.Lexeme)
}

func (in *Interpreter) evalCall(e *parser.CallExpr, env *Env) (Value, error) {
	callee, err := in.evaluate(e.Callee, env)
	if err != nil {
		return Value{}, err
	}
	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		if args[i], err = in.evaluate(arg, env); err != nil {
			return Value{}, err
		}
	}

	fn, ok := callee.Callable()
	if !ok {
		return Value{}, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return Value{}, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	if in.depth >= maxCallDepth {
		return Value{}, newRuntimeError(e.Paren, "Stack overflow.")
	}
	in.depth++
	result, err := fn.Call(in, args)
	in.depth--
	if err != nil {
		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			// Host functions report plain errors; give them a location.
			return Value{}, &RuntimeError{Pos: e.Paren.Pos, Msg: err.Error()}
		}
		return Value{}, err
	}
	return result, nil
}

func (in *Interpreter) evalSuper(e *parser.SuperExpr, env *Env) (Value, error) {
	depth, ok := in.locals[e]
	if !ok {
		panic("lang: unresolved 'super'")
	}
	superclass := env.GetAt(depth, "super").Class()
	// "this" is always bound in the environment just inside "super".
	receiver := env.GetAt(depth-1, "this").Instance()

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return Value{}, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return FunctionValue(method.Bind(receiver)), nil
}
