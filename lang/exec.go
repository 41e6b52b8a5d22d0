package lang

import (
	"fmt"

	"github.com/sergev/tlox/parser"
)

func (in *Interpreter) execute(stmt parser.Stmt, env *Env) (flow, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		if _, err := in.evaluate(s.Expr, env); err != nil {
			return normal, err
		}
		return normal, nil
	case *parser.PrintStmt:
		val, err := in.evaluate(s.Expr, env)
		if err != nil {
			return normal, err
		}
		fmt.Fprintln(in.out, Stringify(val))
		return normal, nil
	case *parser.VarStmt:
		val := Nil
		if s.Init != nil {
			v, err := in.evaluate(s.Init, env)
			if err != nil {
				return normal, err
			}
			val = v
		}
		env.Define(s.Name.Lexeme, val)
		return normal, nil
	case *parser.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnv(env))
	case *parser.IfStmt:
		cond, err := in.evaluate(s.Cond, env)
		if err != nil {
			return normal, err
		}
		if IsTruthy(cond) {
			return in.execute(s.Then, env)
		}
		if s.Else != nil {
			return in.execute(s.Else, env)
		}
		return normal, nil
	case *parser.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond, env)
			if err != nil {
				return normal, err
			}
			if !IsTruthy(cond) {
				return normal, nil
			}
			result, err := in.execute(s.Body, env)
			if err != nil || result.kind == flowReturn {
				return result, err
			}
		}
	case *parser.FunctionStmt:
		env.Define(s.Name.Lexeme, FunctionValue(NewFunction(s, env, false)))
		return normal, nil
	case *parser.ReturnStmt:
		val := Nil
		if s.Result != nil {
			v, err := in.evaluate(s.Result, env)
			if err != nil {
				return normal, err
			}
			val = v
		}
		return flow{kind: flowReturn, value: val}, nil
	case *parser.ClassStmt:
		return normal, in.executeClass(s, env)
	default:
		return normal, fmt.Errorf("lang: unsupported statement %T", stmt)
	}
}

// executeBlock runs stmts in env. The caller's environment is untouched,
// so leaving the block on any path restores it.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Env) (flow, error) {
	for _, stmt := range stmts {
		result, err := in.execute(stmt, env)
		if err != nil || result.kind == flowReturn {
			return result, err
		}
	}
	return normal, nil
}

func (in *Interpreter) executeClass(s *parser.ClassStmt, env *Env) error {
	var superclass *Class
	if s.Superclass != nil {
		val, err := in.evaluate(s.Superclass, env)
		if err != nil {
			return err
		}
		if val.Type != TypeClass {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = val.Class()
	}

	env.Define(s.Name.Lexeme, Nil)

	methodEnv := env
	if superclass != nil {
		methodEnv = NewEnv(env)
		methodEnv.Define("super", ClassValue(superclass))
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	return env.Assign(s.Name, ClassValue(class))
}
