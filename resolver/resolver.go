// Package resolver binds every variable reference in a parsed program to
// the lexical scope that declares it.
//
// The result is a side table from expression node to depth: the number of
// scopes between the reference and its declaration. References absent from
// the table are globals. Scopes are opened at exactly the places where the
// interpreter creates environments, so a depth computed here is the number
// of enclosing links to follow at runtime.
package resolver

import (
	"github.com/sergev/tlox/parser"
)

// Locals maps variable, assignment, this and super nodes to their depth.
type Locals map[parser.Expr]int

// Depth returns the resolved depth of expr; ok is false for globals.
func (l Locals) Depth(expr parser.Expr) (depth int, ok bool) {
	depth, ok = l[expr]
	return depth, ok
}

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolve walks prog once and returns the binding side table. All
// resolution errors are collected and returned as a parser.ErrorList of
// kind parser.KindResolve; the table is still returned but the program
// must not be executed.
func Resolve(prog *parser.Program) (Locals, error) {
	r := &resolver{
		locals: make(Locals),
	}
	if prog != nil {
		r.resolveStmts(prog.Stmts)
	}
	r.errs.Sort()
	return r.locals, r.errs.Err()
}

type resolver struct {
	// scopes holds local scopes only; the global scope is implicit.
	// A name maps to false while its initializer is being resolved.
	scopes          []map[string]bool
	locals          Locals
	currentFunction functionType
	currentClass    classType
	errs            parser.ErrorList
}

func (r *resolver) errorAt(tok parser.Token, msg string) {
	r.errs.Add(&parser.Error{
		Kind:   parser.KindResolve,
		Pos:    tok.Pos,
		Lexeme: tok.Lexeme,
		Msg:    msg,
	})
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name parser.Token) {
	if len(r.scopes) == 0 {
		// Globals may be redeclared.
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records the depth of the innermost scope declaring name.
func (r *resolver) resolveLocal(expr parser.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *parser.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *parser.FunctionStmt:
		// Defined before the body so the function can refer to itself.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *parser.ClassStmt:
		r.resolveClass(s)
	case *parser.ExprStmt:
		r.resolveExpr(s.Expr)
	case *parser.PrintStmt:
		r.resolveExpr(s.Expr)
	case *parser.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *parser.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *parser.ReturnStmt:
		if r.currentFunction == functionNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Result != nil {
			if r.currentFunction == functionInitializer {
				r.errorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Result)
		}
	}
}

func (r *resolver) resolveClass(s *parser.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorAt(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()
}

func (r *resolver) resolveFunction(fn *parser.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *resolver) resolveExpr(expr parser.Expr) {
	switch e := expr.(type) {
	case *parser.VariableExpr:
		if len(r.scopes) > 0 {
			if finished, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !finished {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *parser.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *parser.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.UnaryExpr:
		r.resolveExpr(e.Expr)
	case *parser.GroupingExpr:
		r.resolveExpr(e.Expr)
	case *parser.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *parser.GetExpr:
		r.resolveExpr(e.Object)
	case *parser.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *parser.ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	case *parser.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, "super")
	case *parser.NumberExpr, *parser.StringExpr, *parser.BoolExpr, *parser.NilExpr:
	}
}
