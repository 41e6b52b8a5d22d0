package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a node in parenthesized prefix form, for example
// "(+ 1 (* 2 3))". Statements render the same way: "(var x 1)".
func Sprint(node Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

// SprintProgram renders each top-level statement on its own line.
func SprintProgram(prog *Program) string {
	if prog == nil {
		return ""
	}
	var sb strings.Builder
	for _, stmt := range prog.Stmts {
		writeNode(&sb, stmt)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("nil")
	case *NumberExpr:
		sb.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	case *StringExpr:
		sb.WriteString(strconv.Quote(n.Value))
	case *BoolExpr:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *NilExpr:
		sb.WriteString("nil")
	case *GroupingExpr:
		parenthesize(sb, "group", n.Expr)
	case *UnaryExpr:
		parenthesize(sb, n.Op.Lexeme, n.Expr)
	case *BinaryExpr:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *LogicalExpr:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *VariableExpr:
		sb.WriteString(n.Name.Lexeme)
	case *AssignExpr:
		parenthesize(sb, "= "+n.Name.Lexeme, n.Value)
	case *CallExpr:
		parenthesize(sb, "call", append([]Node{n.Callee}, exprNodes(n.Args)...)...)
	case *GetExpr:
		parenthesize(sb, ". "+n.Name.Lexeme, n.Object)
	case *SetExpr:
		parenthesize(sb, "= . "+n.Name.Lexeme, n.Object, n.Value)
	case *ThisExpr:
		sb.WriteString("this")
	case *SuperExpr:
		sb.WriteString("(super " + n.Method.Lexeme + ")")
	case *ExprStmt:
		parenthesize(sb, ";", n.Expr)
	case *PrintStmt:
		parenthesize(sb, "print", n.Expr)
	case *VarStmt:
		if n.Init == nil {
			sb.WriteString("(var " + n.Name.Lexeme + ")")
			return
		}
		parenthesize(sb, "var "+n.Name.Lexeme, n.Init)
	case *BlockStmt:
		parenthesize(sb, "block", stmtNodes(n.Stmts)...)
	case *IfStmt:
		if n.Else == nil {
			parenthesize(sb, "if", n.Cond, n.Then)
			return
		}
		parenthesize(sb, "if", n.Cond, n.Then, n.Else)
	case *WhileStmt:
		parenthesize(sb, "while", n.Cond, n.Body)
	case *FunctionStmt:
		writeFunction(sb, "fun", n)
	case *ReturnStmt:
		if n.Result == nil {
			sb.WriteString("(return)")
			return
		}
		parenthesize(sb, "return", n.Result)
	case *ClassStmt:
		sb.WriteString("(class " + n.Name.Lexeme)
		if n.Superclass != nil {
			sb.WriteString(" < " + n.Superclass.Name.Lexeme)
		}
		for _, method := range n.Methods {
			sb.WriteByte(' ')
			writeFunction(sb, "method", method)
		}
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%T>", node)
	}
}

func writeFunction(sb *strings.Builder, head string, fn *FunctionStmt) {
	names := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		names[i] = param.Lexeme
	}
	label := fmt.Sprintf("%s %s (%s)", head, fn.Name.Lexeme, strings.Join(names, " "))
	parenthesize(sb, label, stmtNodes(fn.Body)...)
}

func parenthesize(sb *strings.Builder, head string, nodes ...Node) {
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, node := range nodes {
		sb.WriteByte(' ')
		writeNode(sb, node)
	}
	sb.WriteByte(')')
}

func exprNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func stmtNodes(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}
