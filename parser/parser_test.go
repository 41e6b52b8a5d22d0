package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return prog
}

func TestParseFunction(t *testing.T) {
	src := `
fun fact(n) {
	if (n <= 1) return 1;
	return n * fact(n - 1);
}
`
	prog := mustParse(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Stmts))
	}
	fn, ok := prog.Stmts[0].(*FunctionStmt)
	if !ok {
		t.Fatalf("expected FunctionStmt, got %T", prog.Stmts[0])
	}
	if fn.Name.Lexeme != "fact" {
		t.Fatalf("expected function name fact, got %s", fn.Name.Lexeme)
	}
	if len(fn.Params) != 1 || fn.Params[0].Lexeme != "n" {
		t.Fatalf("expected single parameter n, got %v", fn.Params)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements in body, got %d", len(fn.Body))
	}
	ifStmt, ok := fn.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected first statement to be IfStmt, got %T", fn.Body[0])
	}
	if _, ok := ifStmt.Then.(*ReturnStmt); !ok {
		t.Fatalf("expected then-branch to be ReturnStmt, got %T", ifStmt.Then)
	}
	if _, ok := fn.Body[1].(*ReturnStmt); !ok {
		t.Fatalf("expected second statement to be ReturnStmt, got %T", fn.Body[1])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(; (+ 1 (* 2 3)))"},
		{"(1 + 2) * 3;", "(; (* (group (+ 1 2)) 3))"},
		{"1 - 2 - 3;", "(; (- (- 1 2) 3))"},
		{"-x * 2;", "(; (* (- x) 2))"},
		{"!!true;", "(; (! (! true)))"},
		{"a == b != c;", "(; (!= (== a b) c))"},
		{"1 < 2 == 3 >= 4;", "(; (== (< 1 2) (>= 3 4)))"},
		{"a or b and c;", "(; (or a (and b c)))"},
		{"a = b = 1;", "(; (= a (= b 1)))"},
		{"a.b.c = 1;", "(; (= . c (. b a) 1))"},
		{"f(1)(2);", "(; (call (call f 1) 2))"},
		{"obj.method(a, b);", "(; (call (. method obj) a b))"},
		{"super.init(this);", "(; (call (super init) this))"},
		{"print \"hi\";", "(print \"hi\")"},
		{"print nil;", "(print nil)"},
		{"print 2.5;", "(print 2.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			if got := Sprint(prog.Stmts[0]); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	prog := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	want := "(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))"
	if got := Sprint(prog.Stmts[0]); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseForWithoutClauses(t *testing.T) {
	prog := mustParse(t, "for (;;) print 1;")
	want := "(while true (print 1))"
	if got := Sprint(prog.Stmts[0]); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseDanglingElseBindsToNearestIf(t *testing.T) {
	prog := mustParse(t, "if (a) if (b) print 1; else print 2;")
	outer, ok := prog.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", prog.Stmts[0])
	}
	if outer.Else != nil {
		t.Fatalf("expected outer if to have no else branch")
	}
	inner, ok := outer.Then.(*IfStmt)
	if !ok {
		t.Fatalf("expected nested IfStmt, got %T", outer.Then)
	}
	if inner.Else == nil {
		t.Fatalf("expected inner if to own the else branch")
	}
}

func TestParseClassDeclaration(t *testing.T) {
	src := `
class Child < Base {
	init(x) { this.x = x; }
	get() { return this.x; }
}
`
	prog := mustParse(t, src)
	cls, ok := prog.Stmts[0].(*ClassStmt)
	if !ok {
		t.Fatalf("expected ClassStmt, got %T", prog.Stmts[0])
	}
	if cls.Name.Lexeme != "Child" {
		t.Fatalf("expected class name Child, got %s", cls.Name.Lexeme)
	}
	if cls.Superclass == nil || cls.Superclass.Name.Lexeme != "Base" {
		t.Fatalf("expected superclass Base, got %v", cls.Superclass)
	}
	if len(cls.Methods) != 2 || cls.Methods[0].Name.Lexeme != "init" || cls.Methods[1].Name.Lexeme != "get" {
		t.Fatalf("expected methods init and get, got %d methods", len(cls.Methods))
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	prog, err := Parse("a + b = c;\nprint 1;")
	if err == nil {
		t.Fatalf("expected error for invalid assignment target")
	}
	if want := "[line 1] Error at '=': Invalid assignment target."; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
	// Not a synchronising error: the following statement still parses.
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
}

func TestParseRecoversAndReportsEveryError(t *testing.T) {
	src := "var = 1;\nprint 2;\nprint (3;\nvar ok = 4;"
	prog, err := Parse(src)
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(list), err)
	}
	if want := "[line 1] Error at '=': Expect variable name."; list[0].Error() != want {
		t.Fatalf("expected %q, got %q", want, list[0].Error())
	}
	if want := "[line 3] Error at ';': Expect ')' after expression."; list[1].Error() != want {
		t.Fatalf("expected %q, got %q", want, list[1].Error())
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected the two valid statements to survive, got %d", len(prog.Stmts))
	}
}

func TestParseErrorAtEnd(t *testing.T) {
	_, err := Parse("print 1")
	if err == nil {
		t.Fatalf("expected error for missing semicolon")
	}
	if want := "[line 1] Error at end: Expect ';' after value."; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
	if !IsIncomplete(err) {
		t.Fatalf("expected error at end to be incomplete")
	}
	if !HasKind(err, KindSyntax) {
		t.Fatalf("expected a syntax error")
	}
}

func TestParseUnclosedBlockIsIncomplete(t *testing.T) {
	_, err := Parse("fun f() {\n  print 1;")
	if !IsIncomplete(err) {
		t.Fatalf("expected unclosed block to be incomplete, got %v", err)
	}
	_, err = Parse("print 1; )")
	if IsIncomplete(err) {
		t.Fatalf("expected stray paren not to be incomplete")
	}
}

func TestParseTooManyArguments(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	src := "f(" + strings.Join(args, ", ") + ");"
	prog, err := Parse(src)
	if err == nil || !strings.Contains(err.Error(), "Can't have more than 255 arguments.") {
		t.Fatalf("expected argument limit error, got %v", err)
	}
	// The call is still built.
	call := prog.Stmts[0].(*ExprStmt).Expr.(*CallExpr)
	if len(call.Args) != 256 {
		t.Fatalf("expected 256 arguments, got %d", len(call.Args))
	}
}

func TestParseTooManyParameters(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	src := "fun f(" + strings.Join(params, ", ") + ") {}"
	_, err := Parse(src)
	if err == nil || !strings.Contains(err.Error(), "Can't have more than 255 parameters.") {
		t.Fatalf("expected parameter limit error, got %v", err)
	}
}

func TestParseMissingExpression(t *testing.T) {
	_, err := Parse("print ;")
	if want := "[line 1] Error at ';': Expect expression."; err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
}

func TestParseSuperRequiresMethodName(t *testing.T) {
	_, err := Parse("super;")
	if want := "[line 1] Error at ';': Expect '.' after 'super'."; err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
}
