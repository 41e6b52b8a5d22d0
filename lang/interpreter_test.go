package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sergev/tlox/parser"
	"github.com/sergev/tlox/resolver"
)

func runSource(t *testing.T, in *Interpreter, src string) error {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	locals, err := resolver.Resolve(prog)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	return in.Interpret(prog, locals)
}

func runOutput(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	in := NewInterpreter(WithOutput(&out))
	if err := runSource(t, in, src); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String()
}

func runError(t *testing.T, src string) (*RuntimeError, string) {
	t.Helper()
	var out bytes.Buffer
	in := NewInterpreter(WithOutput(&out))
	err := runSource(t, in, src)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	return rerr, out.String()
}

func TestInterpretOutput(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "print 1 + 2 * 3;", "7\n"},
		{"grouping", "print (1 + 2) * 3;", "9\n"},
		{"division", "print 7 / 2;", "3.5\n"},
		{"divide by zero", "print 1 / 0; print -1 / 0;", "inf\n-inf\n"},
		{"negation", "print -(3);", "-3\n"},
		{"concatenation", `print "foo" + "bar";`, "foobar\n"},
		{"comparison", "print 1 < 2; print 2 <= 1; print 3 > 3; print 3 >= 3;", "true\nfalse\nfalse\ntrue\n"},
		{"equality", `print nil == nil; print 1 == "1"; print "a" != "a"; print nil == false;`, "true\nfalse\nfalse\nfalse\n"},
		{"not", "print !nil; print !0; print !!\"\";", "true\nfalse\ntrue\n"},
		{"and returns operand", `print nil and 1; print 1 and "x";`, "nil\nx\n"},
		{"or returns operand", `print nil or "y"; print 0 or 1;`, "y\n0\n"},
		{"var default nil", "var a; print a;", "nil\n"},
		{"global redeclaration", "var a = 1; var a = 2; print a;", "2\n"},
		{"assignment value", "var a; var b; a = b = 3; print a + b;", "6\n"},
		{"while", "var i = 0; while (i < 3) { print i; i = i + 1; }", "0\n1\n2\n"},
		{"for", "for (var i = 0; i < 3; i = i + 1) print i * 10;", "0\n10\n20\n"},
		{"if else", "if (nil) print 1; else print 2; if (0) print 3;", "2\n3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOutput(t, tt.src); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestInterpretBlockShadowingRestoresOuter(t *testing.T) {
	src := `
var a = "global";
{
  var a = "block";
  print a;
}
print a;
`
	if got := runOutput(t, src); got != "block\nglobal\n" {
		t.Fatalf("expected shadowing to end with the block, got %q", got)
	}
}

func TestInterpretEnvironmentRestoredAfterReturnAndError(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(WithOutput(&out))
	src := `
var a = "outer";
fun early() {
  {
    var a = "inner";
    return a;
  }
}
print early();
print a;
`
	if err := runSource(t, in, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "inner\nouter\n" {
		t.Fatalf("expected environment restored after return, got %q", out.String())
	}

	out.Reset()
	if err := runSource(t, in, `{ var a = "doomed"; a = a + 1; }`); err == nil {
		t.Fatalf("expected runtime error")
	}
	if err := runSource(t, in, "print a;"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "outer\n" {
		t.Fatalf("expected globals intact after error, got %q", out.String())
	}
}

func TestInterpretClosuresShareCapturedEnvironment(t *testing.T) {
	src := `
fun makeCounter() {
  var count = 0;
  fun inc() {
    count = count + 1;
    return count;
  }
  fun get() { return count; }
  fun pair(which) {
    if (which == "inc") return inc;
    return get;
  }
  return pair;
}
var c = makeCounter();
c("inc")();
c("inc")();
print c("get")();
var d = makeCounter();
print d("inc")();
`
	if got := runOutput(t, src); got != "2\n1\n" {
		t.Fatalf("expected closures to share state, got %q", got)
	}
}

func TestInterpretStaticScopingOfClosures(t *testing.T) {
	src := `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "block";
  showA();
}
`
	if got := runOutput(t, src); got != "global\nglobal\n" {
		t.Fatalf("expected closure to keep its binding, got %q", got)
	}
}

func TestInterpretRecursion(t *testing.T) {
	src := `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(15);
`
	if got := runOutput(t, src); got != "610\n" {
		t.Fatalf("expected fib(15) = 610, got %q", got)
	}
}

func TestInterpretFunctionWithoutReturnYieldsNil(t *testing.T) {
	if got := runOutput(t, "fun f() { 1; } print f(); fun g() { return; } print g();"); got != "nil\nnil\n" {
		t.Fatalf("expected nil results, got %q", got)
	}
}

func TestInterpretCallableRendering(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(WithOutput(&out))
	in.DefineNative("now", 0, func(*Interpreter, []Value) (Value, error) {
		return NumberValue(1), nil
	})
	src := `
fun f() {}
class A { m() {} }
print f;
print now;
print A;
print A();
print A().m;
print now();
`
	if err := runSource(t, in, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<fn f>\n<native fn>\nA\nA instance\n<fn m>\n1\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestInterpretClasses(t *testing.T) {
	src := `
class Counter {
  init(start) {
    this.n = start;
  }
  add(k) {
    this.n = this.n + k;
    return this;
  }
}
var c = Counter(5);
print c.add(2).add(3).n;
var m = c.add;
m(10);
print c.n;
c.field = "set";
print c.field;
`
	if got := runOutput(t, src); got != "10\n20\nset\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestInterpretInheritedInit(t *testing.T) {
	src := `
class A {
  init(x) { this.x = x; }
  getX() { return this.x; }
}
class B < A {}
print B(5).getX();
`
	if got := runOutput(t, src); got != "5\n" {
		t.Fatalf("expected inherited init, got %q", got)
	}
}

func TestInterpretSuperCalls(t *testing.T) {
	src := `
class A {
  method() { return "A method"; }
  who() { return "A"; }
}
class B < A {
  method() { return "B method"; }
  test() { return super.method(); }
}
class C < B {
  who() { return "C then " + super.who(); }
}
print C().test();
print C().who();
`
	if got := runOutput(t, src); got != "A method\nC then A\n" {
		t.Fatalf("unexpected super dispatch %q", got)
	}
}

func TestInterpretInitializerReturnsThis(t *testing.T) {
	src := `
class Foo {
  init() {
    this.count = 1;
    return;
  }
}
var foo = Foo();
var again = foo.init();
print again == foo;
print again.count;
`
	if got := runOutput(t, src); got != "true\n1\n" {
		t.Fatalf("expected init to return this, got %q", got)
	}
}

func TestInterpretGlobalsPersistAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(WithOutput(&out))
	steps := []string{
		"var total = 1;",
		"fun bump() { var step = 2; total = total + step; }",
		"bump(); bump();",
		"{ var local = total; print local; }",
	}
	for _, src := range steps {
		if err := runSource(t, in, src); err != nil {
			t.Fatalf("unexpected error in %q: %v", src, err)
		}
	}
	if out.String() != "5\n" {
		t.Fatalf("expected 5, got %q", out.String())
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		line int
	}{
		{"add mixed", `print 1 + "a";`, "Operands must be two numbers or two strings.", 1},
		{"subtract string", `print "a" - 1;`, "Operands must be numbers.", 1},
		{"compare nil", "print nil < 1;", "Operands must be numbers.", 1},
		{"negate string", `print -"a";`, "Operand must be a number.", 1},
		{"undefined read", "print nope;", "Undefined variable 'nope'.", 1},
		{"undefined assign", "nope = 1;", "Undefined variable 'nope'.", 1},
		{"call number", "var x = 1;\nx();", "Can only call functions and classes.", 2},
		{"arity", "fun f(a, b) {}\nf(1);", "Expected 2 arguments but got 1.", 2},
		{"class arity", "class A { init(a) {} }\nA();", "Expected 1 arguments but got 0.", 2},
		{"property on number", "var x = 1;\nprint x.y;", "Only instances have properties.", 2},
		{"field on string", `"s".y = 1;`, "Only instances have fields.", 1},
		{"undefined property", "class A {}\nprint A().nope;", "Undefined property 'nope'.", 2},
		{"bad superclass", "var NotAClass = 1;\nclass B < NotAClass {}", "Superclass must be a class.", 2},
		{"undefined super method", "class A {}\nclass B < A { m() { return super.nope; } }\nB().m();", "Undefined property 'nope'.", 2},
		{"stack overflow", "fun f() { f(); }\nf();", "Stack overflow.", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rerr, _ := runError(t, tt.src)
			if rerr.Msg != tt.msg {
				t.Fatalf("expected message %q, got %q", tt.msg, rerr.Msg)
			}
			if rerr.Pos.Line != tt.line {
				t.Fatalf("expected line %d, got %d", tt.line, rerr.Pos.Line)
			}
		})
	}
}

func TestInterpretRuntimeErrorStopsExecution(t *testing.T) {
	rerr, out := runError(t, "print 1;\nprint nil + 1;\nprint 3;")
	if out != "1\n" {
		t.Fatalf("expected output to stop at the error, got %q", out)
	}
	if want := "Operands must be two numbers or two strings.\n[line 2]"; rerr.Error() != want {
		t.Fatalf("expected %q, got %q", want, rerr.Error())
	}
}

func TestInterpretNativeErrorsGainLocation(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(WithOutput(&out))
	in.DefineNative("fail", 0, func(*Interpreter, []Value) (Value, error) {
		return Value{}, errors.New("host failure")
	})
	err := runSource(t, in, "\nfail();")
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if rerr.Pos.Line != 2 || !strings.Contains(rerr.Msg, "host failure") {
		t.Fatalf("expected located host error, got %v", rerr)
	}
}
