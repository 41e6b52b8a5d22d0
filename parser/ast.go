package parser

// Node represents any AST node with a source position.
type Node interface {
	Pos() Position
}

// Program is the root of a parsed source file.
type Program struct {
	Stmts []Stmt
}

// Stmt represents a statement or declaration.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression. Expression nodes are always handled by
// pointer, so a node pointer is a stable identity for the resolver.
type Expr interface {
	Node
	exprNode()
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value float64
	Posn  Position
}

func (e *NumberExpr) Pos() Position { return e.Posn }
func (*NumberExpr) exprNode()       {}

// StringExpr is a double-quoted string literal.
type StringExpr struct {
	Value string
	Posn  Position
}

func (e *StringExpr) Pos() Position { return e.Posn }
func (*StringExpr) exprNode()       {}

// BoolExpr is a boolean literal.
type BoolExpr struct {
	Value bool
	Posn  Position
}

func (e *BoolExpr) Pos() Position { return e.Posn }
func (*BoolExpr) exprNode()       {}

// NilExpr is the nil literal.
type NilExpr struct {
	Posn Position
}

func (e *NilExpr) Pos() Position { return e.Posn }
func (*NilExpr) exprNode()       {}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Expr Expr
	Posn Position
}

func (e *GroupingExpr) Pos() Position { return e.Posn }
func (*GroupingExpr) exprNode()       {}

// UnaryExpr represents prefix operator application.
type UnaryExpr struct {
	Op   Token
	Expr Expr
}

func (e *UnaryExpr) Pos() Position { return e.Op.Pos }
func (*UnaryExpr) exprNode()       {}

// BinaryExpr represents arithmetic, comparison and equality operators.
type BinaryExpr struct {
	Op          Token
	Left, Right Expr
}

func (e *BinaryExpr) Pos() Position { return e.Op.Pos }
func (*BinaryExpr) exprNode()       {}

// LogicalExpr is a short-circuiting "and" or "or".
type LogicalExpr struct {
	Op          Token
	Left, Right Expr
}

func (e *LogicalExpr) Pos() Position { return e.Op.Pos }
func (*LogicalExpr) exprNode()       {}

// VariableExpr refers to a variable by name.
type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) Pos() Position { return e.Name.Pos }
func (*VariableExpr) exprNode()       {}

// AssignExpr stores a value into an existing variable.
type AssignExpr struct {
	Name  Token
	Value Expr
}

func (e *AssignExpr) Pos() Position { return e.Name.Pos }
func (*AssignExpr) exprNode()       {}

// CallExpr invokes an expression with arguments.
type CallExpr struct {
	Callee Expr
	Paren  Token // closing parenthesis, used for error locations
	Args   []Expr
}

func (e *CallExpr) Pos() Position { return e.Paren.Pos }
func (*CallExpr) exprNode()       {}

// GetExpr reads a property of an instance.
type GetExpr struct {
	Object Expr
	Name   Token
}

func (e *GetExpr) Pos() Position { return e.Name.Pos }
func (*GetExpr) exprNode()       {}

// SetExpr writes a field of an instance.
type SetExpr struct {
	Object Expr
	Name   Token
	Value  Expr
}

func (e *SetExpr) Pos() Position { return e.Name.Pos }
func (*SetExpr) exprNode()       {}

// ThisExpr is the receiver inside a method.
type ThisExpr struct {
	Keyword Token
}

func (e *ThisExpr) Pos() Position { return e.Keyword.Pos }
func (*ThisExpr) exprNode()       {}

// SuperExpr is a superclass method reference "super.method".
type SuperExpr struct {
	Keyword Token
	Method  Token
}

func (e *SuperExpr) Pos() Position { return e.Keyword.Pos }
func (*SuperExpr) exprNode()       {}

// ExprStmt evaluates an expression for side-effects.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) Pos() Position { return s.Expr.Pos() }
func (*ExprStmt) stmtNode()       {}

// PrintStmt writes the rendering of a value.
type PrintStmt struct {
	Expr Expr
	Posn Position
}

func (s *PrintStmt) Pos() Position { return s.Posn }
func (*PrintStmt) stmtNode()       {}

// VarStmt declares a variable, optionally initialised.
type VarStmt struct {
	Name Token
	Init Expr // may be nil
}

func (s *VarStmt) Pos() Position { return s.Name.Pos }
func (*VarStmt) stmtNode()       {}

// BlockStmt is a braced block with its own scope.
type BlockStmt struct {
	Stmts []Stmt
	Posn  Position
}

func (s *BlockStmt) Pos() Position { return s.Posn }
func (*BlockStmt) stmtNode()       {}

// IfStmt conditionally executes branches.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
	Posn Position
}

func (s *IfStmt) Pos() Position { return s.Posn }
func (*IfStmt) stmtNode()       {}

// WhileStmt repeats while condition is truthy. "for" loops are desugared
// into a WhileStmt inside a BlockStmt.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Posn Position
}

func (s *WhileStmt) Pos() Position { return s.Posn }
func (*WhileStmt) stmtNode()       {}

// FunctionStmt declares a named function or, inside a class, a method.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

func (s *FunctionStmt) Pos() Position { return s.Name.Pos }
func (*FunctionStmt) stmtNode()       {}

// ReturnStmt exits the current function, optionally with a value.
type ReturnStmt struct {
	Keyword Token
	Result  Expr // may be nil
}

func (s *ReturnStmt) Pos() Position { return s.Keyword.Pos }
func (*ReturnStmt) stmtNode()       {}

// ClassStmt declares a class with an optional superclass.
type ClassStmt struct {
	Name       Token
	Superclass *VariableExpr // may be nil
	Methods    []*FunctionStmt
}

func (s *ClassStmt) Pos() Position { return s.Name.Pos }
func (*ClassStmt) stmtNode()       {}
