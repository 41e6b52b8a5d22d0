package parser

import "errors"

// maxArgs is the largest number of call arguments or function parameters.
const maxArgs = 255

// ParseTokens builds a Program from a token sequence. Syntax errors do not
// stop the parse: the parser records each one, skips to the next statement
// boundary and continues, so the returned ErrorList reports every error
// found. A Program returned together with an error is partial and must not
// be executed.
func ParseTokens(tokens []Token) (*Program, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens, Token{Type: TokenEOF, Pos: pos})
	}
	p := &parser{tokens: tokens}
	p.curr = tokens[0]
	prog := p.parseProgram()
	return prog, p.errs.Err()
}

type parser struct {
	tokens  []Token
	current int
	curr    Token
	errs    ErrorList
}

func (p *parser) advance() Token {
	tok := p.curr
	if tok.Type != TokenEOF {
		p.current++
		p.curr = p.tokens[p.current]
	}
	return tok
}

func (p *parser) previous() Token {
	if p.current == 0 {
		return p.curr
	}
	return p.tokens[p.current-1]
}

func (p *parser) check(tt TokenType) bool {
	return p.curr.Type == tt
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) expect(tt TokenType, msg string) (Token, error) {
	if p.curr.Type != tt {
		return Token{}, p.errorAt(p.curr, msg)
	}
	return p.advance(), nil
}

func (p *parser) errorAt(tok Token, msg string) *Error {
	atEnd := tok.Type == TokenEOF
	return &Error{
		Kind:       KindSyntax,
		Pos:        tok.Pos,
		Lexeme:     tok.Lexeme,
		AtEnd:      atEnd,
		Msg:        msg,
		Incomplete: atEnd,
	}
}

// report records an error that does not require resynchronisation.
func (p *parser) report(err error) {
	var perr *Error
	if errors.As(err, &perr) {
		p.errs.add(perr)
		return
	}
	p.errs.add(&Error{Kind: KindSyntax, Pos: p.curr.Pos, Msg: err.Error()})
}

// synchronize discards tokens until a likely statement boundary.
func (p *parser) synchronize() {
	p.advance()
	for p.curr.Type != TokenEOF {
		if p.previous().Type == TokenSemicolon {
			return
		}
		switch p.curr.Type {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf,
			TokenWhile, TokenPrint, TokenReturn:
			return
		}
		p.advance()
	}
}

func (p *parser) parseProgram() *Program {
	var stmts []Stmt
	for p.curr.Type != TokenEOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return &Program{Stmts: stmts}
}

func (p *parser) parseDeclaration() Stmt {
	var (
		stmt Stmt
		err  error
	)
	switch p.curr.Type {
	case TokenClass:
		stmt, err = p.parseClassDecl()
	case TokenFun:
		p.advance()
		stmt, err = p.parseFunction("function")
	case TokenVar:
		stmt, err = p.parseVarDecl()
	default:
		stmt, err = p.parseStatement()
	}
	if err != nil {
		p.report(err)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) parseClassDecl() (Stmt, error) {
	p.advance()
	nameTok, err := p.expect(TokenIdentifier, "Expect class name.")
	if err != nil {
		return nil, err
	}
	var superclass *VariableExpr
	if p.match(TokenLess) {
		superTok, err := p.expect(TokenIdentifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &VariableExpr{Name: superTok}
	}
	if _, err := p.expect(TokenLeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*FunctionStmt
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		method, err := p.parseFunction("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.expect(TokenRightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ClassStmt{
		Name:       nameTok,
		Superclass: superclass,
		Methods:    methods,
	}, nil
}

func (p *parser) parseFunction(kind string) (*FunctionStmt, error) {
	nameTok, err := p.expect(TokenIdentifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	params, err := p.parseParamNames()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{
		Name:   nameTok,
		Params: params,
		Body:   body,
	}, nil
}

func (p *parser) parseParamNames() ([]Token, error) {
	var params []Token
	if p.check(TokenRightParen) {
		return params, nil
	}
	for {
		if len(params) >= maxArgs {
			p.report(p.errorAt(p.curr, "Can't have more than 255 parameters."))
		}
		tok, err := p.expect(TokenIdentifier, "Expect parameter name.")
		if err != nil {
			return nil, err
		}
		params = append(params, tok)
		if !p.match(TokenComma) {
			break
		}
	}
	return params, nil
}

func (p *parser) parseVarDecl() (Stmt, error) {
	p.advance()
	nameTok, err := p.expect(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(TokenEqual) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{
		Name: nameTok,
		Init: init,
	}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	switch p.curr.Type {
	case TokenFor:
		return p.parseForStmt()
	case TokenIf:
		return p.parseIfStmt()
	case TokenPrint:
		return p.parsePrintStmt()
	case TokenReturn:
		return p.parseReturnStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenLeftBrace:
		braceTok := p.advance()
		stmts, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{
			Stmts: stmts,
			Posn:  braceTok.Pos,
		}, nil
	default:
		return p.parseExprStmt()
	}
}

// parseBlockBody parses declarations up to and including the closing brace;
// the opening brace has already been consumed.
func (p *parser) parseBlockBody() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		if stmt := p.parseDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.expect(TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseForStmt() (Stmt, error) {
	forTok := p.advance()
	if _, err := p.expect(TokenLeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		init Stmt
		err  error
	)
	switch p.curr.Type {
	case TokenSemicolon:
		p.advance()
	case TokenVar:
		init, err = p.parseVarDecl()
	default:
		init, err = p.parseExprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(TokenSemicolon) {
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(TokenRightParen) {
		if incr, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenRightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{
			Stmts: []Stmt{body, &ExprStmt{Expr: incr}},
			Posn:  body.Pos(),
		}
	}
	if cond == nil {
		cond = &BoolExpr{Value: true, Posn: forTok.Pos}
	}
	var loop Stmt = &WhileStmt{
		Cond: cond,
		Body: body,
		Posn: forTok.Pos,
	}
	if init != nil {
		loop = &BlockStmt{
			Stmts: []Stmt{init, loop},
			Posn:  forTok.Pos,
		}
	}
	return loop, nil
}

func (p *parser) parseIfStmt() (Stmt, error) {
	ifTok := p.advance()
	if _, err := p.expect(TokenLeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt Stmt
	// The else binds to the nearest if, which is the one being parsed here.
	if p.match(TokenElse) {
		if elseStmt, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{
		Cond: cond,
		Then: thenStmt,
		Else: elseStmt,
		Posn: ifTok.Pos,
	}, nil
}

func (p *parser) parsePrintStmt() (Stmt, error) {
	printTok := p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{
		Expr: value,
		Posn: printTok.Pos,
	}, nil
}

func (p *parser) parseReturnStmt() (Stmt, error) {
	retTok := p.advance()
	var result Expr
	if !p.check(TokenSemicolon) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		result = expr
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{
		Keyword: retTok,
		Result:  result,
	}, nil
}

func (p *parser) parseWhileStmt() (Stmt, error) {
	whTok := p.advance()
	if _, err := p.expect(TokenLeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{
		Cond: cond,
		Body: body,
		Posn: whTok.Pos,
	}, nil
}

func (p *parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() (Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenEqual) {
		return expr, nil
	}
	equals := p.advance()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *VariableExpr:
		return &AssignExpr{Name: target.Name, Value: value}, nil
	case *GetExpr:
		return &SetExpr{Object: target.Object, Name: target.Name, Value: value}, nil
	}
	// Reported without unwinding: the parser is not confused.
	p.report(p.errorAt(equals, "Invalid assignment target."))
	return expr, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(TokenOr) {
		opTok := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Op: opTok, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(TokenAnd) {
		opTok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Op: opTok, Left: left, Right: right}
	}
	return left, nil
}

// parseBinary parses a left-associative chain of operators drawn from ops,
// with operands produced by next.
func (p *parser) parseBinary(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		opTok := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: opTok, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, error) {
	return p.parseBinary(p.parseComparison, TokenBangEqual, TokenEqualEqual)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.parseBinary(p.parseTerm, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseFactor, TokenMinus, TokenPlus)
}

func (p *parser) parseFactor() (Expr, error) {
	return p.parseBinary(p.parseUnary, TokenSlash, TokenStar)
}

func (p *parser) parseUnary() (Expr, error) {
	if p.check(TokenBang) || p.check(TokenMinus) {
		opTok := p.advance()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: opTok, Expr: expr}, nil
	}
	return p.parseCall()
}

func (p *parser) parseCall() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(TokenLeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(TokenDot):
			nameTok, err := p.expect(TokenIdentifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &GetExpr{Object: expr, Name: nameTok}
		default:
			return expr, nil
		}
	}
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(TokenRightParen) {
		for {
			if len(args) >= maxArgs {
				p.report(p.errorAt(p.curr, "Can't have more than 255 arguments."))
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	paren, err := p.expect(TokenRightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpr{
		Callee: callee,
		Paren:  paren,
		Args:   args,
	}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.curr
	switch tok.Type {
	case TokenFalse, TokenTrue:
		p.advance()
		return &BoolExpr{Value: tok.Type == TokenTrue, Posn: tok.Pos}, nil
	case TokenNil:
		p.advance()
		return &NilExpr{Posn: tok.Pos}, nil
	case TokenNumber:
		p.advance()
		value, _ := tok.Literal.(float64)
		return &NumberExpr{Value: value, Posn: tok.Pos}, nil
	case TokenString:
		p.advance()
		value, _ := tok.Literal.(string)
		return &StringExpr{Value: value, Posn: tok.Pos}, nil
	case TokenThis:
		p.advance()
		return &ThisExpr{Keyword: tok}, nil
	case TokenSuper:
		p.advance()
		if _, err := p.expect(TokenDot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.expect(TokenIdentifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &SuperExpr{Keyword: tok, Method: method}, nil
	case TokenIdentifier:
		p.advance()
		return &VariableExpr{Name: tok}, nil
	case TokenLeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expr: expr, Posn: tok.Pos}, nil
	default:
		return nil, p.errorAt(tok, "Expect expression.")
	}
}
