package parser

import (
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		line:   1,
		column: 1,
	}
}

// Scan converts source text into tokens terminated by TokenEOF.
// Malformed input does not stop the scan: every problem is collected and
// returned as an ErrorList alongside the tokens that could be produced.
func Scan(src string) ([]Token, error) {
	lx := newLexer(src)
	var (
		tokens []Token
		errs   ErrorList
	)
	for {
		tok, err := lx.nextToken()
		if err != nil {
			errs.add(err)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens, errs.Err()
}

type runeState struct {
	pos    int
	line   int
	column int
}

func (lx *lexer) mark() runeState {
	return runeState{
		pos:    lx.pos,
		line:   lx.line,
		column: lx.column,
	}
}

func (lx *lexer) restore(state runeState) {
	lx.pos = state.pos
	lx.line = state.line
	lx.column = state.column
}

func (lx *lexer) readRune() (rune, runeState, error) {
	state := lx.mark()
	if lx.pos >= len(lx.src) {
		return 0, state, io.EOF
	}
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += w
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r, state, nil
}

func (lx *lexer) peekRune() (rune, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return r, true
}

func (lx *lexer) match(expected rune) bool {
	r, state, err := lx.readRune()
	if err != nil {
		return false
	}
	if r != expected {
		lx.restore(state)
		return false
	}
	return true
}

func (lx *lexer) skipWhitespace() {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			return
		}
		switch {
		case r == ' ', r == '\r', r == '\t', r == '\n':
			continue
		case r == '/':
			if next, ok := lx.peekRune(); ok && next == '/' {
				lx.skipLine()
				continue
			}
			lx.restore(state)
			return
		default:
			lx.restore(state)
			return
		}
	}
}

func (lx *lexer) skipLine() {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			lx.restore(state)
			return
		}
	}
}

func (lx *lexer) nextToken() (Token, *Error) {
	lx.skipWhitespace()

	r, start, err := lx.readRune()
	if err == io.EOF {
		return Token{
			Type: TokenEOF,
			Pos:  positionFromState(start),
		}, nil
	}

	switch {
	case r == utf8.RuneError:
		return Token{}, lx.errorAt(start, "", "Unexpected character.")
	case isIdentifierStart(r):
		lexeme := lx.scanIdentifier(start)
		return makeIdentifierToken(lexeme, start), nil
	case isDigit(r):
		lexeme := lx.scanNumber(start)
		value, _ := strconv.ParseFloat(lexeme, 64)
		return Token{
			Type:    TokenNumber,
			Lexeme:  lexeme,
			Literal: value,
			Pos:     positionFromState(start),
		}, nil
	case r == '"':
		value, ok := lx.scanString()
		if !ok {
			return Token{}, lx.errorAt(start, "", "Unterminated string.")
		}
		return Token{
			Type:    TokenString,
			Lexeme:  lx.src[start.pos:lx.pos],
			Literal: value,
			Pos:     positionFromState(start),
		}, nil
	}

	var tt TokenType
	switch r {
	case '(':
		tt = TokenLeftParen
	case ')':
		tt = TokenRightParen
	case '{':
		tt = TokenLeftBrace
	case '}':
		tt = TokenRightBrace
	case ',':
		tt = TokenComma
	case '.':
		tt = TokenDot
	case '-':
		tt = TokenMinus
	case '+':
		tt = TokenPlus
	case ';':
		tt = TokenSemicolon
	case '*':
		tt = TokenStar
	case '/':
		tt = TokenSlash
	case '!':
		tt = lx.either('=', TokenBangEqual, TokenBang)
	case '=':
		tt = lx.either('=', TokenEqualEqual, TokenEqual)
	case '<':
		tt = lx.either('=', TokenLessEqual, TokenLess)
	case '>':
		tt = lx.either('=', TokenGreaterEqual, TokenGreater)
	default:
		return Token{}, lx.errorAt(start, string(r), "Unexpected character.")
	}
	return lx.simpleToken(tt, start), nil
}

func (lx *lexer) either(next rune, matched, single TokenType) TokenType {
	if lx.match(next) {
		return matched
	}
	return single
}

func (lx *lexer) simpleToken(tt TokenType, start runeState) Token {
	return Token{
		Type:   tt,
		Lexeme: lx.src[start.pos:lx.pos],
		Pos:    positionFromState(start),
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (lx *lexer) scanIdentifier(start runeState) string {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			break
		}
		if !isIdentifierPart(r) {
			lx.restore(state)
			break
		}
	}
	return lx.src[start.pos:lx.pos]
}

func (lx *lexer) scanNumber(start runeState) string {
	lx.scanDigits()
	dot := lx.mark()
	if lx.match('.') {
		if next, ok := lx.peekRune(); ok && isDigit(next) {
			lx.scanDigits()
		} else {
			// "1." is the number 1 followed by a dot.
			lx.restore(dot)
		}
	}
	return lx.src[start.pos:lx.pos]
}

func (lx *lexer) scanDigits() {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			return
		}
		if !isDigit(r) {
			lx.restore(state)
			return
		}
	}
}

// scanString consumes a string body after the opening quote. Strings end on
// the same line; on a newline the lexer stops before it so the next token
// starts on the following line.
func (lx *lexer) scanString() (string, bool) {
	bodyStart := lx.pos
	for {
		r, state, err := lx.readRune()
		if err != nil {
			return "", false
		}
		if r == '\n' {
			lx.restore(state)
			return "", false
		}
		if r == '"' {
			return lx.src[bodyStart:state.pos], true
		}
	}
}

func (lx *lexer) errorAt(start runeState, lexeme, msg string) *Error {
	return &Error{
		Kind:   KindScan,
		Pos:    positionFromState(start),
		Lexeme: lexeme,
		Msg:    msg,
	}
}

func makeIdentifierToken(lexeme string, start runeState) Token {
	if keywordType, ok := keywordToken(lexeme); ok {
		return Token{
			Type:   keywordType,
			Lexeme: lexeme,
			Pos:    positionFromState(start),
		}
	}
	return Token{
		Type:   TokenIdentifier,
		Lexeme: lexeme,
		Pos:    positionFromState(start),
	}
}

func positionFromState(state runeState) Position {
	return Position{
		Offset: state.pos,
		Line:   state.line,
		Column: state.column,
	}
}
