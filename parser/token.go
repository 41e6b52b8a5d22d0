package parser

// TokenType enumerates lexical categories recognised by the scanner.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenIdentifier
	TokenNumber
	TokenString

	// Keywords
	TokenAnd
	TokenClass
	TokenElse
	TokenFalse
	TokenFun
	TokenFor
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenSuper
	TokenThis
	TokenTrue
	TokenVar
	TokenWhile

	// Operators and punctuation
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenComma        // ,
	TokenDot          // .
	TokenMinus        // -
	TokenPlus         // +
	TokenSemicolon    // ;
	TokenSlash        // /
	TokenStar         // *
	TokenBang         // !
	TokenBangEqual    // !=
	TokenEqual        // =
	TokenEqualEqual   // ==
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "illegal"
	case TokenIdentifier:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenAnd:
		return "and"
	case TokenClass:
		return "class"
	case TokenElse:
		return "else"
	case TokenFalse:
		return "false"
	case TokenFun:
		return "fun"
	case TokenFor:
		return "for"
	case TokenIf:
		return "if"
	case TokenNil:
		return "nil"
	case TokenOr:
		return "or"
	case TokenPrint:
		return "print"
	case TokenReturn:
		return "return"
	case TokenSuper:
		return "super"
	case TokenThis:
		return "this"
	case TokenTrue:
		return "true"
	case TokenVar:
		return "var"
	case TokenWhile:
		return "while"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenComma:
		return ","
	case TokenDot:
		return "."
	case TokenMinus:
		return "-"
	case TokenPlus:
		return "+"
	case TokenSemicolon:
		return ";"
	case TokenSlash:
		return "/"
	case TokenStar:
		return "*"
	case TokenBang:
		return "!"
	case TokenBangEqual:
		return "!="
	case TokenEqual:
		return "="
	case TokenEqualEqual:
		return "=="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	default:
		return "unknown"
	}
}

// Keywords lists the reserved words of the language in lexical order.
var Keywords = []string{
	"and", "class", "else", "false", "fun", "for", "if", "nil",
	"or", "print", "return", "super", "this", "true", "var", "while",
}

func keywordToken(lexeme string) (TokenType, bool) {
	switch lexeme {
	case "and":
		return TokenAnd, true
	case "class":
		return TokenClass, true
	case "else":
		return TokenElse, true
	case "false":
		return TokenFalse, true
	case "fun":
		return TokenFun, true
	case "for":
		return TokenFor, true
	case "if":
		return TokenIf, true
	case "nil":
		return TokenNil, true
	case "or":
		return TokenOr, true
	case "print":
		return TokenPrint, true
	case "return":
		return TokenReturn, true
	case "super":
		return TokenSuper, true
	case "this":
		return TokenThis, true
	case "true":
		return TokenTrue, true
	case "var":
		return TokenVar, true
	case "while":
		return TokenWhile, true
	default:
		return TokenIllegal, false
	}
}

// Position tracks a source location.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

// Token is a single lexical unit produced by the scanner.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text of the token
	Literal interface{} // float64 for numbers, string for strings
	Pos     Position
}
