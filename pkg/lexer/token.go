package lexer

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	INDENT
	DEDENT

	// Keywords
	FUN
	IF
	ELSE
	WHILE
	FOR
	IMPORT
	RETURN
	BREAK
	CONTINUE
	PRINT
	PRINTLN
	INPUT
	TRUE
	FALSE
	NIL

	// Literals and names
	IDENT
	NUMBER
	STRING

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	ASSIGN   // =
	EQ       // ==
	NOT_EQ   // !=
	LT       // <
	LT_EQ    // <=
	GT       // >
	GT_EQ    // >=
	AND      // &&
	OR       // ||
	XOR      // ^
	BANG     // !

	// Punctuation
	LPAREN    // (
	RPAREN    // )
	COLON     // :
	COMMA     // ,
	SEMICOLON // ;
)

var tokenNames = map[TokenType]string{
	EOF:       "EOF",
	INDENT:    "INDENT",
	DEDENT:    "DEDENT",
	FUN:       "fun",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	FOR:       "for",
	IMPORT:    "import",
	RETURN:    "return",
	BREAK:     "break",
	CONTINUE:  "continue",
	PRINT:     "print",
	PRINTLN:   "println",
	INPUT:     "input",
	TRUE:      "true",
	FALSE:     "false",
	NIL:       "nil",
	IDENT:     "identifier",
	NUMBER:    "number",
	STRING:    "string",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	ASSIGN:    "=",
	EQ:        "==",
	NOT_EQ:    "!=",
	LT:        "<",
	LT_EQ:     "<=",
	GT:        ">",
	GT_EQ:     ">=",
	AND:       "&&",
	OR:        "||",
	XOR:       "^",
	BANG:      "!",
	LPAREN:    "(",
	RPAREN:    ")",
	COLON:     ":",
	COMMA:     ",",
	SEMICOLON: ";",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"fun":      FUN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"import":   IMPORT,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"print":    PRINT,
	"println":  PRINTLN,
	"input":    INPUT,
	"true":     TRUE,
	"false":    FALSE,
	"nil":      NIL,
}

// Token is one lexical unit. Line and Column are 1-based and point at the
// first character of the lexeme. Tokens are immutable once produced.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, STRING:
		return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
	default:
		return t.Type.String()
	}
}
