package lexer

import (
	"fmt"
	"unicode"
)

// LexError reports a malformed token or unknown character, with its 1-based
// source position.
type LexError struct {
	Line   int
	Column int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Phase implements diag.Diagnostic.
func (e *LexError) Phase() string { return "lex" }

// Position implements diag.Diagnostic.
func (e *LexError) Position() (line, column int) { return e.Line, e.Column }

// Message implements diag.Diagnostic.
func (e *LexError) Message() string { return e.Msg }

// Lexer converts Loa source text into a forward-only token stream. Block
// structure is surfaced as synthetic INDENT/DEDENT tokens driven by an
// indent-level stack, so the parser never inspects raw whitespace.
type Lexer struct {
	src     []rune
	pos     int
	line    int
	col     int
	indents []int
	pending []Token
}

// New returns a lexer positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{
		src:     []rune(source),
		line:    1,
		col:     1,
		indents: []int{0},
	}
}

// Tokenize runs a fresh lexer over source and collects every token through
// the trailing EOF.
func Tokenize(source string) ([]Token, error) {
	lx := New(source)
	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// Next produces the next token. After the first EOF every subsequent call
// returns EOF again.
func (l *Lexer) Next() (Token, error) {
	if tok, ok := l.popPending(); ok {
		return tok, nil
	}

	if err := l.skipSpace(); err != nil {
		return Token{}, err
	}
	if tok, ok := l.popPending(); ok {
		return tok, nil
	}

	if l.isAtEnd() {
		// Close any blocks still open at end of input.
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, Token{Type: DEDENT, Line: l.line, Column: 1})
		}
		if tok, ok := l.popPending(); ok {
			return tok, nil
		}
		return Token{Type: EOF, Line: l.line, Column: l.col}, nil
	}

	startLine, startCol := l.line, l.col
	c := l.advance()

	mk := func(t TokenType, lexeme string) Token {
		return Token{Type: t, Lexeme: lexeme, Line: startLine, Column: startCol}
	}

	switch {
	case c == '+':
		return mk(PLUS, "+"), nil
	case c == '-':
		return mk(MINUS, "-"), nil
	case c == '*':
		return mk(STAR, "*"), nil
	case c == '/':
		return mk(SLASH, "/"), nil
	case c == '(':
		return mk(LPAREN, "("), nil
	case c == ')':
		return mk(RPAREN, ")"), nil
	case c == ':':
		return mk(COLON, ":"), nil
	case c == ',':
		return mk(COMMA, ","), nil
	case c == ';':
		return mk(SEMICOLON, ";"), nil
	case c == '^':
		return mk(XOR, "^"), nil
	case c == '=':
		if l.match('=') {
			return mk(EQ, "=="), nil
		}
		return mk(ASSIGN, "="), nil
	case c == '!':
		if l.match('=') {
			return mk(NOT_EQ, "!="), nil
		}
		return mk(BANG, "!"), nil
	case c == '<':
		if l.match('=') {
			return mk(LT_EQ, "<="), nil
		}
		return mk(LT, "<"), nil
	case c == '>':
		if l.match('=') {
			return mk(GT_EQ, ">="), nil
		}
		return mk(GT, ">"), nil
	case c == '&':
		if l.match('&') {
			return mk(AND, "&&"), nil
		}
		return Token{}, l.errorAt(startLine, startCol, "unexpected character '&' (did you mean '&&'?)")
	case c == '|':
		if l.match('|') {
			return mk(OR, "||"), nil
		}
		return Token{}, l.errorAt(startLine, startCol, "unexpected character '|' (did you mean '||'?)")
	case c == '"':
		return l.scanString(startLine, startCol)
	case isDigit(c):
		return l.scanNumber(c, startLine, startCol)
	case isIdentStart(c):
		return l.scanIdentifier(c, startLine, startCol), nil
	default:
		return Token{}, l.errorAt(startLine, startCol, fmt.Sprintf("unexpected character %q", c))
	}
}

func (l *Lexer) errorAt(line, col int, msg string) error {
	return &LexError{Line: line, Column: col, Msg: msg}
}

func (l *Lexer) popPending() (Token, bool) {
	if len(l.pending) == 0 {
		return Token{}, false
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok, true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() rune {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

// skipSpace consumes whitespace and comments. Crossing a newline triggers
// indentation measurement, which may queue INDENT/DEDENT tokens; skipSpace
// returns as soon as any are pending so they precede the next content token.
func (l *Lexer) skipSpace() error {
	for !l.isAtEnd() {
		switch c := l.peek(); c {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.advance()
			if err := l.measureIndent(); err != nil {
				return err
			}
			if len(l.pending) > 0 {
				return nil
			}
		case '/':
			switch l.peekNext() {
			case '/':
				l.skipLineComment()
			case '*':
				if err := l.skipBlockComment(); err != nil {
					return err
				}
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) skipLineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() error {
	startLine, startCol := l.line, l.col
	l.advance() // '/'
	l.advance() // '*'
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return l.errorAt(startLine, startCol, "unterminated block comment")
}

// measureIndent runs right after a newline. Blank and comment-only lines
// never change the block structure; for the first content line it compares
// the leading-space count against the indent stack and queues the resulting
// INDENT or DEDENT tokens.
func (l *Lexer) measureIndent() error {
	for {
		count := 0
		for l.peek() == ' ' {
			l.advance()
			count++
		}
		switch {
		case l.isAtEnd():
			return nil
		case l.peek() == '\n' || l.peek() == '\r':
			l.advance()
			continue
		case l.peek() == '/' && l.peekNext() == '/':
			l.skipLineComment()
			continue
		}

		current := l.indents[len(l.indents)-1]
		switch {
		case count > current:
			l.indents = append(l.indents, count)
			l.pending = append(l.pending, Token{Type: INDENT, Line: l.line, Column: 1})
		case count < current:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > count {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, Token{Type: DEDENT, Line: l.line, Column: 1})
			}
			if l.indents[len(l.indents)-1] != count {
				return l.errorAt(l.line, count+1, "inconsistent indentation")
			}
		}
		return nil
	}
}

func (l *Lexer) scanString(startLine, startCol int) (Token, error) {
	var content []rune
	for !l.isAtEnd() && l.peek() != '"' {
		content = append(content, l.advance())
	}
	if l.isAtEnd() {
		return Token{}, l.errorAt(startLine, startCol, "unterminated string")
	}
	l.advance() // closing quote
	return Token{Type: STRING, Lexeme: string(content), Line: startLine, Column: startCol}, nil
}

func (l *Lexer) scanNumber(first rune, startLine, startCol int) (Token, error) {
	lexeme := []rune{first}
	for isDigit(l.peek()) {
		lexeme = append(lexeme, l.advance())
	}
	if l.peek() == '.' {
		lexeme = append(lexeme, l.advance())
		for isDigit(l.peek()) {
			lexeme = append(lexeme, l.advance())
		}
	}
	if l.peek() == '.' {
		return Token{}, l.errorAt(startLine, startCol, fmt.Sprintf("malformed number literal %q", string(lexeme)+"."))
	}
	return Token{Type: NUMBER, Lexeme: string(lexeme), Line: startLine, Column: startCol}, nil
}

func (l *Lexer) scanIdentifier(first rune, startLine, startCol int) Token {
	lexeme := []rune{first}
	for isIdentPart(l.peek()) {
		lexeme = append(lexeme, l.advance())
	}
	name := string(lexeme)
	if kw, ok := keywords[name]; ok {
		return Token{Type: kw, Lexeme: name, Line: startLine, Column: startCol}
	}
	return Token{Type: IDENT, Lexeme: name, Line: startLine, Column: startCol}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}
