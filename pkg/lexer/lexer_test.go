package lexer

import (
	"strings"
	"testing"
)

func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	return tokens
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func expectTypes(t *testing.T, got []Token, want ...TokenType) {
	t.Helper()
	gotTypes := types(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("token count mismatch: got %v want %v", gotTypes, want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Fatalf("token %d: got %s want %s (all: %v)", i, gotTypes[i], want[i], gotTypes)
		}
	}
}

func TestTokenizeArithmetic(t *testing.T) {
	tokens := mustTokenize(t, "2 + 3 * 4")
	expectTypes(t, tokens, NUMBER, PLUS, NUMBER, STAR, NUMBER, EOF)
	if tokens[0].Lexeme != "2" || tokens[2].Lexeme != "3" || tokens[4].Lexeme != "4" {
		t.Fatalf("unexpected lexemes: %v", tokens)
	}
}

func TestTokenPositionsAreOneBased(t *testing.T) {
	tokens := mustTokenize(t, "x = 10\ny = 20\n")
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Fatalf("first token at %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
	// "10" starts at column 5.
	if tokens[2].Line != 1 || tokens[2].Column != 5 {
		t.Fatalf("number token at %d:%d, want 1:5", tokens[2].Line, tokens[2].Column)
	}
	if tokens[3].Line != 2 || tokens[3].Column != 1 {
		t.Fatalf("second line token at %d:%d, want 2:1", tokens[3].Line, tokens[3].Column)
	}
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens := mustTokenize(t, "fun foo if else while return break continue print true false nil forward")
	expectTypes(t, tokens,
		FUN, IDENT, IF, ELSE, WHILE, RETURN, BREAK, CONTINUE, PRINT, TRUE, FALSE, NIL, IDENT, EOF)
	if tokens[1].Lexeme != "foo" || tokens[12].Lexeme != "forward" {
		t.Fatalf("unexpected identifier lexemes: %v", tokens)
	}
}

func TestTokenizeReservedKeywords(t *testing.T) {
	tokens := mustTokenize(t, "for import input println")
	expectTypes(t, tokens, FOR, IMPORT, INPUT, PRINTLN, EOF)
}

func TestTokenizeOperators(t *testing.T) {
	tokens := mustTokenize(t, "== != <= >= < > && || ^ ! = + - * /")
	expectTypes(t, tokens,
		EQ, NOT_EQ, LT_EQ, GT_EQ, LT, GT, AND, OR, XOR, BANG, ASSIGN,
		PLUS, MINUS, STAR, SLASH, EOF)
}

func TestTokenizeString(t *testing.T) {
	tokens := mustTokenize(t, `greeting = "hello world"`)
	expectTypes(t, tokens, IDENT, ASSIGN, STRING, EOF)
	if tokens[2].Lexeme != "hello world" {
		t.Fatalf("string lexeme %q", tokens[2].Lexeme)
	}
}

func TestStringHasNoEscapes(t *testing.T) {
	tokens := mustTokenize(t, `"a\nb"`)
	if tokens[0].Lexeme != `a\nb` {
		t.Fatalf("string lexeme %q, want raw backslash preserved", tokens[0].Lexeme)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize("x = \"oops\n")
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if lexErr.Line != 1 || lexErr.Column != 5 {
		t.Fatalf("error at %d:%d, want 1:5", lexErr.Line, lexErr.Column)
	}
	if !strings.Contains(lexErr.Msg, "unterminated string") {
		t.Fatalf("unexpected message %q", lexErr.Msg)
	}
}

func TestMalformedNumber(t *testing.T) {
	_, err := Tokenize("x = 1.2.3")
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if !strings.Contains(lexErr.Msg, "malformed number") {
		t.Fatalf("unexpected message %q", lexErr.Msg)
	}
}

func TestNumberForms(t *testing.T) {
	tokens := mustTokenize(t, "1 42 3.14 0.5")
	expectTypes(t, tokens, NUMBER, NUMBER, NUMBER, NUMBER, EOF)
	if tokens[2].Lexeme != "3.14" {
		t.Fatalf("decimal lexeme %q", tokens[2].Lexeme)
	}
}

func TestIndentDedent(t *testing.T) {
	source := "if (x):\n    print(x)\ny = 1\n"
	tokens := mustTokenize(t, source)
	expectTypes(t, tokens,
		IF, LPAREN, IDENT, RPAREN, COLON,
		INDENT, PRINT, LPAREN, IDENT, RPAREN, DEDENT,
		IDENT, ASSIGN, NUMBER, EOF)
}

func TestNestedIndentation(t *testing.T) {
	source := "while (a):\n    if (b):\n        x = 1\n"
	tokens := mustTokenize(t, source)
	expectTypes(t, tokens,
		WHILE, LPAREN, IDENT, RPAREN, COLON,
		INDENT, IF, LPAREN, IDENT, RPAREN, COLON,
		INDENT, IDENT, ASSIGN, NUMBER,
		DEDENT, DEDENT, EOF)
}

func TestBlankLinesDoNotDedent(t *testing.T) {
	source := "if (x):\n    a = 1\n\n    b = 2\n"
	tokens := mustTokenize(t, source)
	expectTypes(t, tokens,
		IF, LPAREN, IDENT, RPAREN, COLON,
		INDENT, IDENT, ASSIGN, NUMBER, IDENT, ASSIGN, NUMBER, DEDENT, EOF)
}

func TestInconsistentIndentation(t *testing.T) {
	source := "if (x):\n    a = 1\n  b = 2\n"
	_, err := Tokenize(source)
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if lexErr.Line != 3 {
		t.Fatalf("error on line %d, want 3", lexErr.Line)
	}
	if !strings.Contains(lexErr.Msg, "inconsistent indentation") {
		t.Fatalf("unexpected message %q", lexErr.Msg)
	}
}

func TestLineComments(t *testing.T) {
	source := "x = 1 // trailing\n// whole line\ny = 2\n"
	tokens := mustTokenize(t, source)
	expectTypes(t, tokens, IDENT, ASSIGN, NUMBER, IDENT, ASSIGN, NUMBER, EOF)
}

func TestBlockComments(t *testing.T) {
	tokens := mustTokenize(t, "x = /* a \n multi-line comment */ 5")
	expectTypes(t, tokens, IDENT, ASSIGN, NUMBER, EOF)
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := Tokenize("x = 1\n/* never closed")
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if !strings.Contains(lexErr.Msg, "unterminated block comment") {
		t.Fatalf("unexpected message %q", lexErr.Msg)
	}
}

func TestLoneAmpersand(t *testing.T) {
	_, err := Tokenize("a & b")
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if !strings.Contains(lexErr.Msg, "'&&'") {
		t.Fatalf("expected a hint about '&&', got %q", lexErr.Msg)
	}
}

func TestUnknownCharacter(t *testing.T) {
	_, err := Tokenize("x = 1 @")
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if lexErr.Line != 1 || lexErr.Column != 7 {
		t.Fatalf("error at %d:%d, want 1:7", lexErr.Line, lexErr.Column)
	}
}

func TestDanglingBlocksCloseAtEOF(t *testing.T) {
	tokens := mustTokenize(t, "if (x):\n    y = 1")
	got := types(tokens)
	if got[len(got)-1] != EOF || got[len(got)-2] != DEDENT {
		t.Fatalf("expected DEDENT before EOF, got %v", got)
	}
}

func TestNextAfterEOF(t *testing.T) {
	lx := New("")
	for i := 0; i < 3; i++ {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != EOF {
			t.Fatalf("call %d: got %s want EOF", i, tok.Type)
		}
	}
}
