// Package parser builds Loa ASTs from the lexer's token stream with a
// single-pass recursive-descent grammar. Parsing halts at the first
// SyntaxError; there is no multi-error recovery.
package parser

import (
	"fmt"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/lexer"
)

// SyntaxError reports a grammar violation at a 1-based source position.
type SyntaxError struct {
	Line     int
	Column   int
	Expected string
	Found    string
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message())
}

// Phase implements diag.Diagnostic.
func (e *SyntaxError) Phase() string { return "syntax" }

// Position implements diag.Diagnostic.
func (e *SyntaxError) Position() (line, column int) { return e.Line, e.Column }

// Message implements diag.Diagnostic.
func (e *SyntaxError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

// Parser consumes a token slice produced by lexer.Tokenize.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse builds the Program for a full token stream (ending in EOF).
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := &Parser{tokens: tokens}
	var statements []ast.Statement
	for !p.check(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	program := ast.NewProgram(statements)
	if len(tokens) > 0 {
		ast.SetPos(program, ast.Position{Line: tokens[0].Line, Column: tokens[0].Column})
	}
	return program, nil
}

// ParseSource tokenizes and parses in one step.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FUN:
		return p.parseFunction()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		p.next()
		p.skipSemicolon()
		return at(ast.NewBreakStatement(), tok), nil
	case lexer.CONTINUE:
		p.next()
		p.skipSemicolon()
		return at(ast.NewContinueStatement(), tok), nil
	case lexer.FOR:
		return nil, p.errorf(tok, "'for' loops are not supported")
	case lexer.IMPORT:
		return nil, p.errorf(tok, "'import' is not supported")
	case lexer.PRINTLN:
		return nil, p.errorf(tok, "'println' is reserved but not implemented; use 'print'")
	case lexer.INPUT:
		return nil, p.errorf(tok, "'input' is reserved but not implemented")
	case lexer.IDENT:
		if p.peekAt(1).Type == lexer.ASSIGN {
			return p.parseAssignment()
		}
		return p.parseExpressionStatement()
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NIL,
		lexer.LPAREN, lexer.MINUS, lexer.BANG:
		return p.parseExpressionStatement()
	default:
		return nil, p.expected("statement", tok)
	}
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	kw := p.next() // print
	if _, err := p.expect(lexer.LPAREN, "'(' after 'print'"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')' after print arguments"); err != nil {
		return nil, err
	}
	p.skipSemicolon()
	return at(ast.NewPrintStatement(args), kw), nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	nameTok := p.next()
	name := at(ast.NewIdentifier(nameTok.Lexeme), nameTok)
	p.next() // '='
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSemicolon()
	return at(ast.NewAssignment(name, value), nameTok), nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSemicolon()
	return expr, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	kw := p.next() // if
	branch, err := p.parseConditionBranch("if")
	if err != nil {
		return nil, err
	}
	branches := []*ast.IfBranch{branch}
	var elseBlock *ast.Block
	for p.check(lexer.ELSE) {
		p.next() // else
		if p.check(lexer.IF) {
			p.next() // if
			branch, err := p.parseConditionBranch("else if")
			if err != nil {
				return nil, err
			}
			branches = append(branches, branch)
			continue
		}
		block, err := p.parseBlock("'else'")
		if err != nil {
			return nil, err
		}
		elseBlock = block
		break
	}
	return at(ast.NewIfStatement(branches, elseBlock), kw), nil
}

// parseConditionBranch parses "( condition ) : block" shared by if,
// else-if, and while headers.
func (p *Parser) parseConditionBranch(keyword string) (*ast.IfBranch, error) {
	if _, err := p.expect(lexer.LPAREN, fmt.Sprintf("'(' after '%s'", keyword)); err != nil {
		return nil, err
	}
	condTok := p.peek()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, fmt.Sprintf("')' after '%s' condition", keyword)); err != nil {
		return nil, err
	}
	block, err := p.parseBlock(fmt.Sprintf("'%s' condition", keyword))
	if err != nil {
		return nil, err
	}
	return at(ast.NewIfBranch(cond, block), condTok), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	kw := p.next() // while
	branch, err := p.parseConditionBranch("while")
	if err != nil {
		return nil, err
	}
	return at(ast.NewWhileStatement(branch.Condition, branch.Body), kw), nil
}

func (p *Parser) parseFunction() (ast.Statement, error) {
	kw := p.next() // fun
	nameTok, err := p.expect(lexer.IDENT, "function name after 'fun'")
	if err != nil {
		return nil, err
	}
	name := at(ast.NewIdentifier(nameTok.Lexeme), nameTok)
	if _, err := p.expect(lexer.LPAREN, fmt.Sprintf("'(' after function name '%s'", nameTok.Lexeme)); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(params))
	for _, param := range params {
		if seen[param.Name] {
			return nil, &SyntaxError{
				Line:   param.Pos().Line,
				Column: param.Pos().Column,
				Msg:    fmt.Sprintf("parameter '%s' is declared more than once", param.Name),
			}
		}
		seen[param.Name] = true
	}
	body, err := p.parseBlock("function parameters")
	if err != nil {
		return nil, err
	}
	return at(ast.NewFunctionDefinition(name, params, body), kw), nil
}

// parseParameters consumes up to and including the closing ')'. Parameters
// are written `name:` with an optional literal default `name: = 10` and are
// separated by ';'.
func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	if p.match(lexer.RPAREN) {
		return params, nil
	}
	for {
		nameTok, err := p.expect(lexer.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON, fmt.Sprintf("':' after parameter name '%s'", nameTok.Lexeme)); err != nil {
			return nil, err
		}
		var def ast.Literal
		if p.match(lexer.ASSIGN) {
			def, err = p.parseLiteral()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, at(ast.NewParameter(nameTok.Lexeme, def), nameTok))

		switch tok := p.peek(); tok.Type {
		case lexer.SEMICOLON:
			p.next()
		case lexer.RPAREN:
			p.next()
			return params, nil
		case lexer.COMMA:
			return nil, p.errorf(tok, "parameters are separated by ';', not ','")
		default:
			return nil, p.expected("';' or ')' after parameter", tok)
		}
	}
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	kw := p.next() // return
	switch p.peek().Type {
	case lexer.SEMICOLON:
		p.next()
		return at(ast.NewReturnStatement(nil), kw), nil
	case lexer.DEDENT, lexer.EOF:
		return at(ast.NewReturnStatement(nil), kw), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSemicolon()
	return at(ast.NewReturnStatement(value), kw), nil
}

// parseBlock consumes ": INDENT statement... DEDENT". context names the
// construct that required the block, for error messages.
func (p *Parser) parseBlock(context string) (*ast.Block, error) {
	colon, err := p.expect(lexer.COLON, fmt.Sprintf("':' after %s", context))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INDENT, fmt.Sprintf("indented block after %s", context)); err != nil {
		return nil, err
	}
	var statements []ast.Statement
	for {
		switch tok := p.peek(); tok.Type {
		case lexer.DEDENT:
			p.next()
			return at(ast.NewBlock(statements), colon), nil
		case lexer.EOF:
			return nil, p.errorf(tok, "unexpected end of file inside block")
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		}
	}
}

// Token cursor helpers.

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t lexer.TokenType) bool {
	if !p.check(t) {
		return false
	}
	p.next()
	return true
}

func (p *Parser) skipSemicolon() {
	p.match(lexer.SEMICOLON)
}

func (p *Parser) expect(t lexer.TokenType, what string) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return lexer.Token{}, p.expected(what, tok)
	}
	return p.next(), nil
}

func (p *Parser) expected(what string, found lexer.Token) error {
	return &SyntaxError{Line: found.Line, Column: found.Column, Expected: what, Found: found.String()}
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf(format, args...)}
}

// at annotates a node with a token's position.
func at[T ast.Node](node T, tok lexer.Token) T {
	ast.SetPos(node, ast.Position{Line: tok.Line, Column: tok.Column})
	return node
}
