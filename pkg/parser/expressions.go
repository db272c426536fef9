package parser

import (
	"fmt"
	"strconv"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/lexer"
)

// Expression grammar, one function per precedence tier (lowest first):
//
//	or:             xor  ( "||" xor )*
//	xor:            and  ( "^"  and )*
//	and:            eq   ( "&&" eq )*
//	eq:             cmp  ( ("==" | "!=") cmp )*
//	cmp:            add  ( ("<" | "<=" | ">" | ">=") add )*
//	add:            mul  ( ("+" | "-") mul )*
//	mul:            unary ( ("*" | "/") unary )*
//	unary:          ("!" | "-") unary | primary
//	primary:        literal | identifier | call | "(" expression ")"
//
// All binary operators are left-associative.

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseBinaryTier(operand func() (ast.Expression, error), operators ...lexer.TokenType) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		matched := false
		for _, op := range operators {
			if tok.Type == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = at(ast.NewBinaryExpression(tok.Lexeme, left, right), tok)
	}
}

func (p *Parser) parseOr() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseXor, lexer.OR)
}

func (p *Parser) parseXor() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseAnd, lexer.XOR)
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseEquality, lexer.AND)
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseComparison, lexer.EQ, lexer.NOT_EQ)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseAdditive, lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseMultiplicative, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryTier(p.parseUnary, lexer.STAR, lexer.SLASH)
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	if tok.Type == lexer.BANG || tok.Type == lexer.MINUS {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return at(ast.NewUnaryExpression(tok.Lexeme, operand), tok), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NIL:
		return p.parseLiteral()
	case lexer.IDENT:
		p.next()
		if p.check(lexer.LPAREN) {
			return p.parseCall(tok)
		}
		return at(ast.NewIdentifier(tok.Lexeme), tok), nil
	case lexer.LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.expected("expression", tok)
	}
}

func (p *Parser) parseLiteral() (ast.Literal, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.NUMBER:
		p.next()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorf(tok, "malformed number literal %q", tok.Lexeme)
		}
		return at(ast.NewNumberLiteral(value), tok), nil
	case lexer.STRING:
		p.next()
		return at(ast.NewStringLiteral(tok.Lexeme), tok), nil
	case lexer.TRUE:
		p.next()
		return at(ast.NewBooleanLiteral(true), tok), nil
	case lexer.FALSE:
		p.next()
		return at(ast.NewBooleanLiteral(false), tok), nil
	case lexer.NIL:
		p.next()
		return at(ast.NewNilLiteral(), tok), nil
	default:
		return nil, p.expected("literal", tok)
	}
}

// parseCall parses the argument list for a callee identifier whose token has
// already been consumed.
func (p *Parser) parseCall(nameTok lexer.Token) (ast.Expression, error) {
	callee := at(ast.NewIdentifier(nameTok.Lexeme), nameTok)
	p.next() // '('
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
	if _, err := p.expect(lexer.RPAREN, fmt.Sprintf("')' after arguments to '%s'", nameTok.Lexeme)); err != nil {
		return nil, err
	}
	return at(ast.NewCallExpression(callee, args), nameTok), nil
}
