// Package printer renders a Loa AST back to canonical source. Formatting
// the output of the printer is the identity, and re-parsing it yields an
// equivalent tree, so the formatter can be applied repeatedly.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"loa/interpreter-go/pkg/ast"
)

// DefaultIndent is the number of spaces per block level.
const DefaultIndent = 4

// Format renders the program with the given indent width (spaces per
// nesting level). Non-positive indent falls back to DefaultIndent.
func Format(program *ast.Program, indent int) string {
	var b strings.Builder
	_ = Fprint(&b, program, indent)
	return b.String()
}

// Fprint writes the canonical rendering of program to w.
func Fprint(w io.Writer, program *ast.Program, indent int) error {
	if indent <= 0 {
		indent = DefaultIndent
	}
	p := &printer{w: w, unit: strings.Repeat(" ", indent)}
	for _, stmt := range program.Statements {
		p.statement(stmt, 0)
	}
	return p.err
}

type printer struct {
	w    io.Writer
	unit string
	err  error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(depth int, format string, args ...any) {
	p.printf("%s", strings.Repeat(p.unit, depth))
	p.printf(format, args...)
	p.printf("\n")
}

func (p *printer) statement(stmt ast.Statement, depth int) {
	switch n := stmt.(type) {
	case *ast.PrintStatement:
		args := make([]string, len(n.Arguments))
		for idx, arg := range n.Arguments {
			args[idx] = expression(arg)
		}
		p.line(depth, "print(%s)", strings.Join(args, ", "))
	case *ast.Assignment:
		p.line(depth, "%s = %s", n.Name.Name, expression(n.Value))
	case *ast.IfStatement:
		for idx, branch := range n.Branches {
			keyword := "if"
			if idx > 0 {
				keyword = "else if"
			}
			p.line(depth, "%s (%s):", keyword, expression(branch.Condition))
			p.block(branch.Body, depth+1)
		}
		if n.ElseBlock != nil {
			p.line(depth, "else:")
			p.block(n.ElseBlock, depth+1)
		}
	case *ast.WhileStatement:
		p.line(depth, "while (%s):", expression(n.Condition))
		p.block(n.Body, depth+1)
	case *ast.FunctionDefinition:
		params := make([]string, len(n.Params))
		for idx, param := range n.Params {
			if param.Default != nil {
				params[idx] = fmt.Sprintf("%s: = %s", param.Name, expression(param.Default))
			} else {
				params[idx] = param.Name + ":"
			}
		}
		p.line(depth, "fun %s(%s):", n.Name.Name, strings.Join(params, "; "))
		p.block(n.Body, depth+1)
	case *ast.ReturnStatement:
		if n.Value != nil {
			p.line(depth, "return %s", expression(n.Value))
		} else {
			p.line(depth, "return")
		}
	case *ast.BreakStatement:
		p.line(depth, "break")
	case *ast.ContinueStatement:
		p.line(depth, "continue")
	case ast.Expression:
		p.line(depth, "%s", expression(n))
	}
}

// block prints an empty body as a bare expression statement would not
// parse back, but the parser cannot produce an empty block either, so
// bodies are never empty here.
func (p *printer) block(block *ast.Block, depth int) {
	for _, stmt := range block.Statements {
		p.statement(stmt, depth)
	}
}

// Binary precedence tiers, loosest first. Unary and primary expressions
// bind tighter than any entry here.
var precedence = map[string]int{
	"||": 1,
	"^":  2,
	"&&": 3,
	"==": 4, "!=": 4,
	"<": 5, "<=": 5, ">": 5, ">=": 5,
	"+": 6, "-": 6,
	"*": 7, "/": 7,
}

const unaryPrecedence = 8

func expression(expr ast.Expression) string {
	return render(expr, 0)
}

// render emits expr, parenthesizing when its precedence is below min.
func render(expr ast.Expression, min int) string {
	switch n := expr.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.NumberLiteral:
		return formatNumber(n.Value)
	case *ast.StringLiteral:
		return "\"" + n.Value + "\""
	case *ast.BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *ast.NilLiteral:
		return "nil"
	case *ast.UnaryExpression:
		s := n.Operator + render(n.Operand, unaryPrecedence)
		if min > unaryPrecedence {
			return "(" + s + ")"
		}
		return s
	case *ast.BinaryExpression:
		prec := precedence[n.Operator]
		// Left-associative: the right child needs one tier more.
		s := render(n.Left, prec) + " " + n.Operator + " " + render(n.Right, prec+1)
		if prec < min {
			return "(" + s + ")"
		}
		return s
	case *ast.CallExpression:
		args := make([]string, len(n.Arguments))
		for idx, arg := range n.Arguments {
			args[idx] = render(arg, 0)
		}
		return n.Callee.Name + "(" + strings.Join(args, ", ") + ")"
	default:
		return fmt.Sprintf("<%s>", expr.NodeType())
	}
}

// formatNumber renders a number literal in a form the lexer accepts.
// The shortest 'g' rendering switches to exponent notation outside
// roughly [1e-4, 1e21), and exponents are not part of the number
// grammar, so those values fall back to plain decimal digits.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s
}
