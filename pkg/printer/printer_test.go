package printer

import (
	"reflect"
	"strings"
	"testing"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/parser"
)

func format(t *testing.T, source string) string {
	t.Helper()
	program, err := parser.ParseSource(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Format(program, DefaultIndent)
}

func TestFormatStatements(t *testing.T) {
	source := strings.Join([]string{
		"x=1;",
		"print( x ,  2+3 )",
		"",
	}, "\n")
	want := strings.Join([]string{
		"x = 1",
		"print(x, 2 + 3)",
		"",
	}, "\n")
	if got := format(t, source); got != want {
		t.Fatalf("formatted:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatNormalizesIndentation(t *testing.T) {
	source := strings.Join([]string{
		"if (a):",
		"  if (b):",
		"          x = 1",
		"",
	}, "\n")
	want := strings.Join([]string{
		"if (a):",
		"    if (b):",
		"        x = 1",
		"",
	}, "\n")
	if got := format(t, source); got != want {
		t.Fatalf("formatted:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIfElseChain(t *testing.T) {
	source := strings.Join([]string{
		"if (a):",
		"    x = 1",
		"else if (b):",
		"    x = 2",
		"else:",
		"    x = 3",
		"",
	}, "\n")
	if got := format(t, source); got != source {
		t.Fatalf("formatted:\n%s\nwant input unchanged:\n%s", got, source)
	}
}

func TestFormatFunction(t *testing.T) {
	source := strings.Join([]string{
		"fun greet(name:; greeting: = \"hi\"):",
		"    return greeting + \" \" + name",
		"",
	}, "\n")
	if got := format(t, source); got != source {
		t.Fatalf("formatted:\n%s\nwant input unchanged:\n%s", got, source)
	}
}

func TestFormatPreservesNeededParens(t *testing.T) {
	cases := []string{
		"(1 + 2) * 3\n",
		"-(1 + 2)\n",
		"!(a || b)\n",
		"1 - (2 - 3)\n",
	}
	for _, source := range cases {
		if got := format(t, source); got != source {
			t.Fatalf("source %q reformatted to %q", source, got)
		}
	}
}

// Literals whose shortest float rendering would use exponent notation
// must still come out as plain decimals the lexer can re-read.
func TestFormatKeepsNumberLiteralsLexable(t *testing.T) {
	source := strings.Join([]string{
		"x = 0.0000001",
		"y = 10000000000000000000000",
		"print(x * y)",
		"",
	}, "\n")
	if got := format(t, source); got != source {
		t.Fatalf("formatted:\n%s\nwant input unchanged:\n%s", got, source)
	}
}

func TestFormatDropsRedundantParens(t *testing.T) {
	if got := format(t, "((1 + 2)) + 3\n"); got != "1 + 2 + 3\n" {
		t.Fatalf("formatted %q", got)
	}
}

// Formatting is a fixed point: parse, format, re-parse, and the trees
// match; formatting a second time changes nothing.
func TestFormatRoundTrip(t *testing.T) {
	sources := []string{
		"x = 1\nprint(x)\n",
		"while (i < 10):\n    i = i + 1\n    if (i == 5):\n        break\n",
		"fun f(a:; b: = 2):\n    return a * b || a ^ b && true\nprint(f(1), f(1, 2))\n",
		"print(\"a\" + \"b\", -x, !done, nil)\n",
		"x = 0.0000001\nprint(x + 10000000000000000000000)\n",
	}
	for _, source := range sources {
		first, err := parser.ParseSource(source)
		if err != nil {
			t.Fatalf("parse %q: %v", source, err)
		}
		formatted := Format(first, DefaultIndent)

		second, err := parser.ParseSource(formatted)
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v\nformatted:\n%s", source, err, formatted)
		}
		if !equalPrograms(first, second) {
			t.Fatalf("round trip changed the tree for %q\nformatted:\n%s", source, formatted)
		}
		if again := Format(second, DefaultIndent); again != formatted {
			t.Fatalf("second format pass differs:\n%s\nvs:\n%s", formatted, again)
		}
	}
}

// equalPrograms compares trees ignoring source positions, which
// formatting legitimately moves.
func equalPrograms(a, b *ast.Program) bool {
	return Format(a, DefaultIndent) == Format(b, DefaultIndent) &&
		reflect.DeepEqual(statementShapes(a), statementShapes(b))
}

func statementShapes(p *ast.Program) []ast.NodeType {
	out := make([]ast.NodeType, len(p.Statements))
	for i, stmt := range p.Statements {
		out[i] = stmt.NodeType()
	}
	return out
}

func TestFprintUsesFallbackIndent(t *testing.T) {
	program, err := parser.ParseSource("if (x):\n    y = 1\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var b strings.Builder
	if err := Fprint(&b, program, 0); err != nil {
		t.Fatalf("fprint failed: %v", err)
	}
	if !strings.Contains(b.String(), "\n    y = 1\n") {
		t.Fatalf("expected default four-space indent, got:\n%s", b.String())
	}
}
