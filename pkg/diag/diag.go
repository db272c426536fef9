// Package diag defines the shared surface of positioned interpreter
// diagnostics and renders them with source snippets.
package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is implemented by every positioned error the interpreter
// produces: lex errors, syntax errors and runtime errors.
type Diagnostic interface {
	error
	// Phase names the stage that produced the error: "lex", "syntax"
	// or "runtime".
	Phase() string
	// Position is the 1-based source location, column 0 when unknown.
	Position() (line, column int)
	// Message is the human-readable description without the position.
	Message() string
}

// Render formats a diagnostic with a snippet of the offending source
// line and a caret under the reported column:
//
//	syntax error at 3:9: expected ')' after condition, found ':'
//	  3 | while (n < 10:
//	    |         ^
//
// Source may be empty, in which case only the header line is returned.
func Render(d Diagnostic, source string) string {
	ln, col := d.Position()
	var b strings.Builder
	fmt.Fprintf(&b, "%s error at %d:%d: %s", d.Phase(), ln, col, d.Message())

	line, ok := sourceLine(source, ln)
	if !ok {
		return b.String()
	}
	gutter := fmt.Sprintf("%3d", ln)
	fmt.Fprintf(&b, "\n%s | %s", gutter, line)
	if col > 0 && col <= len([]rune(line))+1 {
		fmt.Fprintf(&b, "\n%s | %s^", strings.Repeat(" ", len(gutter)), caretPad(line, col))
	}
	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	if source == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// caretPad builds the padding before the caret, preserving tabs so the
// caret lines up with a tab-indented source line.
func caretPad(line string, column int) string {
	var b strings.Builder
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
