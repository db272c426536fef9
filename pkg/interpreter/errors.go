package interpreter

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/runtime"
)

// RuntimeError codes. Tests and callers match on these instead of the
// message text.
const (
	ErrUndefinedVariable = "undefined-variable"
	ErrTypeMismatch      = "type-mismatch"
	ErrNotCallable       = "not-callable"
	ErrArityMismatch     = "arity-mismatch"
	ErrDivisionByZero    = "division-by-zero"
	ErrBadSignal         = "bad-signal"
)

// RuntimeError is a positioned evaluation failure.
type RuntimeError struct {
	Code   string
	Line   int
	Column int
	Msg    string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Phase implements diag.Diagnostic.
func (e *RuntimeError) Phase() string { return "runtime" }

// Position implements diag.Diagnostic.
func (e *RuntimeError) Position() (line, column int) { return e.Line, e.Column }

// Message implements diag.Diagnostic.
func (e *RuntimeError) Message() string { return e.Msg }

func runtimeErrorf(code string, node ast.Node, format string, args ...any) *RuntimeError {
	pos := node.Pos()
	return &RuntimeError{
		Code:   code,
		Line:   pos.Line,
		Column: pos.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func badSignal(pos ast.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:   ErrBadSignal,
		Line:   pos.Line,
		Column: pos.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// undefinedVariable builds an undefined-variable error with a fuzzy
// "did you mean" hint when a visible binding is close to the name.
func undefinedVariable(id *ast.Identifier, env *runtime.Environment) *RuntimeError {
	msg := fmt.Sprintf("undefined variable '%s'", id.Name)
	if hint := closestName(id.Name, env.AllKeys()); hint != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", hint)
	}
	return runtimeErrorf(ErrUndefinedVariable, id, "%s", msg)
}

func closestName(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
