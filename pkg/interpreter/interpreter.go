// Package interpreter walks the Loa AST and evaluates it against a
// chain of lexical environments.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Loa AST nodes.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print statement output, which defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Evaluate executes a program in the global environment and returns the
// value of its last statement.
func (i *Interpreter) Evaluate(program *ast.Program) (runtime.Value, error) {
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range program.Statements {
		val, err := i.EvaluateStatement(stmt)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

// EvaluateStatement executes a single statement in the global
// environment. The REPL feeds statements through here one at a time so
// bindings persist between inputs.
func (i *Interpreter) EvaluateStatement(stmt ast.Statement) (runtime.Value, error) {
	val, err := i.evaluateStatement(stmt, i.global)
	if err != nil {
		return nil, interceptSignal(err)
	}
	return val, nil
}

// interceptSignal converts control-flow signals that escaped to the top
// level into runtime errors. Each signal carries the position of the
// statement that raised it, so the error points at the return or break
// itself even when it sat inside a nested block.
func interceptSignal(err error) error {
	switch sig := err.(type) {
	case returnSignal:
		return badSignal(sig.pos, "'return' outside a function")
	case breakSignal:
		return badSignal(sig.pos, "'break' outside a loop")
	case continueSignal:
		return badSignal(sig.pos, "'continue' outside a loop")
	default:
		return err
	}
}

type breakSignal struct {
	pos ast.Position
}

func (breakSignal) Error() string { return "break" }

type continueSignal struct {
	pos ast.Position
}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	pos   ast.Position
	value runtime.Value
}

func (r returnSignal) Error() string { return fmt.Sprintf("return %v", r.value) }
