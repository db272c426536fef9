// Package driver exposes the host-facing API for running Loa source:
// a persistent Session wrapping one interpreter, plus the loa.yml
// project manifest.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"loa/interpreter-go/pkg/diag"
	"loa/interpreter-go/pkg/interpreter"
	"loa/interpreter-go/pkg/parser"
	"loa/interpreter-go/pkg/runtime"
)

// Session runs Loa programs against one persistent interpreter, so
// successive RunSource calls share global bindings. That is what makes
// the REPL stateful.
type Session struct {
	interp *interpreter.Interpreter
	log    *slog.Logger
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	output io.Writer
	log    *slog.Logger
}

// WithOutput redirects print output of the session's interpreter.
func WithOutput(w io.Writer) Option {
	return func(c *sessionConfig) { c.output = w }
}

// WithLogger attaches a structured logger for debug tracing.
func WithLogger(log *slog.Logger) Option {
	return func(c *sessionConfig) { c.log = log }
}

// NewSession creates a session with a fresh global environment.
func NewSession(opts ...Option) *Session {
	cfg := sessionConfig{output: os.Stdout, log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		interp: interpreter.New(interpreter.WithOutput(cfg.output)),
		log:    cfg.log,
	}
}

// Interpreter exposes the underlying interpreter, which the REPL uses
// for completion over the global environment.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// EvalSource lexes, parses and evaluates source, returning the value of
// the last statement. Positioned failures come back as *Error with a
// rendered source snippet.
func (s *Session) EvalSource(name, source string) (runtime.Value, error) {
	s.log.Debug("evaluating source", "script", name, "bytes", len(source))
	program, err := parser.ParseSource(source)
	if err != nil {
		return nil, wrapDiagnostic(name, source, err)
	}
	val, err := s.interp.Evaluate(program)
	if err != nil {
		return nil, wrapDiagnostic(name, source, err)
	}
	return val, nil
}

// RunSource is EvalSource with the result discarded.
func (s *Session) RunSource(name, source string) error {
	_, err := s.EvalSource(name, source)
	return err
}

// RunFile reads and runs a script from disk.
func (s *Session) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return s.RunSource(path, string(data))
}

// Error carries a positioned diagnostic together with the script name
// and a caret snippet of the offending line.
type Error struct {
	Script  string
	Diag    diag.Diagnostic
	Snippet string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Script, e.Snippet)
}

func (e *Error) Unwrap() error { return e.Diag }

func wrapDiagnostic(name, source string, err error) error {
	d, ok := err.(diag.Diagnostic)
	if !ok {
		return err
	}
	return &Error{
		Script:  name,
		Diag:    d,
		Snippet: diag.Render(d, source),
	}
}
