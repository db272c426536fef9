package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"loa/interpreter-go/pkg/cli/repl"
	"loa/interpreter-go/pkg/driver"
	"loa/interpreter-go/pkg/parser"
	"loa/interpreter-go/pkg/printer"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	snippetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// RunCmd runs a script to completion. With no argument it resolves the
// entry script from the nearest loa.yml manifest.
type RunCmd struct {
	Script string `arg:"" optional:"" help:"Loa script to run" type:"path"`
}

func (c *RunCmd) Run(ctx context.Context) error {
	script := c.Script
	if script == "" {
		manifest, err := driver.FindManifest(".")
		if err != nil {
			if errors.Is(err, driver.ErrNoManifest) {
				return fmt.Errorf("no script given and no %s found", driver.ManifestName)
			}
			return err
		}
		slog.Debug("resolved manifest", "name", manifest.Name, "main", manifest.Main)
		script = manifest.MainPath()
	}

	session := driver.NewSession(driver.WithOutput(os.Stdout))
	if err := session.RunFile(script); err != nil {
		printDiagnostic(os.Stderr, err)
		return err
	}
	return nil
}

// printDiagnostic renders a session error with its caret snippet, the
// header line in red and the snippet dimmed.
func printDiagnostic(w io.Writer, err error) {
	var derr *driver.Error
	if !errors.As(err, &derr) {
		return
	}
	header, snippet, found := cutLine(derr.Snippet)
	fmt.Fprintln(w, errorStyle.Render(derr.Script+": "+header))
	if found {
		fmt.Fprintln(w, snippetStyle.Render(snippet))
	}
}

func cutLine(s string) (first, rest string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// ReplCmd starts the interactive session.
type ReplCmd struct{}

func (c *ReplCmd) Run(ctx context.Context) error {
	return repl.Run(ctx)
}

// FmtCmd reads Loa source, parses it, and prints the canonical
// formatting.
type FmtCmd struct {
	Indent int    `default:"4" help:"Indent width for formatted output" short:"i"`
	Write  bool   `            help:"Rewrite the file in place"         short:"w"`
	Source string `arg:"" default:"-" help:"Source file or '-' for stdin"`
}

func (c *FmtCmd) Run(ctx context.Context) error {
	var data []byte
	var err error
	if c.Source == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.Source)
	}
	if err != nil {
		return err
	}

	program, err := parser.ParseSource(string(data))
	if err != nil {
		return err
	}
	formatted := printer.Format(program, c.Indent)

	if c.Write && c.Source != "-" {
		return os.WriteFile(c.Source, []byte(formatted), 0o644)
	}
	_, err = io.WriteString(os.Stdout, formatted)
	return err
}

// VersionCmd prints the interpreter version.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(versionStyle.Render(Name) + " " + Version)
	return nil
}
