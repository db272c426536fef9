// Package repl implements the interactive Loa session. One driver
// session lives for the whole program, so bindings persist between
// inputs, and block statements are collected line by line after a ':'
// header until a blank line submits them.
package repl

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"loa/interpreter-go/pkg/driver"
	"loa/interpreter-go/pkg/interpreter"
	"loa/interpreter-go/pkg/runtime"
)

const (
	evalPrompt = "Loa > "
	contPrompt = "  ... "
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// keywords are offered alongside the global environment bindings when
// the user presses Tab.
var keywords = []string{
	"fun", "if", "else", "while", "return", "break", "continue",
	"print", "true", "false", "nil",
}

type model struct {
	input      textinput.Model
	session    *driver.Session
	output     *bytes.Buffer
	pending    []string
	history    []string
	historyIdx int
	width      int
	quitting   bool
}

// Run starts the REPL and blocks until the user exits.
func Run(ctx context.Context) error {
	output := &bytes.Buffer{}
	session := driver.NewSession(driver.WithOutput(output))

	m := newModel(session, output)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

const defaultWidth = 80

func newModel(session *driver.Session, output *bytes.Buffer) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		input:   ti,
		session: session,
		output:  output,
		width:   defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submitLine()
	case tea.KeyTab:
		m.complete()
		return m, nil
	case tea.KeyUp:
		m.recallHistory(-1)
		return m, nil
	case tea.KeyDown:
		m.recallHistory(+1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submitLine() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	trimmed := strings.TrimSpace(line)

	if len(m.pending) == 0 {
		switch trimmed {
		case "":
			return m, nil
		case "quit", "exit":
			m.quitting = true
			return m, tea.Quit
		}
	}

	m.history = append(m.history, line)
	m.historyIdx = len(m.history)
	echo := m.echoPrompt() + inputStyle.Render(line)
	m.input.SetValue("")

	if len(m.pending) > 0 {
		if trimmed == "" {
			source := strings.Join(m.pending, "\n") + "\n"
			m.pending = nil
			m.input.Prompt = promptStyle.Render(evalPrompt)
			return m, tea.Sequence(tea.Println(echo), m.evaluate(source))
		}
		m.pending = append(m.pending, line)
		return m, tea.Println(echo)
	}

	if strings.HasSuffix(trimmed, ":") {
		m.pending = []string{line}
		m.input.Prompt = promptStyle.Render(contPrompt)
		return m, tea.Println(echo)
	}

	return m, tea.Sequence(tea.Println(echo), m.evaluate(line+"\n"))
}

func (m *model) echoPrompt() string {
	if len(m.pending) > 0 {
		return promptStyle.Render(contPrompt)
	}
	return promptStyle.Render(evalPrompt)
}

// evaluate runs one complete input against the shared session and
// returns a command printing everything the program wrote, plus the
// value of a bare expression.
func (m *model) evaluate(source string) tea.Cmd {
	val, err := m.session.EvalSource("repl", source)

	var lines []string
	printed := strings.TrimRight(m.output.String(), "\n")
	m.output.Reset()
	if printed != "" {
		lines = append(lines, printed)
	}

	switch {
	case err != nil:
		lines = append(lines, errorStyle.Render(err.Error()))
	case val != nil && val.Kind() != runtime.KindNil:
		lines = append(lines, resultStyle.Render(interpreter.FormatValue(val)))
	}

	if len(lines) == 0 {
		return nil
	}
	return tea.Println(strings.Join(lines, "\n"))
}

// complete fuzzy-matches the word under the cursor against keywords and
// the global environment, replacing it with the best candidate.
func (m *model) complete() {
	value := m.input.Value()
	start := wordStart(value)
	word := value[start:]
	if word == "" {
		return
	}

	candidates := append([]string{}, keywords...)
	candidates = append(candidates, m.session.Interpreter().GlobalEnvironment().AllKeys()...)

	matches := fuzzy.Find(word, candidates)
	if len(matches) == 0 {
		return
	}
	m.input.SetValue(value[:start] + matches[0].Str)
	m.input.CursorEnd()
}

func wordStart(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return i + 1
		}
	}
	return 0
}

func (m *model) recallHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.historyIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.history) {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyIdx = idx
	m.input.SetValue(m.history[idx])
	m.input.CursorEnd()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if strings.TrimSpace(m.input.Value()) == "" {
		hint := "Type a statement, Tab to complete, Ctrl+D to exit"
		if len(m.pending) > 0 {
			hint = "Block open, blank line to run it"
		}
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")
	}
	return b.String()
}
