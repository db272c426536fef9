package repl

import (
	"bytes"
	"testing"

	"loa/interpreter-go/pkg/driver"
)

func TestWordStart(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"coun", 0},
		{"x + coun", 4},
		{"print(na", 6},
		{"a_1", 0},
		{"f(x, y", 5},
	}
	for _, tc := range cases {
		if got := wordStart(tc.input); got != tc.want {
			t.Fatalf("wordStart(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestCompleteReplacesWordUnderCursor(t *testing.T) {
	output := &bytes.Buffer{}
	session := driver.NewSession(driver.WithOutput(output))
	if err := session.RunSource("seed", "counter = 1\n"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	m := newModel(session, output)
	m.input.SetValue("1 + coun")
	m.input.CursorEnd()
	m.complete()

	if got := m.input.Value(); got != "1 + counter" {
		t.Fatalf("completed to %q, want %q", got, "1 + counter")
	}
}

func TestCompleteOffersKeywords(t *testing.T) {
	output := &bytes.Buffer{}
	m := newModel(driver.NewSession(driver.WithOutput(output)), output)
	m.input.SetValue("whi")
	m.input.CursorEnd()
	m.complete()

	if got := m.input.Value(); got != "while" {
		t.Fatalf("completed to %q, want %q", got, "while")
	}
}

func TestEvaluateCollectsOutputAndResult(t *testing.T) {
	output := &bytes.Buffer{}
	session := driver.NewSession(driver.WithOutput(output))
	m := newModel(session, output)

	cmd := m.evaluate("x = 2\nprint(x)\nx * 3\n")
	if cmd == nil {
		t.Fatalf("expected a print command")
	}
	if output.Len() != 0 {
		t.Fatalf("buffer should be drained, still holds %q", output.String())
	}
}
