package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"loa/interpreter-go/pkg/parser"
)

// fixtureCase is one scripted scenario from testdata/*.yaml. A case
// either expects printed output or an error substring, never both.
type fixtureCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func loadFixtures(t *testing.T, path string) []fixtureCase {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixtures %s: %v", path, err)
	}
	var cases []fixtureCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parse fixtures %s: %v", path, err)
	}
	return cases
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixture files found")
	}

	for _, path := range paths {
		for _, tc := range loadFixtures(t, path) {
			name := filepath.Base(path) + "/" + tc.Name
			t.Run(name, func(t *testing.T) {
				var out bytes.Buffer
				interp := New(WithOutput(&out))

				program, err := parser.ParseSource(tc.Source)
				if err == nil {
					_, err = interp.Evaluate(program)
				}

				if tc.Error != "" {
					if err == nil {
						t.Fatalf("expected error containing %q, got none (output %q)", tc.Error, out.String())
					}
					if !strings.Contains(err.Error(), tc.Error) {
						t.Fatalf("error %q does not contain %q", err.Error(), tc.Error)
					}
					return
				}

				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if out.String() != tc.Output {
					t.Fatalf("output %q, want %q", out.String(), tc.Output)
				}
			})
		}
	}
}
