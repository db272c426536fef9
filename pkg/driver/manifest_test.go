package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "name: demo\nversion: 1.2.3\nmain: scripts/main.loa\n")

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if manifest.Name != "demo" || manifest.Version != "1.2.3" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	want := filepath.Join(dir, "scripts", "main.loa")
	if got := manifest.MainPath(); got != want {
		t.Fatalf("main path %q, want %q", got, want)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "version: 0.1.0\nmain: run.txt\n")

	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	msg := verr.Error()
	if !strings.Contains(msg, "name must be provided") {
		t.Fatalf("missing name issue in %q", msg)
	}
	if !strings.Contains(msg, ".loa file") {
		t.Fatalf("missing main issue in %q", msg)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "name: demo\nmain: main.loa\nextra: nope\n")

	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected unknown-field error")
	}
}

func TestFindManifestWalksParents(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "name: demo\nmain: main.loa\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	manifest, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if manifest.Name != "demo" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
}

func TestFindManifestMissing(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}
