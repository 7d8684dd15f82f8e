package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"flint/internal/diag"
	"flint/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[build]
main = "src/main.fl"
`)
	m, err := project.Load(path, project.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
	if got := m.OutputName(); got != "demo" {
		t.Errorf("output = %q, want package name fallback", got)
	}
}

func TestLoadOutputOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[build]
main = "main.fl"
output = "demo-bin"
`)
	m, err := project.Load(path, project.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := m.OutputName(); got != "demo-bin" {
		t.Errorf("output = %q", got)
	}
}

func TestLoadMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[build]
main = "main.fl"
`)
	bag := diag.NewBag(8)
	if _, err := project.Load(path, project.Options{Reporter: diag.BagReporter{Bag: bag}}); err == nil {
		t.Fatal("expected an error")
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjInvalidManifest {
		t.Fatalf("diagnostics = %v, want one PRJ7001", items)
	}
}

func TestLoadMissingMain(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
`)
	bag := diag.NewBag(8)
	if _, err := project.Load(path, project.Options{Reporter: diag.BagReporter{Bag: bag}}); err == nil {
		t.Fatal("expected an error")
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjMissingMain {
		t.Fatalf("diagnostics = %v, want one PRJ7002", items)
	}
}

func TestMainPathChecksFile(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[build]
main = "main.fl"
`)
	m, err := project.Load(path, project.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := m.MainPath(project.Options{}); err == nil {
		t.Fatal("expected an error for a missing main file")
	}

	if err := os.WriteFile(filepath.Join(dir, "main.fl"), []byte("fn main() {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	mainPath, err := m.MainPath(project.Options{})
	if err != nil {
		t.Fatalf("main path: %v", err)
	}
	if mainPath != filepath.Join(dir, "main.fl") {
		t.Errorf("main path = %q", mainPath)
	}
}

func TestFindWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[build]\nmain = \"main.fl\"\n")
	nested := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}
	path, ok, err := project.Find(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(dir, project.ManifestName) {
		t.Errorf("path = %q", path)
	}
}
