package buildpipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"flint/internal/buildpipeline"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.fl")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileProducesValidModule(t *testing.T) {
	path := writeSource(t, "fn main() { print(42); }\n")
	res, err := buildpipeline.Compile(context.Background(), &buildpipeline.CompileRequest{InputPath: path})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.Unit == nil || res.Unit.Module == nil {
		t.Fatal("missing compiled module")
	}
	if !res.Timings.Has(buildpipeline.StageCompile) {
		t.Error("compile stage not timed")
	}
}

func TestCompileReportsSourceErrors(t *testing.T) {
	path := writeSource(t, "fn main() { undefined_name(); }\n")
	res, err := buildpipeline.Compile(context.Background(), &buildpipeline.CompileRequest{InputPath: path})
	if err == nil {
		t.Fatal("expected an error for a failing unit")
	}
	if res.Unit == nil || !res.Unit.Bag.HasErrors() {
		t.Fatal("diagnostics must be kept for rendering")
	}
}

func TestCompileRejectsEmptyRequest(t *testing.T) {
	if _, err := buildpipeline.Compile(context.Background(), &buildpipeline.CompileRequest{}); err == nil {
		t.Fatal("expected an error for a missing input path")
	}
}
