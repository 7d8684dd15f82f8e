package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flint/internal/diag"
	"flint/internal/driver"
	"flint/internal/token"
)

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileSourceProducesModule(t *testing.T) {
	res := driver.CompileSource("main.fl", []byte(`
fn main() {
	var x = 1;
	print(x);
}
`), driver.Config{})
	if res.Failed() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if res.Module == nil || len(res.Module.Funcs) != 1 {
		t.Fatalf("module = %+v, want one function", res.Module)
	}
}

func TestCompileStopsAfterParseErrors(t *testing.T) {
	res := driver.CompileSource("main.fl", []byte("fn main( {"), driver.Config{})
	if !res.Failed() {
		t.Fatal("expected errors")
	}
	if res.Symbols != nil || res.Module != nil {
		t.Error("later stages must not run after parse errors")
	}
}

func TestCompileStopsAfterCheckErrors(t *testing.T) {
	res := driver.CompileSource("main.fl", []byte(`
fn main() {
	var x: int = true;
}
`), driver.Config{})
	if !res.Failed() {
		t.Fatal("expected errors")
	}
	if res.Symbols == nil {
		t.Error("resolution ran and should be kept")
	}
	if res.Module != nil {
		t.Error("lowering must not run after check errors")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SemaTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a type mismatch", res.Bag.Items())
	}
}

func TestTokenizeReadsToEOF(t *testing.T) {
	path := writeSource(t, "main.fl", "fn main() {}\n")
	res, err := driver.Tokenize(driver.Config{InputPath: path})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(res.Tokens) == 0 || res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("tokens = %v, want trailing EOF", res.Tokens)
	}
	if res.Bag.HasErrors() {
		t.Errorf("unexpected errors: %v", res.Bag.Items())
	}
}

func TestCompileUnitsKeepsOrder(t *testing.T) {
	good := writeSource(t, "good.fl", "fn main() { print(1); }\n")
	bad := writeSource(t, "bad.fl", "fn main() { undefined_name(); }\n")

	results, err := driver.CompileUnits(context.Background(), []string{good, bad}, driver.Config{})
	if err != nil {
		t.Fatalf("compile units: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Failed() {
		t.Errorf("good unit failed: %v", results[0].Bag.Items())
	}
	if !results[1].Failed() {
		t.Error("bad unit must carry errors")
	}
}

func TestCompileTimingsDiagnostic(t *testing.T) {
	res := driver.CompileSource("main.fl", []byte("fn main() { print(1); }\n"), driver.Config{Timings: true})
	if res.Failed() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	var timing *diag.Diagnostic
	for i, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			timing = &res.Bag.Items()[i]
		}
	}
	if timing == nil {
		t.Fatalf("diagnostics = %v, want a timings entry", res.Bag.Items())
	}
	if timing.Severity != diag.SevInfo {
		t.Errorf("severity = %v, want info", timing.Severity)
	}
	if len(timing.Notes) != 1 || !strings.Contains(timing.Notes[0].Msg, `"phases"`) {
		t.Errorf("notes = %v, want one JSON payload", timing.Notes)
	}
}

func TestCompileUnitMissingFile(t *testing.T) {
	if _, err := driver.CompileUnit(driver.Config{InputPath: "no/such/file.fl"}); err == nil {
		t.Fatal("expected an I/O error")
	}
}
