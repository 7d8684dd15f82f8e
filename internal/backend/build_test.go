package backend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractNativeRuntime(t *testing.T) {
	tmp := t.TempDir()
	runtimeDir, sources, err := extractNativeRuntime(tmp)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(runtimeDir, "flint_runtime.h")); err != nil {
		t.Errorf("header not extracted: %v", err)
	}
	foundC := false
	for _, src := range sources {
		if !strings.HasSuffix(src, ".c") {
			t.Errorf("non-source in compile list: %s", src)
		}
		if filepath.Base(src) == "flint_runtime.c" {
			foundC = true
		}
	}
	if !foundC {
		t.Errorf("sources = %v, want flint_runtime.c", sources)
	}
}
