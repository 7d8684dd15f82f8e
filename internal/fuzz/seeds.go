package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

// addTestdataSeeds walks the repository testdata tree and feeds every .fl
// sample to the fuzzer.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".fl" {
			return nil
		}
		// #nosec G304 -- path comes from the repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addLanguageSeeds covers each construct at least once so the fuzzer
// starts from every corner of the grammar.
func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"fn main() {}",
		"fn main() -> int { return 0; }",
		"extern fn put_line(s: string);",
		"fn f() { var x: int = 1; let y = x + 2; x = y * 3; }",
		"fn f(a: float, b: float) -> float { return a / b - 0.5e1; }",
		"fn f() { if true { return; } else if false { return; } else { return; } }",
		"fn f() { while 1 < 2 { break; continue; } }",
		"fn f() -> bool { return !(true && false) || 1 != 2; }",
		"fn f() -> string { return \"line\\n\\ttab \\\"quoted\\\"\"; }",
		"fn f() { print(input() % 7); } // trailing comment",
		"fn f() { { { } } }",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
