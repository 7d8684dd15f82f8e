package fuzztests

import (
	"testing"
	"time"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/source"
	"flint/internal/testkit"
)

// parseTimeout bounds a single parse; exceeding it indicates a loop in
// error recovery.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.fl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		builder := ast.NewBuilder(ast.Hints{})
		result := parser.ParseFile(fs, lx, builder, source.NewInterner(), parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		})

		if !bag.HasErrors() {
			if err := testkit.CheckSpanInvariants(builder, result.File, file); err != nil {
				t.Fatalf("span invariants violated: %v\ninput: %q", err, input)
			}
		}
	})
}

// FuzzParserNoHang detects inputs that keep the parser busy forever,
// usually a recovery loop that fails to consume a token.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("fn test() { let x: int = 1\nlet y: int = 2; }"))
	f.Add([]byte("fn test() { x + y\nlet z: int = 3; }"))
	f.Add([]byte("{ let x = 1 }"))
	f.Add([]byte("fn f() { while { } }"))
	f.Add([]byte("fn f(a: , b: int) {}"))
	f.Add([]byte("fn f() { if x = { } }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.fl", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			reporter := diag.BagReporter{Bag: bag}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})

			builder := ast.NewBuilder(ast.Hints{})
			_ = parser.ParseFile(fs, lx, builder, source.NewInterner(), parser.Options{
				Reporter:  reporter,
				MaxErrors: 128,
			})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang: no result after %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
