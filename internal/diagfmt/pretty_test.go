package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/diagfmt"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/token"
	"flint/internal/types"
)

type analyzed struct {
	fs      *source.FileSet
	builder *ast.Builder
	fileID  ast.FileID
	strs    *source.Interner
	bag     *diag.Bag
}

func analyze(t *testing.T, src string) analyzed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.fl", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	strs := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	pr := parser.ParseFile(fs, lx, builder, strs, parser.Options{Reporter: reporter})
	symbols.ResolveFile(builder, pr.File, strs, symbols.ResolveOptions{
		Reporter: reporter,
		Types:    types.NewInterner(),
	})
	return analyzed{fs: fs, builder: builder, fileID: pr.File, strs: strs, bag: bag}
}

func TestPrettyDuplicateDeclaration(t *testing.T) {
	a := analyze(t, "fn main() {}\nfn main() {}\n")
	if !a.bag.HasErrors() {
		t.Fatal("expected a duplicate declaration error")
	}
	a.bag.Sort()

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, a.bag, a.fs, diagfmt.PrettyOpts{ShowNotes: true})

	g := goldie.New(t)
	g.Assert(t, "pretty_duplicate", buf.Bytes())
}

func TestPrettyNoLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("main.fl", []byte("fn main() {}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.LinkError, source.Span{}, "cc: undefined reference to 'put_pixel'"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	want := "flint: error[BKD6002]: cc: undefined reference to 'put_pixel'\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestJSONOutput(t *testing.T) {
	a := analyze(t, "fn main() {\n\tundefined_name();\n}\n")
	if !a.bag.HasErrors() {
		t.Fatal("expected an undefined reference error")
	}
	a.bag.Sort()

	out := diagfmt.BuildDiagnosticsOutput(a.bag, a.fs, diagfmt.JSONOpts{IncludePositions: true})
	if out.Count != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	got := out.Diagnostics[0]
	want := diagfmt.DiagnosticJSON{
		Severity: "error",
		Code:     "SEM3002",
		Message:  "undefined name 'undefined_name'",
		Location: got.Location,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
	}
	if got.Location.File != "main.fl" || got.Location.StartLine != 2 {
		t.Errorf("location = %+v", got.Location)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	a := analyze(t, "fn main() {\n\ta();\n\tb();\n}\n")
	a.bag.Sort()
	out := diagfmt.BuildDiagnosticsOutput(a.bag, a.fs, diagfmt.JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Errorf("count = %d, want truncation to 1", out.Count)
	}
}

func TestDumpAST(t *testing.T) {
	a := analyze(t, "fn add(a: int, b: int) -> int {\n\treturn a + b;\n}\n")
	if a.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", a.bag.Items())
	}

	var buf bytes.Buffer
	if err := diagfmt.DumpAST(&buf, a.builder, a.fileID, a.strs); err != nil {
		t.Fatalf("dump: %v", err)
	}
	g := goldie.New(t)
	g.Assert(t, "ast_add", buf.Bytes())
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.fl", []byte("var x = 1; // one\n"))
	file := fs.Get(fileID)

	bag := diag.NewBag(8)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("format: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"var", `"x"`, "line_comment"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q in:\n%s", want, out)
		}
	}
}
