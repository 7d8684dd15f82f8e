package lexer_test

import (
	"strings"
	"testing"

	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/source"
	"flint/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) errorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fl", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	got := kindsOf(collectAllTokens(lx))
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("input %q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("input %q: token %d = %v, want %v", input, i, got[i], want[i])
		}
	}
	if n := reporter.errorCount(); n != 0 {
		t.Fatalf("input %q: unexpected %d errors: %v", input, n, reporter.diagnostics)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectKinds(t, "fn main", token.KwFn, token.Ident)
	expectKinds(t, "extern var let", token.KwExtern, token.KwVar, token.KwLet)
	expectKinds(t, "if else while return break continue",
		token.KwIf, token.KwElse, token.KwWhile, token.KwReturn, token.KwBreak, token.KwContinue)
	expectKinds(t, "true false", token.KwTrue, token.KwFalse)
	// builtin type names stay identifiers
	expectKinds(t, "int float bool string void",
		token.Ident, token.Ident, token.Ident, token.Ident, token.Ident)
	expectKinds(t, "_tmp x1 camelCase", token.Ident, token.Ident, token.Ident)
	// keywords are case-sensitive
	expectKinds(t, "Fn While", token.Ident, token.Ident)
}

func TestNumbers(t *testing.T) {
	expectKinds(t, "0 123", token.IntLit, token.IntLit)
	expectKinds(t, "1.5 .5 0.0", token.FloatLit, token.FloatLit, token.FloatLit)
	expectKinds(t, "1e3 1.5e+10 2E-7", token.FloatLit, token.FloatLit, token.FloatLit)

	lx, reporter := makeTestLexer("1e+")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("1e+ should produce Invalid, got %v", tok.Kind)
	}
	if reporter.errorCount() != 1 || reporter.diagnostics[0].Code != diag.LexBadNumber {
		t.Errorf("expected one LexBadNumber, got %v", reporter.diagnostics)
	}
}

func TestNumberTexts(t *testing.T) {
	lx, _ := makeTestLexer("12.75")
	tok := lx.Next()
	if tok.Kind != token.FloatLit || tok.Text != "12.75" {
		t.Errorf("got %v %q", tok.Kind, tok.Text)
	}
	// a dot not followed by a digit is not part of the number
	lx, reporter := makeTestLexer("1.x")
	tok = lx.Next()
	if tok.Kind != token.IntLit || tok.Text != "1" {
		t.Errorf("got %v %q, want IntLit \"1\"", tok.Kind, tok.Text)
	}
	_ = reporter
}

func TestStrings(t *testing.T) {
	lx, reporter := makeTestLexer(`"hello"`)
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `"hello"` {
		t.Errorf("got %v %q", tok.Kind, tok.Text)
	}
	if reporter.errorCount() != 0 {
		t.Errorf("unexpected errors: %v", reporter.diagnostics)
	}

	expectKinds(t, `"a\n\t\r\\\"\0b"`, token.StringLit)
}

func TestStringInvalidEscape(t *testing.T) {
	lx, reporter := makeTestLexer(`"a\qb"`)
	tok := lx.Next()
	// literal is still produced so parsing can continue
	if tok.Kind != token.StringLit {
		t.Errorf("got %v, want StringLit", tok.Kind)
	}
	if reporter.errorCount() != 1 || reporter.diagnostics[0].Code != diag.LexInvalidEscape {
		t.Errorf("expected one LexInvalidEscape, got %v", reporter.diagnostics)
	}
}

func TestStringUnterminated(t *testing.T) {
	lx, reporter := makeTestLexer("\"abc\nvar")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("got %v, want Invalid", tok.Kind)
	}
	if reporter.errorCount() != 1 || reporter.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected one LexUnterminatedString, got %v", reporter.diagnostics)
	}
	// lexing continues on the next line
	tok = lx.Next()
	if tok.Kind != token.KwVar {
		t.Errorf("recovery token = %v, want KwVar", tok.Kind)
	}
}

func TestStringUnterminatedAtEOF(t *testing.T) {
	lx, reporter := makeTestLexer(`"abc`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("got %v, want Invalid", tok.Kind)
	}
	if reporter.errorCount() != 1 || reporter.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected one LexUnterminatedString, got %v", reporter.diagnostics)
	}
	if lx.Next().Kind != token.EOF {
		t.Error("expected EOF after unterminated string")
	}
}

func TestOperatorsGreedy(t *testing.T) {
	expectKinds(t, "== = != ! <= < >= >",
		token.EqEq, token.Assign, token.BangEq, token.Bang,
		token.LtEq, token.Lt, token.GtEq, token.Gt)
	expectKinds(t, "&& || ->", token.AndAnd, token.OrOr, token.Arrow)
	expectKinds(t, "a->b", token.Ident, token.Arrow, token.Ident)
	expectKinds(t, "+-*/%", token.Plus, token.Minus, token.Star, token.Slash, token.Percent)
	expectKinds(t, "(){},:;", token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.Comma, token.Colon, token.Semicolon)
}

func TestInvalidCharacter(t *testing.T) {
	lx, reporter := makeTestLexer("a $ b")
	kinds := kindsOf(collectAllTokens(lx))
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if reporter.errorCount() != 1 || reporter.diagnostics[0].Code != diag.LexInvalidCharacter {
		t.Errorf("expected one LexInvalidCharacter, got %v", reporter.diagnostics)
	}
}

func TestLineComment(t *testing.T) {
	lx, _ := makeTestLexer("x // trailing comment\ny")
	first := lx.Next()
	if first.Kind != token.Ident || first.Text != "x" {
		t.Fatalf("first token = %v %q", first.Kind, first.Text)
	}
	second := lx.Next()
	if second.Kind != token.Ident || second.Text != "y" {
		t.Fatalf("second token = %v %q", second.Kind, second.Text)
	}
	var sawComment bool
	for _, tr := range second.Leading {
		if tr.Kind == token.TriviaLineComment && tr.Text == "// trailing comment" {
			sawComment = true
		}
	}
	if !sawComment {
		t.Errorf("comment trivia missing from %v", second.Leading)
	}
}

func TestSlashIsNotComment(t *testing.T) {
	expectKinds(t, "a / b", token.Ident, token.Slash, token.Ident)
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("fn main")
	if lx.Peek().Kind != token.KwFn {
		t.Fatal("Peek should see fn")
	}
	if lx.Next().Kind != token.KwFn {
		t.Fatal("Next after Peek should return the same token")
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("stream should continue after buffered token")
	}
}

// Concatenating leading trivia and token texts must reproduce the source.
func TestSourceReconstruction(t *testing.T) {
	input := "fn main() -> int {\n" +
		"    // compute\n" +
		"    var x: int = 10;\n" +
		"    return x * 2;\n" +
		"}\n"
	lx, reporter := makeTestLexer(input)
	var sb strings.Builder
	for {
		tok := lx.Next()
		for _, tr := range tok.Leading {
			sb.WriteString(tr.Text)
		}
		sb.WriteString(tok.Text)
		if tok.Kind == token.EOF {
			break
		}
	}
	if sb.String() != input {
		t.Errorf("reconstruction mismatch:\n got %q\nwant %q", sb.String(), input)
	}
	if reporter.errorCount() != 0 {
		t.Errorf("unexpected errors: %v", reporter.diagnostics)
	}
}

func TestSpansMatchText(t *testing.T) {
	input := `var greeting = "hi";`
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fl", []byte(input))
	file := fs.Get(fileID)
	lx := lexer.New(file, lexer.Options{})
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span slice %q != text %q", got, tok.Text)
		}
	}
}
