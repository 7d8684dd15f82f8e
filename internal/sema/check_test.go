package sema_test

import (
	"testing"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/sema"
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

type checkResult struct {
	builder *ast.Builder
	syms    symbols.Result
	res     sema.Result
	bag     *diag.Bag
}

func checkSource(t *testing.T, src string) checkResult {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fl", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	pr := parser.ParseFile(fs, lx, builder, interner, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}

	typesIn := types.NewInterner()
	syms := symbols.ResolveFile(builder, pr.File, interner, symbols.ResolveOptions{
		Reporter: reporter,
		Types:    typesIn,
	})
	if bag.HasErrors() {
		t.Fatalf("resolve errors: %v", bag.Items())
	}

	res := sema.Check(builder, pr.File, sema.Options{
		Reporter: reporter,
		Symbols:  &syms,
		Types:    typesIn,
	})
	return checkResult{builder: builder, syms: syms, res: res, bag: bag}
}

func errorCodes(cr checkResult) []diag.Code {
	var codes []diag.Code
	for _, d := range cr.bag.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}

func wantSingleError(t *testing.T, cr checkResult, code diag.Code) diag.Diagnostic {
	t.Helper()
	codes := errorCodes(cr)
	if len(codes) != 1 || codes[0] != code {
		t.Fatalf("codes = %v, want one %s", codes, code.ID())
	}
	return cr.bag.Items()[0]
}

func TestWellTypedProgram(t *testing.T) {
	cr := checkSource(t, `
fn add(a: int, b: int) -> int { return a + b; }
fn main() {
	var x: int = 10;
	let y = add(x, 32);
	print(y);
}
`)
	if cr.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", cr.bag.Items())
	}
	b := cr.res.TypeInterner.Builtins()
	for id, ty := range cr.res.ExprTypes {
		if ty == types.NoTypeID || ty == b.Error {
			t.Errorf("expr %d has no concrete type", id)
		}
	}
}

func TestVarAnnotationMismatch(t *testing.T) {
	cr := checkSource(t, `fn main() { var x: int = "hello"; }`)
	d := wantSingleError(t, cr, diag.SemaTypeMismatch)
	if d.Message != "type mismatch: expected 'int', found 'string'" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestInferenceFromInitializer(t *testing.T) {
	cr := checkSource(t, `
fn main() {
	var x = 1.5;
	x = 2.5;
}
`)
	if cr.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", cr.bag.Items())
	}
	b := cr.res.TypeInterner.Builtins()
	found := false
	for _, sym := range cr.syms.VarSymbols {
		if cr.syms.Table.Symbol(sym).Type == b.Float {
			found = true
		}
	}
	if !found {
		t.Error("x did not infer to float")
	}
}

func TestNoImplicitNumericConversion(t *testing.T) {
	cr := checkSource(t, `fn main() { let x = 1 + 2.5; }`)
	d := wantSingleError(t, cr, diag.SemaInvalidOperator)
	if d.Message != "operator '+' is not defined for 'int' and 'float'" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestModuloRequiresInts(t *testing.T) {
	cr := checkSource(t, `fn main() { let x = 1.0 % 2.0; }`)
	wantSingleError(t, cr, diag.SemaInvalidOperator)
}

func TestConditionMustBeBool(t *testing.T) {
	cr := checkSource(t, `fn main() { if 1 {} }`)
	d := wantSingleError(t, cr, diag.SemaConditionNotBool)
	if d.Message != "condition must be 'bool', found 'int'" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestAssignToLet(t *testing.T) {
	cr := checkSource(t, `
fn main() {
	let x = 1;
	x = 2;
}
`)
	wantSingleError(t, cr, diag.SemaImmutableAssign)
}

func TestAssignToParameter(t *testing.T) {
	cr := checkSource(t, `fn f(a: int) { a = 1; }`)
	wantSingleError(t, cr, diag.SemaImmutableAssign)
}

func TestAssignTypeMismatch(t *testing.T) {
	cr := checkSource(t, `
fn main() {
	var x = 1;
	x = true;
}
`)
	wantSingleError(t, cr, diag.SemaTypeMismatch)
}

func TestWrongArgumentCount(t *testing.T) {
	cr := checkSource(t, `
fn add(a: int, b: int) -> int { return a + b; }
fn main() { add(1); }
`)
	d := wantSingleError(t, cr, diag.SemaArgumentError)
	if d.Message != "'add' expects 2 arguments, found 1" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestArgumentTypeMismatch(t *testing.T) {
	cr := checkSource(t, `
fn greet(name: string) {}
fn main() { greet(42); }
`)
	d := wantSingleError(t, cr, diag.SemaTypeMismatch)
	if d.Message != "argument 1 to 'greet': expected 'string', found 'int'" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestCallNonFunction(t *testing.T) {
	cr := checkSource(t, `
fn main() {
	var x = 1;
	x();
}
`)
	wantSingleError(t, cr, diag.SemaNotCallable)
}

func TestVoidAsValue(t *testing.T) {
	cr := checkSource(t, `
fn nothing() {}
fn main() { var x = nothing(); }
`)
	wantSingleError(t, cr, diag.SemaVoidValue)
}

func TestReturnTypeMismatch(t *testing.T) {
	cr := checkSource(t, `fn f() -> int { return true; }`)
	wantSingleError(t, cr, diag.SemaTypeMismatch)
}

func TestBareReturnInValueFunction(t *testing.T) {
	cr := checkSource(t, `fn f() -> int { return; }`)
	wantSingleError(t, cr, diag.SemaTypeMismatch)
}

func TestUnknownTypeName(t *testing.T) {
	cr := checkSource(t, `fn f(a: quux) { a; }`)
	d := wantSingleError(t, cr, diag.SemaUnknownType)
	if d.Message != "unknown type name 'quux'" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestErrorTypeSuppressesCascades(t *testing.T) {
	// The bad initializer reports once; later uses of x stay quiet.
	cr := checkSource(t, `
fn main() {
	var x = 1 + true;
	let y = x + 1;
	if x { }
}
`)
	wantSingleError(t, cr, diag.SemaInvalidOperator)
}

func TestPrintAcceptsPrimitives(t *testing.T) {
	cr := checkSource(t, `
fn main() {
	print(1);
	print(1.5);
	print(true);
	print("hi");
	print(input());
}
`)
	if cr.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", cr.bag.Items())
	}
}

func TestPrintArgumentCount(t *testing.T) {
	cr := checkSource(t, `fn main() { print(1, 2); }`)
	d := wantSingleError(t, cr, diag.SemaArgumentError)
	if d.Message != "'print' expects 1 argument, found 2" {
		t.Errorf("message = %q", d.Message)
	}
}

func TestFunctionNameAsValue(t *testing.T) {
	cr := checkSource(t, `
fn f() {}
fn main() { let g = f; }
`)
	wantSingleError(t, cr, diag.SemaTypeMismatch)
}

func TestAssignmentChains(t *testing.T) {
	cr := checkSource(t, `
fn main() {
	var a = 0;
	var b = 0;
	a = b = 5;
}
`)
	if cr.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", cr.bag.Items())
	}
}

func TestIntLiteralOverflow(t *testing.T) {
	cr := checkSource(t, `fn main() { let x = 99999999999999999999; }`)
	wantSingleError(t, cr, diag.LexBadNumber)
}
