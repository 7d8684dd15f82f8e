package parser_test

import (
	"testing"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/source"
)

type parseResult struct {
	builder  *ast.Builder
	interner *source.Interner
	res      parser.Result
	bag      *diag.Bag
}

func parseSource(t *testing.T, src string) parseResult {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fl", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	res := parser.ParseFile(fs, lx, builder, interner, parser.Options{Reporter: reporter})
	return parseResult{builder: builder, interner: interner, res: res, bag: bag}
}

func requireNoErrors(t *testing.T, pr parseResult) {
	t.Helper()
	if pr.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", pr.bag.Items())
	}
}

func fileItems(t *testing.T, pr parseResult) []ast.ItemID {
	t.Helper()
	file := pr.builder.Files.Get(pr.res.File)
	if file == nil {
		t.Fatal("no file node")
	}
	return file.Items
}

func TestParseFnWithParams(t *testing.T) {
	pr := parseSource(t, "fn add(a: int, b: int) -> int { return a + b; }")
	requireNoErrors(t, pr)

	items := fileItems(t, pr)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	fn, ok := pr.builder.Items.Fn(items[0])
	if !ok {
		t.Fatal("item is not a fn")
	}
	if name := pr.interner.MustLookup(fn.Name); name != "add" {
		t.Errorf("name = %q", name)
	}
	params := pr.builder.Items.Params(fn.ParamsStart, fn.ParamsCount)
	if len(params) != 2 {
		t.Fatalf("params = %d, want 2", len(params))
	}
	if typ := pr.builder.Types.Get(params[0].Type); pr.interner.MustLookup(typ.Name) != "int" {
		t.Errorf("param type = %q", pr.interner.MustLookup(typ.Name))
	}
	if !fn.ReturnType.IsValid() {
		t.Error("return type missing")
	}

	block, ok := pr.builder.Stmts.Block(fn.Body)
	if !ok || len(block.Stmts) != 1 {
		t.Fatalf("body block = %+v, ok = %v", block, ok)
	}
	ret, ok := pr.builder.Stmts.Return(block.Stmts[0])
	if !ok || !ret.Value.IsValid() {
		t.Fatal("expected return with value")
	}
	bin, ok := pr.builder.Exprs.Binary(ret.Value)
	if !ok || bin.Op != ast.ExprBinaryAdd {
		t.Fatalf("return value = %+v", bin)
	}
}

func TestParseFnNoReturnType(t *testing.T) {
	pr := parseSource(t, "fn main() {}")
	requireNoErrors(t, pr)
	fn, ok := pr.builder.Items.Fn(fileItems(t, pr)[0])
	if !ok {
		t.Fatal("item is not a fn")
	}
	if fn.ReturnType.IsValid() {
		t.Error("omitted return type must be NoTypeID")
	}
	if fn.ParamsCount != 0 {
		t.Errorf("ParamsCount = %d", fn.ParamsCount)
	}
}

func TestParseExtern(t *testing.T) {
	pr := parseSource(t, `extern fn put_line(s: string);
extern fn read_line() -> string;`)
	requireNoErrors(t, pr)

	items := fileItems(t, pr)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	ext, ok := pr.builder.Items.Extern(items[0])
	if !ok {
		t.Fatal("item is not an extern")
	}
	if pr.interner.MustLookup(ext.Name) != "put_line" {
		t.Errorf("name = %q", pr.interner.MustLookup(ext.Name))
	}
	if ext.ReturnType.IsValid() {
		t.Error("put_line must have void return")
	}
	ext2, _ := pr.builder.Items.Extern(items[1])
	if !ext2.ReturnType.IsValid() {
		t.Error("read_line must have a return type")
	}
}

func TestVarAndLet(t *testing.T) {
	pr := parseSource(t, `fn main() {
    var x: int = 10;
    let name = "flint";
}`)
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	if len(block.Stmts) != 2 {
		t.Fatalf("stmts = %d, want 2", len(block.Stmts))
	}

	x, ok := pr.builder.Stmts.Var(block.Stmts[0])
	if !ok || !x.Mutable || !x.Type.IsValid() {
		t.Fatalf("var x = %+v, ok = %v", x, ok)
	}
	name, ok := pr.builder.Stmts.Var(block.Stmts[1])
	if !ok || name.Mutable || name.Type.IsValid() {
		t.Fatalf("let name = %+v, ok = %v", name, ok)
	}
	lit, ok := pr.builder.Exprs.Literal(name.Value)
	if !ok || lit.Kind != ast.LitString {
		t.Fatalf("let initializer = %+v", lit)
	}
}

func TestIfElseChain(t *testing.T) {
	pr := parseSource(t, `fn main() {
    if a { x(); } else if b { y(); } else { z(); }
}`)
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	outer, ok := pr.builder.Stmts.If(block.Stmts[0])
	if !ok {
		t.Fatal("expected if statement")
	}
	inner, ok := pr.builder.Stmts.If(outer.Else)
	if !ok {
		t.Fatal("else-if should nest as an if in Else")
	}
	if !inner.Else.IsValid() {
		t.Error("inner if should carry the final else")
	}
	if _, ok := pr.builder.Stmts.Block(inner.Else); !ok {
		t.Error("final else should be a block")
	}
}

func TestWhileBreakContinue(t *testing.T) {
	pr := parseSource(t, `fn main() {
    while i < 10 {
        if i == 5 { break; }
        continue;
    }
}`)
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	loop, ok := pr.builder.Stmts.While(block.Stmts[0])
	if !ok {
		t.Fatal("expected while statement")
	}
	cond, ok := pr.builder.Exprs.Binary(loop.Cond)
	if !ok || cond.Op != ast.ExprBinaryLess {
		t.Fatalf("cond = %+v", cond)
	}
	body, _ := pr.builder.Stmts.Block(loop.Body)
	if len(body.Stmts) != 2 {
		t.Fatalf("loop body stmts = %d", len(body.Stmts))
	}
	if pr.builder.Stmts.Get(body.Stmts[1]).Kind != ast.StmtContinue {
		t.Error("second stmt should be continue")
	}
}

func TestPrecedence(t *testing.T) {
	pr := parseSource(t, "fn main() { x = 1 + 2 * 3; }")
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	es, _ := pr.builder.Stmts.ExprStmt(block.Stmts[0])

	assign, ok := pr.builder.Exprs.Binary(es.Expr)
	if !ok || assign.Op != ast.ExprBinaryAssign {
		t.Fatalf("top = %+v, want assignment", assign)
	}
	add, ok := pr.builder.Exprs.Binary(assign.Right)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatalf("rhs = %+v, want addition", add)
	}
	mul, ok := pr.builder.Exprs.Binary(add.Right)
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("add rhs = %+v, want multiplication", mul)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	pr := parseSource(t, "fn main() { a = b = c; }")
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	es, _ := pr.builder.Stmts.ExprStmt(block.Stmts[0])

	outer, _ := pr.builder.Exprs.Binary(es.Expr)
	if outer.Op != ast.ExprBinaryAssign {
		t.Fatalf("top op = %v", outer.Op)
	}
	inner, ok := pr.builder.Exprs.Binary(outer.Right)
	if !ok || inner.Op != ast.ExprBinaryAssign {
		t.Fatal("right side should be the nested assignment")
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	pr := parseSource(t, "fn main() { y = -a * b; }")
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	es, _ := pr.builder.Stmts.ExprStmt(block.Stmts[0])
	assign, _ := pr.builder.Exprs.Binary(es.Expr)

	mul, ok := pr.builder.Exprs.Binary(assign.Right)
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("rhs = %+v, want multiplication", mul)
	}
	neg, ok := pr.builder.Exprs.Unary(mul.Left)
	if !ok || neg.Op != ast.ExprUnaryNeg {
		t.Fatal("left factor should be the negation")
	}
}

func TestGroupedExpression(t *testing.T) {
	pr := parseSource(t, "fn main() { y = (1 + 2) * 3; }")
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	es, _ := pr.builder.Stmts.ExprStmt(block.Stmts[0])
	assign, _ := pr.builder.Exprs.Binary(es.Expr)

	mul, ok := pr.builder.Exprs.Binary(assign.Right)
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("rhs = %+v, want multiplication", mul)
	}
	group, ok := pr.builder.Exprs.Group(mul.Left)
	if !ok {
		t.Fatal("left factor should be the group")
	}
	add, ok := pr.builder.Exprs.Binary(group.Inner)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatal("group should contain the addition")
	}
}

func TestCallArguments(t *testing.T) {
	pr := parseSource(t, "fn main() { print(add(1, 2), x); }")
	requireNoErrors(t, pr)

	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	es, _ := pr.builder.Stmts.ExprStmt(block.Stmts[0])

	call, ok := pr.builder.Exprs.Call(es.Expr)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("call = %+v, ok = %v", call, ok)
	}
	nested, ok := pr.builder.Exprs.Call(call.Args[0])
	if !ok || len(nested.Args) != 2 {
		t.Fatal("first argument should be the nested call")
	}
}

func TestMissingSemicolonRecovery(t *testing.T) {
	pr := parseSource(t, `fn main() {
    var x = 1
    var y = 2;
}`)
	if !pr.bag.HasErrors() {
		t.Fatal("expected an error")
	}
	found := false
	for _, d := range pr.bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynExpectSemicolon, got %v", pr.bag.Items())
	}

	// the parser must recover and still see the second declaration
	fn, _ := pr.builder.Items.Fn(fileItems(t, pr)[0])
	block, _ := pr.builder.Stmts.Block(fn.Body)
	if len(block.Stmts) != 1 {
		t.Fatalf("recovered stmts = %d, want 1", len(block.Stmts))
	}
	y, ok := pr.builder.Stmts.Var(block.Stmts[0])
	if !ok || pr.interner.MustLookup(y.Name) != "y" {
		t.Error("recovery should keep the second declaration")
	}
}

func TestTopLevelRecovery(t *testing.T) {
	pr := parseSource(t, "garbage fn main() {}")
	if !pr.bag.HasErrors() {
		t.Fatal("expected an error for the stray identifier")
	}
	items := fileItems(t, pr)
	if len(items) != 1 {
		t.Fatalf("items after recovery = %d, want 1", len(items))
	}
	if _, ok := pr.builder.Items.Fn(items[0]); !ok {
		t.Error("fn after garbage should still parse")
	}
}

func TestInvalidAssignTarget(t *testing.T) {
	pr := parseSource(t, "fn main() { 1 = 2; }")
	found := false
	for _, d := range pr.bag.Items() {
		if d.Code == diag.SynInvalidAssignTarget {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynInvalidAssignTarget, got %v", pr.bag.Items())
	}
}

func TestUnclosedBrace(t *testing.T) {
	pr := parseSource(t, "fn main() { var x = 1;")
	found := false
	for _, d := range pr.bag.Items() {
		if d.Code == diag.SynUnclosedBrace {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynUnclosedBrace, got %v", pr.bag.Items())
	}
}

// Parsing the same input twice must produce identical arenas and identical
// diagnostics.
func TestDeterministicReparse(t *testing.T) {
	src := `extern fn put_line(s: string);

fn greet(name: string) {
    put_line(name);
}

fn main() {
    var i = 0;
    while i < 3 {
        greet("flint");
        i = i + 1;
    }
}`
	first := parseSource(t, src)
	second := parseSource(t, src)

	if a, b := first.builder.Items.Arena.Len(), second.builder.Items.Arena.Len(); a != b {
		t.Errorf("item counts differ: %d vs %d", a, b)
	}
	if a, b := first.builder.Stmts.Arena.Len(), second.builder.Stmts.Arena.Len(); a != b {
		t.Errorf("stmt counts differ: %d vs %d", a, b)
	}
	if a, b := first.builder.Exprs.Arena.Len(), second.builder.Exprs.Arena.Len(); a != b {
		t.Errorf("expr counts differ: %d vs %d", a, b)
	}
	if a, b := first.bag.Len(), second.bag.Len(); a != b {
		t.Errorf("diag counts differ: %d vs %d", a, b)
	}
	requireNoErrors(t, first)
}
