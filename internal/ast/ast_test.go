package ast

import (
	"testing"

	"flint/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestArenaIDsAreOneBased(t *testing.T) {
	arena := NewArena[int](4)
	if arena.Get(0) != nil {
		t.Error("index 0 must be the nil sentinel")
	}
	first := arena.Allocate(10)
	second := arena.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first, second)
	}
	if *arena.Get(first) != 10 || *arena.Get(second) != 20 {
		t.Error("Get returned wrong values")
	}
	if arena.Len() != 2 {
		t.Errorf("Len = %d, want 2", arena.Len())
	}
}

func TestBuilderFnItem(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	fileID := b.NewFile(sp(0, 100))

	intName := interner.Intern("int")
	params := []FnParam{
		{Name: interner.Intern("a"), NameSpan: sp(7, 8), Type: b.Types.New(intName, sp(10, 13)), Span: sp(7, 13)},
		{Name: interner.Intern("b"), NameSpan: sp(15, 16), Type: b.Types.New(intName, sp(18, 21)), Span: sp(15, 21)},
	}
	retType := b.Types.New(intName, sp(26, 29))
	body := b.Stmts.NewBlock(sp(30, 40), nil)

	fnID := b.Items.NewFn(interner.Intern("add"), sp(3, 6), params, retType, body, sp(0, 40))
	b.PushItem(fileID, fnID)

	file := b.Files.Get(fileID)
	if len(file.Items) != 1 || file.Items[0] != fnID {
		t.Fatalf("file items = %v", file.Items)
	}

	fn, ok := b.Items.Fn(fnID)
	if !ok {
		t.Fatal("Fn accessor failed")
	}
	if got, _ := interner.Lookup(fn.Name); got != "add" {
		t.Errorf("name = %q", got)
	}
	got := b.Items.Params(fn.ParamsStart, fn.ParamsCount)
	if len(got) != 2 {
		t.Fatalf("params = %d, want 2", len(got))
	}
	if name, _ := interner.Lookup(got[1].Name); name != "b" {
		t.Errorf("second param = %q", name)
	}
	if fn.Body != body {
		t.Errorf("body = %d, want %d", fn.Body, body)
	}

	// the accessor pair must reject the wrong kind
	if _, ok := b.Items.Extern(fnID); ok {
		t.Error("Extern accessor should fail for a fn item")
	}
}

func TestExternItem(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	stringName := interner.Intern("string")
	params := []FnParam{
		{Name: interner.Intern("s"), NameSpan: sp(20, 21), Type: b.Types.New(stringName, sp(23, 29)), Span: sp(20, 29)},
	}
	id := b.Items.NewExtern(interner.Intern("put_line"), sp(10, 18), params, NoTypeID, sp(0, 31))

	ext, ok := b.Items.Extern(id)
	if !ok {
		t.Fatal("Extern accessor failed")
	}
	if ext.ReturnType.IsValid() {
		t.Error("omitted return type must be NoTypeID")
	}
	if ext.ParamsCount != 1 {
		t.Errorf("ParamsCount = %d, want 1", ext.ParamsCount)
	}
}

func TestStmtPayloads(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	value := b.Exprs.NewLiteral(sp(13, 15), LitInt, interner.Intern("10"))
	varStmt := b.Stmts.NewVar(sp(0, 16), interner.Intern("x"), sp(4, 5), NoTypeID, value, true)

	v, ok := b.Stmts.Var(varStmt)
	if !ok {
		t.Fatal("Var accessor failed")
	}
	if !v.Mutable {
		t.Error("var declaration should be mutable")
	}
	if v.Type.IsValid() {
		t.Error("inferred declaration must have NoTypeID")
	}

	cond := b.Exprs.NewIdent(sp(20, 21), interner.Intern("c"))
	then := b.Stmts.NewBlock(sp(23, 25), []StmtID{varStmt})
	ifStmt := b.Stmts.NewIf(sp(17, 25), cond, then, NoStmtID)

	ifData, ok := b.Stmts.If(ifStmt)
	if !ok {
		t.Fatal("If accessor failed")
	}
	if ifData.Else.IsValid() {
		t.Error("missing else must be NoStmtID")
	}
	block, ok := b.Stmts.Block(ifData.Then)
	if !ok || len(block.Stmts) != 1 {
		t.Fatalf("block = %+v, ok = %v", block, ok)
	}

	if _, ok := b.Stmts.While(ifStmt); ok {
		t.Error("While accessor should fail for an if statement")
	}
}

func TestExprPayloads(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	left := b.Exprs.NewIdent(sp(0, 1), interner.Intern("a"))
	right := b.Exprs.NewLiteral(sp(4, 5), LitInt, interner.Intern("2"))
	bin := b.Exprs.NewBinary(sp(0, 5), ExprBinaryMul, left, right)

	data, ok := b.Exprs.Binary(bin)
	if !ok {
		t.Fatal("Binary accessor failed")
	}
	if data.Op != ExprBinaryMul || data.Left != left || data.Right != right {
		t.Errorf("binary data = %+v", data)
	}

	call := b.Exprs.NewCall(sp(0, 10), left, []ExprID{bin, right})
	callData, ok := b.Exprs.Call(call)
	if !ok || len(callData.Args) != 2 {
		t.Fatalf("call data = %+v, ok = %v", callData, ok)
	}

	if _, ok := b.Exprs.Ident(bin); ok {
		t.Error("Ident accessor should fail for a binary expression")
	}
}

func TestBinaryOpClassifiers(t *testing.T) {
	if !ExprBinaryLess.IsComparison() || ExprBinaryAdd.IsComparison() {
		t.Error("IsComparison misclassifies")
	}
	if !ExprBinaryLogicalAnd.IsLogical() || ExprBinaryEq.IsLogical() {
		t.Error("IsLogical misclassifies")
	}
	if !ExprBinaryMod.IsArithmetic() || ExprBinaryAssign.IsArithmetic() {
		t.Error("IsArithmetic misclassifies")
	}
	if ExprBinaryNotEq.String() != "!=" {
		t.Errorf("String = %q", ExprBinaryNotEq.String())
	}
}
