package types

import (
	"testing"

	"flint/internal/ast"
)

func TestBuiltinsAreStable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if b.Int == NoTypeID || b.Float == NoTypeID || b.Bool == NoTypeID ||
		b.String == NoTypeID || b.Void == NoTypeID || b.Error == NoTypeID {
		t.Fatal("builtins must all be interned")
	}
	if in.Intern(Type{Kind: KindInt}) != b.Int {
		t.Error("re-interning int must return the builtin ID")
	}
	if in.Kind(b.Float) != KindFloat {
		t.Error("kind lookup failed")
	}
}

func TestInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern(Type{Kind: KindString})
	b := in.Intern(Type{Kind: KindString})
	if a != b {
		t.Errorf("same descriptor interned twice: %d vs %d", a, b)
	}
}

func TestRegisterFnDeduplicates(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	add := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int)
	same := in.RegisterFn([]TypeID{b.Int, b.Int}, b.Int)
	other := in.RegisterFn([]TypeID{b.Int}, b.Int)

	if add != same {
		t.Errorf("identical signature got two IDs: %d vs %d", add, same)
	}
	if add == other {
		t.Error("different signatures must not share an ID")
	}

	info, ok := in.FnInfo(add)
	if !ok || len(info.Params) != 2 || info.Result != b.Int {
		t.Fatalf("FnInfo = %+v, ok = %v", info, ok)
	}
	if _, ok := in.FnInfo(b.Int); ok {
		t.Error("FnInfo on a non-fn type must fail")
	}
}

func TestStringRendering(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got := in.String(b.Int); got != "int" {
		t.Errorf("String(int) = %q", got)
	}
	fn := in.RegisterFn([]TypeID{b.Int, b.String}, b.Bool)
	if got := in.String(fn); got != "fn(int, string) -> bool" {
		t.Errorf("String(fn) = %q", got)
	}
	proc := in.RegisterFn(nil, b.Void)
	if got := in.String(proc); got != "fn()" {
		t.Errorf("String(void fn) = %q", got)
	}
}

func TestBinaryResults(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	cases := []struct {
		op          ast.ExprBinaryOp
		left, right TypeID
		want        TypeID
		ok          bool
	}{
		{ast.ExprBinaryAdd, b.Int, b.Int, b.Int, true},
		{ast.ExprBinaryAdd, b.Float, b.Float, b.Float, true},
		{ast.ExprBinaryAdd, b.Int, b.Float, NoTypeID, false},
		{ast.ExprBinaryAdd, b.String, b.String, NoTypeID, false},
		{ast.ExprBinaryMod, b.Int, b.Int, b.Int, true},
		{ast.ExprBinaryMod, b.Float, b.Float, NoTypeID, false},
		{ast.ExprBinaryLogicalAnd, b.Bool, b.Bool, b.Bool, true},
		{ast.ExprBinaryLogicalAnd, b.Int, b.Bool, NoTypeID, false},
		{ast.ExprBinaryEq, b.String, b.String, b.Bool, true},
		{ast.ExprBinaryEq, b.Int, b.String, NoTypeID, false},
		{ast.ExprBinaryLess, b.Int, b.Int, b.Bool, true},
		{ast.ExprBinaryLess, b.String, b.String, NoTypeID, false},
		{ast.ExprBinaryLess, b.Bool, b.Bool, NoTypeID, false},
	}
	for _, tc := range cases {
		got, ok := in.BinaryResult(tc.op, tc.left, tc.right)
		if ok != tc.ok || got != tc.want {
			t.Errorf("BinaryResult(%v, %s, %s) = %s, %v; want %s, %v",
				tc.op, in.String(tc.left), in.String(tc.right), in.String(got), ok, in.String(tc.want), tc.ok)
		}
	}
}

func TestErrorPoisonsOperators(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got, ok := in.BinaryResult(ast.ExprBinaryAdd, b.Error, b.Int); !ok || got != b.Error {
		t.Errorf("error operand should poison: %s, %v", in.String(got), ok)
	}
	if got, ok := in.UnaryResult(ast.ExprUnaryNot, b.Error); !ok || got != b.Error {
		t.Errorf("error operand should poison unary: %s, %v", in.String(got), ok)
	}
}

func TestUnaryResults(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got, ok := in.UnaryResult(ast.ExprUnaryNeg, b.Float); !ok || got != b.Float {
		t.Errorf("neg float = %s, %v", in.String(got), ok)
	}
	if _, ok := in.UnaryResult(ast.ExprUnaryNeg, b.Bool); ok {
		t.Error("neg bool must fail")
	}
	if got, ok := in.UnaryResult(ast.ExprUnaryNot, b.Bool); !ok || got != b.Bool {
		t.Errorf("not bool = %s, %v", in.String(got), ok)
	}
	if _, ok := in.UnaryResult(ast.ExprUnaryNot, b.Int); ok {
		t.Error("not int must fail")
	}
}
