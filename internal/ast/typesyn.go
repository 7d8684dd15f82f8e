package ast

import (
	"flint/internal/source"
)

// TypeExpr is a type annotation as written in source. The language only has
// named types, so the node is just the identifier; whether the name denotes
// a builtin is decided by the semantic layer.
type TypeExpr struct {
	Name source.StringID
	Span source.Span
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{
		Arena: NewArena[TypeExpr](capHint),
	}
}

func (t *TypeExprs) New(name source.StringID, sp source.Span) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{
		Name: name,
		Span: sp,
	}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}
