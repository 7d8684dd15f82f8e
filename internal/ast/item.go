package ast

import (
	"flint/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemExtern
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// Items manages allocation of top-level items and their payloads.
type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnItem]
	Externs  *Arena[ExternItem]
	FnParams *Arena[FnParam]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnItem](capHint),
		Externs:  NewArena[ExternItem](capHint),
		FnParams: NewArena[FnParam](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}
