package ast

import "flint/internal/source"

// ExternItem declares a function implemented outside the compiled module,
// e.g. in the C runtime. It has a signature but no body.
type ExternItem struct {
	Name        source.StringID
	NameSpan    source.Span
	ParamsStart FnParamID
	ParamsCount uint32
	ReturnType  TypeID // NoTypeID means void
	Span        source.Span
}

func (i *Items) Extern(id ItemID) (*ExternItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemExtern {
		return nil, false
	}
	return i.Externs.Get(uint32(item.Payload)), true
}

func (i *Items) NewExtern(
	name source.StringID,
	nameSpan source.Span,
	params []FnParam,
	returnType TypeID,
	span source.Span,
) ItemID {
	paramsStart, paramsCount := i.allocateParams(params)
	payload := i.Externs.Allocate(ExternItem{
		Name:        name,
		NameSpan:    nameSpan,
		ParamsStart: paramsStart,
		ParamsCount: paramsCount,
		ReturnType:  returnType,
		Span:        span,
	})
	return i.New(ItemExtern, span, PayloadID(payload))
}
