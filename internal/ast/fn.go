package ast

import (
	"fmt"

	"fortio.org/safecast"

	"flint/internal/source"
)

// FnParam is a single parameter declaration. Parameters of one function are
// allocated contiguously; FnItem addresses them as start+count.
type FnParam struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Span     source.Span
}

type FnItem struct {
	Name        source.StringID
	NameSpan    source.Span
	ParamsStart FnParamID
	ParamsCount uint32
	ReturnType  TypeID // NoTypeID means void
	Body        StmtID
	Span        source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) NewFn(
	name source.StringID,
	nameSpan source.Span,
	params []FnParam,
	returnType TypeID,
	body StmtID,
	span source.Span,
) ItemID {
	paramsStart, paramsCount := i.allocateParams(params)
	payload := i.Fns.Allocate(FnItem{
		Name:        name,
		NameSpan:    nameSpan,
		ParamsStart: paramsStart,
		ParamsCount: paramsCount,
		ReturnType:  returnType,
		Body:        body,
		Span:        span,
	})
	return i.New(ItemFn, span, PayloadID(payload))
}

// Params returns a copy of the parameter run starting at start.
func (i *Items) Params(start FnParamID, count uint32) []FnParam {
	if count == 0 || !start.IsValid() {
		return nil
	}
	result := make([]FnParam, 0, count)
	base := uint32(start)
	for offset := range count {
		param := i.FnParams.Get(base + offset)
		if param == nil {
			continue
		}
		result = append(result, *param)
	}
	return result
}

func (i *Items) allocateParams(params []FnParam) (start FnParamID, count uint32) {
	if len(params) == 0 {
		return NoFnParamID, 0
	}
	for idx, param := range params {
		id := FnParamID(i.FnParams.Allocate(param))
		if idx == 0 {
			start = id
		}
	}
	c, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("params count overflow: %w", err))
	}
	return start, c
}
