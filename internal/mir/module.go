package mir

import (
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

// Extern is a function declared with 'extern fn'; the linker provides
// its body.
type Extern struct {
	Sym    symbols.SymbolID
	Name   string
	Params []types.TypeID
	Result types.TypeID
	Span   source.Span
}

// Module is the lowered form of one compilation unit. Funcs keeps source
// order so dumps and code emission are deterministic.
type Module struct {
	Funcs     []*Func
	Externs   []Extern
	FuncBySym map[symbols.SymbolID]FuncID
}

// FuncByID returns the function with the given ID, or nil.
func (m *Module) FuncByID(id FuncID) *Func {
	for _, f := range m.Funcs {
		if f != nil && f.ID == id {
			return f
		}
	}
	return nil
}
