package mir

import (
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

type Func struct {
	ID   FuncID
	Sym  symbols.SymbolID
	Name string
	Span source.Span

	Result     types.TypeID
	ParamCount int

	Locals []Local
	Blocks []Block
	Entry  BlockID
}
