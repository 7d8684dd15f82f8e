package symbols

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/source"
	"flint/internal/types"
)

// SymbolKind classifies what a name denotes.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFn
	SymbolExtern
	SymbolVar
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolInvalid:
		return "invalid"
	case SymbolFn:
		return "function"
	case SymbolExtern:
		return "extern function"
	case SymbolVar:
		return "variable"
	case SymbolParam:
		return "parameter"
	default:
		return fmt.Sprintf("SymbolKind(%d)", k)
	}
}

// SymbolFlags carries orthogonal symbol properties.
type SymbolFlags uint8

const (
	// FlagMutable marks 'var' declarations; 'let' and parameters lack it.
	FlagMutable SymbolFlags = 1 << iota
	// FlagBuiltin marks prelude symbols not declared in any source file.
	FlagBuiltin
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// Builtin identifies prelude symbols that the checker treats specially.
type Builtin uint8

const (
	BuiltinNone Builtin = iota
	// BuiltinPrint accepts a single argument of any printable type.
	BuiltinPrint
	BuiltinInput
)

// SymbolDecl points back at the AST node that introduced a symbol.
// Exactly one of Item and Stmt is valid; Param is the index into the
// function's parameter run when the symbol is a parameter.
type SymbolDecl struct {
	Item  ast.ItemID
	Stmt  ast.StmtID
	Param uint32
}

// Symbol is one named entity. Type starts as NoTypeID and is filled in
// by the checker; prelude symbols are typed at installation.
type Symbol struct {
	Name    source.StringID
	Kind    SymbolKind
	Flags   SymbolFlags
	Builtin Builtin
	Scope   ScopeID
	Span    source.Span // the declaring name, not the whole declaration
	Decl    SymbolDecl
	Type    types.TypeID
}
