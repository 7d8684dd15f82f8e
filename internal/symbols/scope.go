package symbols

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/source"
)

// ScopeKind distinguishes the lexical region a scope covers.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	// ScopeFile holds hoisted functions, externs and the prelude.
	ScopeFile
	// ScopeFunction holds the parameters of one function.
	ScopeFunction
	// ScopeBlock covers one '{ ... }' region.
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeInvalid:
		return "invalid"
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return fmt.Sprintf("ScopeKind(%d)", k)
	}
}

// Scope is one node of the lexical scope tree. Lookup walks Parent links
// outward. The language has no overloading, so a name binds at most one
// symbol per scope.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	// Owner is the function item whose body contains this scope;
	// NoItemID for the file scope.
	Owner     ast.ItemID
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
