package symbols

import (
	"flint/internal/ast"
	"flint/internal/source"
)

// Table owns all scopes and symbols produced while resolving one module.
// IDs handed out by a Table are only meaningful relative to it.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	fileRoot map[ast.FileID]ScopeID
}

func NewTable(strings *source.Interner) *Table {
	return &Table{
		Scopes:   NewScopes(0),
		Symbols:  NewSymbols(0),
		Strings:  strings,
		fileRoot: make(map[ast.FileID]ScopeID, 1),
	}
}

// NewScope allocates a scope and links it under parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner ast.ItemID, span source.Span) ScopeID {
	id := t.Scopes.Allocate(Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID, 4),
	})
	if p := t.Scopes.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(id) }

func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// SetFileRoot records the file scope produced for an AST file.
func (t *Table) SetFileRoot(file ast.FileID, scope ScopeID) {
	t.fileRoot[file] = scope
}

// FileRoot returns the file scope for an AST file, or NoScopeID.
func (t *Table) FileRoot(file ast.FileID) ScopeID {
	return t.fileRoot[file]
}

// LookupIn searches for name starting at scope and walking parents.
func (t *Table) LookupIn(scope ScopeID, name source.StringID) SymbolID {
	for scope.IsValid() {
		sc := t.Scopes.Get(scope)
		if sc == nil {
			break
		}
		if sym, ok := sc.NameIndex[name]; ok {
			return sym
		}
		scope = sc.Parent
	}
	return NoSymbolID
}

// NameText renders a symbol name for diagnostics.
func (t *Table) NameText(name source.StringID) string {
	text, ok := t.Strings.Lookup(name)
	if !ok {
		return "<unknown>"
	}
	return text
}
