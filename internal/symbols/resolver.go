package symbols

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/source"
)

// Resolver maintains the scope stack while a file is walked. It only
// manages names; types are the checker's business.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

func NewResolver(table *Table, reporter diag.Reporter) *Resolver {
	return &Resolver{
		table:    table,
		reporter: reporter,
		stack:    make([]ScopeID, 0, 8),
	}
}

func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the innermost open scope, or NoScopeID outside
// any Enter/Leave pair.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter opens a child of the current scope and makes it current.
func (r *Resolver) Enter(kind ScopeKind, owner ast.ItemID, span source.Span) ScopeID {
	id := r.table.NewScope(kind, r.CurrentScope(), owner, span)
	r.stack = append(r.stack, id)
	return id
}

// Leave closes the innermost scope.
func (r *Resolver) Leave() {
	if len(r.stack) == 0 {
		panic("symbols: Leave without Enter")
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare binds a symbol in the current scope. Redeclaring a name that
// the same scope already binds is reported and the previous symbol is
// returned; shadowing an outer scope's binding is allowed.
func (r *Resolver) Declare(sym Symbol) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	scope := r.table.Scope(scopeID)
	if scope == nil {
		panic("symbols: Declare outside any scope")
	}
	if prev, ok := scope.NameIndex[sym.Name]; ok {
		r.reportDuplicate(sym, prev)
		return prev, false
	}
	return r.declareUnchecked(scopeID, sym), true
}

func (r *Resolver) declareUnchecked(scopeID ScopeID, sym Symbol) SymbolID {
	sym.Scope = scopeID
	id := r.table.Symbols.Allocate(sym)
	scope := r.table.Scope(scopeID)
	scope.NameIndex[sym.Name] = id
	scope.Symbols = append(scope.Symbols, id)
	return id
}

// Lookup resolves a name from the current scope outward.
func (r *Resolver) Lookup(name source.StringID) SymbolID {
	return r.table.LookupIn(r.CurrentScope(), name)
}

func (r *Resolver) reportDuplicate(sym Symbol, prev SymbolID) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("'%s' is already declared in this scope", r.table.NameText(sym.Name))
	var notes []diag.Note
	if prevSym := r.table.Symbol(prev); prevSym != nil && !prevSym.Flags.Has(FlagBuiltin) {
		notes = append(notes, diag.Note{
			Span: prevSym.Span,
			Msg:  "previous declaration is here",
		})
	}
	r.reporter.Report(diag.SemaDuplicateDeclaration, diag.SevError, sym.Span, msg, notes)
}
