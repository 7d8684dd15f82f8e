package symbols

import (
	"flint/internal/source"
	"flint/internal/types"
)

// PreludeEntry describes one symbol injected into every file scope before
// user declarations are processed.
type PreludeEntry struct {
	Name    string
	Kind    SymbolKind
	Builtin Builtin
	// Type is NoTypeID for symbols the checker types specially
	// (print accepts several argument types).
	Type types.TypeID
}

// BuiltinPrelude returns the standard prelude: print and input, backed by
// the native runtime.
func BuiltinPrelude(in *types.Interner) []PreludeEntry {
	b := in.Builtins()
	return []PreludeEntry{
		{Name: "print", Kind: SymbolExtern, Builtin: BuiltinPrint},
		{Name: "input", Kind: SymbolExtern, Builtin: BuiltinInput, Type: in.RegisterFn(nil, b.Int)},
	}
}

// installPrelude declares entries in scope without duplicate checks; user
// declarations may shadow the prelude in inner scopes but collide with it
// at file scope.
func (r *Resolver) installPrelude(scope ScopeID, strings *source.Interner, entries []PreludeEntry) {
	for _, entry := range entries {
		r.declareUnchecked(scope, Symbol{
			Name:    strings.Intern(entry.Name),
			Kind:    entry.Kind,
			Flags:   FlagBuiltin,
			Builtin: entry.Builtin,
			Type:    entry.Type,
		})
	}
}
