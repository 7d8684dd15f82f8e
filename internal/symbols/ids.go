package symbols

// ScopeID identifies a scope inside a Table. 0 is the invalid sentinel.
type ScopeID uint32

// SymbolID identifies a symbol inside a Table. 0 is the invalid sentinel.
type SymbolID uint32

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
