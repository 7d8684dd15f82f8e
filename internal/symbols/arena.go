package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scopes is a slice-backed arena for Scope nodes. Index 0 is reserved so
// that NoScopeID never aliases a real scope.
type Scopes struct {
	data []Scope
}

func NewScopes(capHint uint) *Scopes {
	if capHint == 0 {
		capHint = 1 << 6
	}
	s := &Scopes{data: make([]Scope, 1, capHint+1)}
	return s
}

func (s *Scopes) Allocate(scope Scope) ScopeID {
	id, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	s.data = append(s.data, scope)
	return ScopeID(id)
}

func (s *Scopes) Get(id ScopeID) *Scope {
	if id == NoScopeID || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len counts allocated scopes, excluding the sentinel slot.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Symbols is a slice-backed arena for Symbol entries, same layout rules
// as Scopes.
type Symbols struct {
	data []Symbol
}

func NewSymbols(capHint uint) *Symbols {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Symbols{data: make([]Symbol, 1, capHint+1)}
}

func (s *Symbols) Allocate(sym Symbol) SymbolID {
	id, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbol arena overflow: %w", err))
	}
	s.data = append(s.data, sym)
	return SymbolID(id)
}

func (s *Symbols) Get(id SymbolID) *Symbol {
	if id == NoSymbolID || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

func (s *Symbols) Len() int { return len(s.data) - 1 }
