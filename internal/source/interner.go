package source

import (
	"slices"
	"sync"
)

// StringID refers to an interned identifier or literal string.
type StringID uint32

// NoStringID is the zero ID; it always resolves to the empty string.
const NoStringID StringID = 0

// Interner deduplicates identifier strings into stable IDs. It is safe for
// concurrent use: independent compilation units share one process-wide
// instance guarded by a single mutex (lookups dominate, contention is low).
type Interner struct {
	mu    sync.Mutex
	byID  []string
	index map[string]StringID
}

// NewInterner returns an interner seeded with the NoStringID entry.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the stable ID for s, allocating one on first sight.
func (i *Interner) Intern(s string) StringID {
	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy so the table never pins the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID)) //nolint:gosec // table size stays well below MaxUint32
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the byte slice as a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup resolves an ID back to its string. Invalid IDs yield ("", false).
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup resolves an ID and panics when it is invalid.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid string ID")
	}
	return s
}

// Len returns the number of interned strings, counting NoStringID.
func (i *Interner) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return slices.Clone(i.byID)
}

// Reset drops every interned string except the NoStringID entry. Callers
// embedding the compiler must not hold StringIDs across a Reset.
func (i *Interner) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.byID = i.byID[:1]
	i.index = map[string]StringID{"": 0}
}

var (
	globalMu       sync.Mutex
	globalInterner *Interner
)

// Strings returns the process-wide identifier table, creating it on first
// use. All compilation units share it; see Interner for locking.
func Strings() *Interner {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalInterner == nil {
		globalInterner = NewInterner()
	}
	return globalInterner
}

// ResetStrings clears the process-wide table between independent compiler
// invocations. Only meaningful when the compiler is embedded and reused
// within one process.
func ResetStrings() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalInterner != nil {
		globalInterner.Reset()
	}
}
