package resolver

import "sync"

// SymbolTable is a mutable, synchronized Namespace.  It is the simplest "real"
// namespace a NamespaceProxyResolver can forward to: puts are visible to the
// proxy immediately.
type SymbolTable struct {
	mu      sync.RWMutex
	symbols map[string]any
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]any),
	}
}

// Put adds or replaces the named symbol.
func (t *SymbolTable) Put(name string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.symbols[name] = value
}

// Member implements part of the Namespace interface.
func (t *SymbolTable) Member(name string) (any, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	value, ok := t.symbols[name]
	return value, ok, nil
}

// MemberNames implements part of the Namespace interface.
func (t *SymbolTable) MemberNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedKeys(t.symbols)
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.symbols)
}
