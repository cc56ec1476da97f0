package resolver

import "sync"

// MemoResolver implements Resolver, memoizing the answers of the next
// resolver.  Unlike a namespace cache it also remembers absent names, so a
// miss is asked of the next resolver only once.  Faults are not memoized.
type MemoResolver struct {
	next Resolver

	mu    sync.RWMutex
	known map[string]memoEntry
}

type memoEntry struct {
	value any
	found bool
}

func NewMemoResolver(next Resolver) *MemoResolver {
	return &MemoResolver{
		next:  next,
		known: make(map[string]memoEntry),
	}
}

// Resolve implements part of the Resolver interface.
func (r *MemoResolver) Resolve(name string) (any, bool, error) {
	r.mu.RLock()
	entry, ok := r.known[name]
	r.mu.RUnlock()
	if ok {
		return entry.value, entry.found, nil
	}

	value, found, err := r.next.Resolve(name)
	if err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.known[name]; ok {
		return existing.value, existing.found, nil
	}
	r.known[name] = memoEntry{value: value, found: found}
	return value, found, nil
}

// Names implements part of the Resolver interface.
func (r *MemoResolver) Names() []string {
	return r.next.Names()
}
