package namespace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/stackb/nsproxy/pkg/resolver"
)

// FallbackFunc is consulted by a LazyNamespace when its resolver does not
// find a symbol.  Results from a fallback are not cached.
type FallbackFunc func(namespace, symbol string) (value any, found bool, err error)

// Option configures a LazyNamespace.
type Option func(*LazyNamespace)

// WithFallback sets the function consulted for symbols the resolver does not
// know.
func WithFallback(fallback FallbackFunc) Option {
	return func(ns *LazyNamespace) {
		ns.fallback = fallback
	}
}

// LazyNamespace is the object a consumer queries once a namespace binding has
// been found.  It asks the bound resolver for each symbol on first use and
// caches successful answers for its lifetime: a symbol that was returned once
// is returned identically on every later Get.  The cache never evicts.
//
// A LazyNamespace is safe for concurrent use.  Two goroutines racing to
// resolve the same symbol may both call the resolver; the first to store wins
// and both receive equivalent values.
type LazyNamespace struct {
	name     string
	resolver resolver.Resolver
	fallback FallbackFunc

	mu    sync.Mutex
	cache map[string]any
}

// New constructs a LazyNamespace named name over the given resolver.
func New(name string, r resolver.Resolver, options ...Option) *LazyNamespace {
	ns := &LazyNamespace{
		name:     name,
		resolver: r,
		cache:    make(map[string]any),
	}
	for _, opt := range options {
		opt(ns)
	}
	return ns
}

// Name returns the namespace name.
func (ns *LazyNamespace) Name() string {
	return ns.name
}

// Resolver returns the resolver the namespace was bound to.
func (ns *LazyNamespace) Resolver() resolver.Resolver {
	return ns.resolver
}

// Get returns the value of symbol.  Unknown symbols produce a
// *SymbolNotFoundError; resolver faults are returned unchanged and nothing is
// cached for them.
func (ns *LazyNamespace) Get(symbol string) (any, error) {
	ns.mu.Lock()
	value, ok := ns.cache[symbol]
	ns.mu.Unlock()
	if ok {
		return value, nil
	}

	if ns.resolver == nil {
		return nil, &SymbolNotFoundError{Namespace: ns.name, Symbol: symbol}
	}
	value, found, err := ns.resolver.Resolve(symbol)
	if err != nil {
		return nil, err
	}
	if !found {
		return ns.getFallback(symbol)
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()
	if existing, ok := ns.cache[symbol]; ok {
		return existing, nil
	}
	ns.cache[symbol] = value
	return value, nil
}

func (ns *LazyNamespace) getFallback(symbol string) (any, error) {
	if ns.fallback != nil {
		value, found, err := ns.fallback(ns.name, symbol)
		if err != nil {
			return nil, err
		}
		if found {
			return value, nil
		}
	}
	return nil, &SymbolNotFoundError{Namespace: ns.name, Symbol: symbol}
}

// Names returns the names the resolver can currently produce.  It does not
// depend on what has been cached.
func (ns *LazyNamespace) Names() []string {
	if ns.resolver == nil {
		return nil
	}
	return ns.resolver.Names()
}

// Export resolves every enumerable name and returns the values keyed by name.
// It stops at the first fault.
func (ns *LazyNamespace) Export() (map[string]any, error) {
	names := ns.Names()
	exports := make(map[string]any, len(names))
	for _, name := range names {
		value, err := ns.Get(name)
		if err != nil {
			return nil, err
		}
		exports[name] = value
	}
	return exports, nil
}

// Len returns the number of cached symbols.
func (ns *LazyNamespace) Len() int {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return len(ns.cache)
}

// Member implements part of the resolver.Namespace interface, so that a
// LazyNamespace can be re-exported under another name by a
// resolver.NamespaceProxyResolver.
func (ns *LazyNamespace) Member(symbol string) (any, bool, error) {
	value, err := ns.Get(symbol)
	if errors.Is(err, resolver.ErrSymbolNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// MemberNames implements part of the resolver.Namespace interface.
func (ns *LazyNamespace) MemberNames() []string {
	return ns.Names()
}

// String implements fmt.Stringer
func (ns *LazyNamespace) String() string {
	return fmt.Sprintf("<namespace %s>", ns.name)
}
