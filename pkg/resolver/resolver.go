package resolver

import (
	"errors"
	"sort"
)

var (
	// ErrSymbolNotFound is the error value reported when a name cannot be
	// resolved within a namespace.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrEmptyChain is returned when a ChainResolver is constructed without
	// any members.
	ErrEmptyChain = errors.New("chain resolver requires at least one member")

	// ErrNilResolver is returned when a nil Resolver is supplied where one is
	// required.
	ErrNilResolver = errors.New("resolver must not be nil")
)

// Resolver produces the value of a named symbol on demand.
//
// An absent name is reported as (nil, false, nil); absence is a normal result
// and must never be returned as an error.  A non-nil error is a fault raised
// while producing the value (for example by the wrapped object) and callers
// must propagate it unchanged.
//
// Implementations are expected to return quickly.  A resolver that wraps a
// member which blocks (a remote getter, say) blocks its caller; that contract
// belongs to the resolver author.
type Resolver interface {
	// Resolve returns the value for name, and whether it was found.
	Resolve(name string) (value any, found bool, err error)

	// Names returns a best-effort, sorted list of the names that can
	// currently be resolved.  Resolvers without an enumerable backing store
	// may return nil.
	Names() []string
}

// Namespace is an already-materialized, live collection of members.  It is
// the target of a NamespaceProxyResolver.
type Namespace interface {
	// Member returns the current value of the named member.
	Member(name string) (value any, found bool, err error)
	// MemberNames returns the current member names.
	MemberNames() []string
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
