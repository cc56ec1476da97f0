package namespace

import (
	"errors"
	"fmt"

	"github.com/stackb/nsproxy/pkg/resolver"
)

// ErrNamespaceNotRegistered is the error value reported when importing a
// namespace that has no registration.  Callers are expected to fall back to
// their normal lookup path.
var ErrNamespaceNotRegistered = errors.New("namespace not registered")

// SymbolNotFoundError is returned by LazyNamespace.Get when the bound resolver
// cannot produce the requested symbol.  It matches resolver.ErrSymbolNotFound
// with errors.Is.
type SymbolNotFoundError struct {
	// Namespace is the name of the namespace that was searched.
	Namespace string
	// Symbol is the name that could not be resolved.
	Symbol string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("namespace %q has no symbol %q", e.Namespace, e.Symbol)
}

func (e *SymbolNotFoundError) Unwrap() error {
	return resolver.ErrSymbolNotFound
}

// NamespaceNotRegisteredError is returned by Importer.Import for an unknown
// namespace name.  It matches ErrNamespaceNotRegistered with errors.Is.
type NamespaceNotRegisteredError struct {
	Namespace string
}

func (e *NamespaceNotRegisteredError) Error() string {
	return fmt.Sprintf("namespace %q is not registered", e.Namespace)
}

func (e *NamespaceNotRegisteredError) Unwrap() error {
	return ErrNamespaceNotRegistered
}
