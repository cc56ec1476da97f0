package host

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/stackb/nsproxy/pkg/namespace"
	"github.com/stackb/nsproxy/pkg/resolver"
)

// Module is a Starlark value whose attributes are the symbols of a
// LazyNamespace.  Attributes are resolved when they are first accessed, so
// `api.GetUser(1)` asks the namespace for "GetUser" and nothing else.  An
// unknown attribute is reported by Starlark like any other missing field.
type Module struct {
	ns   *namespace.LazyNamespace
	kind string
	// target is set when the module wraps a plain Go value.
	target any
}

var (
	_ starlark.HasAttrs = (*Module)(nil)
)

// NewModule returns a Starlark module value over ns.
func NewModule(ns *namespace.LazyNamespace) *Module {
	return &Module{ns: ns, kind: "module"}
}

// Namespace returns the namespace the module reads from.
func (m *Module) Namespace() *namespace.LazyNamespace {
	return m.ns
}

// String implements part of the starlark.Value interface.
func (m *Module) String() string {
	if m.target != nil {
		return fmt.Sprintf("<%s>", m.kind)
	}
	return fmt.Sprintf("<module %q>", m.ns.Name())
}

// Type implements part of the starlark.Value interface.
func (m *Module) Type() string { return m.kind }

// Freeze implements part of the starlark.Value interface.  Module values are
// immutable from Starlark.
func (m *Module) Freeze() {}

// Truth implements part of the starlark.Value interface.
func (m *Module) Truth() starlark.Bool { return starlark.True }

// Hash implements part of the starlark.Value interface.
func (m *Module) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", m.kind)
}

// Attr implements part of the starlark.HasAttrs interface.
func (m *Module) Attr(name string) (starlark.Value, error) {
	value, err := m.ns.Get(name)
	if errors.Is(err, resolver.ErrSymbolNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toStarlark(name, value)
}

// AttrNames implements part of the starlark.HasAttrs interface.
func (m *Module) AttrNames() []string {
	return m.ns.Names()
}
