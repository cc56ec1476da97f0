package host

import (
	"errors"
	"sort"

	"go.starlark.net/starlark"

	"github.com/stackb/nsproxy/pkg/resolver"
)

// StarlarkNamespace adapts a Starlark value with attributes, typically a
// module produced by ExecModule or a struct, to resolver.Namespace.  Member
// values are converted to Go with FromStarlark.
type StarlarkNamespace struct {
	value starlark.HasAttrs
}

var _ resolver.Namespace = (*StarlarkNamespace)(nil)

// NewStarlarkNamespace returns a namespace over the attributes of value.
func NewStarlarkNamespace(value starlark.HasAttrs) *StarlarkNamespace {
	return &StarlarkNamespace{value: value}
}

// Member implements part of the resolver.Namespace interface.
func (s *StarlarkNamespace) Member(name string) (any, bool, error) {
	value, err := s.value.Attr(name)
	if err != nil {
		var noSuchAttr starlark.NoSuchAttrError
		if errors.As(err, &noSuchAttr) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if value == nil {
		return nil, false, nil
	}
	return FromStarlark(value), true, nil
}

// MemberNames implements part of the resolver.Namespace interface.
func (s *StarlarkNamespace) MemberNames() []string {
	names := append([]string(nil), s.value.AttrNames()...)
	sort.Strings(names)
	return names
}
