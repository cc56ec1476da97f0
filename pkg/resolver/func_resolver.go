package resolver

import "sort"

// ResolveFunc resolves a single name.  It follows the Resolver.Resolve
// contract.
type ResolveFunc func(name string) (value any, found bool, err error)

// FuncResolver adapts a plain function to the Resolver interface.
type FuncResolver struct {
	resolve ResolveFunc
	names   func() []string
}

// NewFuncResolver constructs a FuncResolver.  The names function is optional;
// when nil the resolver is treated as non-enumerable.
func NewFuncResolver(resolve ResolveFunc, names func() []string) *FuncResolver {
	return &FuncResolver{resolve: resolve, names: names}
}

// Resolve implements the Resolver interface
func (r *FuncResolver) Resolve(name string) (any, bool, error) {
	if r.resolve == nil {
		return nil, false, nil
	}
	return r.resolve(name)
}

// Names implements the Resolver interface
func (r *FuncResolver) Names() []string {
	if r.names == nil {
		return nil
	}
	names := append([]string(nil), r.names()...)
	sort.Strings(names)
	return names
}
