package resolver

import "sort"

// ChainResolver implements Resolver over a chain of resolvers.  Members are
// consulted in order and the first to find a name wins.
type ChainResolver struct {
	chain []Resolver
}

// NewChainResolver constructs a ChainResolver.  It is an error to supply an
// empty chain or a nil member.
func NewChainResolver(chain ...Resolver) (*ChainResolver, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	for _, next := range chain {
		if next == nil {
			return nil, ErrNilResolver
		}
	}
	return &ChainResolver{
		chain: append([]Resolver(nil), chain...),
	}, nil
}

// Resolve implements the Resolver interface.  A member that faults stops the
// chain and its error is returned as-is.
func (r *ChainResolver) Resolve(name string) (any, bool, error) {
	for _, next := range r.chain {
		value, ok, err := next.Resolve(name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return value, true, nil
		}
	}
	return nil, false, nil
}

// Names implements the Resolver interface.  It returns the union of all
// member names.
func (r *ChainResolver) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, next := range r.chain {
		for _, name := range next.Names() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of resolvers in the chain.
func (r *ChainResolver) Len() int {
	return len(r.chain)
}
