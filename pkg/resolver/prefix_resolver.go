package resolver

import (
	"strings"
)

// PrefixResolver implements Resolver over the names of the next resolver that
// start with a prefix.  The name "X" is resolved as prefix+"X" by the next
// resolver, and Names reports the matching names with the prefix trimmed.
type PrefixResolver struct {
	prefix string
	next   Resolver
}

func NewPrefixResolver(prefix string, next Resolver) *PrefixResolver {
	return &PrefixResolver{
		prefix: prefix,
		next:   next,
	}
}

// Resolve implements part of the Resolver interface.
func (r *PrefixResolver) Resolve(name string) (any, bool, error) {
	return r.next.Resolve(r.prefix + name)
}

// Names implements part of the Resolver interface.
func (r *PrefixResolver) Names() []string {
	var names []string
	for _, name := range r.next.Names() {
		if rest, ok := strings.CutPrefix(name, r.prefix); ok && rest != "" {
			names = append(names, rest)
		}
	}
	return names
}
