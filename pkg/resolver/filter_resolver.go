package resolver

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterResolver implements Resolver by restricting another resolver to the
// names matching a set of glob patterns.  A name is visible when it matches
// at least one include pattern (or there are none) and no exclude pattern.
type FilterResolver struct {
	next    Resolver
	include []string
	exclude []string
}

// NewFilterResolver constructs a FilterResolver.  Patterns use doublestar
// syntax, e.g. "get_*" or "{PI,E}".
func NewFilterResolver(next Resolver, include, exclude []string) (*FilterResolver, error) {
	if next == nil {
		return nil, ErrNilResolver
	}
	for _, pattern := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid name pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return &FilterResolver{
		next:    next,
		include: include,
		exclude: exclude,
	}, nil
}

// Resolve implements the Resolver interface
func (r *FilterResolver) Resolve(name string) (any, bool, error) {
	if !r.Visible(name) {
		return nil, false, nil
	}
	return r.next.Resolve(name)
}

// Names implements the Resolver interface
func (r *FilterResolver) Names() []string {
	var names []string
	for _, name := range r.next.Names() {
		if r.Visible(name) {
			names = append(names, name)
		}
	}
	return names
}

// Visible reports whether name passes the include and exclude patterns.
func (r *FilterResolver) Visible(name string) bool {
	if len(r.include) > 0 && !matchAny(r.include, name) {
		return false
	}
	return !matchAny(r.exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		// patterns were validated on construction
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
