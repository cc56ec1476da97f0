package resolver

// MapResolver implements Resolver over a fixed mapping of names to values.
type MapResolver struct {
	entries map[string]any
}

// NewMapResolver constructs a MapResolver.  The entries are copied; values are
// opaque and returned unchanged.
func NewMapResolver(entries map[string]any) *MapResolver {
	copied := make(map[string]any, len(entries))
	for name, value := range entries {
		copied[name] = value
	}
	return &MapResolver{entries: copied}
}

// Resolve implements the Resolver interface
func (r *MapResolver) Resolve(name string) (any, bool, error) {
	value, ok := r.entries[name]
	return value, ok, nil
}

// Names implements the Resolver interface
func (r *MapResolver) Names() []string {
	return sortedKeys(r.entries)
}
