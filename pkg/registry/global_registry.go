package registry

import "github.com/stackb/nsproxy/pkg/resolver"

var globalRegistry = New()

// GlobalRegistry returns the process-wide registry.  It is empty at process
// start and lives for the lifetime of the process.  Tests should construct
// isolated registries with New instead.
func GlobalRegistry() *Registry {
	return globalRegistry
}

// Register binds name to res in the global registry.
func Register(name string, res resolver.Resolver) error {
	return globalRegistry.Register(name, res)
}

// Find looks up name in the global registry.
func Find(name string) (resolver.Resolver, bool) {
	return globalRegistry.Find(name)
}
