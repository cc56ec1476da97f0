package namespace

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/stackb/nsproxy/pkg/registry"
	"github.com/stackb/nsproxy/pkg/resolver"
)

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithImporterLogger sets the logger used for debug tracing.
func WithImporterLogger(logger zerolog.Logger) ImporterOption {
	return func(im *Importer) {
		im.logger = logger
	}
}

// Importer is the bridge a host environment uses to turn a namespace
// reference into a LazyNamespace.  It materializes one LazyNamespace per
// registration and hands out the same instance until the name is rebound;
// namespaces handed out before a rebinding keep their original resolver.
//
// Namespaces materialized by an Importer resolve an unknown symbol "s" in
// namespace "n" to the registered namespace "n.s", when there is one.
type Importer struct {
	registry *registry.Registry
	logger   zerolog.Logger

	mu     sync.Mutex
	loaded map[string]loadedNamespace
}

type loadedNamespace struct {
	ns       *LazyNamespace
	revision uint64
}

// NewImporter constructs an Importer over reg, or over the global registry
// when reg is nil.
func NewImporter(reg *registry.Registry, options ...ImporterOption) *Importer {
	if reg == nil {
		reg = registry.GlobalRegistry()
	}
	im := &Importer{
		registry: reg,
		logger:   zerolog.Nop(),
		loaded:   make(map[string]loadedNamespace),
	}
	for _, opt := range options {
		opt(im)
	}
	return im
}

// Registry returns the registry namespaces are imported from.
func (im *Importer) Registry() *registry.Registry {
	return im.registry
}

// Install binds name to r in the underlying registry.
func (im *Importer) Install(name string, r resolver.Resolver) error {
	return im.registry.Register(name, r)
}

// Import returns the LazyNamespace for name.  An unknown name produces a
// *NamespaceNotRegisteredError.
func (im *Importer) Import(name string) (*LazyNamespace, error) {
	reg, ok := im.registry.Lookup(name)
	if !ok {
		return nil, &NamespaceNotRegisteredError{Namespace: name}
	}
	return im.materialize(name, reg), nil
}

// materialize returns the LazyNamespace for reg, creating it unless one of
// the same or a later revision is already loaded.
func (im *Importer) materialize(name string, reg registry.Registration) *LazyNamespace {
	im.mu.Lock()
	defer im.mu.Unlock()

	// A newer namespace may have been stored since reg was looked up.
	if loaded, ok := im.loaded[name]; ok && loaded.revision >= reg.Revision {
		return loaded.ns
	}

	ns := New(name, reg.Resolver, WithFallback(im.importChild))
	im.loaded[name] = loadedNamespace{ns: ns, revision: reg.Revision}

	im.logger.Debug().
		Str("namespace", name).
		Uint64("revision", reg.Revision).
		Msg("materialized namespace")

	return ns
}

// importChild is the FallbackFunc that exposes registered sub-namespaces as
// members of their parent.
func (im *Importer) importChild(parent, symbol string) (any, bool, error) {
	child := parent + "." + symbol
	if _, ok := im.registry.Find(child); !ok {
		return nil, false, nil
	}
	ns, err := im.Import(child)
	if err != nil {
		return nil, false, err
	}
	return ns, true, nil
}
