package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"

	"github.com/stackb/nsproxy/pkg/resolver"
)

// ErrEmptyNamespaceName is returned when registering under an empty name.
var ErrEmptyNamespaceName = errors.New("namespace name must not be empty")

// Registration binds a namespace name to a resolver.  Revision increases every
// time the name is (re)bound, so holders of a Registration can tell whether
// it has been replaced.
type Registration struct {
	Name     string
	Resolver resolver.Resolver
	Revision uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug tracing of registrations.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry maps namespace names to resolvers.  Names are dotted paths
// ("api", "api.v1") stored in a path trie so that the children of a namespace
// can be enumerated.  It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	known    *trie.PathTrie
	revision uint64
	logger   zerolog.Logger
}

// New constructs an empty Registry.
func New(options ...Option) *Registry {
	r := &Registry{
		known: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: namespaceSegmenter,
		}),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Register binds name to the given resolver, replacing any previous binding.
func (r *Registry) Register(name string, res resolver.Resolver) error {
	if name == "" {
		return ErrEmptyNamespaceName
	}
	if res == nil {
		return resolver.ErrNilResolver
	}

	r.mu.Lock()
	r.revision++
	reg := &Registration{Name: name, Resolver: res, Revision: r.revision}
	isNew := r.known.Put(name, reg)
	r.mu.Unlock()

	r.logger.Debug().
		Str("namespace", name).
		Uint64("revision", reg.Revision).
		Bool("rebind", !isNew).
		Msg("registered namespace")
	return nil
}

// Find returns the resolver bound to name.  If not known `(nil, false)` is
// returned.
func (r *Registry) Find(name string) (resolver.Resolver, bool) {
	reg, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return reg.Resolver, true
}

// Lookup returns the current Registration for name.
func (r *Registry) Lookup(name string) (Registration, bool) {
	if name == "" {
		return Registration{}, false
	}
	r.mu.RLock()
	value := r.known.Get(name)
	r.mu.RUnlock()
	if value == nil {
		return Registration{}, false
	}
	return *value.(*Registration), true
}

// Names returns all registered namespace names, sorted.
func (r *Registry) Names() []string {
	var names []string
	r.walk(func(reg *Registration) {
		names = append(names, reg.Name)
	})
	sort.Strings(names)
	return names
}

// Children returns the names of the registered namespaces directly below
// parent.  For example, with "api", "api.v1" and "api.v1.users" registered,
// Children("api") is ["api.v1"].
func (r *Registry) Children(parent string) []string {
	if parent == "" {
		return nil
	}
	prefix := parent + "."
	var names []string
	r.walk(func(reg *Registration) {
		rest, ok := strings.CutPrefix(reg.Name, prefix)
		if ok && rest != "" && !strings.Contains(rest, ".") {
			names = append(names, reg.Name)
		}
	})
	sort.Strings(names)
	return names
}

func (r *Registry) walk(fn func(*Registration)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.known.Walk(func(key string, value interface{}) error {
		fn(value.(*Registration))
		return nil
	})
}

// namespaceSegmenter segments dotted namespace names.  For example, "a.b.c"
// -> ("a", 1), (".b", 3), (".c", -1) in successive calls.  It does not allocate
// any heap memory.
func namespaceSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
