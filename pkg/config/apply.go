package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/stackb/nsproxy/pkg/host"
	"github.com/stackb/nsproxy/pkg/namespace"
	"github.com/stackb/nsproxy/pkg/procutil"
	"github.com/stackb/nsproxy/pkg/resolver"
)

// Apply registers every declared namespace with im, in order.  It stops at
// the first declaration that cannot be built; namespaces registered before it
// stay registered.
func (c *Config) Apply(im *namespace.Importer, logger zerolog.Logger) error {
	for _, ns := range c.Namespaces {
		r, err := c.newResolver(im, ns, logger)
		if err != nil {
			return fmt.Errorf("namespace %q: %w", ns.Name, err)
		}
		if err := im.Install(ns.Name, r); err != nil {
			return fmt.Errorf("namespace %q: %w", ns.Name, err)
		}
		logger.Debug().
			Str("namespace", ns.Name).
			Strs("source", ns.sources()).
			Msg("declared namespace")
	}
	return nil
}

func (c *Config) newResolver(im *namespace.Importer, ns *Namespace, logger zerolog.Logger) (resolver.Resolver, error) {
	r, err := c.newSourceResolver(im, ns, logger)
	if err != nil {
		return nil, err
	}
	if len(ns.Include) > 0 || len(ns.Exclude) > 0 {
		if r, err = resolver.NewFilterResolver(r, ns.Include, ns.Exclude); err != nil {
			return nil, err
		}
	}
	if ns.Memoize {
		r = resolver.NewMemoResolver(r)
	}
	return r, nil
}

func (c *Config) newSourceResolver(im *namespace.Importer, ns *Namespace, logger zerolog.Logger) (resolver.Resolver, error) {
	switch {
	case ns.Values != nil:
		return resolver.NewMapResolver(ns.Values), nil
	case ns.Env:
		return newEnvResolver(ns.Prefix), nil
	case ns.Alias != "":
		target, err := im.Import(ns.Alias)
		if err != nil {
			return nil, err
		}
		return resolver.NewNamespaceProxyResolver(target), nil
	case len(ns.Chain) > 0:
		chain := make([]resolver.Resolver, len(ns.Chain))
		for i, name := range ns.Chain {
			member, err := im.Import(name)
			if err != nil {
				return nil, err
			}
			chain[i] = resolver.NewNamespaceProxyResolver(member)
		}
		return resolver.NewChainResolver(chain...)
	case ns.Module != "":
		return c.newModuleResolver(im, ns, logger)
	case ns.Proto != nil:
		return newProtoResolver(ns.Proto)
	}
	return nil, fmt.Errorf("no namespace source")
}

// newEnvResolver resolves a symbol to the value of the environment variable
// prefix+symbol, read at the time of the lookup.
func newEnvResolver(prefix string) resolver.Resolver {
	env := resolver.NewFuncResolver(func(name string) (any, bool, error) {
		value, ok := procutil.LookupEnv(procutil.EnvVar(name))
		return value, ok, nil
	}, func() []string {
		return procutil.EnvNames("")
	})
	if prefix == "" {
		return env
	}
	return resolver.NewPrefixResolver(prefix, env)
}

func (c *Config) newModuleResolver(im *namespace.Importer, ns *Namespace, logger zerolog.Logger) (resolver.Resolver, error) {
	filename := ns.Module
	if !filepath.IsAbs(filename) && c.dir != "" {
		filename = filepath.Join(c.dir, filename)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	interp := host.NewInterpreter(im, func(format string, args ...interface{}) {
		logger.Info().Str("module", ns.Module).Msgf(format, args...)
	})
	module, err := interp.ExecModule(ns.Name, filename, f)
	if err != nil {
		return nil, err
	}
	return resolver.NewNamespaceProxyResolver(host.NewStarlarkNamespace(module)), nil
}

func newProtoResolver(p *Proto) (resolver.Resolver, error) {
	mt, err := protoregistry.GlobalTypes.FindMessageByName(protoreflect.FullName(p.Type))
	if err != nil {
		return nil, fmt.Errorf("proto type %q: %w", p.Type, err)
	}
	msg := mt.New().Interface()
	if p.JSON != "" {
		if err := protojson.Unmarshal([]byte(p.JSON), msg); err != nil {
			return nil, fmt.Errorf("proto type %q: %w", p.Type, err)
		}
	}
	return resolver.NewMessageResolver(msg), nil
}
