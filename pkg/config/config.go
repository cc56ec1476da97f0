// Package config declares virtual namespaces in a YAML document and registers
// them with an Importer.
//
//	namespaces:
//	  - name: mymath
//	    values: {PI: 3.14159, E: 2.71828}
//	  - name: shell
//	    env: true
//	    prefix: NSPROXY_
//	  - name: consts
//	    alias: mymath
//	    include: ["P*"]
//	  - name: math2
//	    chain: [consts, mymath]
//	    memoize: true
//	  - name: lib
//	    module: lib.star
//	  - name: epoch
//	    proto:
//	      type: google.protobuf.Timestamp
//	      json: '"1970-01-01T00:00:00Z"'
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is a list of namespace declarations, registered in order.
type Config struct {
	Namespaces []*Namespace `yaml:"namespaces"`

	// dir is the directory module paths are relative to.
	dir string
}

// Namespace declares one namespace.  Exactly one of Values, Env, Alias,
// Chain, Module or Proto must be set.
type Namespace struct {
	// Name is the (possibly dotted) namespace name.
	Name string `yaml:"name"`
	// Values is a fixed symbol table.
	Values map[string]any `yaml:"values,omitempty"`
	// Env exposes environment variables.
	Env bool `yaml:"env,omitempty"`
	// Prefix limits Env to variables with this prefix and trims it from
	// symbol names.
	Prefix string `yaml:"prefix,omitempty"`
	// Alias re-exports another namespace.
	Alias string `yaml:"alias,omitempty"`
	// Chain searches other namespaces in order.
	Chain []string `yaml:"chain,omitempty"`
	// Module is a Starlark file whose globals become the symbols.
	Module string `yaml:"module,omitempty"`
	// Proto exposes the fields of a protobuf message.
	Proto *Proto `yaml:"proto,omitempty"`
	// Include and Exclude filter the visible symbol names with doublestar
	// patterns.
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
	// Memoize remembers every answer of the namespace source, absent names
	// included.
	Memoize bool `yaml:"memoize,omitempty"`
}

// Proto names a registered message type and its protojson encoding.
type Proto struct {
	Type string `yaml:"type"`
	JSON string `yaml:"json,omitempty"`
}

// Parse decodes and validates a YAML config.  Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadFile reads and parses a config file.  Module paths in the file are
// relative to its directory.
func ReadFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	cfg.dir = filepath.Dir(filename)
	return cfg, nil
}

// Validate checks the declarations without registering anything: names are
// non-empty and unique, each declaration has exactly one source, and aliases
// and chains do not reference namespaces declared later in the file.
func (c *Config) Validate() error {
	declared := make(map[string]int, len(c.Namespaces))
	for i, ns := range c.Namespaces {
		if ns == nil || ns.Name == "" {
			return fmt.Errorf("namespaces[%d]: name is required", i)
		}
		if _, ok := declared[ns.Name]; ok {
			return fmt.Errorf("namespace %q: declared more than once", ns.Name)
		}
		declared[ns.Name] = i
	}
	for i, ns := range c.Namespaces {
		if err := ns.validate(); err != nil {
			return fmt.Errorf("namespace %q: %w", ns.Name, err)
		}
		for _, ref := range ns.references() {
			if j, ok := declared[ref]; ok && j >= i {
				return fmt.Errorf("namespace %q: references %q before it is declared", ns.Name, ref)
			}
		}
	}
	return nil
}

func (ns *Namespace) validate() error {
	switch n := len(ns.sources()); n {
	case 0:
		return errors.New("one of values, env, alias, chain, module or proto is required")
	case 1:
	default:
		return fmt.Errorf("only one of values, env, alias, chain, module or proto may be set, got %v", ns.sources())
	}
	if ns.Prefix != "" && !ns.Env {
		return errors.New("prefix requires env")
	}
	for _, member := range ns.Chain {
		if member == "" {
			return errors.New("chain member names must not be empty")
		}
	}
	if ns.Proto != nil && ns.Proto.Type == "" {
		return errors.New("proto type is required")
	}
	return nil
}

func (ns *Namespace) sources() []string {
	var sources []string
	if ns.Values != nil {
		sources = append(sources, "values")
	}
	if ns.Env {
		sources = append(sources, "env")
	}
	if ns.Alias != "" {
		sources = append(sources, "alias")
	}
	if len(ns.Chain) > 0 {
		sources = append(sources, "chain")
	}
	if ns.Module != "" {
		sources = append(sources, "module")
	}
	if ns.Proto != nil {
		sources = append(sources, "proto")
	}
	return sources
}

func (ns *Namespace) references() []string {
	if ns.Alias != "" {
		return []string{ns.Alias}
	}
	return ns.Chain
}
