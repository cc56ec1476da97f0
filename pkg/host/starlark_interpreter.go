// Package host connects virtual namespaces to embedded languages: Starlark
// load statements and module values, goja objects and expr-lang environments.
package host

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/stackb/nsproxy/pkg/namespace"
)

// Reporter is implemented by *testing.T.
type Reporter func(format string, args ...interface{})

// LoadFunc is the signature of starlark.Thread.Load.
type LoadFunc func(thread *starlark.Thread, module string) (starlark.StringDict, error)

// Interpreter executes Starlark files against the namespaces of an Importer.
// A registered namespace can be used two ways:
//
//	load("api", "GetUser")   # copies the named symbols into the file
//	api.GetUser(1)           # top-level namespaces are predeclared as modules
type Interpreter struct {
	importer *namespace.Importer
	// Thread context
	thread *starlark.Thread
	// Global state of the last executed file
	globals starlark.StringDict
	// next handles load statements for unregistered modules
	next LoadFunc
}

// NewInterpreter constructs an Interpreter.  Output of the Starlark print
// builtin goes to reporter.
func NewInterpreter(im *namespace.Importer, reporter Reporter) *Interpreter {
	i := &Interpreter{
		importer: im,
		globals:  starlark.StringDict{},
	}
	i.thread = &starlark.Thread{
		Name: "nsproxy",
		Print: func(_ *starlark.Thread, msg string) {
			reporter("%s", msg)
		},
		Load: i.Load,
	}
	return i
}

// SetNextLoader sets the function that handles load statements naming a
// module that is not a registered namespace.
func (i *Interpreter) SetNextLoader(next LoadFunc) {
	i.next = next
}

// Load implements starlark.Thread.Load.  The exports of a namespace are its
// enumerable symbols plus its direct sub-namespaces.
func (i *Interpreter) Load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	ns, err := i.importer.Import(module)
	if err != nil {
		if errors.Is(err, namespace.ErrNamespaceNotRegistered) && i.next != nil {
			return i.next(thread, module)
		}
		return nil, err
	}
	return i.exports(ns)
}

func (i *Interpreter) exports(ns *namespace.LazyNamespace) (starlark.StringDict, error) {
	values, err := ns.Export()
	if err != nil {
		return nil, err
	}
	exports := make(starlark.StringDict, len(values))
	for name, value := range values {
		v, err := toStarlark(name, value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", ns.Name(), name, err)
		}
		exports[name] = v
	}
	for _, child := range i.importer.Registry().Children(ns.Name()) {
		childNs, err := i.importer.Import(child)
		if err != nil {
			return nil, err
		}
		exports[strings.TrimPrefix(child, ns.Name()+".")] = NewModule(childNs)
	}
	return exports, nil
}

// Predeclared returns a module value for every registered top-level
// namespace, keyed by namespace name.
func (i *Interpreter) Predeclared() (starlark.StringDict, error) {
	predeclared := starlark.StringDict{}
	for _, name := range i.importer.Registry().Names() {
		if strings.Contains(name, ".") {
			continue
		}
		ns, err := i.importer.Import(name)
		if err != nil {
			return nil, err
		}
		predeclared[name] = NewModule(ns)
	}
	return predeclared, nil
}

// GetGlobal returns a global of the last executed file, or nil.
func (i *Interpreter) GetGlobal(name string) starlark.Value {
	return i.globals[name]
}

// Exec executes a Starlark file and returns its globals.
func (i *Interpreter) Exec(filename string, src io.Reader) (starlark.StringDict, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	predeclared, err := i.Predeclared()
	if err != nil {
		return nil, err
	}
	globals, err := starlark.ExecFile(i.thread, filename, data, predeclared)
	if err != nil {
		return nil, err
	}
	i.globals = globals
	return globals, nil
}

// ExecModule executes a Starlark file and returns its frozen globals as a
// module value named name.  Wrapped in a StarlarkNamespace, the module can be
// registered as a namespace in its own right.
func (i *Interpreter) ExecModule(name, filename string, src io.Reader) (*starlarkstruct.Module, error) {
	globals, err := i.Exec(filename, src)
	if err != nil {
		return nil, err
	}
	globals.Freeze()
	return &starlarkstruct.Module{Name: name, Members: globals}, nil
}
