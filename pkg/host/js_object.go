package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/stackb/nsproxy/pkg/namespace"
	"github.com/stackb/nsproxy/pkg/resolver"
)

// jsNamespace is a goja.DynamicObject whose properties are the symbols of a
// LazyNamespace.  Properties are read-only; an unknown property reads as
// undefined and a resolver fault is thrown as a GoError.
type jsNamespace struct {
	vm *goja.Runtime
	ns *namespace.LazyNamespace
}

var _ goja.DynamicObject = (*jsNamespace)(nil)

// NewJSObject returns a JavaScript object over ns for use in vm.
func NewJSObject(vm *goja.Runtime, ns *namespace.LazyNamespace) *goja.Object {
	return vm.NewDynamicObject(&jsNamespace{vm: vm, ns: ns})
}

// Get implements part of the goja.DynamicObject interface.
func (o *jsNamespace) Get(key string) goja.Value {
	value, err := o.ns.Get(key)
	if errors.Is(err, resolver.ErrSymbolNotFound) {
		return nil
	}
	if err != nil {
		panic(o.vm.NewGoError(err))
	}
	if child, ok := value.(*namespace.LazyNamespace); ok {
		return NewJSObject(o.vm, child)
	}
	return o.vm.ToValue(value)
}

// Set implements part of the goja.DynamicObject interface.
func (o *jsNamespace) Set(key string, val goja.Value) bool {
	return false
}

// Has implements part of the goja.DynamicObject interface.
func (o *jsNamespace) Has(key string) bool {
	_, found, err := o.ns.Member(key)
	return err == nil && found
}

// Delete implements part of the goja.DynamicObject interface.
func (o *jsNamespace) Delete(key string) bool {
	return false
}

// Keys implements part of the goja.DynamicObject interface.
func (o *jsNamespace) Keys() []string {
	return o.ns.Names()
}

// NewJSRuntime returns a goja runtime in which every registered top-level
// namespace is a global object, and require(name) returns the object for any
// registered namespace, dotted names included.
func NewJSRuntime(im *namespace.Importer) (*goja.Runtime, error) {
	vm := goja.New()
	for _, name := range im.Registry().Names() {
		if strings.Contains(name, ".") {
			continue
		}
		ns, err := im.Import(name)
		if err != nil {
			return nil, err
		}
		if err := vm.Set(name, NewJSObject(vm, ns)); err != nil {
			return nil, err
		}
	}
	err := vm.Set("require", func(name string) *goja.Object {
		ns, err := im.Import(name)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return NewJSObject(vm, ns)
	})
	if err != nil {
		return nil, err
	}
	return vm, nil
}

// RunJS runs a JavaScript program against the namespaces of im and returns
// the exported value of its last statement.
func RunJS(im *namespace.Importer, filename, src string) (any, error) {
	program, err := goja.Compile(filename, src, false)
	if err != nil {
		return nil, err
	}
	vm, err := NewJSRuntime(im)
	if err != nil {
		return nil, err
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}

// EvalJS evaluates a single JavaScript expression.
func EvalJS(im *namespace.Importer, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	return RunJS(im, "", fmt.Sprintf("(function(){ return (%s); })()", expression))
}
