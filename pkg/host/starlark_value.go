package host

import (
	"fmt"
	"math"
	"reflect"

	"go.starlark.net/starlark"

	"github.com/stackb/nsproxy/pkg/namespace"
	"github.com/stackb/nsproxy/pkg/resolver"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ToStarlark converts a resolved Go value into a Starlark value.  Scalars,
// slices and string-keyed maps are copied; functions become builtins;
// namespaces become modules; any other value is exposed as an object whose
// attributes are the value's exported methods and fields.
func ToStarlark(value any) (starlark.Value, error) {
	return toStarlark("", value)
}

// toStarlark is ToStarlark with the name a function value is bound to, used
// to label builtins in error messages.
func toStarlark(name string, value any) (starlark.Value, error) {
	switch v := value.(type) {
	case nil:
		return starlark.None, nil
	case starlark.Value:
		return v, nil
	case *namespace.LazyNamespace:
		return NewModule(v), nil
	case []byte:
		return starlark.Bytes(v), nil
	}
	return toStarlarkValue(name, reflect.ValueOf(value))
}

func toStarlarkValue(name string, rv reflect.Value) (starlark.Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return starlark.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return starlark.Float(rv.Float()), nil
	case reflect.String:
		return starlark.String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return starlark.None, nil
		}
		elems := make([]starlark.Value, rv.Len())
		for i := range elems {
			elem, err := ToStarlark(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		dict := starlark.NewDict(rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			elem, err := ToStarlark(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlark.String(iter.Key().String()), elem); err != nil {
				return nil, err
			}
		}
		return dict, nil
	case reflect.Func:
		if rv.IsNil() {
			return starlark.None, nil
		}
		if name == "" {
			name = rv.Type().String()
		}
		return newBuiltin(name, rv), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return starlark.None, nil
		}
	case reflect.Invalid:
		return starlark.None, nil
	}
	return newObject(rv.Interface()), nil
}

// newObject exposes an arbitrary Go value as a Starlark value with attributes.
func newObject(target any) *Module {
	typeName := reflect.TypeOf(target).String()
	ns := namespace.New(typeName, resolver.NewObjectResolver(target))
	return &Module{ns: ns, kind: typeName, target: target}
}

// FromStarlark converts a Starlark value into a plain Go value.  Values with
// no Go counterpart (functions, modules) are returned as they are.
func FromStarlark(value starlark.Value) any {
	switch v := value.(type) {
	case nil, starlark.NoneType:
		return nil
	case starlark.Bool:
		return bool(v)
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i
		}
		return v.BigInt()
	case starlark.Float:
		return float64(v)
	case starlark.String:
		return string(v)
	case starlark.Bytes:
		return []byte(v)
	case *starlark.List:
		elems := make([]any, v.Len())
		for i := range elems {
			elems[i] = FromStarlark(v.Index(i))
		}
		return elems
	case starlark.Tuple:
		elems := make([]any, len(v))
		for i, elem := range v {
			elems[i] = FromStarlark(elem)
		}
		return elems
	case *starlark.Dict:
		m := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				key = item[0].String()
			}
			m[key] = FromStarlark(item[1])
		}
		return m
	case *Module:
		if v.target != nil {
			return v.target
		}
		return v.ns
	}
	return value
}

// newBuiltin wraps a Go function so that Starlark code can call it with
// positional arguments.  A trailing error result is reported as a Starlark
// error; remaining results are returned as a single value or a tuple.
func newBuiltin(name string, fn reflect.Value) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		in, err := callArgs(b.Name(), fn.Type(), args)
		if err != nil {
			return nil, err
		}
		return callResult(fn.Call(in))
	})
}

func callArgs(name string, fnType reflect.Type, args starlark.Tuple) ([]reflect.Value, error) {
	numIn := fnType.NumIn()
	fixed := numIn
	if fnType.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("%s: got %d arguments, want at least %d", name, len(args), fixed)
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("%s: got %d arguments, want %d", name, len(args), numIn)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var paramType reflect.Type
		if i < fixed {
			paramType = fnType.In(i)
		} else {
			paramType = fnType.In(numIn - 1).Elem()
		}
		rv, err := convertArg(FromStarlark(arg), paramType)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		in[i] = rv
	}
	return in, nil
}

func convertArg(value any, paramType reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch paramType.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func:
			return reflect.Zero(paramType), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use None as %s", paramType)
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(paramType) {
		return rv, nil
	}
	// int64 to string is a legal conversion in Go that yields a rune.
	if paramType.Kind() == reflect.String && rv.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), paramType)
	}
	if rv.Type().ConvertibleTo(paramType) {
		if !representable(rv, paramType) {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %s", value, paramType)
		}
		return rv.Convert(paramType), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), paramType)
}

// representable reports whether the numeric value rv converts to t without
// wrapping or truncation.
func representable(rv reflect.Value, t reflect.Type) bool {
	target := reflect.Zero(t)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return !target.OverflowInt(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			u := rv.Uint()
			return u <= math.MaxInt64 && !target.OverflowInt(int64(u))
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !target.OverflowInt(int64(f))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := rv.Int()
			return i >= 0 && !target.OverflowUint(uint64(i))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return !target.OverflowUint(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !target.OverflowUint(uint64(f))
		}
	case reflect.Float32:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return !target.OverflowFloat(rv.Float())
		}
	}
	return true
}

func callResult(out []reflect.Value) (starlark.Value, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return nil, err
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return starlark.None, nil
	case 1:
		return ToStarlark(out[0].Interface())
	}
	tuple := make(starlark.Tuple, len(out))
	for i, result := range out {
		value, err := ToStarlark(result.Interface())
		if err != nil {
			return nil, err
		}
		tuple[i] = value
	}
	return tuple, nil
}
