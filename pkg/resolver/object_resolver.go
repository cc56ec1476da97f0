package resolver

import (
	"fmt"
	"go/token"
	"reflect"
	"sort"
	"strings"
)

// ReservedPrefix marks members used for internal bookkeeping of a target
// object (for example the XXX_ fields of legacy generated protobuf structs).
// Such members are never exposed by an ObjectResolver.
const ReservedPrefix = "XXX_"

// ObjectResolver implements Resolver over the exported methods and fields of
// a single Go value.  Methods are returned as bound method values, fields as
// their current value.
type ObjectResolver struct {
	target reflect.Value
}

// NewObjectResolver constructs an ObjectResolver.  The target is not copied:
// pass a pointer to observe later field changes and to expose
// pointer-receiver methods.
func NewObjectResolver(target any) *ObjectResolver {
	return &ObjectResolver{target: reflect.ValueOf(target)}
}

// Resolve implements the Resolver interface
func (r *ObjectResolver) Resolve(name string) (any, bool, error) {
	if !r.target.IsValid() || !isAttributeName(name) {
		return nil, false, nil
	}

	if method := r.target.MethodByName(name); method.IsValid() {
		return method.Interface(), true, nil
	}

	st, ok := structValue(r.target)
	if !ok {
		return nil, false, nil
	}
	field, ok := exportedField(st.Type(), name)
	if !ok {
		return nil, false, nil
	}
	value, err := st.FieldByIndexErr(field.Index)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s.%s: %w", st.Type(), name, err)
	}
	return value.Interface(), true, nil
}

// Names implements the Resolver interface
func (r *ObjectResolver) Names() []string {
	if !r.target.IsValid() {
		return nil
	}
	seen := make(map[string]struct{})

	t := r.target.Type()
	for i := 0; i < t.NumMethod(); i++ {
		if name := t.Method(i).Name; isAttributeName(name) {
			seen[name] = struct{}{}
		}
	}

	if sv, ok := structValue(r.target); ok {
		st := sv.Type()
		for _, field := range reflect.VisibleFields(st) {
			if !isAttributeName(field.Name) {
				continue
			}
			if _, ok := exportedField(st, field.Name); ok {
				seen[field.Name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isAttributeName(name string) bool {
	if name == "" || strings.HasPrefix(name, ReservedPrefix) {
		return false
	}
	return token.IsExported(name)
}

// structValue dereferences pointers and interfaces down to a struct value.
func structValue(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

// exportedField looks up a (possibly promoted) exported field.  The embedded
// structs along the path may themselves be unexported: like a Go selector,
// reflection can still read an exported field promoted through them.
func exportedField(st reflect.Type, name string) (reflect.StructField, bool) {
	field, ok := st.FieldByName(name)
	if !ok || !field.IsExported() {
		return reflect.StructField{}, false
	}
	return field, true
}
