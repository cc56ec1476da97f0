package host

import (
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"

	"github.com/stackb/nsproxy/pkg/namespace"
)

// ExprEnv returns an expr-lang environment with one entry per named
// namespace, or per registered top-level namespace when names is empty.  Each
// entry is a map of the namespace's enumerable symbols; sub-namespaces appear
// as nested maps unless the parent has a symbol of the same name.
func ExprEnv(im *namespace.Importer, names ...string) (map[string]any, error) {
	if len(names) == 0 {
		for _, name := range im.Registry().Names() {
			if !strings.Contains(name, ".") {
				names = append(names, name)
			}
		}
	}
	env := make(map[string]any, len(names))
	for _, name := range names {
		ns, err := im.Import(name)
		if err != nil {
			return nil, err
		}
		exports, err := exprExports(im, ns)
		if err != nil {
			return nil, err
		}
		env[name] = exports
	}
	return env, nil
}

func exprExports(im *namespace.Importer, ns *namespace.LazyNamespace) (map[string]any, error) {
	exports, err := ns.Export()
	if err != nil {
		return nil, err
	}
	for _, child := range im.Registry().Children(ns.Name()) {
		key := strings.TrimPrefix(child, ns.Name()+".")
		if _, ok := exports[key]; ok {
			continue
		}
		childNs, err := im.Import(child)
		if err != nil {
			return nil, err
		}
		childExports, err := exprExports(im, childNs)
		if err != nil {
			return nil, err
		}
		exports[key] = childExports
	}
	return exports, nil
}

// EvalExpr compiles and runs an expr-lang expression against ExprEnv(im,
// names...).
func EvalExpr(im *namespace.Importer, expression string, names ...string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	env, err := ExprEnv(im, names...)
	if err != nil {
		return nil, err
	}
	program, err := exprlang.Compile(expression, exprlang.Env(env))
	if err != nil {
		return nil, err
	}
	return exprlang.Run(program, env)
}
