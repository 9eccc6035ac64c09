package mapping

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TransformRegistry is an immutable name to Transform table, built once and
// consulted while mapping documents are compiled.
type TransformRegistry struct {
	transforms map[string]Transform
}

// NewTransformRegistry creates a registry holding a copy of fns.
func NewTransformRegistry(fns map[string]Transform) *TransformRegistry {
	r := &TransformRegistry{transforms: make(map[string]Transform, len(fns))}
	for name, fn := range fns {
		if fn != nil {
			r.transforms[name] = fn
		}
	}

	return r
}

// With returns a new registry extended with fns. Entries in fns replace
// existing ones of the same name.
func (r *TransformRegistry) With(fns map[string]Transform) *TransformRegistry {
	merged := maps.Clone(r.all())
	if merged == nil {
		merged = map[string]Transform{}
	}

	maps.Copy(merged, fns)

	return NewTransformRegistry(merged)
}

// Lookup returns the transform registered under name.
func (r *TransformRegistry) Lookup(name string) (Transform, bool) {
	fn, ok := r.all()[name]

	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *TransformRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.all()))
}

// Len returns the number of registered transforms.
func (r *TransformRegistry) Len() int {
	return len(r.all())
}

func (r *TransformRegistry) all() map[string]Transform {
	if r == nil {
		return nil
	}

	return r.transforms
}

// Builtins returns the transforms available to every mapping document
// loaded by the command line tool.
func Builtins() *TransformRegistry {
	return NewTransformRegistry(map[string]Transform{
		"strip": stringTransform("strip", strings.TrimSpace),
		"lower": stringTransform("lower", caseMapper(cases.Lower)),
		"upper": stringTransform("upper", caseMapper(cases.Upper)),
	})
}

// caseMapper builds a fresh Caser per call since a Caser keeps state and
// is not safe for concurrent use.
func caseMapper(newCaser func(language.Tag, ...cases.Option) cases.Caser) func(string) string {
	return func(s string) string {
		return newCaser(language.Und).String(s)
	}
}

// stringTransform lifts a string function into a Transform that passes
// absent values through unchanged.
func stringTransform(name string, fn func(string) string) Transform {
	return func(v any) (any, error) {
		switch s := v.(type) {
		case nil:
			return nil, nil
		case string:
			return fn(s), nil
		default:
			return nil, fmt.Errorf("transformation %q expects text, got %T", name, v)
		}
	}
}
