package mapping

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"data-caster/internal/validate"
)

// Registry holds named targets, transforms and validators and provides
// lookup for mapping files.
//
// A Registry is populated before conversions start and only read afterwards.
type Registry struct {
	targets    map[string]Target
	transforms map[string]TransformFunc
	validators map[string]validate.Validator
}

// NewRegistry creates a registry holding the built-in transforms.
func NewRegistry() *Registry {
	r := &Registry{
		targets:    make(map[string]Target),
		transforms: make(map[string]TransformFunc),
		validators: make(map[string]validate.Validator),
	}

	for name, fn := range builtinTransforms {
		r.transforms[name] = fn
	}

	return r
}

// Register adds a target under its name.
func (r *Registry) Register(t Target) error {
	if t == nil || t.Name() == "" {
		return fmt.Errorf("%w: target without a name", ErrMalformedTarget)
	}

	if _, exists := r.targets[t.Name()]; exists {
		return fmt.Errorf("duplicate target %q", t.Name())
	}

	r.targets[t.Name()] = t

	return nil
}

// Target returns the target registered under name.
func (r *Registry) Target(name string) (Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// TargetNames returns all target names, sorted.
func (r *Registry) TargetNames() []string {
	return slices.Sorted(maps.Keys(r.targets))
}

// AddTransform adds a named transform, replacing any previous one.
func (r *Registry) AddTransform(name string, fn TransformFunc) {
	r.transforms[name] = fn
}

// Transform returns a transform by name.
func (r *Registry) Transform(name string) (TransformFunc, bool) {
	fn, ok := r.transforms[name]
	return fn, ok
}

// HasTransform returns true if a transform with the given name exists.
func (r *Registry) HasTransform(name string) bool {
	_, ok := r.transforms[name]
	return ok
}

// TransformNames returns all transform names, sorted.
func (r *Registry) TransformNames() []string {
	return slices.Sorted(maps.Keys(r.transforms))
}

// AddValidator adds a named validator chain, replacing any previous one.
func (r *Registry) AddValidator(name string, v validate.Validator) {
	r.validators[name] = v
}

// Validator returns a validator chain by name.
func (r *Registry) Validator(name string) (validate.Validator, bool) {
	v, ok := r.validators[name]
	return v, ok
}

// Chain composes named transforms left to right.
func (r *Registry) Chain(names []string) (TransformFunc, error) {
	if len(names) == 0 {
		return nil, nil
	}

	fns := make([]TransformFunc, 0, len(names))

	for _, name := range names {
		if !r.HasTransform(name) {
			return nil, fmt.Errorf("unknown transform %q (known: %s)", name, strings.Join(r.TransformNames(), ", "))
		}

		fns = append(fns, r.transforms[name])
	}

	if len(fns) == 1 {
		return fns[0], nil
	}

	return func(v any) any {
		for _, fn := range fns {
			v = fn(v)
		}

		return v
	}, nil
}

// ExprTransform compiles an expr-lang expression into a checked transform.
// The input is bound to "value".
//
//	mapping.ExprTransform(`value * 100`)
func ExprTransform(source string) (CheckedFunc, error) {
	program, err := validate.CompileExpr(source)
	if err != nil {
		return nil, err
	}

	return func(v any) (any, error) {
		return expr.Run(program, map[string]any{"value": v})
	}, nil
}

var builtinTransforms = map[string]TransformFunc{
	"trim":     mapString(strings.TrimSpace),
	"lower":    mapString(strings.ToLower),
	"upper":    mapString(strings.ToUpper),
	"toNumber": toNumber,
	"toInt":    toInt,
	"toString": toString,
}

// mapString applies fn to strings and passes every other value through.
func mapString(fn func(string) string) TransformFunc {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}

		return v
	}
}

func toNumber(v any) any {
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}

	return v
}

// toInt truncates numbers that fit an int64; anything else passes through.
func toInt(v any) any {
	f, ok := validate.AsNumber(toNumber(v))
	if !ok || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return v
	}

	return int(f)
}

func toString(v any) any {
	switch x := v.(type) {
	case nil, string:
		return v
	case bool:
		return strconv.FormatBool(x)
	}

	if f, ok := validate.AsNumber(v); ok {
		return validate.FormatNumber(f)
	}

	return v
}
