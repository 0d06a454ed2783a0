package convert

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"data-caster/internal/diagnostic"
	"data-caster/internal/mapping"
	"data-caster/internal/match"
)

type engine struct {
	opts  options
	diags *diagnostic.Collector
	log   zerolog.Logger
}

// field is one parameter or property being resolved.
type field struct {
	target  mapping.Target
	name    string // property name, or the parameter key
	mapping *mapping.Descriptor
	missing string // message for an unresolved required field
	store   func(value any) error
}

func (e *engine) build(target mapping.Target, data any, depth int) (any, error) {
	if data == nil {
		return nil, nil
	}

	target.Freeze()

	params := target.Params()
	args := make(mapping.Args, len(params))

	for i, d := range params {
		d = d.OrEmpty()
		key := mapping.ParamKey(i)

		f := field{
			target:  target,
			name:    key,
			mapping: d,
			missing: "Required parameter not found: " + strings.Join(d.LookupKeys(key), ", "),
			store: func(v any) error {
				args[i] = v
				return nil
			},
		}

		if err := e.resolve(f, data, depth); err != nil {
			return nil, err
		}
	}

	instance, err := target.New(args)
	if err != nil {
		return nil, err
	}

	for _, p := range target.Properties() {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: %s: property without a name", mapping.ErrMalformedTarget, target.Name())
		}

		name := p.Name

		f := field{
			target:  target,
			name:    name,
			mapping: p.Mapping.OrEmpty(),
			missing: "Required property or field not found: " + name,
			store: func(v any) error {
				return target.Assign(instance, name, v)
			},
		}

		if err := e.resolve(f, data, depth); err != nil {
			return nil, err
		}
	}

	if m, ok := instance.(mapping.DataMapper); ok {
		m.MapData(data, e.diags)
	}

	if v, ok := instance.(mapping.SelfValidator); ok {
		v.Validate(e.diags)
	}

	return instance, nil
}

// resolve looks the field up by its aliases and handles the first hit.
// When nothing resolves, the required error or the default applies at the
// enclosing path.
func (e *engine) resolve(f field, data any, depth int) error {
	keys := f.mapping.LookupKeys(f.name)

	for _, alias := range keys {
		path, err := mapping.ParsePath(alias)
		if err != nil {
			return fmt.Errorf("%w: %s.%s: %w", mapping.ErrMalformedTarget, f.target.Name(), f.name, err)
		}

		value, found := lookup(data, path)
		if !found {
			continue
		}

		e.log.Debug().Str("field", f.name).Str("alias", alias).Msg("alias resolved")

		return e.within(segmentFor(path, alias), func() error {
			return e.handle(f, value, depth)
		})
	}

	switch {
	case f.mapping.Required:
		e.diags.AddSuggested(diagnostic.LevelError, f.missing, e.suggest(keys, data))
	case f.mapping.HasDefault:
		e.assign(f, f.mapping.Default)
	}

	return nil
}

// handle runs the per-value pipeline under the already pushed segment.
func (e *engine) handle(f field, value any, depth int) error {
	d := f.mapping

	if d.PreValidate != nil {
		value = d.PreValidate(value)
	}

	tracked := diagnostic.Track(e.diags)
	for _, chain := range d.Validations {
		chain.Validate(value, diagnostic.Track(tracked))
	}

	if tracked.Failed() {
		e.log.Debug().Str("field", f.name).Str("path", e.diags.Path()).Msg("validation failed, field skipped")
		return nil
	}

	if d.Transform != nil {
		value = d.Transform(value)
	}

	if d.Check != nil {
		checked, err := d.Check(value)
		if err != nil {
			e.log.Debug().Err(err).Str("field", f.name).Str("path", e.diags.Path()).Msg("transform failed, field skipped")
			e.diags.Error(fmt.Sprintf("Cannot transform value for %s: %v", f.name, err))

			return nil
		}

		value = checked
	}

	if d.Nested != nil {
		nested, ok, err := e.nested(d, value, depth)
		if err != nil || !ok {
			return err
		}

		value = nested
	}

	e.assign(f, value)

	return nil
}

func (e *engine) assign(f field, value any) {
	if err := f.store(value); err != nil {
		e.diags.Error(fmt.Sprintf("Cannot assign value to %s: %v", f.name, err))
	}
}

// nested converts value into d.Nested, element-wise in array mode. The
// boolean is false when no value should be stored.
func (e *engine) nested(d *mapping.Descriptor, value any, depth int) (any, bool, error) {
	if depth+1 > e.opts.maxDepth {
		e.diags.Error(fmt.Sprintf("Maximum nesting depth exceeded (max: %d)", e.opts.maxDepth))
		return nil, false, nil
	}

	if !d.ArrayOfNested {
		instance, err := e.build(d.Nested, value, depth+1)
		if err != nil {
			return nil, false, err
		}

		return instance, true, nil
	}

	elems, ok := sequence(value)
	if !ok {
		e.diags.Error("Expected an array but found a non array type for property " + e.diags.Path())
		return nil, false, nil
	}

	out := make([]any, len(elems))

	for i, elem := range elems {
		err := e.within(diagnostic.Index(i), func() error {
			instance, err := e.build(d.Nested, elem, depth+1)
			out[i] = instance

			return err
		})
		if err != nil {
			return nil, false, err
		}
	}

	return out, true, nil
}

// within runs fn with seg pushed onto the collector's path.
func (e *engine) within(seg diagnostic.Segment, fn func() error) error {
	e.diags.Push(seg)
	defer e.diags.Pop()

	return fn()
}

func (e *engine) suggest(keys []string, data any) []string {
	if !e.opts.suggest {
		return nil
	}

	present := objectKeys(data)
	if len(present) == 0 {
		return nil
	}

	var out []string

	for _, k := range keys {
		path, err := mapping.ParsePath(k)
		if err != nil || !path.IsSimple() {
			continue
		}

		for _, s := range match.Suggest(k, present, match.DefaultLimit, match.DefaultThreshold) {
			if len(out) < match.DefaultLimit && !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}

	return out
}

// segmentFor returns the path segment pushed for a resolved alias: a lone
// numeric alias is an index, anything else is a key.
func segmentFor(path mapping.FieldPath, alias string) diagnostic.Segment {
	if path.IsSimple() && path.Segments[0].IsIndex {
		return diagnostic.Index(path.Segments[0].Index)
	}

	return diagnostic.Key(alias)
}
