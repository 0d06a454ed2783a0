package convert

import (
	"reflect"
	"slices"

	"data-caster/internal/mapping"
)

// lookup walks path through data. A key holding nil is found.
func lookup(data any, path mapping.FieldPath) (any, bool) {
	cur := data

	for _, seg := range path.Segments {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}

		cur = next
	}

	return cur, true
}

func step(cur any, seg mapping.PathSegment) (any, bool) {
	switch c := cur.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := c[seg.Name]
		return v, ok
	case map[any]any:
		v, ok := c[seg.Name]
		return v, ok
	case []any:
		if !seg.IsIndex || seg.Index >= len(c) {
			return nil, false
		}

		return c[seg.Index], true
	}

	rv := reflect.ValueOf(cur)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}

		return step(rv.Elem().Interface(), seg)
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}

		mv := rv.MapIndex(reflect.ValueOf(seg.Name).Convert(kt))
		if !mv.IsValid() {
			return nil, false
		}

		return mv.Interface(), true
	case reflect.Slice, reflect.Array:
		if !seg.IsIndex || seg.Index >= rv.Len() {
			return nil, false
		}

		return rv.Index(seg.Index).Interface(), true
	}

	return nil, false
}

// sequence returns the elements of a slice or array value.
func sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// objectKeys returns the sorted string keys of an object value.
func objectKeys(data any) []string {
	var keys []string

	switch m := data.(type) {
	case map[string]any:
		for k := range m {
			keys = append(keys, k)
		}
	default:
		rv := reflect.ValueOf(data)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil
		}

		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
	}

	slices.Sort(keys)

	return keys
}
