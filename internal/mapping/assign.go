package mapping

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// FieldTag is the struct tag consulted when locating a property's field.
const FieldTag = "map"

// AssignField sets the field of struct value dst that matches name: the
// field tagged `map:"name"`, else the field named name, else a
// case-insensitive name match.
func AssignField(dst reflect.Value, name string, value any) error {
	if dst.Kind() != reflect.Struct {
		return fmt.Errorf("cannot assign field %q on %s", name, dst.Kind())
	}

	field, ok := findField(dst.Type(), name)
	if !ok {
		return fmt.Errorf("no field %q in %s", name, dst.Type())
	}

	if !field.IsExported() {
		return fmt.Errorf("field %q of %s is not exported", field.Name, dst.Type())
	}

	fv, err := dst.FieldByIndexErr(field.Index)
	if err != nil {
		return fmt.Errorf("field %q of %s: %w", field.Name, dst.Type(), err)
	}

	return assignValue(fv, value)
}

func findField(t reflect.Type, name string) (reflect.StructField, bool) {
	fields := reflect.VisibleFields(t)

	for _, f := range fields {
		if tag, _, _ := strings.Cut(f.Tag.Get(FieldTag), ","); tag == name {
			return f, true
		}
	}

	for _, f := range fields {
		if f.Name == name && !f.Anonymous {
			return f, true
		}
	}

	for _, f := range fields {
		if strings.EqualFold(f.Name, name) && !f.Anonymous {
			return f, true
		}
	}

	return reflect.StructField{}, false
}

// assignValue stores value into dst, converting between compatible shapes:
// numeric kinds, named string/bool types, pointers, []any into typed
// slices and string-keyed maps into typed maps.
func assignValue(dst reflect.Value, value any) error {
	cv, err := convertTo(reflect.ValueOf(value), dst.Type())
	if err != nil {
		return err
	}

	dst.Set(cv)

	return nil
}

func convertTo(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	if !src.IsValid() {
		return reflect.Zero(to), nil
	}

	// Unwrap interfaces held in []any / map[string]any elements.
	for src.Kind() == reflect.Interface {
		if src.IsNil() {
			return reflect.Zero(to), nil
		}

		src = src.Elem()
	}

	if src.Type().AssignableTo(to) {
		return src, nil
	}

	switch {
	case to.Kind() == reflect.Pointer:
		if src.Kind() == reflect.Pointer {
			if src.IsNil() {
				return reflect.Zero(to), nil
			}

			return convertTo(src.Elem(), to)
		}

		elem, err := convertTo(src, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		p := reflect.New(to.Elem())
		p.Elem().Set(elem)

		return p, nil

	case src.Kind() == reflect.Pointer:
		if src.IsNil() {
			return reflect.Zero(to), nil
		}

		return convertTo(src.Elem(), to)

	case isNumberKind(src.Kind()) && isNumberKind(to.Kind()):
		return convertNumber(src, to)

	case src.Kind() == reflect.String && to.Kind() == reflect.String,
		src.Kind() == reflect.Bool && to.Kind() == reflect.Bool:
		return src.Convert(to), nil

	case (src.Kind() == reflect.Slice || src.Kind() == reflect.Array) &&
		(to.Kind() == reflect.Slice || to.Kind() == reflect.Array):
		return convertSequence(src, to)

	case src.Kind() == reflect.Map && to.Kind() == reflect.Map:
		return convertMap(src, to)
	}

	return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", src.Type(), to)
}

func convertNumber(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	var f float64

	switch {
	case isIntKind(src.Kind()):
		f = float64(src.Int())
	case isUintKind(src.Kind()):
		f = float64(src.Uint())
	default:
		f = src.Float()
	}

	out := reflect.New(to).Elem()
	bad := fmt.Errorf("cannot represent %v as %s", f, to)

	switch {
	case isIntKind(to.Kind()):
		if isIntKind(src.Kind()) {
			if out.OverflowInt(src.Int()) {
				return reflect.Value{}, bad
			}

			out.SetInt(src.Int())

			break
		}

		// float64(MaxInt64) rounds up to 2^63, which is already out of range
		if !isWhole(f) || f < math.MinInt64 || f >= math.MaxInt64 || out.OverflowInt(int64(f)) {
			return reflect.Value{}, bad
		}

		out.SetInt(int64(f))

	case isUintKind(to.Kind()):
		if isUintKind(src.Kind()) {
			if out.OverflowUint(src.Uint()) {
				return reflect.Value{}, bad
			}

			out.SetUint(src.Uint())

			break
		}

		if !isWhole(f) || f < 0 || f >= math.MaxUint64 || out.OverflowUint(uint64(f)) {
			return reflect.Value{}, bad
		}

		out.SetUint(uint64(f))

	default:
		if out.OverflowFloat(f) {
			return reflect.Value{}, bad
		}

		out.SetFloat(f)
	}

	return out, nil
}

// isWhole reports a finite value without a fractional part.
func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

func convertSequence(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	n := src.Len()

	var out reflect.Value

	if to.Kind() == reflect.Array {
		if n > to.Len() {
			return reflect.Value{}, fmt.Errorf("cannot fit %d elements into %s", n, to)
		}

		out = reflect.New(to).Elem()
	} else {
		out = reflect.MakeSlice(to, n, n)
	}

	for i := range n {
		elem, err := convertTo(src.Index(i), to.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}

		out.Index(i).Set(elem)
	}

	return out, nil
}

func convertMap(src reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.MakeMapWithSize(to, src.Len())

	iter := src.MapRange()
	for iter.Next() {
		k, err := convertTo(iter.Key(), to.Key())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		v, err := convertTo(iter.Value(), to.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		out.SetMapIndex(k, v)
	}

	return out, nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isNumberKind(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k) || k == reflect.Float32 || k == reflect.Float64
}
