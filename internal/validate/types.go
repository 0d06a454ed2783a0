package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// TypeName describes the dynamic type of an untyped value the way it is
// shown in messages: null, boolean, number, string, array, object, or the
// Go type for anything else.
func TypeName(v any) string {
	if v == nil {
		return "null"
	}

	if _, ok := AsNumber(v); ok {
		return "number"
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Pointer:
		if reflect.ValueOf(v).IsNil() {
			return "null"
		}

		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// AsNumber converts any Go numeric value (and json.Number) to float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// FormatNumber renders a number as it appears in messages ("42", "3.5", "NaN").
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
