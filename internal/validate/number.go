package validate

import (
	"fmt"
	"math"

	"data-caster/internal/diagnostic"
)

// NumberChain validates values that narrow to float64.
type NumberChain struct {
	chain
}

// IsNumber starts a chain that reports an error for non-numeric values and,
// unless allowNaN is set, for NaN.
func IsNumber(allowNaN bool, opts ...Option) NumberChain {
	return NumberChain{refine(chain{run: noop}, identity, numberCheck(allowNaN, opts))}
}

func numberCheck(allowNaN bool, opts []Option) func(any, diagnostic.Reporter) {
	so := newStageOptions(opts)

	return func(v any, r diagnostic.Reporter) {
		f, ok := AsNumber(v)
		if !ok {
			so.report(r, "Expected type number, but found: "+TypeName(v))
			return
		}

		if !allowNaN && math.IsNaN(f) {
			so.report(r, "Unexpected value: NaN")
		}
	}
}

func asFloat(v any) float64 {
	f, _ := AsNumber(v)
	return f
}

func (c NumberChain) then(next func(float64, diagnostic.Reporter)) NumberChain {
	return NumberChain{refine(c.chain, asFloat, next)}
}

// Max reports when the value is greater than limit.
func (c NumberChain) Max(limit float64, opts ...Option) NumberChain {
	so := newStageOptions(opts)

	return c.then(func(f float64, r diagnostic.Reporter) {
		if f > limit {
			so.report(r, fmt.Sprintf("Value (%s) is greater than the maximum: %s", FormatNumber(f), FormatNumber(limit)))
		}
	})
}

// Min reports when the value is less than limit.
func (c NumberChain) Min(limit float64, opts ...Option) NumberChain {
	so := newStageOptions(opts)

	return c.then(func(f float64, r diagnostic.Reporter) {
		if f < limit {
			so.report(r, fmt.Sprintf("Value (%s) is less than the minimum: %s", FormatNumber(f), FormatNumber(limit)))
		}
	})
}

// Integer reports when the value has a fractional part.
func (c NumberChain) Integer(opts ...Option) NumberChain {
	so := newStageOptions(opts)

	return c.then(func(f float64, r diagnostic.Reporter) {
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			so.report(r, "Expected an integer, but found: "+FormatNumber(f))
		}
	})
}
