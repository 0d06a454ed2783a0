package validate

import (
	"data-caster/internal/diagnostic"
)

// BooleanChain validates values that narrow to bool.
type BooleanChain struct {
	chain
}

// IsBoolean starts a chain that reports an error for non-boolean values.
func IsBoolean(opts ...Option) BooleanChain {
	return BooleanChain{refine(chain{run: noop}, identity, booleanCheck(opts))}
}

func booleanCheck(opts []Option) func(any, diagnostic.Reporter) {
	so := newStageOptions(opts)

	return func(v any, r diagnostic.Reporter) {
		if _, ok := v.(bool); !ok {
			so.report(r, "Expected type boolean, but found: "+TypeName(v))
		}
	}
}
