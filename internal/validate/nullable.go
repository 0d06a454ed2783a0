package validate

// NullableChain is a no-op chain that skips nil values. Its typed builders
// carry that behavior into the returned family.
type NullableChain struct {
	chain
}

// Nullable starts a chain that ignores nil.
func Nullable() NullableChain {
	return NullableChain{chain{run: noop, ignoreNull: true}}
}

// IsString narrows to a string chain that still ignores nil.
func (c NullableChain) IsString(opts ...Option) StringChain {
	return StringChain{refine(c.chain, identity, stringCheck(opts))}
}

// IsNumber narrows to a number chain that still ignores nil.
func (c NullableChain) IsNumber(allowNaN bool, opts ...Option) NumberChain {
	return NumberChain{refine(c.chain, identity, numberCheck(allowNaN, opts))}
}

// IsBoolean narrows to a boolean chain that still ignores nil.
func (c NullableChain) IsBoolean(opts ...Option) BooleanChain {
	return BooleanChain{refine(c.chain, identity, booleanCheck(opts))}
}
