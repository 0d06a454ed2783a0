package convert

import (
	"github.com/rs/zerolog"

	"data-caster/internal/diagnostic"
)

// DefaultMaxDepth bounds the nesting of nested-target conversions.
const DefaultMaxDepth = 512

// CompleteFunc receives the instance and the diagnostics of a conversion.
type CompleteFunc func(instance any, d *diagnostic.Collector)

// Option configures a conversion.
type Option func(*options)

type options struct {
	onComplete CompleteFunc
	logger     zerolog.Logger
	maxDepth   int
	suggest    bool
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
		suggest:  true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithOnComplete hands the diagnostics to fn instead of failing on errors.
func WithOnComplete(fn CompleteFunc) Option {
	return func(o *options) { o.onComplete = fn }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxDepth sets the maximum nesting depth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithSuggestions toggles "did you mean" suggestions on missing required fields.
func WithSuggestions(enabled bool) Option {
	return func(o *options) { o.suggest = enabled }
}
