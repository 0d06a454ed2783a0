package validate

import (
	"data-caster/internal/diagnostic"
)

// Validator is a single validation chain.
type Validator interface {
	Validate(value any, r diagnostic.Reporter)
}

// Func adapts a plain function to a Validator.
type Func func(value any, r diagnostic.Reporter)

// Validate calls f.
func (f Func) Validate(value any, r diagnostic.Reporter) {
	f(value, r)
}

// Refine composes c with a next stage expecting the narrowed type T.
//
// The returned chain runs c against a Tracker wrapping r. When the tracker
// has not seen an error-level issue, the value is narrowed and next runs
// with the same tracker, so stages refined later observe the combined
// severity.
func Refine[T any](c Validator, narrow func(any) T, next func(T, diagnostic.Reporter)) Validator {
	return Func(func(value any, r diagnostic.Reporter) {
		t := diagnostic.Track(r)

		c.Validate(value, t)

		if t.Failed() {
			return
		}

		next(narrow(value), t)
	})
}

// chain is the shared representation of every built-in family.
type chain struct {
	run        Func
	ignoreNull bool
}

// Validate skips nil values when the chain ignores nulls.
func (c chain) Validate(value any, r diagnostic.Reporter) {
	if c.ignoreNull && value == nil {
		return
	}

	c.run(value, r)
}

// refine returns a new chain with next appended; c is never modified.
func refine[T any](c chain, narrow func(any) T, next func(T, diagnostic.Reporter)) chain {
	return chain{
		run:        Refine(c.run, narrow, next).Validate,
		ignoreNull: c.ignoreNull,
	}
}

func noop(any, diagnostic.Reporter) {}

func identity(v any) any { return v }

// Option overrides how a single stage reports its failure.
type Option func(*stageOptions)

type stageOptions struct {
	level   diagnostic.Level
	message string
}

// WithLevel sets the severity reported by the stage. The default is error.
func WithLevel(level diagnostic.Level) Option {
	return func(o *stageOptions) { o.level = level }
}

// WithMessage replaces the stage's default message.
func WithMessage(message string) Option {
	return func(o *stageOptions) { o.message = message }
}

func newStageOptions(opts []Option) stageOptions {
	so := stageOptions{level: diagnostic.LevelError}
	for _, o := range opts {
		o(&so)
	}

	return so
}

func (o stageOptions) report(r diagnostic.Reporter, message string) {
	if o.message != "" {
		message = o.message
	}

	r.Add(o.level, message)
}
