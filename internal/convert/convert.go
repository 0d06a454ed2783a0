package convert

import (
	"fmt"

	"data-caster/internal/diagnostic"
	"data-caster/internal/mapping"
)

// Convert builds an instance of target from data.
//
// Structural errors in the descriptors are returned immediately. Otherwise,
// with WithOnComplete the callback is invoked once and the instance is
// returned; without it, error-level issues yield a *diagnostic.AggregateError.
func Convert(target mapping.Target, data any, opts ...Option) (any, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", mapping.ErrMalformedTarget)
	}

	o := newOptions(opts)

	e := &engine{
		opts:  o,
		diags: diagnostic.NewCollector(),
		log:   o.logger.With().Str("target", target.Name()).Logger(),
	}

	e.log.Debug().Msg("conversion started")

	instance, err := e.build(target, data, 0)
	if err != nil {
		e.log.Debug().Err(err).Msg("conversion aborted")
		return nil, err
	}

	e.log.Debug().
		Int("issues", len(e.diags.Issues())).
		Bool("errors", e.diags.HasErrors()).
		Msg("conversion finished")

	if o.onComplete != nil {
		o.onComplete(instance, e.diags)
		return instance, nil
	}

	if err := e.diags.Err(); err != nil {
		return nil, err
	}

	return instance, nil
}

// To is the typed form of Convert for struct targets. A nil data value
// yields a nil instance.
func To[T any](t *mapping.Type[T], data any, opts ...Option) (*T, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil target", mapping.ErrMalformedTarget)
	}

	instance, err := Convert(t, data, opts...)
	if err != nil || instance == nil {
		return nil, err
	}

	return instance.(*T), nil
}

// Diagnostics converts data and always returns the collected diagnostics.
// The error is only set for structural failures.
func Diagnostics(target mapping.Target, data any, opts ...Option) (any, *diagnostic.Collector, error) {
	var collected *diagnostic.Collector

	opts = append(opts, WithOnComplete(func(_ any, d *diagnostic.Collector) { collected = d }))

	instance, err := Convert(target, data, opts...)
	if err != nil {
		return nil, nil, err
	}

	return instance, collected, nil
}
