package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"data-caster/internal/diagnostic"
)

// tagValidator is safe for concurrent use once built.
var tagValidator = validator.New(validator.WithRequiredStructEnabled())

// Tag builds a chain from go-playground/validator rules, e.g. "email",
// "uuid4" or "min=3,max=10". Each failed rule reports one issue.
// An unknown rule is reported as an error here rather than at validation time.
func Tag(tag string, opts ...Option) (v Validator, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, fmt.Errorf("invalid validation tag %q: %v", tag, p)
		}
	}()

	// Var panics on undefined rules; check once up front so the chain never does.
	_ = tagValidator.Var("", tag)

	so := newStageOptions(opts)

	return Func(func(value any, r diagnostic.Reporter) {
		err := tagValidator.Var(value, tag)
		if err == nil {
			return
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			r.Error(fmt.Sprintf("Validation tag %q failed: %v", tag, err))
			return
		}

		for _, fe := range fieldErrs {
			so.report(r, fmt.Sprintf("Value failed %q validation", fe.ActualTag()))
		}
	}), nil
}

// MustTag is like Tag but panics on an unknown rule.
func MustTag(tag string, opts ...Option) Validator {
	v, err := Tag(tag, opts...)
	if err != nil {
		panic(err)
	}

	return v
}
