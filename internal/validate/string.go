package validate

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"data-caster/internal/diagnostic"
)

// StringChain validates values that narrow to string.
type StringChain struct {
	chain
}

// IsString starts a chain that reports an error for non-string values.
func IsString(opts ...Option) StringChain {
	return StringChain{refine(chain{run: noop}, identity, stringCheck(opts))}
}

func stringCheck(opts []Option) func(any, diagnostic.Reporter) {
	so := newStageOptions(opts)

	return func(v any, r diagnostic.Reporter) {
		if _, ok := v.(string); !ok {
			so.report(r, "Expected type string, but found: "+TypeName(v))
		}
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func (c StringChain) then(next func(string, diagnostic.Reporter)) StringChain {
	return StringChain{refine(c.chain, asString, next)}
}

// MaxLength reports when the string has more than n characters.
func (c StringChain) MaxLength(n int, opts ...Option) StringChain {
	so := newStageOptions(opts)

	return c.then(func(s string, r diagnostic.Reporter) {
		if l := utf8.RuneCountInString(s); l > n {
			so.report(r, fmt.Sprintf("Maximum length exceeded (max: %d, actual: %d)", n, l))
		}
	})
}

// MinLength reports when the string has fewer than n characters.
func (c StringChain) MinLength(n int, opts ...Option) StringChain {
	so := newStageOptions(opts)

	return c.then(func(s string, r diagnostic.Reporter) {
		if l := utf8.RuneCountInString(s); l < n {
			so.report(r, fmt.Sprintf("Minimum length violated (max: %d, actual: %d)", n, l))
		}
	})
}

// Enum reports when the string is not one of values.
func (c StringChain) Enum(values []string, opts ...Option) StringChain {
	so := newStageOptions(opts)
	allowed := slices.Clone(values)

	return c.then(func(s string, r diagnostic.Reporter) {
		if !slices.Contains(allowed, s) {
			so.report(r, fmt.Sprintf("Value did not match one of the %d expected options: %s", len(allowed), s))
		}
	})
}

// Pattern reports when the string does not match re.
func (c StringChain) Pattern(re *regexp.Regexp, opts ...Option) StringChain {
	so := newStageOptions(opts)

	return c.then(func(s string, r diagnostic.Reporter) {
		if !re.MatchString(s) {
			so.report(r, "Value did not match the expected pattern: "+re.String())
		}
	})
}
