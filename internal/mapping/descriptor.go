package mapping

import (
	"slices"
	"strconv"

	"data-caster/internal/validate"
)

// TransformFunc converts a located value.
type TransformFunc func(value any) any

// CheckedFunc converts a located value and may fail; a failure is reported
// against the field and the field is skipped.
type CheckedFunc func(value any) (any, error)

// Descriptor is the mapping rule set for one property or constructor parameter.
//
// Descriptors are populated at registration time and read-only once any
// conversion has started; the builder methods below are for registration only.
type Descriptor struct {
	// Aliases are lookup paths tried in order; the first that resolves wins.
	// Empty means the property name or the parameter index.
	Aliases []string

	// PreValidate is applied to the raw located value before validation.
	PreValidate TransformFunc

	// Validations run in order, each in its own tracking scope.
	Validations []validate.Validator

	// Transform is applied after validation reported no error.
	Transform TransformFunc

	// Check runs after Transform.
	Check CheckedFunc

	// Nested is the target type the value is converted into.
	Nested Target

	// ArrayOfNested maps Nested over every element of a sequence value.
	ArrayOfNested bool

	// Required makes absence at every alias an error.
	Required bool

	// Default is used when nothing resolved and the field is not required.
	Default any

	// HasDefault distinguishes a nil Default from no default.
	HasDefault bool
}

// Field starts a descriptor with the given aliases.
func Field(aliases ...string) *Descriptor {
	return &Descriptor{Aliases: slices.Clone(aliases)}
}

// Alias appends lookup aliases.
func (d *Descriptor) Alias(aliases ...string) *Descriptor {
	d.Aliases = append(d.Aliases, aliases...)
	return d
}

// Require marks the field as required.
func (d *Descriptor) Require() *Descriptor {
	d.Required = true
	return d
}

// WithDefault sets the value used when no alias resolves.
func (d *Descriptor) WithDefault(v any) *Descriptor {
	d.Default = v
	d.HasDefault = true

	return d
}

// Validate appends validator chains.
func (d *Descriptor) Validate(chains ...validate.Validator) *Descriptor {
	d.Validations = append(d.Validations, chains...)
	return d
}

// Before sets the pre-validation transform.
func (d *Descriptor) Before(fn TransformFunc) *Descriptor {
	d.PreValidate = fn
	return d
}

// Then sets the post-validation transform.
func (d *Descriptor) Then(fn TransformFunc) *Descriptor {
	d.Transform = fn
	return d
}

// ThenCheck sets a fallible transform that runs after Then.
func (d *Descriptor) ThenCheck(fn CheckedFunc) *Descriptor {
	d.Check = fn
	return d
}

// Of converts the value into the nested target.
func (d *Descriptor) Of(t Target) *Descriptor {
	d.Nested = t
	d.ArrayOfNested = false

	return d
}

// ArrayOf converts every element of a sequence value into the nested target.
func (d *Descriptor) ArrayOf(t Target) *Descriptor {
	d.Nested = t
	d.ArrayOfNested = true

	return d
}

// LookupKeys returns the aliases, or fallback when none are declared.
func (d *Descriptor) LookupKeys(fallback string) []string {
	if len(d.Aliases) == 0 {
		return []string{fallback}
	}

	return d.Aliases
}

// ParamKey returns the fallback lookup key of parameter i.
func ParamKey(i int) string {
	return strconv.Itoa(i)
}

var emptyDescriptor = &Descriptor{}

// OrEmpty returns d, or a descriptor with no mappings when d is nil.
func (d *Descriptor) OrEmpty() *Descriptor {
	if d == nil {
		return emptyDescriptor
	}

	return d
}
