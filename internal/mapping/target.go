package mapping

import (
	"errors"
	"fmt"

	"data-caster/internal/diagnostic"
	"data-caster/internal/validate"
)

// ErrMalformedTarget is wrapped by every structural error in a target
// descriptor. Such errors abort a conversion instead of being collected.
var ErrMalformedTarget = errors.New("malformed target descriptor")

// Target is a target type descriptor.
type Target interface {
	// Name identifies the target in registries and messages.
	Name() string

	// Params returns the constructor parameter descriptors by position.
	// Entries may be nil.
	Params() []*Descriptor

	// Properties returns the property descriptors in declaration order.
	Properties() []Property

	// New constructs an instance from positional arguments.
	New(args Args) (any, error)

	// Assign sets a property on an instance returned by New.
	Assign(instance any, name string, value any) error

	// Freeze makes further registration calls panic.
	Freeze()
}

// Property is a named property descriptor.
type Property struct {
	Name    string
	Mapping *Descriptor
}

// DataMapper is implemented by instances that post-process the raw input
// after metadata-driven assignment.
type DataMapper interface {
	MapData(raw any, r diagnostic.Reporter)
}

// SelfValidator is implemented by instances that validate themselves after
// mapping.
type SelfValidator interface {
	Validate(r diagnostic.Reporter)
}

// Args are the positional constructor arguments. Unset slots are nil.
type Args []any

// Get returns argument i, or nil when out of range.
func (a Args) Get(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}

	return a[i]
}

// Has reports whether argument i is set to a non-nil value.
func (a Args) Has(i int) bool {
	return a.Get(i) != nil
}

// String returns argument i as a string, or "".
func (a Args) String(i int) string {
	s, _ := a.Get(i).(string)
	return s
}

// Float returns argument i as a float64, or 0.
func (a Args) Float(i int) float64 {
	f, _ := validate.AsNumber(a.Get(i))
	return f
}

// Int returns argument i truncated to an int, or 0.
func (a Args) Int(i int) int {
	return int(a.Float(i))
}

// Bool returns argument i as a bool, or false.
func (a Args) Bool(i int) bool {
	b, _ := a.Get(i).(bool)
	return b
}

func malformed(target, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedTarget, target, fmt.Sprintf(format, args...))
}
