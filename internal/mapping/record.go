package mapping

import (
	"fmt"
	"sync/atomic"
)

// Record describes a dynamic target whose instances are map[string]any.
// Constructor parameters are stored under their declared names.
type Record struct {
	name       string
	params     []*Descriptor
	paramNames []string
	props      []Property
	frozen     atomic.Bool
}

// NewRecord starts a record target description.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Param declares constructor parameter index, stored under key.
func (r *Record) Param(index int, key string, d *Descriptor) *Record {
	r.mustBeOpen()

	for len(r.params) <= index {
		r.params = append(r.params, nil)
		r.paramNames = append(r.paramNames, "")
	}

	r.params[index] = d
	r.paramNames[index] = key

	return r
}

// Property declares a property stored under name.
func (r *Record) Property(name string, d *Descriptor) *Record {
	r.mustBeOpen()
	r.props = upsertProperty(r.props, Property{Name: name, Mapping: d})

	return r
}

// Name implements Target.
func (r *Record) Name() string { return r.name }

// Params implements Target.
func (r *Record) Params() []*Descriptor { return r.params }

// Properties implements Target.
func (r *Record) Properties() []Property { return r.props }

// Freeze implements Target.
func (r *Record) Freeze() { r.frozen.Store(true) }

// New implements Target. Unset (nil) arguments are left out of the record.
func (r *Record) New(args Args) (any, error) {
	out := make(map[string]any, len(args)+len(r.props))

	for i, a := range args {
		if a == nil {
			continue
		}

		if i >= len(r.paramNames) || r.paramNames[i] == "" {
			return nil, malformed(r.name, "parameter %d has no name", i)
		}

		out[r.paramNames[i]] = a
	}

	return out, nil
}

// Assign implements Target.
func (r *Record) Assign(instance any, name string, value any) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return fmt.Errorf("instance is %T, expected map[string]any", instance)
	}

	m[name] = value

	return nil
}

func (r *Record) mustBeOpen() {
	if r.frozen.Load() {
		panic(fmt.Sprintf("mapping: record %s modified after conversion started", r.name))
	}
}
