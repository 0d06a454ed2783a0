package mapping

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// Type describes a Go struct target T. Instances are *T.
type Type[T any] struct {
	name    string
	ctor    func(Args) (*T, error)
	params  []*Descriptor
	props   []Property
	setters map[string]func(*T, any) error
	frozen  atomic.Bool
}

// Define starts a target description for T. An empty name uses T's type name.
func Define[T any](name string) *Type[T] {
	if name == "" {
		name = reflect.TypeFor[T]().Name()
	}

	return &Type[T]{
		name:    name,
		setters: make(map[string]func(*T, any) error),
	}
}

// Constructor sets the constructor. Without one, instances come from new(T).
func (t *Type[T]) Constructor(fn func(Args) *T) *Type[T] {
	return t.ConstructorE(func(a Args) (*T, error) { return fn(a), nil })
}

// ConstructorE sets a constructor that may fail. A failure is structural and
// aborts the conversion.
func (t *Type[T]) ConstructorE(fn func(Args) (*T, error)) *Type[T] {
	t.mustBeOpen()
	t.ctor = fn

	return t
}

// Param sets the descriptor of constructor parameter index.
func (t *Type[T]) Param(index int, d *Descriptor) *Type[T] {
	t.mustBeOpen()

	if index < 0 {
		panic(fmt.Sprintf("mapping: negative parameter index %d on %s", index, t.name))
	}

	for len(t.params) <= index {
		t.params = append(t.params, nil)
	}

	t.params[index] = d

	return t
}

// Property declares a property assigned to the struct field of the same
// name (or the field tagged `map:"name"`).
func (t *Type[T]) Property(name string, d *Descriptor) *Type[T] {
	t.mustBeOpen()
	t.props = upsertProperty(t.props, Property{Name: name, Mapping: d})
	delete(t.setters, name)

	return t
}

// Setter declares a property assigned through set.
func (t *Type[T]) Setter(name string, d *Descriptor, set func(*T, any) error) *Type[T] {
	t.Property(name, d)
	t.setters[name] = set

	return t
}

// Name implements Target.
func (t *Type[T]) Name() string { return t.name }

// Params implements Target.
func (t *Type[T]) Params() []*Descriptor { return t.params }

// Properties implements Target.
func (t *Type[T]) Properties() []Property { return t.props }

// Freeze implements Target.
func (t *Type[T]) Freeze() { t.frozen.Store(true) }

// New implements Target.
func (t *Type[T]) New(args Args) (any, error) {
	if t.ctor == nil {
		return new(T), nil
	}

	v, err := t.ctor(args)
	if err != nil {
		return nil, malformed(t.name, "constructor failed: %v", err)
	}

	if v == nil {
		return nil, malformed(t.name, "constructor returned nil")
	}

	return v, nil
}

// Assign implements Target.
func (t *Type[T]) Assign(instance any, name string, value any) error {
	p, ok := instance.(*T)
	if !ok {
		return fmt.Errorf("instance is %T, expected *%s", instance, t.name)
	}

	if set, ok := t.setters[name]; ok {
		return set(p, value)
	}

	return AssignField(reflect.ValueOf(p).Elem(), name, value)
}

func (t *Type[T]) mustBeOpen() {
	if t.frozen.Load() {
		panic(fmt.Sprintf("mapping: %s modified after conversion started", t.name))
	}
}

func upsertProperty(props []Property, p Property) []Property {
	for i := range props {
		if props[i].Name == p.Name {
			props[i] = p
			return props
		}
	}

	return append(props, p)
}

// Set adapts a typed setter for Type.Setter. The value is converted to V the
// same way the field assigner converts it.
func Set[T, V any](fn func(*T, V)) func(*T, any) error {
	return func(p *T, value any) error {
		var v V

		rv := reflect.ValueOf(&v).Elem()
		if err := assignValue(rv, value); err != nil {
			return err
		}

		fn(p, v)

		return nil
	}
}
