package reflection

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Property is a named slot with an optional getter and an optional setter.
// Two properties are equal when their names are equal.
type Property struct {
	name string

	mu     sync.RWMutex
	getter Getter
	setter Setter
}

// NewProperty builds a property. At least one accessor is required, and when
// both are given their types must be Compatible.
func NewProperty(name string, getter Getter, setter Setter) (*Property, error) {
	if getter == nil && setter == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAccessor, name)
	}
	if getter != nil && setter != nil && !Compatible(getter.Type(), setter.Type()) {
		return nil, fmt.Errorf("%w: %s: getter %s, setter %s", ErrIncompatibleAccessor, name, getter.Type(), setter.Type())
	}
	return &Property{name: name, getter: getter, setter: setter}, nil
}

func (p *Property) Name() string {
	return p.name
}

func (p *Property) Getter() Getter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.getter
}

func (p *Property) Setter() Setter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.setter
}

// SetGetter replaces the getter. It fails if the new getter does not fit the
// bound setter.
func (p *Property) SetGetter(getter Getter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if getter == nil && p.setter == nil {
		return fmt.Errorf("%w: %s", ErrNoAccessor, p.name)
	}
	if getter != nil && p.setter != nil && !Compatible(getter.Type(), p.setter.Type()) {
		return fmt.Errorf("%w: %s: getter %s, setter %s", ErrIncompatibleAccessor, p.name, getter.Type(), p.setter.Type())
	}
	p.getter = getter
	return nil
}

// SetSetter replaces the setter. It fails if the new setter does not fit the
// bound getter.
func (p *Property) SetSetter(setter Setter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if setter == nil && p.getter == nil {
		return fmt.Errorf("%w: %s", ErrNoAccessor, p.name)
	}
	if setter != nil && p.getter != nil && !Compatible(p.getter.Type(), setter.Type()) {
		return fmt.Errorf("%w: %s: getter %s, setter %s", ErrIncompatibleAccessor, p.name, p.getter.Type(), setter.Type())
	}
	p.setter = setter
	return nil
}

// Get reads the property. Without a getter, or for a nil instance, it
// returns nil and no error.
func (p *Property) Get(instance any) (any, error) {
	getter := p.Getter()
	if getter == nil || isNil(instance) {
		return nil, nil
	}
	return getter.Get(instance)
}

// IsNull reports whether the property reads as nil. A failing getter counts as nil.
func (p *Property) IsNull(instance any) bool {
	v, err := p.Get(instance)
	return err != nil || isNil(v)
}

// Set writes the value produced by source, which is called exactly once. A nil
// value is refused unless the property is optional, and the setter is then
// not called.
func (p *Property) Set(instance any, source func() any) error {
	value := source()

	if isNil(value) && !p.IsOptional() {
		return newProblem(ErrRequiredNotPopulated, nil, "%s", p)
	}

	setter := p.Setter()
	if setter == nil {
		return newProblem(ErrSetterNotFound, nil, "%s", p)
	}
	return setter.Set(instance, value)
}

// SetValue writes value to the property.
func (p *Property) SetValue(instance any, value any) error {
	return p.Set(instance, func() any { return value })
}

// Clear sets the property to nil, or its zero value, through the setter.
func (p *Property) Clear(instance any) error {
	setter := p.Setter()
	if setter == nil {
		return newProblem(ErrSetterNotFound, nil, "%s", p)
	}
	return setter.Set(instance, nil)
}

// IsOptional reports whether the setter's member is tagged optional.
func (p *Property) IsOptional() bool {
	setter := p.Setter()
	return setter != nil && setter.Member().Tag().Optional
}

// Type is the getter type, or the setter type for write-only properties.
func (p *Property) Type() reflect.Type {
	if getter := p.Getter(); getter != nil {
		return getter.Type()
	}
	if setter := p.Setter(); setter != nil {
		return setter.Type()
	}
	return nil
}

// Field returns the field behind the getter, if the getter reads a field.
func (p *Property) Field() *Field {
	if g, ok := p.Getter().(*FieldGetter); ok {
		return g.Field()
	}
	return nil
}

// Method returns the method behind the getter, if the getter calls a method.
func (p *Property) Method() *Method {
	if g, ok := p.Getter().(*MethodGetter); ok {
		return g.Method()
	}
	return nil
}

// Member returns the getter's method, else its field, else nil.
func (p *Property) Member() Member {
	if m := p.Method(); m != nil {
		return m
	}
	if f := p.Field(); f != nil {
		return f
	}
	return nil
}

func (p *Property) Equal(other *Property) bool {
	return other != nil && p.name == other.name
}

// Compare orders properties by name.
func (p *Property) Compare(other *Property) int {
	return strings.Compare(p.name, other.name)
}

func (p *Property) String() string {
	return "[Property name = " + p.name + ", type = " + typeName(p.Type()) + "]"
}
