package reflection

import (
	"reflect"
	"sync"

	"github.com/anoideaopen/introspection/core/convert"
)

// Getter produces a value from an instance. Failures are returned as a *Problem.
type Getter interface {
	Get(instance any) (any, error)
	// Type is the type of the produced value.
	Type() reflect.Type
	Member() Member
}

// Setter consumes a value into an instance. Failures are returned as a *Problem.
type Setter interface {
	Set(instance any, value any) error
	// Type is the type of the accepted value.
	Type() reflect.Type
	Member() Member
}

// fieldAccess decides once whether a field that is not reachable through
// exported names may be accessed through unsafe.
type fieldAccess struct {
	field    *Field
	open     OpenPolicy
	once     sync.Once
	unlocked bool
}

func (a *fieldAccess) unlock() bool {
	a.once.Do(func() {
		a.unlocked = a.open == nil || a.open(a.field.declaring)
	})
	return a.unlocked
}

// FieldGetter reads a struct field.
type FieldGetter struct {
	access fieldAccess
}

// NewFieldGetter returns a getter for f. Unexported fields are read only when
// open reports the declaring type as open; a nil policy allows everything.
func NewFieldGetter(f *Field, open OpenPolicy) *FieldGetter {
	return &FieldGetter{access: fieldAccess{field: f, open: open}}
}

func (g *FieldGetter) Get(instance any) (any, error) {
	f := g.access.field

	s, err := f.structOf(instance, false)
	if err != nil {
		return nil, err
	}
	fv, err := f.valueIn(s, false, g.access.unlock())
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

func (g *FieldGetter) Type() reflect.Type { return g.access.field.ValueType() }
func (g *FieldGetter) Member() Member     { return g.access.field }
func (g *FieldGetter) Field() *Field      { return g.access.field }

// FieldSetter writes a struct field. Convert-tagged fields run values that are
// not assignable through the converter.
type FieldSetter struct {
	access fieldAccess
	conv   convert.Converter
}

// NewFieldSetter returns a setter for f.
func NewFieldSetter(f *Field, open OpenPolicy, conv convert.Converter) *FieldSetter {
	return &FieldSetter{access: fieldAccess{field: f, open: open}, conv: conv}
}

func (s *FieldSetter) Set(instance any, value any) error {
	f := s.access.field

	sv, err := f.structOf(instance, true)
	if err != nil {
		return err
	}
	fv, err := f.valueIn(sv, true, s.access.unlock())
	if err != nil {
		return err
	}

	var conv convert.Converter
	if f.tag.Convert {
		conv = s.conv
	}
	v, err := coerce(value, fv.Type(), conv)
	if err != nil {
		return err
	}

	fv.Set(v)
	return nil
}

func (s *FieldSetter) Type() reflect.Type { return s.access.field.ValueType() }
func (s *FieldSetter) Member() Member     { return s.access.field }
func (s *FieldSetter) Field() *Field      { return s.access.field }

// MethodGetter calls a method without arguments.
type MethodGetter struct {
	method *Method
}

// NewMethodGetter returns a getter for m.
func NewMethodGetter(m *Method) *MethodGetter {
	return &MethodGetter{method: m}
}

func (g *MethodGetter) Get(instance any) (any, error) {
	fn, err := g.method.bind(instance, false)
	if err != nil {
		return nil, err
	}
	out, err := g.method.call(fn, nil)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, newProblem(ErrInvocation, nil, "%s returned nothing", g.method)
	}
	return out[0].Interface(), nil
}

func (g *MethodGetter) Type() reflect.Type { return g.method.ReturnType() }
func (g *MethodGetter) Member() Member     { return g.method }
func (g *MethodGetter) Method() *Method    { return g.method }

// MethodSetter calls a method with one argument.
type MethodSetter struct {
	method *Method
	conv   convert.Converter
}

// NewMethodSetter returns a setter for m.
func NewMethodSetter(m *Method, conv convert.Converter) *MethodSetter {
	return &MethodSetter{method: m, conv: conv}
}

func (s *MethodSetter) Set(instance any, value any) error {
	fn, err := s.method.bind(instance, true)
	if err != nil {
		return err
	}

	var conv convert.Converter
	if s.method.tag.Convert {
		conv = s.conv
	}
	arg, err := coerce(value, s.method.In(0), conv)
	if err != nil {
		return err
	}

	_, err = s.method.call(fn, []reflect.Value{arg})
	return err
}

func (s *MethodSetter) Type() reflect.Type { return s.method.In(0) }
func (s *MethodSetter) Member() Member     { return s.method }
func (s *MethodSetter) Method() *Method    { return s.method }
