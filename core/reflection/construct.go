package reflection

import (
	"fmt"
	"reflect"
	"strings"
)

// RegisterConstructor registers fn as a constructor of the type it returns.
// fn must be a non-variadic function returning T, *T, (T, error) or (*T, error).
func (r *Registry) RegisterConstructor(fn any) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("%w: %T", ErrBadConstructor, fn)
	}

	ft := v.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("%w: %s is variadic", ErrBadConstructor, ft)
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %s must return a value and an optional error", ErrBadConstructor, ft)
	}
	out := ft.Out(0)
	if out.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s returns an interface", ErrBadConstructor, ft)
	}

	typ := r.TypeFor(out)
	typ.mu.Lock()
	typ.constructors = append(typ.constructors, v)
	typ.mu.Unlock()
	return nil
}

// NewInstance creates a value of the type. Without params it uses a
// registered constructor taking no arguments, or else returns a pointer to a
// new zero value. With params it calls the first registered constructor whose
// parameters accept them. Constructors returning errors or panicking fail with
// ErrConstructionFailed; no match fails with ErrNoConstructor.
func (t *Type) NewInstance(params ...any) (any, error) {
	t.mu.Lock()
	ctors := append([]reflect.Value(nil), t.constructors...)
	t.mu.Unlock()

	for _, ctor := range ctors {
		if accepts(ctor.Type(), params) {
			return t.construct(ctor, params)
		}
	}

	if len(params) == 0 {
		return reflect.New(t.typ).Interface(), nil
	}
	return nil, fmt.Errorf("%w: %s(%s)", ErrNoConstructor, t.FullyQualifiedName(), describe(params))
}

// MustNewInstance is like NewInstance but panics on failure.
func (t *Type) MustNewInstance(params ...any) any {
	v, err := t.NewInstance(params...)
	if err != nil {
		panic(err)
	}
	return v
}

func (t *Type) construct(ctor reflect.Value, params []any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("%w: %s: %w", ErrConstructionFailed, t.FullyQualifiedName(), panicError(r))
		}
	}()

	in := make([]reflect.Value, len(params))
	for i, p := range params {
		if p == nil {
			in[i] = reflect.Zero(ctor.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(p)
	}

	out := ctor.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstructionFailed, t.FullyQualifiedName(), out[1].Interface().(error)) //nolint:forcetypeassert
	}
	return out[0].Interface(), nil
}

// accepts reports whether a function of type ft can be called with params.
func accepts(ft reflect.Type, params []any) bool {
	if ft.NumIn() != len(params) {
		return false
	}
	for i, p := range params {
		in := ft.In(i)
		if p == nil {
			if !nillable(in) {
				return false
			}
			continue
		}
		if !reflect.TypeOf(p).AssignableTo(in) {
			return false
		}
	}
	return true
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func describe(params []any) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = fmt.Sprintf("%T", p)
	}
	return strings.Join(types, ", ")
}
