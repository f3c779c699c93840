package reflection

import (
	"reflect"
)

// Method is a method of the pointer method set of a type. The signature is the
// one seen from the type the method was enumerated on, so shadowing by an
// outer type is taken into account.
type Method struct {
	root      reflect.Type
	declaring reflect.Type
	method    reflect.Method
	synthetic bool
	tag       Tag
}

func (m *Method) Name() string                { return m.method.Name }
func (m *Method) DeclaringType() reflect.Type { return m.declaring }
func (m *Method) Tag() Tag                    { return m.tag }
func (m *Method) IsExported() bool            { return m.method.IsExported() }
func (m *Method) IsSynthetic() bool           { return m.synthetic }

// NumIn is the number of parameters, not counting the receiver.
func (m *Method) NumIn() int { return m.method.Type.NumIn() - 1 }

// In returns the type of the i-th parameter, not counting the receiver.
func (m *Method) In(i int) reflect.Type { return m.method.Type.In(i + 1) }

func (m *Method) NumOut() int            { return m.method.Type.NumOut() }
func (m *Method) Out(i int) reflect.Type { return m.method.Type.Out(i) }

// ParameterTypes returns the parameter types, not counting the receiver.
func (m *Method) ParameterTypes() []reflect.Type {
	types := make([]reflect.Type, m.NumIn())
	for i := range types {
		types[i] = m.In(i)
	}
	return types
}

// ReturnType is the first result type that is not error, or nil.
func (m *Method) ReturnType() reflect.Type {
	for i := 0; i < m.NumOut(); i++ {
		if out := m.Out(i); out != errorType {
			return out
		}
	}
	return nil
}

// ValueType is the parameter type of a one-argument method and the return
// type otherwise.
func (m *Method) ValueType() reflect.Type {
	if m.NumIn() == 1 {
		return m.In(0)
	}
	return m.ReturnType()
}

func (m *Method) IsPrimitive() bool {
	t := m.ValueType()
	return t != nil && IsPrimitive(t)
}

func (m *Method) IsArray() bool                  { return isArray(m.ValueType()) }
func (m *Method) ArrayElementType() reflect.Type { return arrayElementType(m.ValueType()) }
func (m *Method) TypeArguments() []reflect.Type  { return typeArguments(m.ValueType()) }

func (m *Method) String() string {
	return typeName(m.declaring) + "." + m.method.Name + "()"
}

// ReturnsError reports whether the last result is an error.
func (m *Method) ReturnsError() bool {
	n := m.NumOut()
	return n > 0 && m.Out(n-1) == errorType
}

// isGetterShape: no parameters and a single value, optionally followed by an error.
func (m *Method) isGetterShape() bool {
	if m.NumIn() != 0 {
		return false
	}
	switch m.NumOut() {
	case 1:
		return m.Out(0) != errorType
	case 2:
		return m.Out(0) != errorType && m.Out(1) == errorType
	default:
		return false
	}
}

// isSetterShape: one parameter and no result besides an optional error.
func (m *Method) isSetterShape() bool {
	if m.NumIn() != 1 {
		return false
	}
	switch m.NumOut() {
	case 0:
		return true
	case 1:
		return m.Out(0) == errorType
	default:
		return false
	}
}

// Invoke calls the method on instance. Arguments must be assignable to the
// parameter types or related to them by pointer boxing. A returned non-nil
// error and a panic in the method are both reported as a *Problem; the error
// result itself is not part of the returned values.
func (m *Method) Invoke(instance any, args ...any) ([]any, error) {
	if len(args) != m.NumIn() {
		return nil, newProblem(ErrInvocation, nil, "%s takes %d arguments, got %d", m, m.NumIn(), len(args))
	}

	fn, err := m.bind(instance, false)
	if err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if in[i], err = coerce(arg, m.In(i), nil); err != nil {
			return nil, newProblem(ErrInvocation, err, "argument %d of %s", i, m)
		}
	}

	out, err := m.call(fn, in)
	if err != nil {
		return nil, err
	}

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// bind resolves the method value on instance. Value instances are copied to
// an addressable location so pointer receiver methods can be reached; writes
// through such a copy would be lost, so mutating callers must pass a pointer.
func (m *Method) bind(instance any, write bool) (reflect.Value, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() {
		return reflect.Value{}, newProblem(ErrNoInstance, nil, "no instance for %s", m)
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, newProblem(ErrNoInstance, nil, "nil %s for %s", v.Type(), m)
		}
	} else {
		if write {
			return reflect.Value{}, newProblem(ErrAccess, nil, "cannot call %s on a %s value, pass a pointer", m, v.Type())
		}
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}

	fn := v.MethodByName(m.method.Name)
	if !fn.IsValid() {
		return reflect.Value{}, newProblem(ErrAccess, nil, "%s has no method %s", v.Type(), m.method.Name)
	}
	if !m.sameSignature(fn.Type()) {
		return reflect.Value{}, newProblem(ErrAccess, nil, "%s on %s has signature %s", m.method.Name, v.Type(), fn.Type())
	}
	return fn, nil
}

func (m *Method) sameSignature(fn reflect.Type) bool {
	if fn.NumIn() != m.NumIn() || fn.NumOut() != m.NumOut() {
		return false
	}
	for i := 0; i < fn.NumIn(); i++ {
		if fn.In(i) != m.In(i) {
			return false
		}
	}
	for i := 0; i < fn.NumOut(); i++ {
		if fn.Out(i) != m.Out(i) {
			return false
		}
	}
	return true
}

// call invokes fn, turning panics and a trailing non-nil error into a *Problem.
func (m *Method) call(fn reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newProblem(ErrInvocation, panicError(r), "%s panicked", m)
		}
	}()

	out = fn.Call(in)
	if m.ReturnsError() {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, newProblem(ErrInvocation, last.Interface().(error), "%s failed", m) //nolint:forcetypeassert
		}
	}
	return out, nil
}
