package reflection

import (
	"reflect"

	"github.com/anoideaopen/introspection/core/convert"
)

// boxable lists the types that are interchangeable with a pointer to
// themselves. The table is exhaustive; there is no other implicit widening.
var boxable = map[reflect.Type]struct{}{
	reflect.TypeOf(int(0)):     {},
	reflect.TypeOf(int64(0)):   {},
	reflect.TypeOf(rune(0)):    {},
	reflect.TypeOf(false):      {},
	reflect.TypeOf(int16(0)):   {},
	reflect.TypeOf(byte(0)):    {},
	reflect.TypeOf(float64(0)): {},
	reflect.TypeOf(float32(0)): {},
}

// boxes reports whether ptr is a pointer to the boxable type value.
func boxes(ptr, value reflect.Type) bool {
	if ptr.Kind() != reflect.Pointer || ptr.Elem() != value {
		return false
	}
	_, ok := boxable[value]
	return ok
}

// Compatible reports whether a getter of type a and a setter of type b may
// form one property: the types are identical or one boxes the other.
func Compatible(a, b reflect.Type) bool {
	return a == b || boxes(a, b) || boxes(b, a)
}

// CanAssign reports whether a value of type from can be stored in a slot of
// type to without a converter.
func CanAssign(from, to reflect.Type) bool {
	return from == to || from.AssignableTo(to) || boxes(from, to) || boxes(to, from)
}

// coerce prepares value for a slot of type to. nil and nil pointers become the
// zero value, boxed values are wrapped or unwrapped, and anything else goes
// through conv when it is set.
func coerce(value any, to reflect.Type, conv convert.Converter) (reflect.Value, error) {
	if isNil(value) {
		return reflect.Zero(to), nil
	}

	v := reflect.ValueOf(value)
	from := v.Type()

	switch {
	case from.AssignableTo(to):
		return v, nil
	case boxes(from, to):
		return v.Elem(), nil
	case boxes(to, from):
		p := reflect.New(from)
		p.Elem().Set(v)
		return p, nil
	}

	if conv != nil {
		converted, err := conv.Convert(value, to)
		if err != nil {
			return reflect.Value{}, newProblem(ErrCannotConvert, err, "%s to %s", from, to)
		}
		return converted, nil
	}

	return reflect.Value{}, newProblem(ErrCannotConvert, nil, "%s is not assignable to %s", from, to)
}
