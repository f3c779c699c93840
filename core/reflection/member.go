package reflection

import (
	"reflect"
)

// Member is a declared slot of a type: a struct field or a method.
type Member interface {
	// Name is the declared Go name.
	Name() string
	// DeclaringType is the type that declares the member.
	DeclaringType() reflect.Type
	// ValueType is the type of the value the member holds, returns or accepts.
	ValueType() reflect.Type
	// Tag is the parsed prop tag of the member.
	Tag() Tag
	IsExported() bool
	// IsSynthetic reports members that exist for the language rather than the
	// author: blank fields and the MethodTagger hook.
	IsSynthetic() bool
	IsPrimitive() bool
	IsArray() bool
	// ArrayElementType is the element type of slice and array members, or nil.
	ArrayElementType() reflect.Type
	// TypeArguments are the element types of a container member: key and value
	// for maps, the element for slices, arrays, channels and pointers.
	TypeArguments() []reflect.Type
	String() string
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// IsPrimitive reports whether t is a bool, numeric or complex kind.
func IsPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

func isArray(t reflect.Type) bool {
	return t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array)
}

func arrayElementType(t reflect.Type) reflect.Type {
	if isArray(t) {
		return t.Elem()
	}
	return nil
}

func typeArguments(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Map:
		return []reflect.Type{t.Key(), t.Elem()}
	case reflect.Slice, reflect.Array, reflect.Chan, reflect.Pointer:
		return []reflect.Type{t.Elem()}
	default:
		return nil
	}
}

// isNil reports whether v is a nil interface or a nil pointer, map, slice,
// func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	return isNilValue(reflect.ValueOf(v))
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
