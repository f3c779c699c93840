package convert

import (
	"errors"
	"fmt"
	"reflect"
)

// Error types.
var (
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnsupportedType = errors.New("unsupported conversion")
)

// Converter turns an arbitrary value into a value of the requested type.
type Converter interface {
	Convert(v any, t reflect.Type) (reflect.Value, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(v any, t reflect.Type) (reflect.Value, error)

// Convert calls f(v, t).
func (f ConverterFunc) Convert(v any, t reflect.Type) (reflect.Value, error) {
	return f(v, t)
}

// Default is the converter used for convert-tagged properties.
var Default Converter = ConverterFunc(Convert)

// Convert returns v as a value of type t.
//
// nil becomes the zero value of t. Values already assignable to t are returned
// as is. Strings and byte slices are decoded the way ValueOf decodes them.
// Numeric kinds convert between each other only when the value survives the
// conversion; truncated fractions, wrapped integers and sign flips are
// refused.
func Convert(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	val := reflect.ValueOf(v)
	if val.Type().AssignableTo(t) {
		return val, nil
	}

	switch src := v.(type) {
	case string:
		return decode([]byte(src), t)
	case []byte:
		return decode(src, t)
	}

	switch {
	case isNumeric(val.Kind()) && isNumeric(t.Kind()):
		return convertNumber(val, t)
	case val.Kind() == t.Kind() && val.Type().ConvertibleTo(t):
		return val.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: from '%s' to '%s'", ErrUnsupportedType, val.Type(), t)
}

func convertNumber(val reflect.Value, t reflect.Type) (reflect.Value, error) {
	out := val.Convert(t)

	if isFloat(val.Kind()) && isFloat(t.Kind()) {
		if reflect.Zero(t).OverflowFloat(val.Float()) {
			return reflect.Value{}, fmt.Errorf("%w: %v overflows '%s'", ErrUnsupportedType, val, t)
		}
		return out, nil
	}

	if !out.Convert(val.Type()).Equal(val) || isNegative(val) != isNegative(out) {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit '%s'", ErrUnsupportedType, val, t)
	}
	return out, nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return isFloat(k)
	}
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNegative(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() < 0
	case reflect.Float32, reflect.Float64:
		return v.Float() < 0
	default:
		return false
	}
}
