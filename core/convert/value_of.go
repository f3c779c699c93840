package convert

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// decoder fills target, a pointer, from raw. It reports false when it does
// not apply to target.
type decoder func(raw []byte, target any) (bool, error)

// decoders are tried in order until one applies and succeeds.
var decoders = []decoder{
	decodeJSON,
	decodeText,
	decodeProto,
	decodeBinary,
}

// ValueOf converts the string s to a reflect.Value of type t.
//
// String kinds, and pointers to them, take s verbatim. Anything else is
// decoded from s by the first decoder that succeeds: JSON (protojson for
// proto.Message targets), encoding.TextUnmarshaler, proto binary and
// encoding.BinaryUnmarshaler. Pointer targets receive a freshly allocated
// value.
func ValueOf(s string, t reflect.Type) (reflect.Value, error) {
	return decode([]byte(s), t)
}

func decode(raw []byte, t reflect.Type) (reflect.Value, error) {
	elem := t
	if t.Kind() == reflect.Pointer {
		elem = t.Elem()
	}

	slot := reflect.New(elem)
	result := func() reflect.Value {
		if t.Kind() == reflect.Pointer {
			return slot
		}
		return slot.Elem()
	}

	if elem.Kind() == reflect.String {
		slot.Elem().SetString(string(raw))
		return result(), nil
	}

	target := slot.Interface()
	for _, d := range decoders {
		if ok, err := d(raw, target); ok && err == nil {
			return result(), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: '%s': for type '%s'", ErrInvalidValue, raw, t)
}

func decodeJSON(raw []byte, target any) (bool, error) {
	if !json.Valid(raw) {
		return false, nil
	}
	if msg, ok := target.(proto.Message); ok {
		return true, protojson.Unmarshal(raw, msg)
	}
	return true, json.Unmarshal(raw, target)
}

func decodeText(raw []byte, target any) (bool, error) {
	u, ok := target.(encoding.TextUnmarshaler)
	if !ok {
		return false, nil
	}
	return true, u.UnmarshalText(raw)
}

func decodeProto(raw []byte, target any) (bool, error) {
	msg, ok := target.(proto.Message)
	if !ok {
		return false, nil
	}
	return true, proto.Unmarshal(raw, msg)
}

func decodeBinary(raw []byte, target any) (bool, error) {
	u, ok := target.(encoding.BinaryUnmarshaler)
	if !ok {
		return false, nil
	}
	return true, u.UnmarshalBinary(raw)
}
