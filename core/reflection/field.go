package reflection

import (
	"reflect"
	"unsafe"
)

// Field is a struct field seen from the type it was enumerated on. Fields of
// embedded structs keep the full index path from that type.
type Field struct {
	root      reflect.Type
	declaring reflect.Type
	field     reflect.StructField
	index     []int
	tag       Tag
}

func newField(root, declaring reflect.Type, sf reflect.StructField, prefix []int) *Field {
	index := make([]int, 0, len(prefix)+1)
	index = append(index, prefix...)
	index = append(index, sf.Index...)

	return &Field{
		root:      root,
		declaring: declaring,
		field:     sf,
		index:     index,
		tag:       fieldTag(sf),
	}
}

func (f *Field) Name() string                   { return f.field.Name }
func (f *Field) DeclaringType() reflect.Type    { return f.declaring }
func (f *Field) ValueType() reflect.Type        { return f.field.Type }
func (f *Field) Tag() Tag                       { return f.tag }
func (f *Field) IsExported() bool               { return f.field.IsExported() }
func (f *Field) IsSynthetic() bool              { return f.field.Name == "_" }
func (f *Field) IsTransient() bool              { return f.tag.Transient }
func (f *Field) IsPrimitive() bool              { return IsPrimitive(f.field.Type) }
func (f *Field) IsArray() bool                  { return isArray(f.field.Type) }
func (f *Field) ArrayElementType() reflect.Type { return arrayElementType(f.field.Type) }
func (f *Field) TypeArguments() []reflect.Type  { return typeArguments(f.field.Type) }

// StructField returns the underlying reflect.StructField.
func (f *Field) StructField() reflect.StructField {
	return f.field
}

// Index returns the index path of the field from the type it was enumerated on.
func (f *Field) Index() []int {
	return append([]int(nil), f.index...)
}

func (f *Field) String() string {
	return typeName(f.declaring) + "." + f.field.Name
}

// indexFor returns the index path to use on a struct of type t.
func (f *Field) indexFor(t reflect.Type) ([]int, bool) {
	switch t {
	case f.root:
		return f.index, true
	case f.declaring:
		return f.field.Index, true
	default:
		return nil, false
	}
}

// structOf dereferences instance down to the struct holding the field. Reads
// of non-addressable structs work on a copy; writes need a pointer.
func (f *Field) structOf(instance any, write bool) (reflect.Value, error) {
	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, newProblem(ErrNoInstance, nil, "nil %s for %s", v.Type(), f)
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, newProblem(ErrNoInstance, nil, "no instance for %s", f)
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, newProblem(ErrAccess, nil, "%s is not a struct holding %s", v.Type(), f)
	}
	if !v.CanAddr() {
		if write {
			return reflect.Value{}, newProblem(ErrAccess, nil, "cannot set %s on a %s value, pass a pointer", f, v.Type())
		}
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		v = c
	}
	return v, nil
}

// valueIn resolves the field inside the addressable struct s. When the field
// is not reachable through exported names, unlocked selects unsafe access.
func (f *Field) valueIn(s reflect.Value, write, unlocked bool) (reflect.Value, error) {
	index, ok := f.indexFor(s.Type())
	if !ok {
		return reflect.Value{}, newProblem(ErrAccess, nil, "%s does not hold %s", s.Type(), f)
	}

	fv, err := s.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, newProblem(ErrNoInstance, err, "cannot reach %s", f)
	}

	restricted := !fv.CanInterface() || (write && !fv.CanSet())
	if !restricted {
		return fv, nil
	}
	if !unlocked || !fv.CanAddr() {
		return reflect.Value{}, newProblem(ErrAccess, nil, "%s is not accessible", f)
	}
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem(), nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
