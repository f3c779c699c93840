package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// Type is the cached view of one Go type. Pointers to structs are represented
// by the struct type. Obtain Types from a Registry; there is one per type.
type Type struct {
	registry *Registry
	typ      reflect.Type

	stringOnce sync.Once
	hasString  bool

	tagsOnce sync.Once
	tags     map[string]Tag

	mu           sync.Mutex
	properties   map[PropertyFilter]*PropertySet
	constructors []reflect.Value
}

func newType(registry *Registry, t reflect.Type) *Type {
	return &Type{
		registry:   registry,
		typ:        t,
		properties: make(map[PropertyFilter]*PropertySet),
	}
}

// normalize maps pointers to structs onto the struct type.
func normalize(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		return t.Elem()
	}
	return t
}

// Type returns the underlying reflect.Type.
func (t *Type) Type() reflect.Type {
	return t.typ
}

// Name returns the unqualified type name.
func (t *Type) Name() string {
	return typeName(t.typ)
}

// FullyQualifiedName returns the package path and name of a named type, and
// the type literal otherwise.
func (t *Type) FullyQualifiedName() string {
	if t.typ.PkgPath() == "" || t.typ.Name() == "" {
		return t.typ.String()
	}
	return t.typ.PkgPath() + "." + t.typ.Name()
}

func (t *Type) String() string {
	return t.Name()
}

// Is reports whether t represents other.
func (t *Type) Is(other reflect.Type) bool {
	return other != nil && normalize(other) == t.typ
}

func (t *Type) IsStruct() bool    { return t.typ.Kind() == reflect.Struct }
func (t *Type) IsArray() bool     { return isArray(t.typ) }
func (t *Type) IsPrimitive() bool { return IsPrimitive(t.typ) }

// IsSystem reports whether the type is declared in the standard library.
func (t *Type) IsSystem() bool {
	return t.typ.PkgPath() != "" && IsStandardPackage(t.typ.PkgPath())
}

// ArrayElementType returns the element Type of slice and array types, or nil.
func (t *Type) ArrayElementType() *Type {
	if elem := arrayElementType(t.typ); elem != nil {
		return t.registry.TypeFor(elem)
	}
	return nil
}

// DeclaresString reports whether the type itself declares a String method,
// as opposed to having none or inheriting one from an embedded type.
func (t *Type) DeclaresString() bool {
	t.stringOnce.Do(func() {
		if !reflect.PointerTo(t.typ).Implements(stringerType) {
			return
		}
		t.hasString = !isPromoted(t.typ, "String")
	})
	return t.hasString
}

// SuperClass returns the Type of the first embedded struct, or nil.
func (t *Type) SuperClass() *Type {
	for _, sf := range structFields(t.typ) {
		if et, ok := embeddedStruct(sf); ok {
			return t.registry.TypeFor(et)
		}
	}
	return nil
}

// SuperClasses returns every embedded struct type, depth first.
func (t *Type) SuperClasses() []*Type {
	var supers []*Type
	walkStructs(t.typ, nil, map[reflect.Type]bool{}, func(level reflect.Type, _ []int) {
		if level != t.typ {
			supers = append(supers, t.registry.TypeFor(level))
		}
	})
	return supers
}

// Interfaces returns the candidates implemented by the type or a pointer to
// it. Without candidates the interfaces registered with the Registry are used.
func (t *Type) Interfaces(candidates ...reflect.Type) []*Type {
	if len(candidates) == 0 {
		candidates = t.registry.Interfaces()
	}
	var out []*Type
	for _, iface := range candidates {
		if t.Implements(iface) {
			out = append(out, t.registry.TypeFor(iface))
		}
	}
	return out
}

// SuperTypes returns the super classes followed by the registered interfaces
// implemented by the type.
func (t *Type) SuperTypes() []*Type {
	return append(t.SuperClasses(), t.Interfaces()...)
}

// Implements reports whether the type or a pointer to it implements iface.
func (t *Type) Implements(iface reflect.Type) bool {
	if iface == nil || iface.Kind() != reflect.Interface {
		return false
	}
	return t.typ.Implements(iface) || reflect.PointerTo(t.typ).Implements(iface)
}

// IsDescendantOf reports whether the type is other, embeds other, or
// implements other when it is an interface.
func (t *Type) IsDescendantOf(other reflect.Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == reflect.Interface {
		return t.Implements(other)
	}
	if t.Is(other) {
		return true
	}
	for _, super := range t.SuperClasses() {
		if super.Is(other) {
			return true
		}
	}
	return false
}

// AllFields returns the fields of the type followed by those of its embedded
// structs, depth first. Embedded struct fields themselves are not listed. The
// result is rebuilt on every call.
func (t *Type) AllFields() []*Field {
	var fields []*Field
	walkStructs(t.typ, nil, map[reflect.Type]bool{}, func(level reflect.Type, prefix []int) {
		for i := 0; i < level.NumField(); i++ {
			sf := level.Field(i)
			if _, ok := embeddedStruct(sf); ok {
				continue
			}
			fields = append(fields, newField(t.typ, level, sf, prefix))
		}
	})
	return fields
}

// Fields returns the fields accepted by match.
func (t *Type) Fields(match func(*Field) bool) []*Field {
	var out []*Field
	for _, f := range t.AllFields() {
		if match(f) {
			out = append(out, f)
		}
	}
	return out
}

// Field returns the outermost field with the given Go name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.AllFields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AllMethods returns the methods declared by the type followed by those
// declared by its embedded structs, depth first. Methods are listed at the
// level that declares them, with the signature reachable from this type;
// methods that are ambiguous from this type are left out. The result is
// rebuilt on every call.
func (t *Type) AllMethods() []*Method {
	root := reflect.PointerTo(t.typ)

	var methods []*Method
	visit := func(level reflect.Type, _ []int) {
		tags := t.registry.TypeFor(level).methodTags()
		ptr := reflect.PointerTo(level)
		for i := 0; i < ptr.NumMethod(); i++ {
			name := ptr.Method(i).Name
			if isPromoted(level, name) {
				continue
			}
			rm, ok := root.MethodByName(name)
			if !ok {
				continue
			}
			methods = append(methods, &Method{
				root:      t.typ,
				declaring: level,
				method:    rm,
				synthetic: isTagHook(level, name),
				tag:       tags[name],
			})
		}
	}

	if t.IsStruct() {
		walkStructs(t.typ, nil, map[reflect.Type]bool{}, visit)
	} else {
		visit(t.typ, nil)
	}
	return methods
}

// Method returns the method with the given Go name, or nil.
func (t *Type) Method(name string) *Method {
	for _, m := range t.AllMethods() {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func (t *Type) methodTags() map[string]Tag {
	t.tagsOnce.Do(func() {
		t.tags = methodTags(t.typ)
	})
	return t.tags
}

// Values reads every property with a getter into a map. Nil values are stored
// as nullValue, or left out when nullValue is nil. Getters that fail are left
// out and their problems joined into the returned error.
func (t *Type) Values(instance any, filter PropertyFilter, nullValue any) (map[string]any, error) {
	values := make(map[string]any)

	var errs []error
	for _, p := range t.Properties(filter) {
		getter := p.Getter()
		if getter == nil {
			continue
		}
		v, err := getter.Get(instance)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if isNil(v) {
			if nullValue != nil {
				values[p.Name()] = nullValue
			}
			continue
		}
		values[p.Name()] = v
	}

	return values, errors.Join(errs...)
}

func structFields(t reflect.Type) []reflect.StructField {
	if t.Kind() != reflect.Struct {
		return nil
	}
	fields := make([]reflect.StructField, t.NumField())
	for i := range fields {
		fields[i] = t.Field(i)
	}
	return fields
}

// embeddedStruct returns the struct type of an embedded struct or struct pointer field.
func embeddedStruct(sf reflect.StructField) (reflect.Type, bool) {
	if !sf.Anonymous {
		return nil, false
	}
	if t := normalize(sf.Type); t.Kind() == reflect.Struct {
		return t, true
	}
	return nil, false
}

// walkStructs visits st and then its embedded structs depth first, passing the
// index path of each level from st.
func walkStructs(st reflect.Type, prefix []int, seen map[reflect.Type]bool, visit func(level reflect.Type, prefix []int)) {
	if st.Kind() != reflect.Struct || seen[st] {
		return
	}
	seen[st] = true

	visit(st, prefix)
	for i := 0; i < st.NumField(); i++ {
		if et, ok := embeddedStruct(st.Field(i)); ok {
			walkStructs(et, append(prefix[:len(prefix):len(prefix)], i), seen, visit)
		}
	}
}

// isPromoted reports whether the method name of t is promoted from an
// embedded field rather than declared on t. When both are possible, a method
// declared on t has a source position while promotion wrappers do not.
func isPromoted(t reflect.Type, name string) bool {
	embedded := false
	for _, sf := range structFields(t) {
		if !sf.Anonymous {
			continue
		}
		set := sf.Type
		if set.Kind() != reflect.Interface && set.Kind() != reflect.Pointer {
			set = reflect.PointerTo(set)
		}
		if _, ok := set.MethodByName(name); ok {
			embedded = true
			break
		}
	}
	if !embedded {
		return false
	}

	for _, mt := range []reflect.Type{t, reflect.PointerTo(t)} {
		if m, ok := mt.MethodByName(name); ok && !generated(m.Func) {
			return false
		}
	}
	return true
}

func generated(fn reflect.Value) bool {
	pc := fn.Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return true
	}
	file, _ := f.FileLine(pc)
	return file == "<autogenerated>"
}

func isTagHook(t reflect.Type, name string) bool {
	return name == "PropertyTags" && reflect.PointerTo(t).Implements(methodTaggerType)
}
