package reflection

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anoideaopen/introspection/core/telemetry"
)

// BoundField is a field found on a particular instance during a walk.
type BoundField struct {
	*Field

	holder reflect.Value
	value  reflect.Value
}

// Value returns the field value.
func (b *BoundField) Value() any {
	return b.value.Interface()
}

// Holder returns a pointer to the struct holding the field.
func (b *BoundField) Holder() any {
	return b.holder.Addr().Interface()
}

func (b *BoundField) String() string {
	return fmt.Sprintf("%s = %v", b.Field, b.value)
}

// fieldKey identifies a field slot in memory. The declaring type and name
// separate a struct from its first field, which share an address.
type fieldKey struct {
	addr      uintptr
	declaring reflect.Type
	name      string
}

type walker struct {
	registry *Registry
	log      *logrus.Entry
	match    func(*Field) bool
	visited  map[fieldKey]struct{}
	fields   []*BoundField
}

// ReachableFields walks the values reachable from root through struct fields,
// pointers and interfaces, depth first, and returns every non-nil field slot
// accepted by match. Each slot is reported once, so cyclic graphs terminate.
// Primitive fields are never reported, blank fields and fields declared by
// closed types are never visited. Problems are logged and skipped.
func (r *Registry) ReachableFields(root any, match func(*Field) bool) []*BoundField {
	return r.ReachableFieldsContext(context.Background(), root, match)
}

// ReachableFieldsContext is ReachableFields with the walk span parented to ctx.
func (r *Registry) ReachableFieldsContext(ctx context.Context, root any, match func(*Field) bool) (fields []*BoundField) {
	rootType := fmt.Sprintf("%T", root)

	_, span := r.cfg.Tracer.Start(ctx, "reflection.ReachableFields",
		trace.WithAttributes(telemetry.RootType(rootType)))
	defer span.End()

	w := &walker{
		registry: r,
		log:      r.log.WithField("root", rootType),
		match:    match,
		visited:  make(map[fieldKey]struct{}),
	}

	defer func() {
		if rec := recover(); rec != nil {
			err := panicError(rec)
			w.log.WithError(err).Warn("reachable fields walk aborted")
			span.RecordError(err)
			span.SetStatus(codes.Error, "walk aborted")
		}
		fields = w.fields
		span.SetAttributes(telemetry.FieldCount(len(fields)))
	}()

	w.walk(reflect.ValueOf(root))
	return w.fields
}

func (w *walker) walk(v reflect.Value) {
	s, ok := holderOf(v)
	if !ok {
		return
	}

	typ := w.registry.TypeFor(s.Type())
	for _, f := range typ.AllFields() {
		if f.IsSynthetic() || f.IsPrimitive() || !w.registry.cfg.Open(f.declaring) {
			continue
		}
		if w.match != nil && !w.match(f) {
			continue
		}

		fv, err := f.valueIn(s, false, true)
		if err != nil {
			w.log.WithError(err).WithField("field", f.String()).Debug("field skipped")
			continue
		}
		if isNilValue(fv) {
			continue
		}

		key := fieldKey{addr: fv.UnsafeAddr(), declaring: f.declaring, name: f.Name()}
		if _, seen := w.visited[key]; seen {
			continue
		}
		w.visited[key] = struct{}{}

		w.fields = append(w.fields, &BoundField{Field: f, holder: s, value: fv})
		w.walk(fv)
	}
}

// holderOf follows pointers and interfaces down to an addressable struct.
func holderOf(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	if !v.CanAddr() {
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		v = c
	}
	return v, true
}

// ReachableObjects returns the values of the non-transient, non-primitive
// fields reachable from root.
func (r *Registry) ReachableObjects(root any) []any {
	return r.ReachableObjectsMatching(root, reachableObject)
}

// ReachableObjectsMatching returns the values of the reachable fields accepted by match.
func (r *Registry) ReachableObjectsMatching(root any, match func(*Field) bool) []any {
	fields := r.ReachableFields(root, match)

	objects := make([]any, 0, len(fields))
	for _, f := range fields {
		objects = append(objects, f.Value())
	}
	return objects
}

// ReachableObjectsImplementing returns the values of reachable fields whose
// declared type implements iface, or is assignable to it when iface is not an
// interface. Only such fields are followed.
func (r *Registry) ReachableObjectsImplementing(root any, iface reflect.Type) []any {
	return r.ReachableObjectsMatching(root, func(f *Field) bool {
		return reachableObject(f) && satisfies(f.ValueType(), iface)
	})
}

func reachableObject(f *Field) bool {
	return !f.IsTransient() && !f.IsPrimitive()
}

func satisfies(t, target reflect.Type) bool {
	if target.Kind() == reflect.Interface {
		return t.Implements(target)
	}
	return t.AssignableTo(target)
}

// ReachableFields walks root with the Default registry.
func ReachableFields(root any, match func(*Field) bool) []*BoundField {
	return Default.ReachableFields(root, match)
}

// ReachableObjects walks root with the Default registry.
func ReachableObjects(root any) []any {
	return Default.ReachableObjects(root)
}

// ReachableObjectsImplementing walks root with the Default registry.
func ReachableObjectsImplementing(root any, iface reflect.Type) []any {
	return Default.ReachableObjectsImplementing(root, iface)
}
