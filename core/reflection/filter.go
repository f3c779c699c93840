package reflection

import (
	"reflect"

	"github.com/anoideaopen/introspection/core/stringsx"
)

// PropertyFilter decides which members are properties and what they are
// called. Types cache property sets per filter identity, so filters should be
// created once and reused.
type PropertyFilter interface {
	IncludeField(f *Field) bool
	IncludeAsGetter(m *Method) bool
	IncludeAsSetter(m *Method) bool
	NameForField(f *Field) string
	NameForMethod(m *Method) string
}

// NamingConvention is the accessor naming pattern recognised by a filter.
type NamingConvention int

const (
	// BeanNaming recognises GetX and IsX getters and SetX setters.
	BeanNaming NamingConvention = iota
	// DirectNaming treats any method without parameters that returns a value
	// as a getter, and any method with one parameter as a setter.
	DirectNaming
	// AnyNaming accepts both conventions.
	AnyNaming
)

func (c NamingConvention) String() string {
	switch c {
	case BeanNaming:
		return "bean"
	case DirectNaming:
		return "direct"
	case AnyNaming:
		return "any"
	default:
		return "unknown"
	}
}

// Include selects the members a FilterSet considers.
type Include uint

const (
	// IncludePublicMethods includes exported methods.
	IncludePublicMethods Include = 1 << iota
	// IncludeNonPublicMethods includes unexported methods. Go reflection does not
	// list unexported methods, so in practice this admits every listed method.
	IncludeNonPublicMethods
	// IncludeTaggedFields includes fields with an including prop tag.
	IncludeTaggedFields
	// IncludeTaggedMethods includes methods tagged through MethodTagger.
	IncludeTaggedMethods
	// IncludeConvertedMembers includes fields and methods tagged convert.
	IncludeConvertedMembers
	// IncludeFields includes every non-transient field.
	IncludeFields
	// IncludeTransientFields includes transient fields.
	IncludeTransientFields

	// IncludeAll includes every member.
	IncludeAll = IncludePublicMethods | IncludeNonPublicMethods | IncludeTaggedFields |
		IncludeTaggedMethods | IncludeConvertedMembers | IncludeFields | IncludeTransientFields
)

const (
	getPrefix = "Get"
	isPrefix  = "Is"
	setPrefix = "Set"
)

var reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// FilterSet is the standard PropertyFilter: a naming convention plus a set of
// inclusion rules. Excluding tags always win; blank fields and synthetic
// methods are never included.
type FilterSet struct {
	convention NamingConvention
	include    Include
}

// NewFilter returns a filter with the given convention and inclusion rules.
// Nothing is included by default.
func NewFilter(convention NamingConvention, include ...Include) *FilterSet {
	var mask Include
	for _, in := range include {
		mask |= in
	}
	return &FilterSet{convention: convention, include: mask}
}

func (s *FilterSet) Convention() NamingConvention {
	return s.convention
}

// Includes reports whether every rule in in is part of the filter.
func (s *FilterSet) Includes(in Include) bool {
	return s.include&in == in
}

func (s *FilterSet) IncludeField(f *Field) bool {
	if f.IsSynthetic() {
		return false
	}

	tag := f.Tag()
	switch {
	case tag.Exclude:
		return false
	case tag.Include && s.Includes(IncludeTaggedFields):
		return true
	case tag.Convert && s.Includes(IncludeConvertedMembers):
		return true
	case tag.Transient:
		return s.Includes(IncludeTransientFields)
	default:
		return s.Includes(IncludeFields)
	}
}

func (s *FilterSet) IncludeAsGetter(m *Method) bool {
	return s.includeMethod(m) && s.isGetter(m)
}

func (s *FilterSet) IncludeAsSetter(m *Method) bool {
	return s.includeMethod(m) && s.isSetter(m)
}

func (s *FilterSet) includeMethod(m *Method) bool {
	if m.IsSynthetic() {
		return false
	}

	tag := m.Tag()
	switch {
	case tag.Exclude:
		return false
	case tag.Include && s.Includes(IncludeTaggedMethods):
		return true
	case tag.Convert && s.Includes(IncludeConvertedMembers):
		return true
	case m.IsExported() && s.Includes(IncludePublicMethods):
		return true
	default:
		return s.Includes(IncludeNonPublicMethods)
	}
}

func (s *FilterSet) isGetter(m *Method) bool {
	if !m.isGetterShape() {
		return false
	}
	switch s.convention {
	case DirectNaming:
		return true
	case BeanNaming:
		return isBeanGetter(m)
	case AnyNaming:
		return true
	default:
		return false
	}
}

func (s *FilterSet) isSetter(m *Method) bool {
	if !m.isSetterShape() {
		return false
	}
	switch s.convention {
	case DirectNaming, AnyNaming:
		return true
	case BeanNaming:
		_, _, ok := stringsx.CutFirstPrefix(m.Name(), setPrefix)
		return ok
	default:
		return false
	}
}

// isBeanGetter accepts GetX and IsX. A getter returning reflect.Type reports
// the identity of the value's type rather than a property of it.
func isBeanGetter(m *Method) bool {
	if m.ReturnType() == reflectTypeType {
		return false
	}
	_, _, ok := stringsx.CutFirstPrefix(m.Name(), getPrefix, isPrefix)
	return ok
}

// NameForField returns the tag name, or the field name with a lowercase first letter.
func (s *FilterSet) NameForField(f *Field) string {
	if name := f.Tag().Name; name != "" {
		return name
	}
	return stringsx.LowerFirstChar(f.Name())
}

// NameForMethod returns the tag name, or the method name without an Is, Get
// or Set prefix, with a lowercase first letter.
func (s *FilterSet) NameForMethod(m *Method) string {
	if name := m.Tag().Name; name != "" {
		return name
	}
	rest, _, _ := stringsx.CutFirstPrefix(m.Name(), isPrefix, getPrefix, setPrefix)
	return stringsx.LowerFirstChar(rest)
}
