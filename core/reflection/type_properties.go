package reflection

import (
	"github.com/sirupsen/logrus"
)

var (
	// methodProperties backs Type.Property: every listed method under either
	// naming convention.
	methodProperties = NewFilter(AnyNaming, IncludePublicMethods, IncludeNonPublicMethods)
	// fieldProperties backs Type.FieldProperty: every field, tagged or not.
	fieldProperties = NewFilter(AnyNaming, IncludeFields, IncludeTransientFields, IncludeTaggedFields)
)

// Properties returns the properties selected by filter, sorted by name. The
// result is computed once per filter value and shared afterwards.
func (t *Type) Properties(filter PropertyFilter) []*Property {
	return t.PropertySet(filter).Properties()
}

// PropertySet returns the cached property set for filter. Filters are
// compared by identity. The filter must not call back into t.
func (t *Type) PropertySet(filter PropertyFilter) *PropertySet {
	t.mu.Lock()
	defer t.mu.Unlock()

	if set, ok := t.properties[filter]; ok {
		return set
	}

	set := newPropertySet(t.buildProperties(filter))
	t.properties[filter] = set
	return set
}

// Property returns the method-backed property called name, or nil.
func (t *Type) Property(name string) *Property {
	return t.PropertySet(methodProperties).Get(name)
}

// FieldProperty returns the field-backed property called name, or nil.
func (t *Type) FieldProperty(name string) *Property {
	return t.PropertySet(fieldProperties).Get(name)
}

// buildProperties binds fields first, then method getters, then method
// setters. Among fields, and among methods, an outer member shadows an
// embedded one of the same property name. A method accessor replaces a field
// accessor of a compatible type at any embedding level.
func (t *Type) buildProperties(filter PropertyFilter) map[string]*Property {
	var (
		cfg   = t.registry.cfg
		log   = t.registry.log.WithField("type", t.FullyQualifiedName())
		props = make(map[string]*Property)
	)

	for _, f := range t.AllFields() {
		if !filter.IncludeField(f) {
			continue
		}
		name := filter.NameForField(f)
		if _, ok := props[name]; ok {
			continue
		}
		p, err := NewProperty(name, NewFieldGetter(f, cfg.Open), NewFieldSetter(f, cfg.Open, cfg.Converter))
		if err != nil {
			log.WithError(err).WithField("field", f.String()).Debug("field skipped")
			continue
		}
		props[name] = p
	}

	methods := t.AllMethods()

	bound := make(map[string]bool)
	for _, m := range methods {
		if m.IsSynthetic() || !filter.IncludeAsGetter(m) {
			continue
		}
		name := filter.NameForMethod(m)
		if bound[name] {
			continue
		}
		if err := bind(props, name, NewMethodGetter(m), nil); err != nil {
			logSkipped(log, name, m, err)
			continue
		}
		bound[name] = true
	}

	bound = make(map[string]bool)
	for _, m := range methods {
		if m.IsSynthetic() || !filter.IncludeAsSetter(m) {
			continue
		}
		name := filter.NameForMethod(m)
		if bound[name] {
			continue
		}
		if err := bind(props, name, nil, NewMethodSetter(m, cfg.Converter)); err != nil {
			logSkipped(log, name, m, err)
			continue
		}
		bound[name] = true
	}

	return props
}

// bind attaches exactly one of getter or setter to the property called name,
// creating the property if needed.
func bind(props map[string]*Property, name string, getter Getter, setter Setter) error {
	p, ok := props[name]
	if !ok {
		p, err := NewProperty(name, getter, setter)
		if err != nil {
			return err
		}
		props[name] = p
		return nil
	}

	if getter != nil {
		return p.SetGetter(getter)
	}
	return p.SetSetter(setter)
}

func logSkipped(log *logrus.Entry, name string, m *Method, err error) {
	log.WithFields(logrus.Fields{
		"property": name,
		"method":   m.String(),
	}).WithError(err).Debug("accessor skipped")
}
