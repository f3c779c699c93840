package reflection

import (
	"sort"
)

// PropertySet is the name-indexed, name-sorted result of reflecting on a type
// with one filter.
type PropertySet struct {
	byName map[string]*Property
	sorted []*Property
}

func newPropertySet(properties map[string]*Property) *PropertySet {
	sorted := make([]*Property, 0, len(properties))
	for _, p := range properties {
		sorted = append(sorted, p)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})
	return &PropertySet{byName: properties, sorted: sorted}
}

// Get returns the property with the given name, or nil.
func (s *PropertySet) Get(name string) *Property {
	return s.byName[name]
}

// Properties returns the properties sorted by name.
func (s *PropertySet) Properties() []*Property {
	return append([]*Property(nil), s.sorted...)
}

// Names returns the property names in sorted order.
func (s *PropertySet) Names() []string {
	names := make([]string, len(s.sorted))
	for i, p := range s.sorted {
		names[i] = p.name
	}
	return names
}

func (s *PropertySet) Len() int {
	return len(s.sorted)
}
