package reflection

import (
	"reflect"
	"strings"
)

// TagKey is the struct tag key read for property metadata.
//
//	type Account struct {
//		ID      string `prop:"id"`                // included under the name "id"
//		Secret  string `prop:"-"`                 // never a property
//		Note    string `prop:",optional"`         // may be set to nil
//		Limit   int    `prop:"limit,convert"`     // values are converted on set
//		scratch []byte `prop:",transient"`        // not followed by the walker
//	}
const TagKey = "prop"

// MethodTagger lets a type attach tags to its methods, which Go cannot carry
// on method declarations. The map goes from method name to a tag value in the
// same syntax as the prop struct tag.
//
// PropertyTags is called on a zero value of the type, so it must not depend
// on instance state.
type MethodTagger interface {
	PropertyTags() map[string]string
}

var methodTaggerType = reflect.TypeOf((*MethodTagger)(nil)).Elem()

// Tag is the parsed form of a prop tag.
type Tag struct {
	// Present reports whether any prop tag was found on the member.
	Present bool
	// Name is the explicit property name, if given.
	Name string
	// Include marks the member as explicitly included.
	Include bool
	// Exclude overrides every inclusion rule.
	Exclude bool
	// Optional allows the property to be set to nil.
	Optional bool
	// Convert marks the member as converter-tagged.
	Convert bool
	// Transient marks a field that reachability walks do not follow.
	Transient bool
}

// ParseTag parses a prop tag value.
func ParseTag(value string) Tag {
	tag := Tag{Present: true}
	if value == "-" {
		tag.Exclude = true
		return tag
	}

	name, flags, _ := strings.Cut(value, ",")
	tag.Name = strings.TrimSpace(name)
	tag.Include = tag.Name != ""

	for _, flag := range strings.Split(flags, ",") {
		switch strings.TrimSpace(flag) {
		case "include":
			tag.Include = true
		case "exclude":
			tag.Exclude = true
		case "optional":
			tag.Optional = true
		case "convert":
			tag.Convert = true
		case "transient":
			tag.Transient = true
		}
	}

	return tag
}

func fieldTag(f reflect.StructField) Tag {
	value, ok := f.Tag.Lookup(TagKey)
	if !ok {
		return Tag{}
	}
	return ParseTag(value)
}

// methodTags calls PropertyTags on a zero value of t, if t implements MethodTagger.
func methodTags(t reflect.Type) (tags map[string]Tag) {
	ptr := reflect.PointerTo(t)
	if !ptr.Implements(methodTaggerType) {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			tags = nil
		}
	}()

	raw := reflect.New(t).Interface().(MethodTagger).PropertyTags() //nolint:forcetypeassert
	tags = make(map[string]Tag, len(raw))
	for name, value := range raw {
		tags[name] = ParseTag(value)
	}
	return tags
}
