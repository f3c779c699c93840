// Package reflection enumerates, reads and writes the named properties of
// arbitrary Go values, and walks the object graph reachable from a value.
//
// A Registry hands out one *Type per Go type. A Type lists its fields and
// methods, including those of embedded structs, and builds property sets
// through a PropertyFilter, which decides which members take part and what
// the resulting properties are called:
//
//	filter := reflection.NewFilter(reflection.BeanNaming, reflection.IncludePublicMethods)
//	for _, p := range reflection.For[Account]().Properties(filter) {
//		v, err := p.Get(account)
//		...
//	}
//
// Filters are cache keys: create them once and reuse them.
//
// Members are tuned with the prop struct tag and, for methods, the
// MethodTagger interface. See TagKey.
package reflection
