package reflection

import (
	"reflect"
	"strings"
)

// OpenPolicy reports whether the members of a declaring type may be
// introspected: walked by the reachability walker and, for unexported
// fields, accessed through unsafe.
type OpenPolicy func(t reflect.Type) bool

// DefaultOpenPolicy closes standard library types and types living in an
// internal package; everything else, including unnamed types, is open.
func DefaultOpenPolicy(t reflect.Type) bool {
	pkg := t.PkgPath()
	if pkg == "" {
		return true
	}
	return !IsStandardPackage(pkg) && !isInternalPackage(pkg)
}

// OpenPackages returns a policy that opens types whose package path starts
// with one of prefixes and defers to base otherwise.
func OpenPackages(base OpenPolicy, prefixes ...string) OpenPolicy {
	return func(t reflect.Type) bool {
		pkg := t.PkgPath()
		for _, prefix := range prefixes {
			if pkg == prefix || strings.HasPrefix(pkg, prefix+"/") {
				return true
			}
		}
		return base(t)
	}
}

// IsStandardPackage reports whether pkg belongs to the standard library, that
// is, whether its first path element has no dot.
func IsStandardPackage(pkg string) bool {
	first, _, _ := strings.Cut(pkg, "/")
	return first != "" && !strings.Contains(first, ".")
}

func isInternalPackage(pkg string) bool {
	for _, elem := range strings.Split(pkg, "/") {
		if elem == "internal" {
			return true
		}
	}
	return false
}
