package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer of the introspection packages.
const InstrumentationName = "github.com/anoideaopen/introspection"

// Tracer returns the tracer of the introspection packages from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

func RootType(name string) attribute.KeyValue {
	return attribute.String("root_type", name)
}

func FieldCount(n int) attribute.KeyValue {
	return attribute.Int("field_count", n)
}
