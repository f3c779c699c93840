package reflection

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/anoideaopen/introspection/core/convert"
	"github.com/anoideaopen/introspection/core/logger"
	"github.com/anoideaopen/introspection/core/telemetry"
)

// Config configures a Registry. Zero fields take their defaults.
type Config struct {
	// Logger receives debug output about skipped accessors and walk problems.
	// Defaults to logger.Component("reflection").
	Logger *logrus.Entry
	// Open decides which declaring types may be introspected. Defaults to
	// DefaultOpenPolicy.
	Open OpenPolicy
	// Converter serves convert-tagged setters. Defaults to convert.Default.
	Converter convert.Converter
	// Tracer records a span per reachability walk. Defaults to telemetry.Tracer().
	Tracer trace.Tracer
}

// Registry maps Go types to their Type. There is exactly one Type per
// reflect.Type within a registry.
type Registry struct {
	cfg Config
	log *logrus.Entry

	mu         sync.RWMutex
	types      map[reflect.Type]*Type
	names      map[string]*Type
	interfaces []reflect.Type
}

// Default is the registry behind the package level functions.
var Default = NewRegistry(Config{})

// NewRegistry returns an empty registry.
func NewRegistry(cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = logger.Component("reflection")
	}
	if cfg.Open == nil {
		cfg.Open = DefaultOpenPolicy
	}
	if cfg.Converter == nil {
		cfg.Converter = convert.Default
	}
	if cfg.Tracer == nil {
		cfg.Tracer = telemetry.Tracer()
	}

	return &Registry{
		cfg:   cfg,
		log:   cfg.Logger,
		types: make(map[reflect.Type]*Type),
		names: make(map[string]*Type),
	}
}

func (r *Registry) Logger() *logrus.Entry {
	return r.log
}

// TypeFor returns the Type for t, creating it on first use. Pointers to
// structs map to the struct's Type. A nil t yields nil.
func (r *Registry) TypeFor(t reflect.Type) *Type {
	if t == nil {
		return nil
	}
	t = normalize(t)

	r.mu.RLock()
	typ, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return typ
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if typ, ok = r.types[t]; ok {
		return typ
	}
	typ = newType(r, t)
	r.types[t] = typ
	if _, taken := r.names[typ.FullyQualifiedName()]; !taken {
		r.names[typ.FullyQualifiedName()] = typ
	}
	return typ
}

// TypeOf returns the Type of v's dynamic type, or nil for a nil interface.
func (r *Registry) TypeOf(v any) *Type {
	if v == nil {
		return nil
	}
	return r.TypeFor(reflect.TypeOf(v))
}

// Register makes the type of sample available under name through TypeForName.
// Types are also known by their fully qualified name once looked up.
func (r *Registry) Register(name string, sample any) (*Type, error) {
	typ := r.TypeOf(sample)
	if typ == nil {
		return nil, fmt.Errorf("register %q: nil sample", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.names[name]; ok && prev != typ {
		return nil, fmt.Errorf("register %q: already bound to %s", name, prev.FullyQualifiedName())
	}
	r.names[name] = typ
	return typ, nil
}

// TypeForName returns the Type registered or seen under name.
func (r *Registry) TypeForName(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typ, ok := r.names[name]
	return typ, ok
}

// RegisterInterface adds iface to the interfaces Type.Interfaces checks by default.
func (r *Registry) RegisterInterface(iface reflect.Type) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("register interface: %v is not an interface", iface)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, known := range r.interfaces {
		if known == iface {
			return nil
		}
	}
	r.interfaces = append(r.interfaces, iface)
	return nil
}

// Interfaces returns the registered interfaces in registration order.
func (r *Registry) Interfaces() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]reflect.Type(nil), r.interfaces...)
}

// Len returns the number of cached types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.types)
}

// Reset drops every cached type, name and interface. Types handed out
// earlier stay usable but are no longer shared.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types = make(map[reflect.Type]*Type)
	r.names = make(map[string]*Type)
	r.interfaces = nil
}

// InterfaceOf returns the reflect.Type of the interface T.
func InterfaceOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// For returns the Type of T from the Default registry.
func For[T any]() *Type {
	return Default.TypeFor(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeOf returns the Type of v from the Default registry.
func TypeOf(v any) *Type {
	return Default.TypeOf(v)
}

// TypeFor returns the Type for t from the Default registry.
func TypeFor(t reflect.Type) *Type {
	return Default.TypeFor(t)
}

// RegisterConstructor adds a constructor to the Default registry.
func RegisterConstructor(fn any) error {
	return Default.RegisterConstructor(fn)
}
