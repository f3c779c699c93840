package reflection

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropertiesMemoized(t *testing.T) {
	r := NewRegistry(Config{})
	typ := r.TypeOf(&Person{})

	first := typ.PropertySet(beanMethods)
	require.Same(t, first, typ.PropertySet(beanMethods))

	lookalike := NewFilter(BeanNaming, IncludePublicMethods)
	require.NotSame(t, first, typ.PropertySet(lookalike))
	require.Equal(t, first.Names(), typ.PropertySet(lookalike).Names())
}

func TestPointEndToEnd(t *testing.T) {
	r := NewRegistry(Config{})
	props := r.TypeOf(Point{}).Properties(beanMethods)

	require.Len(t, props, 2)
	require.Equal(t, "x", props[0].Name())
	require.Equal(t, "y", props[1].Name())
	for _, p := range props {
		require.NotNil(t, p.Getter())
		require.NotNil(t, p.Setter())
		require.Equal(t, reflect.TypeOf(0), p.Type())
	}

	point := &Point{}
	require.NoError(t, props[0].SetValue(point, 42))

	got, err := props[0].Get(point)
	require.NoError(t, err)
	require.Equal(t, 42, got)
	require.Equal(t, 0, point.y)
}

func TestTypeNames(t *testing.T) {
	r := NewRegistry(Config{})

	tests := []struct {
		name      string
		typ       *Type
		short     string
		qualified string
	}{
		{"struct", r.TypeOf(Point{}), "Point", "github.com/anoideaopen/introspection/core/reflection.Point"},
		{"pointer normalized", r.TypeOf(&Point{}), "Point", "github.com/anoideaopen/introspection/core/reflection.Point"},
		{"builtin", r.TypeOf(0), "int", "int"},
		{"slice", r.TypeOf([]string{}), "[]string", "[]string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.short, tt.typ.Name())
			require.Equal(t, tt.qualified, tt.typ.FullyQualifiedName())
		})
	}
}

func TestTypeKinds(t *testing.T) {
	r := NewRegistry(Config{})

	require.True(t, r.TypeOf(Point{}).IsStruct())
	require.True(t, r.TypeOf(3.5).IsPrimitive())
	require.False(t, r.TypeOf("").IsPrimitive())
	require.True(t, r.TypeOf([]int{}).IsArray())
	require.Same(t, r.TypeOf(0), r.TypeOf([]int{}).ArrayElementType())
	require.Nil(t, r.TypeOf(0).ArrayElementType())
	require.True(t, r.TypeOf(fmt.Errorf("x")).IsSystem())
	require.False(t, r.TypeOf(Point{}).IsSystem())
	require.True(t, r.TypeOf(&Point{}).Is(reflect.TypeOf(Point{})))
}

func TestAllFields(t *testing.T) {
	r := NewRegistry(Config{})
	fields := r.TypeOf(Account{}).AllFields()

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	require.Equal(t, []string{"Owner", "Balance", "Serial", "created"}, names)

	serial := fields[2]
	require.Equal(t, reflect.TypeOf(Base{}), serial.DeclaringType())
	require.Equal(t, []int{0, 0}, serial.Index())
	require.Equal(t, "Base.Serial", serial.String())
	require.False(t, fields[3].IsExported())

	exported := r.TypeOf(Account{}).Fields(func(f *Field) bool { return f.IsExported() })
	require.Len(t, exported, 3)

	require.NotNil(t, r.TypeOf(Account{}).Field("created"))
	require.Nil(t, r.TypeOf(Account{}).Field("missing"))
}

func TestAllMethods(t *testing.T) {
	r := NewRegistry(Config{})
	methods := r.TypeOf(&Account{}).AllMethods()

	var names []string
	for _, m := range methods {
		names = append(names, m.DeclaringType().Name()+"."+m.Name())
	}
	require.Equal(t, []string{"Account.GetOwner", "Account.SetBalance", "Base.GetSerial", "Base.String"}, names)

	require.Nil(t, r.TypeOf(Account{}).Method("Missing"))

	out, err := r.TypeOf(Account{}).Method("GetSerial").Invoke(&Account{Base: Base{Serial: "S1"}})
	require.NoError(t, err)
	require.Equal(t, []any{"S1"}, out)
}

func TestDeclaresString(t *testing.T) {
	r := NewRegistry(Config{})

	require.True(t, r.TypeOf(Base{}).DeclaresString())
	require.False(t, r.TypeOf(Account{}).DeclaresString())
	require.True(t, r.TypeOf(Savings{}).DeclaresString())
	require.False(t, r.TypeOf(Point{}).DeclaresString())
}

func TestHierarchy(t *testing.T) {
	r := NewRegistry(Config{})
	savings := r.TypeOf(Savings{})

	require.Same(t, r.TypeOf(Account{}), savings.SuperClass())
	require.Nil(t, r.TypeOf(Base{}).SuperClass())
	require.Equal(t, []*Type{r.TypeOf(Account{}), r.TypeOf(Base{})}, savings.SuperClasses())

	stringer := InterfaceOf[fmt.Stringer]()
	require.True(t, savings.IsDescendantOf(reflect.TypeOf(Base{})))
	require.True(t, savings.IsDescendantOf(reflect.TypeOf(&Savings{})))
	require.True(t, savings.IsDescendantOf(stringer))
	require.False(t, r.TypeOf(Account{}).IsDescendantOf(reflect.TypeOf(Savings{})))
	require.True(t, r.TypeOf(Account{}).Implements(stringer))
	require.False(t, r.TypeOf(Point{}).Implements(stringer))
	require.False(t, r.TypeOf(Point{}).Implements(reflect.TypeOf(Base{})))

	require.Empty(t, savings.Interfaces())
	require.NoError(t, r.RegisterInterface(stringer))
	require.Equal(t, []*Type{r.TypeFor(stringer)}, savings.Interfaces())
	require.Equal(t, []*Type{r.TypeOf(Account{}), r.TypeOf(Base{}), r.TypeFor(stringer)}, savings.SuperTypes())
	require.Empty(t, r.TypeOf(Point{}).Interfaces())
}

func TestEmbeddedProperties(t *testing.T) {
	r := NewRegistry(Config{})

	t.Run("promoted accessors", func(t *testing.T) {
		set := r.TypeOf(&Account{}).PropertySet(beanMethods)
		require.Equal(t, []string{"balance", "owner", "serial"}, set.Names())

		account := &Account{Base: Base{Serial: "S1"}}
		got, err := set.Get("serial").Get(account)
		require.NoError(t, err)
		require.Equal(t, "S1", got)
	})

	t.Run("field through embedded pointer", func(t *testing.T) {
		owner := r.TypeOf(Savings{}).FieldProperty("owner")
		require.NotNil(t, owner)

		got, err := owner.Get(&Savings{Account: &Account{Owner: "ann"}})
		require.NoError(t, err)
		require.Equal(t, "ann", got)

		_, err = owner.Get(&Savings{})
		require.ErrorIs(t, err, ErrNoInstance)
	})

	t.Run("method through nil embedded pointer", func(t *testing.T) {
		owner := r.TypeOf(Savings{}).Property("owner")
		require.NotNil(t, owner)

		_, err := owner.Get(&Savings{})
		require.ErrorIs(t, err, ErrInvocation)
	})
}

func TestMethodAccessorReplacesField(t *testing.T) {
	r := NewRegistry(Config{})
	filter := NewFilter(BeanNaming, IncludeFields, IncludePublicMethods)

	set := r.TypeOf(&Gauge{}).PropertySet(filter)
	require.Equal(t, []string{"level"}, set.Names())

	level := set.Get("level")
	_, getter := level.Getter().(*MethodGetter)
	_, setter := level.Setter().(*MethodSetter)
	require.True(t, getter)
	require.True(t, setter)

	t.Run("embedded getter over outer field", func(t *testing.T) {
		branch := &Branch{Base: Base{Serial: "inner"}, Serial: "outer"}

		serial := r.TypeOf(branch).PropertySet(filter).Get("serial")
		require.NotNil(t, serial)
		_, getter := serial.Getter().(*MethodGetter)
		require.True(t, getter)

		got, err := serial.Get(branch)
		require.NoError(t, err)
		require.Equal(t, "inner", got)
	})
}

func TestValues(t *testing.T) {
	r := NewRegistry(Config{})

	t.Run("method getters", func(t *testing.T) {
		account := &Account{Owner: "ann", Base: Base{Serial: "S1"}}
		values, err := r.TypeOf(account).Values(account, beanMethods, nil)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"owner": "ann", "serial": "S1"}, values)
	})

	t.Run("nil values", func(t *testing.T) {
		person := &Person{name: "ann", Age: 30}
		values, err := r.TypeOf(person).Values(person, allFields, "none")
		require.NoError(t, err)
		require.Equal(t, map[string]any{
			"name":   "ann",
			"active": false,
			"age":    30,
			"email":  "none",
			"owner":  "none",
		}, values)

		values, err = r.TypeOf(person).Values(person, allFields, nil)
		require.NoError(t, err)
		require.NotContains(t, values, "email")
	})

	t.Run("failing getter", func(t *testing.T) {
		valve := &Valve{}
		values, err := r.TypeOf(valve).Values(valve, directMethods, nil)
		require.ErrorIs(t, err, ErrInvocation)
		require.Equal(t, map[string]any{"psi": 0.0}, values)
	})
}
