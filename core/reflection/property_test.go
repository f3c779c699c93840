package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropertyRoundTrip(t *testing.T) {
	r := NewRegistry(Config{})

	t.Run("reference value", func(t *testing.T) {
		owner := &Person{name: "ann"}
		person := &Person{}

		p := r.TypeOf(person).PropertySet(allFields).Get("owner")
		require.NotNil(t, p)
		require.NoError(t, p.SetValue(person, owner))

		got, err := p.Get(person)
		require.NoError(t, err)
		require.Same(t, owner, got)
	})

	t.Run("boxed primitive", func(t *testing.T) {
		gauge := &Gauge{}

		p := r.TypeOf(gauge).PropertySet(beanMethods).Get("level")
		require.NotNil(t, p)
		require.Equal(t, reflect.TypeOf(new(int)), p.Type())

		require.NoError(t, p.SetValue(gauge, 7))
		got, err := p.Get(gauge)
		require.NoError(t, err)
		require.Equal(t, 7, *got.(*int))

		eight := 8
		require.NoError(t, p.SetValue(gauge, &eight))
		got, err = p.Get(gauge)
		require.NoError(t, err)
		require.Equal(t, 8, *got.(*int))
	})

	t.Run("unexported field", func(t *testing.T) {
		person := &Person{}

		p := r.TypeOf(person).PropertySet(allFields).Get("name")
		require.NoError(t, p.SetValue(person, "bob"))
		require.Equal(t, "bob", person.name)

		got, err := p.Get(*person)
		require.NoError(t, err)
		require.Equal(t, "bob", got)
	})
}

func TestPropertyRequired(t *testing.T) {
	r := NewRegistry(Config{})
	props := r.TypeOf(&Person{}).PropertySet(allFields)

	t.Run("required", func(t *testing.T) {
		owner := &Person{name: "ann"}
		person := &Person{Owner: owner}

		p := props.Get("owner")
		require.False(t, p.IsOptional())

		err := p.SetValue(person, nil)
		require.ErrorIs(t, err, ErrRequiredNotPopulated)
		require.Same(t, owner, person.Owner)

		problem, ok := AsProblem(err)
		require.True(t, ok)
		require.Contains(t, problem.Description(), "owner")
	})

	t.Run("optional", func(t *testing.T) {
		email := "ann@example.com"
		person := &Person{Email: &email}

		p := props.Get("email")
		require.True(t, p.IsOptional())

		require.NoError(t, p.SetValue(person, nil))
		require.Nil(t, person.Email)
		require.True(t, p.IsNull(person))
	})

	t.Run("required slice and map", func(t *testing.T) {
		catalog := &Catalog{
			Tags: []string{"a"},
			Meta: map[string]string{"k": "v"},
		}
		set := r.TypeOf(catalog).PropertySet(allFields)

		err := set.Get("tags").SetValue(catalog, []string(nil))
		require.ErrorIs(t, err, ErrRequiredNotPopulated)
		require.Equal(t, []string{"a"}, catalog.Tags)

		err = set.Get("meta").SetValue(catalog, map[string]string(nil))
		require.ErrorIs(t, err, ErrRequiredNotPopulated)
		require.Equal(t, map[string]string{"k": "v"}, catalog.Meta)

		require.NoError(t, set.Get("notes").SetValue(catalog, []string(nil)))
		require.True(t, set.Get("notes").IsNull(catalog))
		require.False(t, set.Get("meta").IsNull(catalog))
		require.True(t, set.Get("meta").IsNull(&Catalog{}))
	})

	t.Run("clear", func(t *testing.T) {
		person := &Person{Age: 40}
		require.NoError(t, props.Get("age").Clear(person))
		require.Zero(t, person.Age)
	})
}

func TestPropertySetSource(t *testing.T) {
	r := NewRegistry(Config{})
	p := r.TypeOf(&Point{}).Property("x")
	require.NotNil(t, p)

	calls := 0
	point := &Point{}
	require.NoError(t, p.Set(point, func() any {
		calls++
		return 3
	}))
	require.Equal(t, 1, calls)
	require.Equal(t, 3, point.x)
}

func TestPropertyAccessorErrors(t *testing.T) {
	r := NewRegistry(Config{})
	person := r.TypeOf(&Person{})

	t.Run("no setter", func(t *testing.T) {
		p := person.PropertySet(directMethods).Get("initials")
		err := p.SetValue(&Person{}, "x")
		require.ErrorIs(t, err, ErrSetterNotFound)
	})

	t.Run("no getter", func(t *testing.T) {
		p := person.PropertySet(directMethods).Get("rename")
		v, err := p.Get(&Person{})
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("nil instance", func(t *testing.T) {
		p := person.PropertySet(beanMethods).Get("name")
		v, err := p.Get((*Person)(nil))
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("wrong value type", func(t *testing.T) {
		p := person.PropertySet(beanMethods).Get("name")
		err := p.SetValue(&Person{}, 42)
		require.ErrorIs(t, err, ErrCannotConvert)
	})
}

func TestNewProperty(t *testing.T) {
	r := NewRegistry(Config{})
	person := r.TypeOf(Person{})
	name := NewMethodGetter(person.Method("GetName"))
	active := NewMethodSetter(person.Method("SetActive"), nil)

	_, err := NewProperty("none", nil, nil)
	require.ErrorIs(t, err, ErrNoAccessor)

	_, err = NewProperty("mixed", name, active)
	require.ErrorIs(t, err, ErrIncompatibleAccessor)

	p, err := NewProperty("name", name, nil)
	require.NoError(t, err)
	require.ErrorIs(t, p.SetSetter(active), ErrIncompatibleAccessor)
	require.NoError(t, p.SetSetter(NewMethodSetter(person.Method("SetName"), nil)))

	require.Equal(t, "[Property name = name, type = string]", p.String())
	require.Equal(t, "GetName", p.Method().Name())
}

func TestPropertyIdentity(t *testing.T) {
	r := NewRegistry(Config{})
	typ := r.TypeOf(&Person{})

	a := typ.PropertySet(beanMethods).Get("name")
	b := typ.PropertySet(directMethods).Get("name")

	require.NotSame(t, a, b)
	require.True(t, a.Equal(b))
	require.Zero(t, a.Compare(b))
	require.Negative(t, typ.PropertySet(beanMethods).Get("active").Compare(a))

	require.Equal(t, "GetName", a.Member().Name())
	require.Nil(t, a.Field())

	field := typ.PropertySet(allFields).Get("age")
	require.Equal(t, "Age", field.Field().Name())
	require.Nil(t, field.Method())
}
