package reflection

import (
	"errors"
	"reflect"
)

var (
	beanMethods   = NewFilter(BeanNaming, IncludePublicMethods)
	directMethods = NewFilter(DirectNaming, IncludePublicMethods)
	allFields     = NewFilter(BeanNaming, IncludeFields)
)

type Point struct {
	x, y int
}

func (p *Point) GetX() int  { return p.x }
func (p *Point) SetX(x int) { p.x = x }
func (p *Point) GetY() int  { return p.y }
func (p *Point) SetY(y int) { p.y = y }

func NewPoint(x, y int) *Point {
	return &Point{x: x, y: y}
}

type Person struct {
	name   string
	active bool
	Age    int
	Email  *string `prop:",optional"`
	Owner  *Person
}

func (p *Person) GetName() string               { return p.name }
func (p *Person) SetName(name string)           { p.name = name }
func (p *Person) IsActive() bool                { return p.active }
func (p *Person) SetActive(active bool)         { p.active = active }
func (p *Person) GetType() reflect.Type         { return reflect.TypeOf(p) }
func (p *Person) Initials() string              { return p.name[:1] }
func (p *Person) Rename(name string)            { p.name = name }
func (p *Person) Describe(prefix string) string { return prefix + p.name }

type Gauge struct {
	level *int
}

func (g *Gauge) GetLevel() *int     { return g.level }
func (g *Gauge) SetLevel(level int) { g.level = &level }

type Base struct {
	Serial  string
	created int64
}

func (b *Base) GetSerial() string { return b.Serial }
func (b *Base) String() string    { return "base " + b.Serial }

type Account struct {
	Base
	Owner   string
	Balance int
}

func (a *Account) GetOwner() string       { return a.Owner }
func (a *Account) SetBalance(balance int) { a.Balance = balance }

type Branch struct {
	Base
	Serial string
}

type Catalog struct {
	Tags  []string
	Meta  map[string]string
	Notes []string `prop:",optional"`
}

type Savings struct {
	*Account
	Rate float64
}

func (s *Savings) String() string { return "savings" }

var errClosed = errors.New("valve closed")

// Valve tags its methods through MethodTagger.
type Valve struct {
	open     bool
	pressure float64
	Limit    int    `prop:"limit,convert"`
	Secret   string `prop:"-"`
	Label    string `prop:"label"`
	scratch  []byte `prop:",transient"`
	_        int
}

func (v *Valve) PropertyTags() map[string]string {
	return map[string]string{
		"Pressure":    "psi,include",
		"SetPressure": "psi,convert",
		"Reset":       "-",
	}
}

func (v *Valve) Pressure() float64 { return v.pressure }

func (v *Valve) SetPressure(p float64) error {
	if !v.open {
		return errClosed
	}
	v.pressure = p
	return nil
}

func (v *Valve) Reset(p float64) { v.pressure = p }

func (v *Valve) Burst() int { panic("burst") }

type Node struct {
	Name string
	Next *Node
}
