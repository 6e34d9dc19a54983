package person

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies a record variant. Its String form is the type tag written
// to storage.
type Kind int

const (
	KindPerson Kind = iota
	KindEnriched
	KindStaff
)

// Kinds lists every variant in declaration order.
var Kinds = []Kind{KindPerson, KindEnriched, KindStaff}

func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "Person"
	case KindEnriched:
		return "EnrichedPerson"
	case KindStaff:
		return "StaffPerson"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a type tag back to its Kind.
func ParseKind(tag string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == tag {
			return k, true
		}
	}
	return 0, false
}

// Record is the capability set shared by every variant.
// The set of implementations is closed to this package.
type Record interface {
	Name() string
	Age() Age
	Descriptor() string
	// Base returns a copy of the record's Person fields.
	Base() Person
	// Render returns a one-line human readable summary.
	Render() string
	Kind() Kind

	sealed()
}

// Person is the base record.
type Person struct {
	name       string
	age        Age
	descriptor string
}

// NewPerson validates age and returns a Person.
func NewPerson(name string, age int, descriptor string) (*Person, error) {
	a, err := NewAge(age)
	if err != nil {
		return nil, err
	}
	return &Person{name: name, age: a, descriptor: descriptor}, nil
}

// NewPersonWithAge is NewPerson for an already validated Age.
func NewPersonWithAge(name string, age Age, descriptor string) *Person {
	return &Person{name: name, age: age, descriptor: descriptor}
}

func (p *Person) Name() string       { return p.name }
func (p *Person) Age() Age           { return p.age }
func (p *Person) Descriptor() string { return p.descriptor }
func (p *Person) Base() Person       { return *p }
func (p *Person) Kind() Kind         { return KindPerson }
func (p *Person) sealed()            {}

// SetName replaces the name.
func (p *Person) SetName(name string) { p.name = name }

// SetDescriptor replaces the free-form third attribute.
func (p *Person) SetDescriptor(d string) { p.descriptor = d }

// SetAge validates and replaces the age. On error p is unchanged.
func (p *Person) SetAge(n int) error {
	a, err := NewAge(n)
	if err != nil {
		return err
	}
	p.age = a
	return nil
}

func (p *Person) Render() string {
	return fmt.Sprintf("Name: %s, Age: %d, Descriptor: %s", p.name, p.age.years, p.descriptor)
}

// Labels name the two EnrichedPerson attributes for display.
type Labels struct {
	Extra1 string
	Extra2 string
}

// DefaultLabels follow the citizen lineage (income and rent).
var DefaultLabels = Labels{Extra1: "income", Extra2: "rent"}

// EnrichedOption configures an EnrichedPerson.
type EnrichedOption func(*EnrichedPerson)

// WithLabels overrides the display labels. Empty labels keep the defaults.
func WithLabels(l Labels) EnrichedOption {
	return func(e *EnrichedPerson) {
		if l.Extra1 != "" {
			e.labels.Extra1 = l.Extra1
		}
		if l.Extra2 != "" {
			e.labels.Extra2 = l.Extra2
		}
	}
}

// EnrichedPerson is a Person with two unvalidated attributes.
type EnrichedPerson struct {
	Person
	extra1 string
	extra2 string
	labels Labels
}

// NewEnrichedPerson extends base. base is copied.
func NewEnrichedPerson(base Person, extra1, extra2 string, opts ...EnrichedOption) *EnrichedPerson {
	e := &EnrichedPerson{
		Person: base,
		extra1: extra1,
		extra2: extra2,
		labels: DefaultLabels,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *EnrichedPerson) Extra1() string { return e.extra1 }
func (e *EnrichedPerson) Extra2() string { return e.extra2 }
func (e *EnrichedPerson) Labels() Labels { return e.labels }
func (e *EnrichedPerson) Kind() Kind     { return KindEnriched }

func (e *EnrichedPerson) SetExtra1(v string) { e.extra1 = v }
func (e *EnrichedPerson) SetExtra2(v string) { e.extra2 = v }

func (e *EnrichedPerson) Render() string {
	return fmt.Sprintf("%s, Status: enriched, %s: %s, %s: %s",
		e.Person.Render(), e.labels.Extra1, e.extra1, e.labels.Extra2, e.extra2)
}

// noSubjects is rendered for staff without any subject.
const noSubjects = "none assigned"

// StaffPerson is a Person with contact details and taught subjects.
type StaffPerson struct {
	Person
	email    Email
	phone    Phone
	subjects Subjects
}

// NewStaffPerson validates email and phone and extends base. Duplicate
// subjects are collapsed, keeping first occurrence order.
func NewStaffPerson(base Person, email, phone string, subjects ...string) (*StaffPerson, error) {
	e, err := ParseEmail(email)
	if err != nil {
		return nil, err
	}
	ph, err := ParsePhone(phone)
	if err != nil {
		return nil, err
	}
	return &StaffPerson{
		Person:   base,
		email:    e,
		phone:    ph,
		subjects: NewSubjects(subjects...),
	}, nil
}

func (s *StaffPerson) Email() Email { return s.email }
func (s *StaffPerson) Phone() Phone { return s.phone }
func (s *StaffPerson) Kind() Kind   { return KindStaff }

// SetEmail validates and replaces the email. On error s is unchanged.
func (s *StaffPerson) SetEmail(raw string) error {
	e, err := ParseEmail(raw)
	if err != nil {
		return err
	}
	s.email = e
	return nil
}

// SetPhone validates, normalizes and replaces the phone number.
func (s *StaffPerson) SetPhone(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	s.phone = p
	return nil
}

// Subjects returns a copy of the subject list in insertion order.
func (s *StaffPerson) Subjects() []string { return s.subjects.Values() }

// HasSubject reports whether name is assigned.
func (s *StaffPerson) HasSubject(name string) bool { return s.subjects.Contains(name) }

// AddSubject assigns name. It returns false if name was already assigned.
func (s *StaffPerson) AddSubject(name string) bool { return s.subjects.Add(name) }

// RemoveSubject unassigns name. It returns false if name was not assigned.
func (s *StaffPerson) RemoveSubject(name string) bool { return s.subjects.Remove(name) }

func (s *StaffPerson) Render() string {
	subjects := noSubjects
	if s.subjects.Len() > 0 {
		subjects = strings.Join(s.subjects.items, ", ")
	}
	return fmt.Sprintf("%s, Email: %s, Phone: %s, Subjects: %s",
		s.Person.Render(), s.email, s.phone, subjects)
}

// Clone returns a deep copy of r.
func Clone(r Record) Record {
	switch v := r.(type) {
	case *Person:
		c := *v
		return &c
	case *EnrichedPerson:
		c := *v
		return &c
	case *StaffPerson:
		c := *v
		c.subjects = v.subjects.clone()
		return &c
	}
	return nil
}

// Equal reports whether a and b are the same variant with equal fields.
// Display labels are not compared.
func Equal(a, b Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() || a.Base() != b.Base() {
		return false
	}
	switch x := a.(type) {
	case *Person:
		return true
	case *EnrichedPerson:
		y := b.(*EnrichedPerson)
		return x.extra1 == y.extra1 && x.extra2 == y.extra2
	case *StaffPerson:
		y := b.(*StaffPerson)
		return x.email == y.email && x.phone == y.phone &&
			slices.Equal(x.subjects.items, y.subjects.items)
	}
	return false
}
