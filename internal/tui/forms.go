package tui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/flatfile"
	"github.com/fyrsmithlabs/roster/internal/person"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

type field struct {
	label    string
	validate func(string) error
	repeat   bool // collected until an empty entry
}

// form walks the user through fields one prompt at a time.
type form struct {
	title    string
	fields   []field
	pos      int
	values   []string
	repeated person.Subjects
	submit   func(values, repeated []string) (string, error)
}

func (f *form) current() field {
	if f.pos >= len(f.fields) {
		return f.fields[len(f.fields)-1]
	}
	return f.fields[f.pos]
}

// accept records value for the current field. done is true once every
// field has been answered.
func (f *form) accept(value string) (done bool, note string, err error) {
	fl := f.current()

	if fl.repeat {
		v := strings.TrimSpace(value)
		if v == "" {
			return true, "", nil
		}
		if fl.validate != nil {
			if err := fl.validate(v); err != nil {
				return false, "", err
			}
		}
		if !f.repeated.Add(v) {
			return false, fmt.Sprintf("%s is already assigned.", v), nil
		}
		return false, fmt.Sprintf("%s added.", v), nil
	}

	if fl.validate != nil {
		if err := fl.validate(value); err != nil {
			return false, "", err
		}
	}
	f.values = append(f.values, value)
	f.pos++
	return f.pos == len(f.fields), "", nil
}

func validateAge(v string) error {
	_, err := person.ParseAge(v)
	return err
}

func validateEmail(v string) error {
	_, err := person.ParseEmail(v)
	return err
}

func validatePhone(v string) error {
	_, err := person.ParsePhone(v)
	return err
}

func validateSubject(v string) error {
	if strings.Contains(v, flatfile.SubjectSeparator) {
		return &person.ValidationError{
			Field:  "subjects",
			Value:  v,
			Reason: "subject names cannot contain " + flatfile.SubjectSeparator,
			Err:    person.ErrInvalidFormat,
		}
	}
	return nil
}

func baseFields() []field {
	return []field{
		{label: "Name"},
		{label: "Age", validate: validateAge},
		{label: "Descriptor"},
	}
}

// basePerson builds the Person from the first three answers.
func basePerson(values []string) (person.Person, error) {
	age, err := person.ParseAge(values[1])
	if err != nil {
		return person.Person{}, err
	}
	return person.NewPersonWithAge(values[0], age, values[2]).Base(), nil
}

func (m *Model) added(rec person.Record) (string, error) {
	if err := m.reg.Append(rec); err != nil {
		return "", err
	}
	m.logger.Info("record added", zap.Stringer("kind", rec.Kind()), zap.Int("index", m.reg.Len()))
	return fmt.Sprintf("%s added as %s.", rec.Name(), rec.Kind()), nil
}

func (m *Model) personForm() *form {
	return &form{
		title:  "Add person",
		fields: baseFields(),
		submit: func(values, _ []string) (string, error) {
			base, err := basePerson(values)
			if err != nil {
				return "", err
			}
			return m.added(&base)
		},
	}
}

func (m *Model) enrichedForm() *form {
	labels := m.labels
	return &form{
		title: fmt.Sprintf("Add person with %s and %s", labels.Extra1, labels.Extra2),
		fields: append(baseFields(),
			field{label: labels.Extra1},
			field{label: labels.Extra2},
		),
		submit: func(values, _ []string) (string, error) {
			base, err := basePerson(values)
			if err != nil {
				return "", err
			}
			return m.added(person.NewEnrichedPerson(base, values[3], values[4], person.WithLabels(labels)))
		},
	}
}

func (m *Model) staffForm() *form {
	return &form{
		title: "Add staff member",
		fields: append(baseFields(),
			field{label: "Email", validate: validateEmail},
			field{label: "Phone (8 digits)", validate: validatePhone},
			field{label: "Subject", validate: validateSubject, repeat: true},
		),
		submit: func(values, subjects []string) (string, error) {
			base, err := basePerson(values)
			if err != nil {
				return "", err
			}
			staff, err := person.NewStaffPerson(base, values[3], values[4], subjects...)
			if err != nil {
				return "", err
			}
			return m.added(staff)
		},
	}
}

func (m *Model) upgradeForm(index int) *form {
	labels := m.labels
	name := ""
	if rec, err := m.reg.Get(index); err == nil {
		name = rec.Name()
	}
	return &form{
		title: fmt.Sprintf("Upgrade %s", name),
		fields: []field{
			{label: labels.Extra1},
			{label: labels.Extra2},
		},
		submit: func(values, _ []string) (string, error) {
			rec, err := m.reg.Upgrade(index, registry.Enrich(values[0], values[1], person.WithLabels(labels)))
			if err != nil {
				return "", err
			}
			m.logger.Info("record upgraded", zap.Int("index", index+1), zap.Stringer("kind", rec.Kind()))
			return fmt.Sprintf("%s now has %s %s and %s %s.",
				rec.Name(), labels.Extra1, values[0], labels.Extra2, values[1]), nil
		},
	}
}
