// Package seed imports records from a TOML seed file.
//
// A seed file holds one [[person]] table per record:
//
//	[[person]]
//	type = "StaffPerson"
//	name = "Kim"
//	age = 45
//	descriptor = "M"
//	email = "kim@school.dk"
//	phone = "12 34 56 78"
//	subjects = ["Math", "Art"]
//
// type may be omitted. An entry with email or phone becomes a StaffPerson,
// one with extra1 or extra2 an EnrichedPerson, anything else a Person.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fyrsmithlabs/roster/internal/person"
)

var (
	// ErrInvalidTOML is returned when the seed file is not valid TOML or
	// contains keys the importer does not know.
	ErrInvalidTOML = errors.New("invalid seed file")
	// ErrUnknownType is returned for a type naming no known variant.
	ErrUnknownType = errors.New("unknown record type")
)

// EntryError reports the seed entry that could not be converted.
type EntryError struct {
	Index int // 1-based position in the file
	Name  string
	Err   error
}

// Error implements the error interface
func (e *EntryError) Error() string {
	return fmt.Sprintf("seed entry %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// entry mirrors one [[person]] table. Loosely typed fields are validated
// by the person package.
type entry struct {
	Type       string   `toml:"type"`
	Name       string   `toml:"name"`
	Age        any      `toml:"age"`
	Descriptor string   `toml:"descriptor"`
	Extra1     string   `toml:"extra1"`
	Extra2     string   `toml:"extra2"`
	Email      any      `toml:"email"`
	Phone      any      `toml:"phone"`
	Subjects   []string `toml:"subjects"`
}

type file struct {
	Person []entry `toml:"person"`
}

// Importer converts seed files into records.
type Importer struct {
	Labels person.Labels
}

// NewImporter returns an importer using person.DefaultLabels.
func NewImporter() *Importer {
	return &Importer{Labels: person.DefaultLabels}
}

// LoadFile reads and converts the seed file at path.
func (im *Importer) LoadFile(path string) ([]person.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return im.Decode(f)
}

// Decode converts every entry in r. Either all entries convert or none
// are returned.
func (im *Importer) Decode(r io.Reader) ([]person.Record, error) {
	var doc file
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTOML, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidTOML, strings.Join(keys, ", "))
	}

	records := make([]person.Record, 0, len(doc.Person))
	for i, e := range doc.Person {
		rec, err := im.convert(e)
		if err != nil {
			return nil, &EntryError{Index: i + 1, Name: e.Name, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (im *Importer) convert(e entry) (person.Record, error) {
	age, err := ageFromValue(e.Age)
	if err != nil {
		return nil, err
	}
	base := person.NewPersonWithAge(e.Name, age, e.Descriptor)

	kind, err := e.kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case person.KindPerson:
		return base, nil
	case person.KindEnriched:
		return person.NewEnrichedPerson(base.Base(), e.Extra1, e.Extra2, person.WithLabels(im.Labels)), nil
	case person.KindStaff:
		email, err := person.EmailFromValue(e.Email)
		if err != nil {
			return nil, err
		}
		phone, err := phoneText(e.Phone)
		if err != nil {
			return nil, err
		}
		return person.NewStaffPerson(base.Base(), email.String(), phone, e.Subjects...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
}

// kind resolves the explicit type or infers one from the populated fields.
func (e entry) kind() (person.Kind, error) {
	if tag := strings.TrimSpace(e.Type); tag != "" {
		k, ok := person.ParseKind(tag)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownType, tag)
		}
		return k, nil
	}
	switch {
	case e.Email != nil || e.Phone != nil || len(e.Subjects) > 0:
		return person.KindStaff, nil
	case e.Extra1 != "" || e.Extra2 != "":
		return person.KindEnriched, nil
	default:
		return person.KindPerson, nil
	}
}

// ageFromValue accepts TOML integers, floats (truncated) and strings.
// A missing age is 0.
func ageFromValue(v any) (person.Age, error) {
	switch a := v.(type) {
	case nil:
		return person.Age{}, nil
	case int64:
		return person.NewAge(int(a))
	case float64:
		return person.AgeFromFloat(a)
	case string:
		return person.ParseAge(a)
	default:
		return person.Age{}, &person.ValidationError{
			Field:  "age",
			Value:  fmt.Sprint(v),
			Reason: "age must be a number",
			Err:    person.ErrInvalidFormat,
		}
	}
}

// phoneText accepts a phone number written as a TOML string or integer.
func phoneText(v any) (string, error) {
	switch p := v.(type) {
	case string:
		return p, nil
	case int64:
		return strconv.FormatInt(p, 10), nil
	default:
		return "", &person.ValidationError{
			Field:  "phone",
			Value:  fmt.Sprint(v),
			Reason: "phone must be text",
			Err:    person.ErrNotText,
		}
	}
}
