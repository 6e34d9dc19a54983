package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fyrsmithlabs/roster/internal/person"
)

// Encode writes the header followed by one row per record.
func (c *Codec) Encode(w io.Writer, records []person.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row, err := encodeRow(rec)
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", i+1, recordName(rec), err)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// encodeRow lays out rec in Header order.
func encodeRow(rec person.Record) ([]string, error) {
	row := make([]string, len(Header))
	set := func(col, v string) {
		for i, h := range Header {
			if h == col {
				row[i] = v
				return
			}
		}
	}

	switch v := rec.(type) {
	case *person.Person:
		// base columns only
	case *person.EnrichedPerson:
		set(ColExtra1, v.Extra1())
		set(ColExtra2, v.Extra2())
	case *person.StaffPerson:
		// A StaffPerson built as a zero value never went through validation.
		if v.Email().IsZero() {
			return nil, &person.ValidationError{Field: "email", Reason: "staff email is not set", Err: person.ErrInvalidFormat}
		}
		if v.Phone().IsZero() {
			return nil, &person.ValidationError{Field: "phone", Reason: "staff phone is not set", Err: person.ErrInvalidFormat}
		}
		subjects := v.Subjects()
		for _, s := range subjects {
			if s == "" {
				return nil, &person.ValidationError{
					Field:  "subjects",
					Reason: "subject names cannot be empty",
					Err:    person.ErrInvalidFormat,
				}
			}
			if strings.Contains(s, SubjectSeparator) {
				return nil, &person.ValidationError{
					Field:  "subjects",
					Value:  s,
					Reason: "subject names cannot contain " + SubjectSeparator,
					Err:    person.ErrInvalidFormat,
				}
			}
		}
		set(ColEmail, v.Email().String())
		set(ColPhone, v.Phone().String())
		set(ColSubjects, strings.Join(subjects, SubjectSeparator))
	default:
		return nil, fmt.Errorf("unsupported record type %T", rec)
	}

	set(ColType, rec.Kind().String())
	set(ColName, rec.Name())
	set(ColAge, rec.Age().String())
	set(ColDescriptor, rec.Descriptor())
	return row, nil
}

func recordName(rec person.Record) string {
	if rec == nil {
		return "<nil>"
	}
	return rec.Name()
}
