package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fyrsmithlabs/roster/internal/person"
)

// Codec converts between records and the tagged CSV layout.
type Codec struct {
	// Labels are attached to every decoded EnrichedPerson for display.
	Labels person.Labels
}

// NewCodec returns a codec using person.DefaultLabels.
func NewCodec() *Codec {
	return &Codec{Labels: person.DefaultLabels}
}

// Decode reads a header and all rows from r. An empty input yields no
// records. The first undecodable row aborts the decode with a *ParseError;
// rows are never skipped.
func (c *Codec) Decode(r io.Reader) ([]person.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, readError(0, err)
	}

	idx := newColumnIndex(header)
	for _, required := range []string{ColName, ColAge} {
		if !idx.has(required) {
			return nil, &ParseError{Row: 0, Line: 1, Column: required, Err: ErrMissingColumn}
		}
	}

	var records []person.Record
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(rowNum, err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := c.decodeRow(idx, row)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Row, perr.Line = rowNum, line
				return nil, perr
			}
			return nil, &ParseError{Row: rowNum, Line: line, Err: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

// readError classifies an error from the csv reader. Malformed CSV is a
// parse error; anything else came from the underlying reader.
func readError(row int, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Row: row, Line: csvErr.StartLine, Err: csvErr.Err}
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func (c *Codec) decodeRow(idx columnIndex, row []string) (person.Record, error) {
	name := idx.cell(row, ColName)
	rawAge := idx.cell(row, ColAge)
	age, err := person.ParseAge(rawAge)
	if err != nil {
		return nil, &ParseError{Column: ColAge, Value: rawAge, Err: err}
	}
	base := person.NewPersonWithAge(name, age, idx.cell(row, ColDescriptor))

	tag := strings.TrimSpace(idx.cell(row, ColType))
	if tag == "" {
		return c.inferLegacy(idx, row, base), nil
	}
	if legacy, ok := legacyTags[tag]; ok {
		tag = legacy
	}
	kind, ok := person.ParseKind(tag)
	if !ok {
		return nil, &ParseError{Column: ColType, Value: tag, Err: ErrUnknownType}
	}

	switch kind {
	case person.KindPerson:
		return base, nil
	case person.KindEnriched:
		return c.enriched(idx, row, base), nil
	case person.KindStaff:
		return decodeStaff(idx, row, base)
	}
	return nil, &ParseError{Column: ColType, Value: tag, Err: ErrUnknownType}
}

// inferLegacy handles rows written before the type column existed. Only
// the EnrichedPerson columns are considered.
func (c *Codec) inferLegacy(idx columnIndex, row []string, base *person.Person) person.Record {
	if idx.cell(row, ColExtra1) != "" || idx.cell(row, ColExtra2) != "" {
		return c.enriched(idx, row, base)
	}
	return base
}

func (c *Codec) enriched(idx columnIndex, row []string, base *person.Person) *person.EnrichedPerson {
	return person.NewEnrichedPerson(base.Base(),
		idx.cell(row, ColExtra1), idx.cell(row, ColExtra2),
		person.WithLabels(c.Labels))
}

func decodeStaff(idx columnIndex, row []string, base *person.Person) (person.Record, error) {
	email := idx.cell(row, ColEmail)
	phone := idx.cell(row, ColPhone)
	staff, err := person.NewStaffPerson(base.Base(), email, phone)
	if err != nil {
		var verr *person.ValidationError
		if errors.As(err, &verr) {
			return nil, &ParseError{Column: verr.Field, Value: verr.Value, Err: err}
		}
		return nil, err
	}

	if cell := idx.cell(row, ColSubjects); cell != "" {
		for _, s := range strings.Split(cell, SubjectSeparator) {
			if s != "" {
				staff.AddSubject(s)
			}
		}
	}
	return staff, nil
}
