package flatfile

import (
	"errors"
	"fmt"
)

var (
	// ErrIO wraps failures to read or write the storage file.
	ErrIO = errors.New("storage i/o error")
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrMissingColumn is reported when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnknownType is reported for a type tag naming no known variant.
	ErrUnknownType = errors.New("unknown record type")
)

// ParseError identifies the row that made a decode fail. The whole decode
// fails on the first such row.
type ParseError struct {
	Row    int    // 1-based data row; 0 for the header
	Line   int    // line in the file where the row starts
	Column string // column name, if known
	Value  string // offending cell
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	where := fmt.Sprintf("row %d (line %d)", e.Row, e.Line)
	if e.Row == 0 {
		where = fmt.Sprintf("header (line %d)", e.Line)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s: %s, column %s %q: %v", ErrParse, where, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrParse, where, e.Err)
}

// Unwrap exposes the cause, e.g. a *person.ValidationError.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
