// Package registry holds the in-memory, ordered collection of person records.
//
// The registry provides:
//   - Append in display and persistence order
//   - Destructive in-place upgrade of a record to a richer variant
//   - Positional lookup and filtered index listing for menus
//
// Persistence lives in internal/flatfile; the registry never touches disk.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fyrsmithlabs/roster/internal/person"
)

// Errors for registry operations.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidUpgrade  = errors.New("invalid upgrade: target must be EnrichedPerson or StaffPerson")
	ErrNilRecord       = errors.New("record is nil")
)

// Upgrader builds a new variant from the base fields of an existing record.
type Upgrader func(base person.Person) (person.Record, error)

// Enrich returns an Upgrader producing an EnrichedPerson.
func Enrich(extra1, extra2 string, opts ...person.EnrichedOption) Upgrader {
	return func(base person.Person) (person.Record, error) {
		return person.NewEnrichedPerson(base, extra1, extra2, opts...), nil
	}
}

// Staff returns an Upgrader producing a StaffPerson. Email and phone are
// validated when the upgrade runs.
func Staff(email, phone string, subjects ...string) Upgrader {
	return func(base person.Person) (person.Record, error) {
		return person.NewStaffPerson(base, email, phone, subjects...)
	}
}

// Registry is an ordered list of records.
type Registry struct {
	mu      sync.RWMutex
	records []person.Record
}

// New creates a registry holding records in the given order.
func New(records ...person.Record) (*Registry, error) {
	r := &Registry{records: make([]person.Record, 0, len(records))}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("record %d: %w", i, ErrNilRecord)
		}
		r.records = append(r.records, rec)
	}
	return r, nil
}

// Append adds rec at the end.
func (r *Registry) Append(rec person.Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
	return nil
}

// Upgrade replaces the record at index with the variant built by up from
// that record's base fields. The previous record is discarded.
func (r *Registry) Upgrade(index int, up Upgrader) (person.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.records) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(r.records))
	}

	next, err := up(r.records[index].Base())
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, ErrNilRecord
	}
	if next.Kind() == person.KindPerson {
		return nil, ErrInvalidUpgrade
	}

	r.records[index] = next
	return next, nil
}

// Get returns the record at index.
func (r *Registry) Get(index int) (person.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.records) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(r.records))
	}
	return r.records[index], nil
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// All returns the records in order. The slice is a snapshot; the records
// themselves are shared and can only change through their validating
// setters.
func (r *Registry) All() []person.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]person.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Indices returns the positions of records matching keep, in order.
func (r *Registry) Indices(keep func(person.Record) bool) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idx []int
	for i, rec := range r.records {
		if keep(rec) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Counts returns the number of records per variant.
func (r *Registry) Counts() map[person.Kind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[person.Kind]int, len(person.Kinds))
	for _, k := range person.Kinds {
		counts[k] = 0
	}
	for _, rec := range r.records {
		counts[rec.Kind()]++
	}
	return counts
}

// NotOfKind is an Indices filter selecting records of any other variant.
func NotOfKind(k person.Kind) func(person.Record) bool {
	return func(rec person.Record) bool {
		return rec.Kind() != k
	}
}
