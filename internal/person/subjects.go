package person

import "slices"

// Subjects is an insertion-ordered set of subject names.
// The zero value is an empty set ready to use.
type Subjects struct {
	items []string
}

// NewSubjects builds a set from names, keeping the first occurrence of
// each duplicate.
func NewSubjects(names ...string) Subjects {
	var s Subjects
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name if absent and reports whether the set changed.
func (s *Subjects) Add(name string) bool {
	if s.Contains(name) {
		return false
	}
	s.items = append(s.items, name)
	return true
}

// Remove deletes name if present and reports whether the set changed.
func (s *Subjects) Remove(name string) bool {
	i := slices.Index(s.items, name)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Contains reports whether name is in the set.
func (s Subjects) Contains(name string) bool {
	return slices.Contains(s.items, name)
}

// Len returns the number of subjects.
func (s Subjects) Len() int {
	return len(s.items)
}

// Values returns the subjects in insertion order. The slice is a copy.
func (s Subjects) Values() []string {
	return slices.Clone(s.items)
}

func (s Subjects) clone() Subjects {
	return Subjects{items: slices.Clone(s.items)}
}
