// Package person implements the validated record model of the roster.
//
// A record is one of a closed set of variants: a plain Person, an
// EnrichedPerson carrying two free-form attributes, or a StaffPerson with a
// validated email, a normalized phone number and an ordered subject set.
// All fields are unexported; values are only obtainable through constructors
// and setters that validate their input, so an invalid record is never
// observable.
package person
