package person

import (
	"math"
	"strconv"
	"strings"
)

// Age is a non-negative whole number of years.
// The zero value is a valid age of 0.
type Age struct {
	years int
}

// NewAge validates n as an age.
func NewAge(n int) (Age, error) {
	if n < 0 {
		return Age{}, invalid("age", strconv.Itoa(n), ErrInvalidRange, "age cannot be negative")
	}
	return Age{years: n}, nil
}

// ParseAge parses a decimal integer age. Surrounding whitespace and a
// leading sign are accepted; fractions are not.
func ParseAge(raw string) (Age, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Age{}, invalid("age", raw, ErrInvalidFormat, "age must be a whole number")
	}
	if n < 0 {
		return Age{}, invalid("age", raw, ErrInvalidRange, "age cannot be negative")
	}
	return Age{years: n}, nil
}

// AgeFromFloat converts a numeric age, truncating any fraction toward zero.
func AgeFromFloat(f float64) (Age, error) {
	raw := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Age{}, invalid("age", raw, ErrInvalidFormat, "age must be a finite number")
	}
	t := math.Trunc(f)
	if t < 0 {
		return Age{}, invalid("age", raw, ErrInvalidRange, "age cannot be negative")
	}
	if t > math.MaxInt32 {
		return Age{}, invalid("age", raw, ErrInvalidRange, "age too large")
	}
	return Age{years: int(t)}, nil
}

// Years returns the age as an int.
func (a Age) Years() int {
	return a.years
}

func (a Age) String() string {
	return strconv.Itoa(a.years)
}
