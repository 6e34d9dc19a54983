package person

import "regexp"

// emailPattern is the local@domain.tld shape accepted for staff email.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is an address matching emailPattern, stored as given.
type Email struct {
	addr string
}

// ParseEmail validates raw as an email address.
func ParseEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, invalid("email", raw, ErrInvalidFormat, "expected name@domain.tld")
	}
	return Email{addr: raw}, nil
}

// EmailFromValue is ParseEmail for untyped boundary input, e.g. decoded
// TOML. Anything but a string fails with ErrNotText.
func EmailFromValue(v any) (Email, error) {
	s, ok := v.(string)
	if !ok {
		return Email{}, invalid("email", stringify(v), ErrNotText, "email must be text")
	}
	return ParseEmail(s)
}

func (e Email) String() string {
	return e.addr
}

// IsZero reports whether e was never set.
func (e Email) IsZero() bool {
	return e.addr == ""
}
