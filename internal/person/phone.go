package person

import (
	"fmt"
	"strings"
)

// phoneDigits is the length of a Danish subscriber number.
const phoneDigits = 8

// Phone is an eight digit number. String renders it as "XX XX XX XX".
type Phone struct {
	digits string
}

// ParsePhone strips spaces and hyphens from raw and validates the rest.
func ParsePhone(raw string) (Phone, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if cleaned == "" {
		return Phone{}, invalid("phone", raw, ErrInvalidFormat, "phone number must contain digits")
	}
	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] < '0' || cleaned[i] > '9' {
			return Phone{}, invalid("phone", raw, ErrInvalidFormat, "phone number may only contain digits")
		}
	}
	if len(cleaned) != phoneDigits {
		return Phone{}, invalid("phone", raw, ErrInvalidLength,
			fmt.Sprintf("phone number must be %d digits, got %d", phoneDigits, len(cleaned)))
	}
	return Phone{digits: cleaned}, nil
}

// Digits returns the bare digits.
func (p Phone) Digits() string {
	return p.digits
}

func (p Phone) String() string {
	if p.digits == "" {
		return ""
	}
	d := p.digits
	return d[0:2] + " " + d[2:4] + " " + d[4:6] + " " + d[6:8]
}

// IsZero reports whether p was never set.
func (p Phone) IsZero() bool {
	return p.digits == ""
}

func stringify(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}
