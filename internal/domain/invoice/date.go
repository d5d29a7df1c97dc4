package invoice

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for business dates
const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. Invoice dates and the
// caller-supplied "today" are compared as whole days in the client's local
// business timezone, so wall-clock precision is deliberately dropped.
type Date struct {
	t time.Time
}

// NewDate creates a Date from year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a Date from its YYYY-MM-DD representation
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero returns true for the zero Date
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// After returns true if d is strictly after other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Time returns the date as a midnight-UTC time.Time
func (d Date) Time() time.Time {
	return d.t
}

// String returns the YYYY-MM-DD representation
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting YYYY-MM-DD
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
