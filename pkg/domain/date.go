// Package domain holds shared value types used by every feature package.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (date-only columns).
const DateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component. It marshals as
// "YYYY-MM-DD" and is stored in DATE columns. The zero value is "no date".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date at UTC midnight, for storage drivers.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }

// After reports whether d falls strictly after the calendar date of t.
func (d Date) After(t time.Time) bool {
	return d.t.After(DateOf(t).t)
}

// AgeAt computes age in whole years at the given instant: the year difference,
// decremented by one when the month/day of now precedes the birth month/day.
func (d Date) AgeAt(now time.Time) int {
	now = now.UTC()
	age := now.Year() - d.t.Year()
	if now.Month() < d.t.Month() || (now.Month() == d.t.Month() && now.Day() < d.t.Day()) {
		age--
	}
	return age
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
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
