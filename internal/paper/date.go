package paper

import (
	"fmt"
	"time"
)

// PartialDate represents a publication date with optional month and day.
type PartialDate struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"` // 1-12, 0 if unknown
	Day   int `json:"day,omitempty"`   // 1-31, 0 if unknown
}

// IsZero reports whether no component of the date is known.
func (d PartialDate) IsZero() bool {
	return d.Year == 0
}

// Resolve expands a partial date to a full calendar date. A year-only
// date resolves to January 1 of that year; a year+month date to the
// first day of that month. A fully specified date passes through.
func (d PartialDate) Resolve() time.Time {
	month := d.Month
	if month == 0 {
		month = 1
	}
	day := d.Day
	if day == 0 {
		day = 1
	}
	return time.Date(d.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// String renders the date at the precision that is actually known.
func (d PartialDate) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}
