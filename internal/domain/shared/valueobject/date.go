package valueobject

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day component. Lifecycle dates on
// ledger rows are compared as whole days, so a despatch at 23:59 and one at
// 00:01 on the same day categorize identically regardless of timezone offset
// inside the day.
type Date struct {
	year  int
	month time.Month
	day   int
}

// dateLayouts are the cell formats accepted for lifecycle dates. Workbook
// cells are free text, so several human conventions are tolerated.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"2-Jan-2006",
	"2 Jan 2006",
	time.RFC3339,
}

// NewDate creates a date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// DateOf truncates a time.Time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current calendar date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a workbook cell into a Date. The second return value is
// false when the cell is blank or not a recognizable date; a blank lifecycle
// date is a normal state (order not yet despatched), not an error.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	if d.year != other.year {
		return d.year > other.year
	}
	if d.month != other.month {
		return d.month > other.month
	}
	return d.day > other.day
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return other.After(d)
}

// Equal reports whether two dates name the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
	return DateOf(t.AddDate(0, 0, n))
}

// String formats the date as ISO 8601 (yyyy-mm-dd).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}
