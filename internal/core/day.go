package core

import (
	"errors"
	"time"
)

// Day is a calendar date in canonical YYYY-MM-DD form. The canonical form
// doubles as the sort key: lexical ordering of Day values is chronological
// ordering, so days compare with plain < and ==.
type Day string

const dayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid day, want YYYY-MM-DD")

// ParseDay validates s as a canonical calendar date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", ErrInvalidDay
	}
	// time.Parse accepts some non-canonical spellings; round-trip to be strict.
	if t.Format(dayLayout) != s {
		return "", ErrInvalidDay
	}
	return Day(s), nil
}

// DayOf truncates t to its calendar date in UTC.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

// NewDay builds a Day from calendar components.
func NewDay(year, month, day int) Day {
	return DayOf(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

func (d Day) Validate() error {
	_, err := ParseDay(string(d))
	return err
}

// Time returns midnight UTC of the day. Invalid days return the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Year returns the calendar year.
func (d Day) Year() int { return d.Time().Year() }

// Month returns the 1-based calendar month.
func (d Day) Month() int { return int(d.Time().Month()) }

// DaysInMonth returns the number of days in the given 1-based month.
func DaysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the first and last day of the given month, inclusive.
func MonthRange(year, month int) (Day, Day) {
	first := NewDay(year, month, 1)
	last := NewDay(year, month, DaysInMonth(year, month))
	return first, last
}

// DaysBetween returns the inclusive day count from 'from' to 'to',
// or 0 when from is after to.
func DaysBetween(from, to Day) int {
	if from > to {
		return 0
	}
	return int(to.Time().Sub(from.Time())/(24*time.Hour)) + 1
}
