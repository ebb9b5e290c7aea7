package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateFormat is returned for a date string that is not a valid
// YYYY-MM-DD calendar day.
var ErrInvalidDateFormat = errors.New("domain: invalid date format, expected YYYY-MM-DD")

// CalendarDay is a calendar-day identifier in canonical YYYY-MM-DD form.
// It is deliberately a string key, not a timestamp: all comparisons and
// "today" calculations use one reference clock (UTC), so a day means the
// same thing to every caller regardless of their local timezone.
type CalendarDay string

// ParseDay parses and canonicalizes a YYYY-MM-DD string.
func ParseDay(s string) (CalendarDay, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return CalendarDay(t.UTC().Format(DateFormat)), nil
}

// DayFromTime truncates a point in time to its UTC calendar day.
func DayFromTime(t time.Time) CalendarDay {
	return CalendarDay(t.UTC().Format(DateFormat))
}

// Today returns the current calendar day under the reference clock.
func Today(now time.Time) CalendarDay {
	return DayFromTime(now)
}

// Validate reports whether the day is a well-formed YYYY-MM-DD date.
func (d CalendarDay) Validate() error {
	if _, err := time.Parse(DateFormat, string(d)); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

// Time returns the midnight UTC instant of the day.
// Panics are avoided: a malformed day yields the zero time.
func (d CalendarDay) Time() time.Time {
	t, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Weekday returns the day of week under the reference clock.
func (d CalendarDay) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsBookable reports whether the day may carry bookings at all.
// False iff the day falls on the weekly rest day.
func (d CalendarDay) IsBookable() bool {
	return d.Weekday() != RestDay
}

// AddDays advances the day by exactly n calendar units.
func (d CalendarDay) AddDays(n int) CalendarDay {
	return DayFromTime(d.Time().AddDate(0, 0, n))
}

// Next returns the following calendar day.
func (d CalendarDay) Next() CalendarDay {
	return d.AddDays(1)
}

// Before reports whether d precedes other. Canonical string form makes
// lexicographic comparison equivalent to chronological comparison.
func (d CalendarDay) Before(other CalendarDay) bool {
	return string(d) < string(other)
}

// IsPast reports whether the day is strictly before today's reference day.
func (d CalendarDay) IsPast(now time.Time) bool {
	return d.Before(Today(now))
}

// IsToday reports whether the day equals today's reference day.
func (d CalendarDay) IsToday(now time.Time) bool {
	return d == Today(now)
}

func (d CalendarDay) String() string {
	return string(d)
}

// EnumerateDays returns count consecutive days starting at start.
// Pure date arithmetic: every step advances by exactly one calendar unit.
func EnumerateDays(start CalendarDay, count int) []CalendarDay {
	days := make([]CalendarDay, 0, count)
	day := start
	for i := 0; i < count; i++ {
		days = append(days, day)
		day = day.Next()
	}
	return days
}

// SpanDays returns the inclusive day count of the [from, to] range without
// enumerating it, so hostile ranges cost nothing to measure. An inverted
// range yields zero. Days are midnight UTC, so Unix seconds divide evenly.
func SpanDays(from, to CalendarDay) int {
	if to.Before(from) {
		return 0
	}
	const secondsPerDay = 86400
	return int(to.Time().Unix()/secondsPerDay-from.Time().Unix()/secondsPerDay) + 1
}

// DaysBetween returns every day of the inclusive [from, to] range.
// An inverted range yields an empty slice.
func DaysBetween(from, to CalendarDay) []CalendarDay {
	if to.Before(from) {
		return []CalendarDay{}
	}
	days := make([]CalendarDay, 0)
	for day := from; !to.Before(day); day = day.Next() {
		days = append(days, day)
	}
	return days
}
