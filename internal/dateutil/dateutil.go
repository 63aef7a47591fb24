// Package dateutil holds the calendar-day arithmetic used by the window
// and timeline code. Everything works at day granularity: times are
// truncated and days are compared as YYYY-MM-DD strings, never as
// timestamps, so a segment created at 23:30 and one created at 08:00
// land on the same day regardless of clock time.
package dateutil

import (
	"time"
)

// DayFormat is the wire format for calendar days
const DayFormat = "2006-01-02"

// DayString formats a time as its calendar day
func DayString(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into a local midnight time
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.Local)
}

// StartOfDay truncates a time to local midnight
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek returns midnight of the Saturday on or after t
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// AddDays shifts a time by whole calendar days
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// SameDay reports whether two times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return DayString(a) == DayString(b)
}
