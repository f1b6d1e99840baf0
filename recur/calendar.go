package recur

import "time"

// =============================================================================
// CALENDAR HELPERS - Day-granularity date arithmetic
// =============================================================================
// All dates in the engine are UTC midnights. The helpers below are the only
// place weekday/month arithmetic happens, so the expanders stay readable.

// Date returns the UTC midnight for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates a timestamp to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextWeekday shifts t forward to the next occurrence of wd.
// Zero shift if t already falls on wd.
func NextWeekday(t time.Time, wd time.Weekday) time.Time {
	shift := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, shift)
}

// NthWeekdayOfMonth returns the first occurrence of wd on/after day 1 of the
// month, advanced by week whole weeks. week=0 is the first such weekday;
// week=4 approximates "last" with a fixed four-week offset, which lands in
// the following month when the weekday occurs only four times. Callers that
// prefer correctness over compatibility should clamp the result themselves.
func NthWeekdayOfMonth(year int, month time.Month, wd time.Weekday, week int) time.Time {
	first := NextWeekday(Date(year, month, 1), wd)
	return first.AddDate(0, 0, 7*week)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.UTC().Year() == b.UTC().Year() && a.UTC().Month() == b.UTC().Month()
}

// DaysBetween returns the whole days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}
