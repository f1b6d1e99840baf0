/*
Package recur implements the recurrence-rule algebra used by the forecast
engine.

PURPOSE:
  A Rule describes how often a financial obligation repeats: daily, weekly,
  monthly or yearly, every N periods, optionally pinned to a weekday, a
  week-of-month, a day-of-month or a month-of-year. Occurrences materializes
  a rule into concrete calendar dates inside a bounded range.

KEY CONCEPTS:
  - Rule: the recurrence description attached to expenses, incomes, loans
    and transfers. Only the refinement fields relevant to the frequency are
    consulted; extra fields may be present and are ignored.
  - Occurrences: deterministic expansion of a rule anchored at a begin date,
    bounded above by an until date and by a hard iteration cap.

REFINEMENT SEMANTICS:
  Daily:   begin + k*Interval days.
  Weekly:  begin shifted forward to DayOfWeek (if set), then 7*Interval days
           per step.
  Monthly: each period's occurrence is either the WeekOfMonth'th DayOfWeek
           of the target month, or the pinned/anchored day-of-month.
  Yearly:  as Monthly, with the target month fixed by MonthOfYear (or the
           begin date's month) and a step of Interval years.

SEE ALSO:
  - calendar.go: weekday and month arithmetic
  - forecast: turns occurrences into signed cash-flow events
*/
package recur

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// RULE - How often an obligation recurs
// =============================================================================

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

// Rule describes a recurrence. The zero Interval means "every period".
type Rule struct {
	Frequency Frequency
	Interval  int

	// Optional refinements. Pointers distinguish "unset" from zero values.
	DayOfWeek   *time.Weekday // pins weekly/monthly/yearly occurrences to a weekday
	WeekOfMonth *int          // 0=first .. 4=last (four-week offset approximation)
	DayOfMonth  *int          // 1-31, pins monthly/yearly occurrences
	MonthOfYear *time.Month   // anchors yearly occurrences to a month
}

// maxOccurrences bounds a single expansion. A daily rule over 25 years stays
// comfortably below this; anything that reaches it is a caller bug.
const maxOccurrences = 10000

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidRule is returned when a rule's refinement fields are absent,
	// out of range, or contradictory for its frequency.
	ErrInvalidRule = errors.New("invalid recurrence rule")

	// ErrUnboundedGeneration is returned when an expansion would exceed the
	// iteration cap, typically because the requested range is absurdly wide.
	ErrUnboundedGeneration = errors.New("unbounded generation")
)

// InvalidRuleError carries the offending field for error messages.
type InvalidRuleError struct {
	Field  string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid recurrence rule: %s %s", e.Field, e.Reason)
}

func (e *InvalidRuleError) Unwrap() error { return ErrInvalidRule }

// =============================================================================
// VALIDATION
// =============================================================================

// Validate fails fast on rules that would otherwise loop or mis-generate.
func (r Rule) Validate() error {
	switch r.Frequency {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
	default:
		return &InvalidRuleError{Field: "frequency", Reason: fmt.Sprintf("unknown kind %q", r.Frequency)}
	}
	if r.Interval < 0 {
		return &InvalidRuleError{Field: "interval", Reason: "must be >= 1"}
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < time.Sunday || *r.DayOfWeek > time.Saturday) {
		return &InvalidRuleError{Field: "dayOfWeek", Reason: "out of range 0-6"}
	}
	if r.WeekOfMonth != nil {
		if *r.WeekOfMonth < 0 || *r.WeekOfMonth > 4 {
			return &InvalidRuleError{Field: "weekOfMonth", Reason: "out of range 0-4"}
		}
		if r.DayOfWeek == nil {
			return &InvalidRuleError{Field: "weekOfMonth", Reason: "requires dayOfWeek"}
		}
	}
	if r.DayOfMonth != nil && (*r.DayOfMonth < 1 || *r.DayOfMonth > 31) {
		return &InvalidRuleError{Field: "dayOfMonth", Reason: "out of range 1-31"}
	}
	if r.MonthOfYear != nil && (*r.MonthOfYear < time.January || *r.MonthOfYear > time.December) {
		return &InvalidRuleError{Field: "monthOfYear", Reason: "out of range 1-12"}
	}
	return nil
}

func (r Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// =============================================================================
// OCCURRENCE EXPANSION
// =============================================================================

// Occurrences expands the rule anchored at begin into every occurrence date
// up to and including until. Dates before begin are never produced. The
// result is strictly ascending.
func (r Rule) Occurrences(begin, until time.Time) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	begin = Midnight(begin)
	until = Midnight(until)
	if until.Before(begin) {
		return nil, nil
	}

	switch r.Frequency {
	case FreqDaily:
		return r.stepDays(begin, until, r.interval())
	case FreqWeekly:
		first := begin
		if r.DayOfWeek != nil {
			first = NextWeekday(begin, *r.DayOfWeek)
		}
		return r.stepDays(first, until, 7*r.interval())
	case FreqMonthly:
		return r.stepMonths(begin, until, r.interval(), nil)
	case FreqYearly:
		month := begin.Month()
		if r.MonthOfYear != nil {
			month = *r.MonthOfYear
		}
		return r.stepMonths(begin, until, 12*r.interval(), &month)
	}
	return nil, &InvalidRuleError{Field: "frequency", Reason: fmt.Sprintf("unknown kind %q", r.Frequency)}
}

func (r Rule) stepDays(first, until time.Time, days int) ([]time.Time, error) {
	var out []time.Time
	for current := first; !current.After(until); current = current.AddDate(0, 0, days) {
		if len(out) >= maxOccurrences {
			return nil, fmt.Errorf("%w: more than %d occurrences", ErrUnboundedGeneration, maxOccurrences)
		}
		out = append(out, current)
	}
	return out, nil
}

// stepMonths handles both monthly (monthStep=Interval) and yearly
// (monthStep=12*Interval, pinned month) rules. Each period contributes at
// most one occurrence, computed by occurrenceInMonth.
func (r Rule) stepMonths(begin, until time.Time, monthStep int, pinMonth *time.Month) ([]time.Time, error) {
	anchor := StartOfMonth(begin)
	if pinMonth != nil {
		anchor = Date(begin.Year(), *pinMonth, 1)
	}

	var out []time.Time
	for k := 0; ; k++ {
		if k >= maxOccurrences {
			return nil, fmt.Errorf("%w: more than %d periods", ErrUnboundedGeneration, maxOccurrences)
		}
		period := anchor.AddDate(0, k*monthStep, 0)
		occ := r.occurrenceInMonth(period.Year(), period.Month(), begin)
		if occ.After(until) {
			return out, nil
		}
		if occ.Before(begin) {
			continue
		}
		out = append(out, occ)
	}
}

// occurrenceInMonth places the rule's single occurrence inside a target
// month. With DayOfWeek set, the occurrence is the WeekOfMonth'th matching
// weekday; otherwise the pinned or anchored day-of-month. Day-of-month
// overflow (e.g. the 31st of February) rolls into the next month, which is
// accepted as best-effort forecasting behavior.
func (r Rule) occurrenceInMonth(year int, month time.Month, begin time.Time) time.Time {
	if r.DayOfWeek != nil {
		week := 0
		if r.WeekOfMonth != nil {
			week = *r.WeekOfMonth
		}
		return NthWeekdayOfMonth(year, month, *r.DayOfWeek, week)
	}
	day := begin.Day()
	if r.DayOfMonth != nil {
		day = *r.DayOfMonth
	}
	return Date(year, month, day)
}
