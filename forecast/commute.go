/*
commute.go - Commute ride expansion and fare capping

PURPOSE:
  Rides are single-shot events: each scheduled ride contributes one debit.
  When the transit system carries a fare-capping policy, a post-processing
  pass rewrites ride amounts so cumulative spend within each capping period
  never exceeds the cap; the excess is refunded into the ride that crossed
  the cap.

PERIOD RESET RULES:
  Daily:   resets when the next ride falls on a different calendar day
  Monthly: resets when the next ride falls in a different calendar month
  Weekly:  resets when seven days have elapsed since the first ride of the
           current period (the anchor), at which point the anchor advances

SEE ALSO:
  - budget: CommuteSystem, CommuteRide, FareCapPolicy
  - engine.go: partitions the capped rides back into the window
*/
package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/recur"
)

// =============================================================================
// RIDE EXPANSION
// =============================================================================

// ExpandRides converts a system's scheduled rides into debit events,
// applies the system's fare cap if one exists, and partitions the result
// against the window.
func ExpandRides(w Window, system budget.CommuteSystem, rides []budget.CommuteRide) Expansion {
	events := make([]GeneratedTransaction, 0, len(rides))
	for _, r := range rides {
		if r.SystemID != system.ID || r.Date.After(w.To) {
			continue
		}
		title := system.Name + " fare"
		events = append(events, synthesized(r.Date, title, r.Description, r.Fare.Neg()))
	}

	if system.FareCap != nil {
		events = ApplyFareCap(events, *system.FareCap)
	}

	var x Expansion
	for _, tx := range events {
		x.add(w, tx)
	}
	return x
}

// =============================================================================
// FARE CAPPING POST-PROCESSOR
// =============================================================================

// ApplyFareCap rewrites ride amounts so cumulative spend per capping period
// never exceeds the cap. Rides are returned sorted ascending by date; the
// excess over the cap is refunded into the ride that crossed it, which can
// zero that ride out entirely.
func ApplyFareCap(rides []GeneratedTransaction, policy budget.FareCapPolicy) []GeneratedTransaction {
	out := make([]GeneratedTransaction, len(rides))
	copy(out, rides)
	sortByDate(out)

	spent := decimal.Zero
	var anchor *GeneratedTransaction

	for i := range out {
		ride := &out[i]

		if anchor == nil {
			anchor = ride
		} else if newPeriod(policy.Duration, anchor, ride) {
			spent = decimal.Zero
			anchor = ride
		}

		spent = spent.Add(ride.Amount.Abs())
		if spent.GreaterThan(policy.Cap) {
			excess := spent.Sub(policy.Cap)
			// Amounts are negative, so adding the excess shrinks the charge.
			ride.Amount = ride.Amount.Add(excess)
			ride.TotalAmount = ride.Amount
			spent = policy.Cap
		}
	}
	return out
}

// newPeriod reports whether the current ride starts a fresh capping period
// relative to the period's anchor ride.
func newPeriod(d budget.CapDuration, anchor, ride *GeneratedTransaction) bool {
	switch d {
	case budget.CapDaily:
		return !recur.SameDay(anchor.Date, ride.Date)
	case budget.CapMonthly:
		return !recur.SameMonth(anchor.Date, ride.Date)
	case budget.CapWeekly:
		return recur.DaysBetween(anchor.Date, ride.Date) >= 7
	}
	return false
}
