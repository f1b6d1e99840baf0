/*
balance.go - Running-balance annotation

PURPOSE:
  Annotates every event in a merged event list with the account balance
  immediately after that event applies, anchored at the account's known
  present-moment balance.

ALGORITHM:
  The list is sorted chronologically, then split around "now":

  Past events are walked in reverse. Each event is stamped with the
  running balance before the running balance is reduced by the event's
  effective amount - unwinding history from the known present balance so
  every past event shows the balance that existed right after it happened.

  Future events are walked forward from the present balance. Each event's
  effective amount is applied first, then the resulting balance is stamped
  on the event, rounded to two decimal places. Rounding only on this pass
  keeps floating drift out of user-facing numbers without disturbing the
  backward reconstruction.

IDEMPOTENCE:
  Annotating the same inputs twice yields identical stamps; the wishlist
  resolver relies on this when it re-runs annotation after every synthetic
  insertion.

SEE ALSO:
  - wishlist.go: consumes the annotated trajectory
  - engine.go: supplies the union of in-window and skipped events
*/
package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Annotate sorts events chronologically and stamps each one's Balance
// field, anchored at current, with past/future decided against now. The
// slice is reordered and mutated in place; callers must not rely on the
// prior order.
func Annotate(events []GeneratedTransaction, current decimal.Decimal, now time.Time) {
	sortByDate(events)

	// First index at or after now. Everything before it is history.
	split := sort.Search(len(events), func(i int) bool {
		return !events[i].Date.Before(now)
	})

	// Past: unwind backward from the present balance.
	running := current
	for i := split - 1; i >= 0; i-- {
		events[i].Balance = running
		running = running.Sub(events[i].TotalAmount)
	}

	// Future: accumulate forward from the present balance.
	running = current
	for i := split; i < len(events); i++ {
		running = running.Add(events[i].TotalAmount)
		events[i].Balance = running.Round(2)
	}
}
