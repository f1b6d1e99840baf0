/*
wishlist.go - Wishlist purchase resolution

PURPOSE:
  Finds, for a desired purchase, the earliest projected event after which
  the balance trajectory would cover the purchase without dipping below
  the account's present balance, and inserts a synthetic debit there.

QUALIFYING EVENT:
  - dated on/after max(window start, the item's availability date)
  - a credit (positive amount)
  - annotated balance exceeding item amount + present balance, i.e. the
    projected surplus over today's balance absorbs the purchase

FIXED-POINT LOOP:
  Each inserted purchase shifts every later balance, so items are resolved
  one at a time in collection order, with a full re-sort and re-annotation
  after each insertion. This is O(W * N log N) by design; batching would
  change which events qualify for later items.

UNRESOLVABLE ITEMS:
  An item with no qualifying event is silently left unresolved - not an
  error, the purchase simply never becomes affordable inside the window.

SEE ALSO:
  - balance.go: the annotation re-run after each insertion
  - engine.go: drives the per-item loop
*/
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
)

// ResolveWishlist scans the balance-annotated, chronologically ordered
// events for the first qualifying credit and inserts a synthetic purchase
// debit dated at that event. On insertion the list is re-sorted and
// re-annotated before being returned, so callers can chain resolutions.
// The second return reports whether the item was resolved.
func ResolveWishlist(
	events []GeneratedTransaction,
	item budget.Wishlist,
	from time.Time,
	now time.Time,
	current decimal.Decimal,
) ([]GeneratedTransaction, bool) {
	earliest := from
	if item.DateAvailable != nil && item.DateAvailable.After(earliest) {
		earliest = *item.DateAvailable
	}

	// Enough surplus over the present balance to absorb the purchase.
	needed := item.Amount.Add(current)

	for _, tx := range events {
		if tx.Date.Before(earliest) || !tx.Amount.IsPositive() {
			continue
		}
		if !tx.Balance.GreaterThan(needed) {
			continue
		}

		purchase := synthesized(tx.Date, item.Title, item.Description, item.Amount.Neg())
		events = append(events, purchase)
		// Stable sort keeps the purchase after its trigger and before the
		// next distinct date; annotation then reflects the new debit.
		Annotate(events, current, now)
		return events, true
	}
	return events, false
}
