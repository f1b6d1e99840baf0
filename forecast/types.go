/*
Package forecast is the transaction projection engine.

PURPOSE:
  Given an account's recurring obligations (expenses, incomes, loans,
  transfers), its payroll entries, commute rides and wishlist purchases,
  plus a date window, the engine deterministically expands every recurrence
  into dated cash-flow events, merges them with settled transactions,
  replays them chronologically against the account's present balance, and
  resolves wishlist purchases against the projected balance trajectory.

KEY CONCEPTS IN THIS FILE (types.go):
  - GeneratedTransaction: the unit the engine produces and annotates
  - Window: the query range plus the injected "now"
  - Expansion: an expander's output, partitioned in-window vs skipped

PIPELINE:
  expanders -> fare capping -> merge & sort -> balance annotation ->
  wishlist resolution (re-sort + re-annotate per item)

DESIGN PRINCIPLES:
  1. Determinism: "now" is part of the Window, never read from the clock
  2. Purity: expanders return fresh slices; only balance annotation and
     wishlist resolution mutate, and only lists the caller owns
  3. Precision: decimal.Decimal throughout, 2-dp rounding only on the
     user-facing forward balance pass

SEE ALSO:
  - recur: recurrence-rule expansion into occurrence dates
  - budget: the obligation model consumed here
  - engine.go: the per-account orchestrator
*/
package forecast

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
)

// =============================================================================
// GENERATED TRANSACTION - The unit of projection
// =============================================================================

// GeneratedTransaction is a dated cash-flow event. Settled transactions
// carry their real id; synthesized events carry uuid.Nil. Balance is
// populated only by Annotate and represents the account balance immediately
// after the event is applied.
type GeneratedTransaction struct {
	ID          uuid.UUID
	Date        time.Time
	Title       string
	Description string
	Amount      decimal.Decimal // signed; negative = debit
	TaxRate     decimal.Decimal
	TotalAmount decimal.Decimal // tax-adjusted effective amount
	Balance     decimal.Decimal
}

// fromSettled converts a historical ledger entry. The tax rate is known at
// record time, so the effective amount is netted here.
func fromSettled(tx budget.Transaction) GeneratedTransaction {
	return GeneratedTransaction{
		ID:          tx.ID,
		Date:        tx.Date,
		Title:       tx.Title,
		Description: tx.Description,
		Amount:      tx.Amount,
		TaxRate:     tx.TaxRate,
		TotalAmount: tx.Amount.Sub(tx.Amount.Mul(tx.TaxRate)),
	}
}

// synthesized builds a projected event. No tax applies, so the effective
// amount equals the signed amount.
func synthesized(date time.Time, title, description string, amount decimal.Decimal) GeneratedTransaction {
	return GeneratedTransaction{
		Date:        date,
		Title:       title,
		Description: description,
		Amount:      amount,
		TotalAmount: amount,
	}
}

// sortByDate stable-sorts events chronologically. Stability matters: the
// wishlist resolver appends synthetic events and relies on equal-dated
// events keeping their insertion order.
func sortByDate(events []GeneratedTransaction) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// =============================================================================
// WINDOW - Query range with injected "now"
// =============================================================================

// maxHorizonYears bounds how far into the future a single projection may
// reach before it is rejected as unbounded.
const maxHorizonYears = 50

// Window is the projection query range [From, To] plus the wall-clock
// moment the caller considers "now". Injecting now keeps expansion and
// balance replay fully deterministic under test.
type Window struct {
	From time.Time
	To   time.Time
	Now  time.Time
}

// Validate rejects windows that would hang or mislead generation.
func (w Window) Validate() error {
	if w.To.IsZero() {
		return &UnboundedWindowError{Reason: "toDate missing"}
	}
	if w.To.Before(w.From) {
		return &UnboundedWindowError{Reason: "toDate before fromDate"}
	}
	if w.To.After(w.From.AddDate(maxHorizonYears, 0, 0)) {
		return &UnboundedWindowError{Reason: "range exceeds projection horizon"}
	}
	return nil
}

// =============================================================================
// EXPANSION - Partitioned expander output
// =============================================================================

// Expansion is the output of a single expander run. InWindow events fall
// inside [From, To]; Skipped events fall before From but still influence
// the balance baseline entering the window.
type Expansion struct {
	InWindow []GeneratedTransaction
	Skipped  []GeneratedTransaction
}

// add classifies one event against the window. Events after To never reach
// here; expanders stop generating at the window bound.
func (x *Expansion) add(w Window, tx GeneratedTransaction) {
	if tx.Date.Before(w.From) {
		x.Skipped = append(x.Skipped, tx)
		return
	}
	x.InWindow = append(x.InWindow, tx)
}

// merge folds another expansion into this one.
func (x *Expansion) merge(other Expansion) {
	x.InWindow = append(x.InWindow, other.InWindow...)
	x.Skipped = append(x.Skipped, other.Skipped...)
}

// all returns the union of both partitions as a fresh slice.
func (x Expansion) all() []GeneratedTransaction {
	out := make([]GeneratedTransaction, 0, len(x.InWindow)+len(x.Skipped))
	out = append(out, x.Skipped...)
	out = append(out, x.InWindow...)
	return out
}

// boundedEnd caps an obligation's generation at its own end date when that
// is earlier than the window's end.
func boundedEnd(w Window, end *time.Time) time.Time {
	if end != nil && end.Before(w.To) {
		return *end
	}
	return w.To
}
