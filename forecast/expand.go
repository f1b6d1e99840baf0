/*
expand.go - Recurrence expanders

PURPOSE:
  One expander per obligation kind. Each takes the query window and an
  obligation, expands the obligation's recurrence rule into occurrence
  dates, applies the kind's sign convention, and partitions the events
  into in-window vs skipped.

SIGN CONVENTIONS:
  Expenses and loan payments are debits (negative). Incomes and payroll
  are credits (positive). A transfer's sign depends on whether the
  projected account is its source (debit) or destination (credit).

EXPENSE SHORT-CIRCUIT:
  Expense occurrences that are not after "now" are assumed already
  realized as settled transactions by the materializer; generating them
  again would double-count, so expansion stops at the first such
  occurrence. Incomes, loans and transfers do not short-circuit.

LOAN PAYOFF TRACKING:
  The loan expander also reports the date at which cumulative generated
  repayments reach the loan's plan amount. The date is display-only and
  never feeds balance math; generation continues past it.

SEE ALSO:
  - recur/recurrence.go: occurrence generation
  - commute.go: single-shot ride expansion and fare capping
*/
package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
)

// =============================================================================
// EXPENSE - Debits, short-circuit at "now"
// =============================================================================

// ExpandExpense generates the expense's debit events inside the window.
func ExpandExpense(w Window, e budget.Expense) (Expansion, error) {
	dates, err := e.Rule.Occurrences(e.BeginDate, boundedEnd(w, e.EndDate))
	if err != nil {
		return Expansion{}, &ObligationError{Kind: "expense", ID: e.ID, Err: err}
	}

	var x Expansion
	for _, d := range dates {
		// Occurrences at or before now are already settled rows written by
		// the materializer; stop rather than double-count them.
		if !d.After(w.Now) {
			break
		}
		x.add(w, synthesized(d, e.Title, e.Description, e.Amount.Neg()))
	}
	return x, nil
}

// =============================================================================
// INCOME - Credits
// =============================================================================

// ExpandIncome generates the income's credit events inside the window.
func ExpandIncome(w Window, in budget.Income) (Expansion, error) {
	dates, err := in.Rule.Occurrences(in.BeginDate, boundedEnd(w, in.EndDate))
	if err != nil {
		return Expansion{}, &ObligationError{Kind: "income", ID: in.ID, Err: err}
	}

	var x Expansion
	for _, d := range dates {
		x.add(w, synthesized(d, in.Title, in.Description, in.Amount))
	}
	return x, nil
}

// =============================================================================
// LOAN - Debits plus fully-paid-back tracking
// =============================================================================

// ExpandLoan generates the loan's repayment events inside the window and
// reports the projected fully-paid-back date, or nil when cumulative
// repayments never reach the plan amount within the window.
func ExpandLoan(w Window, l budget.Loan) (Expansion, *time.Time, error) {
	dates, err := l.Rule.Occurrences(l.BeginDate, boundedEnd(w, l.EndDate))
	if err != nil {
		return Expansion{}, nil, &ObligationError{Kind: "loan", ID: l.ID, Err: err}
	}

	var (
		x      Expansion
		repaid decimal.Decimal
		payoff *time.Time
	)
	for _, d := range dates {
		x.add(w, synthesized(d, l.Title, l.Description, l.Amount.Neg()))

		repaid = repaid.Add(l.Amount)
		if payoff == nil && repaid.GreaterThanOrEqual(l.PlanAmount) {
			paid := d
			payoff = &paid
		}
	}
	return x, payoff, nil
}

// =============================================================================
// TRANSFER - Sign resolved per viewing account
// =============================================================================

// ExpandTransfer generates the transfer's events as seen from the given
// account: debits when the account is the source, credits when it is the
// destination.
func ExpandTransfer(w Window, t budget.Transfer, viewpoint uuid.UUID) (Expansion, error) {
	dates, err := t.Rule.Occurrences(t.BeginDate, boundedEnd(w, t.EndDate))
	if err != nil {
		return Expansion{}, &ObligationError{Kind: "transfer", ID: t.ID, Err: err}
	}

	amount := t.Amount
	if t.SourceAccountID == viewpoint {
		amount = amount.Neg()
	}

	var x Expansion
	for _, d := range dates {
		x.add(w, synthesized(d, t.Title, t.Description, amount))
	}
	return x, nil
}

// =============================================================================
// PAYROLL - Single-shot, taxed
// =============================================================================

// ExpandPayroll converts scheduled pay events into credit events. Payroll
// entries are single-shot: each entry contributes at most one event, netted
// against its tax rate.
func ExpandPayroll(w Window, job budget.Job, entries []budget.PayrollEntry) Expansion {
	var x Expansion
	for _, p := range entries {
		if p.JobID != job.ID || p.PayDate.After(w.To) {
			continue
		}
		tx := synthesized(p.PayDate, "Payroll", "Payroll for "+job.Name, p.GrossAmount)
		tx.TaxRate = p.TaxRate
		tx.TotalAmount = p.GrossAmount.Sub(p.GrossAmount.Mul(p.TaxRate))
		x.add(w, tx)
	}
	return x
}
