/*
engine.go - Transaction generation orchestrator

PURPOSE:
  Drives a full projection: per account, merges settled transactions with
  every expander's output, partitions events against the window, annotates
  balances, and resolves wishlist purchases in order. Returns one
  projection per account plus the loan payoff dates collected along the
  way.

FAILURE SEMANTICS:
  A failed expander or missing balance baseline fails that account's whole
  projection - no partial results. When projecting a single account the
  failure is returned directly; in bulk mode the failure is recorded and
  the remaining accounts still project. Results are keyed by account id,
  so processing order is not observable.

PAYOFF THREADING:
  Fully-paid-back dates are accumulated into the result, never into
  package state, so concurrent projections cannot observe each other.

SEE ALSO:
  - expand.go, commute.go: the expanders driven here
  - balance.go, wishlist.go: the annotation/resolution passes
*/
package forecast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
)

// =============================================================================
// INPUT / OUTPUT SHAPES
// =============================================================================

// ProjectionInput carries everything a projection needs. The engine
// performs no I/O; callers load these collections up front. Ownership
// filtering happens here, so collections may span accounts.
type ProjectionInput struct {
	Window Window

	// AccountID restricts the projection to one account. Nil projects
	// every account in Accounts.
	AccountID *uuid.UUID

	Accounts []budget.Account

	// Balances is the present-moment settled balance per account. An
	// account missing from this map cannot be projected.
	Balances map[uuid.UUID]decimal.Decimal

	Transactions []budget.Transaction
	Expenses     []budget.Expense
	Incomes      []budget.Income
	Loans        []budget.Loan
	Transfers    []budget.Transfer
	Jobs         []budget.Job
	Payroll      []budget.PayrollEntry
	Systems      []budget.CommuteSystem
	Rides        []budget.CommuteRide
	Wishlists    []budget.Wishlist
}

// AccountProjection is one account's projected ledger view.
type AccountProjection struct {
	AccountID      uuid.UUID
	CurrentBalance decimal.Decimal
	Transactions   []GeneratedTransaction
}

// ProjectionResult is the full projection output. LoanPayoffs maps every
// projected loan to its fully-paid-back date, nil when repayments never
// reach the plan amount inside the window. Failed records per-account
// errors from bulk projections.
type ProjectionResult struct {
	Accounts    []AccountProjection
	LoanPayoffs map[uuid.UUID]*time.Time
	Failed      map[uuid.UUID]error
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Project runs the projection described by input. With an account filter a
// failure aborts the call; in bulk mode failures are recorded per account
// and the rest still project.
func Project(input ProjectionInput) (*ProjectionResult, error) {
	if err := input.Window.Validate(); err != nil {
		return nil, err
	}

	accounts := input.Accounts
	if input.AccountID != nil {
		accounts = nil
		for _, a := range input.Accounts {
			if a.ID == *input.AccountID {
				accounts = []budget.Account{a}
				break
			}
		}
		if accounts == nil {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, *input.AccountID)
		}
	}

	result := &ProjectionResult{
		LoanPayoffs: make(map[uuid.UUID]*time.Time),
		Failed:      make(map[uuid.UUID]error),
	}

	for _, acct := range accounts {
		projection, err := projectAccount(input, acct, result.LoanPayoffs)
		if err != nil {
			if input.AccountID != nil {
				return nil, err
			}
			result.Failed[acct.ID] = err
			continue
		}
		result.Accounts = append(result.Accounts, *projection)
	}
	return result, nil
}

// projectAccount runs the full pipeline for one account.
func projectAccount(input ProjectionInput, acct budget.Account, payoffs map[uuid.UUID]*time.Time) (*AccountProjection, error) {
	w := input.Window

	current, ok := input.Balances[acct.ID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", ErrMissingBalance, acct.ID)
	}

	var x Expansion

	// Settled history. Entries past the window end are out of scope.
	for _, tx := range input.Transactions {
		if tx.AccountID != acct.ID || tx.Date.After(w.To) {
			continue
		}
		x.add(w, fromSettled(tx))
	}

	for _, e := range input.Expenses {
		if e.AccountID != acct.ID {
			continue
		}
		exp, err := ExpandExpense(w, e)
		if err != nil {
			return nil, err
		}
		x.merge(exp)
	}

	for _, in := range input.Incomes {
		if in.AccountID != acct.ID {
			continue
		}
		exp, err := ExpandIncome(w, in)
		if err != nil {
			return nil, err
		}
		x.merge(exp)
	}

	for _, l := range input.Loans {
		if l.AccountID != acct.ID {
			continue
		}
		exp, payoff, err := ExpandLoan(w, l)
		if err != nil {
			return nil, err
		}
		x.merge(exp)
		payoffs[l.ID] = payoff
	}

	for _, t := range input.Transfers {
		if t.SourceAccountID != acct.ID && t.DestinationAccountID != acct.ID {
			continue
		}
		exp, err := ExpandTransfer(w, t, acct.ID)
		if err != nil {
			return nil, err
		}
		x.merge(exp)
	}

	// Payroll is tagged by job, jobs by account.
	for _, job := range input.Jobs {
		if job.AccountID != acct.ID {
			continue
		}
		x.merge(ExpandPayroll(w, job, input.Payroll))
	}

	// Commute rides, capped per system.
	accountRides := make([]budget.CommuteRide, 0, len(input.Rides))
	for _, r := range input.Rides {
		if r.AccountID == acct.ID {
			accountRides = append(accountRides, r)
		}
	}
	if len(accountRides) > 0 {
		for _, sys := range input.Systems {
			x.merge(ExpandRides(w, sys, accountRides))
		}
	}

	// Balance replay over the union: skipped events establish the baseline
	// entering the window.
	events := x.all()
	Annotate(events, current, w.Now)

	// Wishlist items resolve in collection order; each insertion re-sorts
	// and re-annotates before the next item is considered.
	for _, item := range input.Wishlists {
		if item.AccountID != acct.ID {
			continue
		}
		events, _ = ResolveWishlist(events, item, w.From, w.Now, current)
	}

	// Final pass so the returned list is consistent even when the last
	// wishlist item resolved nothing.
	Annotate(events, current, w.Now)

	// Skipped events served the baseline; only window contents go back to
	// the caller.
	visible := make([]GeneratedTransaction, 0, len(events))
	for _, tx := range events {
		if !tx.Date.Before(w.From) {
			visible = append(visible, tx)
		}
	}

	return &AccountProjection{
		AccountID:      acct.ID,
		CurrentBalance: current,
		Transactions:   visible,
	}, nil
}
