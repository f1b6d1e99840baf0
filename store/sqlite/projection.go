/*
projection.go - Assembling a projection input from persisted state

PURPOSE:
  Loads everything the forecast engine consumes for a window in one call:
  accounts and their balances, settled transactions up to the window end,
  and the full obligation catalogue. The engine itself filters by account
  ownership, so the catalogue is loaded whole.

SEE ALSO:
  - forecast/engine.go: the consumer of ProjectionInput
*/
package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/forecast"
)

// LoadProjectionInput gathers persisted state into a projection input for
// the given window. When accountID is non-nil the projection is restricted
// to that account; settled transactions are still loaded per account so the
// past-balance walk has the full history behind it.
func (s *Store) LoadProjectionInput(ctx context.Context, w forecast.Window, accountID *uuid.UUID) (forecast.ProjectionInput, error) {
	in := forecast.ProjectionInput{Window: w, AccountID: accountID}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return in, err
	}
	in.Accounts = accounts
	in.Balances = make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		in.Balances[a.ID] = a.Balance
	}

	// Everything settled before the window end participates in the past walk.
	var beginning time.Time
	for _, a := range accounts {
		if accountID != nil && a.ID != *accountID {
			continue
		}
		txs, err := s.TransactionsInRange(ctx, a.ID, beginning, w.To)
		if err != nil {
			return in, err
		}
		in.Transactions = append(in.Transactions, txs...)
	}

	if in.Expenses, err = s.ListExpenses(ctx); err != nil {
		return in, err
	}
	if in.Incomes, err = s.ListIncomes(ctx); err != nil {
		return in, err
	}
	if in.Loans, err = s.ListLoans(ctx); err != nil {
		return in, err
	}
	if in.Transfers, err = s.ListTransfers(ctx); err != nil {
		return in, err
	}
	if in.Jobs, err = s.ListJobs(ctx); err != nil {
		return in, err
	}
	if in.Payroll, err = s.ListPayrollEntries(ctx); err != nil {
		return in, err
	}
	if in.Systems, err = s.ListCommuteSystems(ctx); err != nil {
		return in, err
	}
	if in.Rides, err = s.ListCommuteRides(ctx); err != nil {
		return in, err
	}
	if in.Wishlists, err = s.ListWishlists(ctx); err != nil {
		return in, err
	}
	return in, nil
}
