/*
materializer.go - Background settlement of due obligations

PURPOSE:
  Periodically converts obligation occurrences whose dates have passed
  into real transaction rows, moves account balances accordingly, and
  advances each obligation's begin date past the settled occurrences so
  the next projection does not double-count them.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Settles expenses, incomes, loans and transfers
  - Loan settlements also apply interest to the remaining plan amount
    before deducting the payment
  - Payroll entries and commute rides stay projection-only; their dated
    one-shot rows have no begin date to advance

USAGE:
  m := NewMaterializer(store, log)
  m.Start()
  // ... later
  m.Stop()

SEE ALSO:
  - store/sqlite/obligations.go: Advance*BeginDate, UpdateLoanPlanAmount
  - forecast/expand.go: the projection-side view of the same occurrences
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/recur"
	"github.com/EphraimB/budgeting-sub004/store/sqlite"
)

// Materializer settles due obligation occurrences into the ledger.
type Materializer struct {
	Store         *sqlite.Store
	Log           zerolog.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewMaterializer creates a new materializer.
func NewMaterializer(store *sqlite.Store, log zerolog.Logger) *Materializer {
	return &Materializer{
		Store:         store,
		Log:           log.With().Str("component", "materializer").Logger(),
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the background loop.
func (m *Materializer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Enabled {
		m.Log.Info().Msg("disabled, not starting")
		return
	}

	m.ticker = time.NewTicker(m.CheckInterval)
	m.wg.Add(1)

	go m.run()

	m.Log.Info().Dur("interval", m.CheckInterval).Msg("started")
}

// Stop stops the background loop.
func (m *Materializer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticker != nil {
		m.ticker.Stop()
		close(m.stop)
		m.wg.Wait()
		m.Log.Info().Msg("stopped")
	}
}

func (m *Materializer) run() {
	defer m.wg.Done()

	// Run immediately on start
	m.settleDue()

	for {
		select {
		case <-m.ticker.C:
			m.settleDue()
		case <-m.stop:
			return
		}
	}
}

// RunNow triggers an immediate pass (for testing/admin).
func (m *Materializer) RunNow() {
	m.settleDue()
}

func (m *Materializer) settleDue() {
	ctx := context.Background()
	now := recur.Midnight(time.Now().UTC())

	settled := 0
	settled += m.settleExpenses(ctx, now)
	settled += m.settleIncomes(ctx, now)
	settled += m.settleLoans(ctx, now)
	settled += m.settleTransfers(ctx, now)

	if settled > 0 {
		m.Log.Info().Int("settled", settled).Time("as_of", now).Msg("pass completed")
	}
}

func (m *Materializer) settleExpenses(ctx context.Context, now time.Time) int {
	expenses, err := m.Store.ListExpenses(ctx)
	if err != nil {
		m.Log.Error().Err(err).Msg("list expenses")
		return 0
	}

	settled := 0
	for _, e := range expenses {
		due, err := dueOccurrences(e.Rule, e.BeginDate, e.EndDate, now)
		if err != nil {
			m.Log.Error().Err(err).Str("expense", e.ID.String()).Msg("expanding occurrences")
			continue
		}
		if len(due) == 0 {
			continue
		}
		for _, d := range due {
			if err := m.settle(ctx, e.AccountID, e.Title, e.Description, e.Amount.Neg(), d); err != nil {
				m.Log.Error().Err(err).Str("expense", e.ID.String()).Msg("settling occurrence")
				break
			}
			settled++
		}
		m.advance(ctx, m.Store.AdvanceExpenseBeginDate, e.ID, e.Rule, e.BeginDate, now)
	}
	return settled
}

func (m *Materializer) settleIncomes(ctx context.Context, now time.Time) int {
	incomes, err := m.Store.ListIncomes(ctx)
	if err != nil {
		m.Log.Error().Err(err).Msg("list incomes")
		return 0
	}

	settled := 0
	for _, in := range incomes {
		due, err := dueOccurrences(in.Rule, in.BeginDate, in.EndDate, now)
		if err != nil {
			m.Log.Error().Err(err).Str("income", in.ID.String()).Msg("expanding occurrences")
			continue
		}
		if len(due) == 0 {
			continue
		}
		for _, d := range due {
			if err := m.settle(ctx, in.AccountID, in.Title, in.Description, in.Amount, d); err != nil {
				m.Log.Error().Err(err).Str("income", in.ID.String()).Msg("settling occurrence")
				break
			}
			settled++
		}
		m.advance(ctx, m.Store.AdvanceIncomeBeginDate, in.ID, in.Rule, in.BeginDate, now)
	}
	return settled
}

func (m *Materializer) settleLoans(ctx context.Context, now time.Time) int {
	loans, err := m.Store.ListLoans(ctx)
	if err != nil {
		m.Log.Error().Err(err).Msg("list loans")
		return 0
	}

	settled := 0
	for _, l := range loans {
		due, err := dueOccurrences(l.Rule, l.BeginDate, l.EndDate, now)
		if err != nil {
			m.Log.Error().Err(err).Str("loan", l.ID.String()).Msg("expanding occurrences")
			continue
		}
		if len(due) == 0 {
			continue
		}

		plan := l.PlanAmount
		for _, d := range due {
			if err := m.settle(ctx, l.AccountID, l.Title, l.Description, l.Amount.Neg(), d); err != nil {
				m.Log.Error().Err(err).Str("loan", l.ID.String()).Msg("settling occurrence")
				break
			}
			settled++

			// Interest accrues on the remaining plan before the payment
			// comes off. Subsidies shave the borrower's share of it.
			interest := plan.Mul(l.InterestRate).Mul(decimal.NewFromInt(1).Sub(l.SubsidizedFraction))
			plan = plan.Add(interest).Sub(l.Amount)
			if plan.IsNegative() {
				plan = decimal.Zero
			}
		}
		if err := m.Store.UpdateLoanPlanAmount(ctx, l.ID, plan); err != nil {
			m.Log.Error().Err(err).Str("loan", l.ID.String()).Msg("updating plan amount")
		}
		m.advance(ctx, m.Store.AdvanceLoanBeginDate, l.ID, l.Rule, l.BeginDate, now)
	}
	return settled
}

func (m *Materializer) settleTransfers(ctx context.Context, now time.Time) int {
	transfers, err := m.Store.ListTransfers(ctx)
	if err != nil {
		m.Log.Error().Err(err).Msg("list transfers")
		return 0
	}

	settled := 0
	for _, t := range transfers {
		due, err := dueOccurrences(t.Rule, t.BeginDate, t.EndDate, now)
		if err != nil {
			m.Log.Error().Err(err).Str("transfer", t.ID.String()).Msg("expanding occurrences")
			continue
		}
		if len(due) == 0 {
			continue
		}
		for _, d := range due {
			if err := m.settle(ctx, t.SourceAccountID, t.Title, t.Description, t.Amount.Neg(), d); err != nil {
				m.Log.Error().Err(err).Str("transfer", t.ID.String()).Msg("settling source leg")
				break
			}
			if err := m.settle(ctx, t.DestinationAccountID, t.Title, t.Description, t.Amount, d); err != nil {
				m.Log.Error().Err(err).Str("transfer", t.ID.String()).Msg("settling destination leg")
				break
			}
			settled++
		}
		m.advance(ctx, m.Store.AdvanceTransferBeginDate, t.ID, t.Rule, t.BeginDate, now)
	}
	return settled
}

// settle writes one transaction row and moves the account balance.
func (m *Materializer) settle(ctx context.Context, accountID uuid.UUID, title, description string, amount decimal.Decimal, date time.Time) error {
	acct, err := m.Store.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if acct == nil {
		m.Log.Warn().Str("account", accountID.String()).Msg("obligation points at missing account")
		return nil
	}

	tx := budget.Transaction{
		AccountID:   accountID,
		Title:       title,
		Description: description,
		Amount:      amount,
		Date:        date,
	}
	if err := m.Store.CreateTransaction(ctx, &tx); err != nil {
		return err
	}
	return m.Store.UpdateAccountBalance(ctx, accountID, acct.Balance.Add(amount))
}

// advance moves an obligation's begin date to its next future occurrence,
// keeping the recurrence phase intact.
func (m *Materializer) advance(ctx context.Context, update func(context.Context, uuid.UUID, time.Time) error, id uuid.UUID, rule recur.Rule, begin, now time.Time) {
	next := nextOccurrenceAfter(rule, begin, now)
	if err := update(ctx, id, next); err != nil {
		m.Log.Error().Err(err).Str("obligation", id.String()).Msg("advancing begin date")
	}
}

// dueOccurrences lists occurrences at or before now, bounded by the
// obligation's end date when it has one.
func dueOccurrences(rule recur.Rule, begin time.Time, end *time.Time, now time.Time) ([]time.Time, error) {
	until := now
	if end != nil && end.Before(until) {
		until = *end
	}
	if until.Before(begin) {
		return nil, nil
	}
	return rule.Occurrences(begin, until)
}

// nextOccurrenceAfter finds the first occurrence strictly after now. When
// the rule produces nothing in the next two years (an ended obligation,
// typically) the anchor just moves past now.
func nextOccurrenceAfter(rule recur.Rule, begin, now time.Time) time.Time {
	occs, err := rule.Occurrences(begin, now.AddDate(2, 0, 0))
	if err == nil {
		for _, d := range occs {
			if d.After(now) {
				return d
			}
		}
	}
	return now.AddDate(0, 0, 1)
}
