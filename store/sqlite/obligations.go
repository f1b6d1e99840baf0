/*
obligations.go - Persistence for recurring obligations and schedules

PURPOSE:
  CRUD for expenses, incomes, loans, transfers, jobs, payroll entries,
  commute systems/rides and wishlists. Every obligation row embeds its
  recurrence columns (frequency, interval and the optional refinements),
  round-tripped to recur.Rule here.

BEGIN-DATE ADVANCEMENT:
  The materializer settles due occurrences into transaction rows and then
  advances the obligation's begin date past them, keeping begin dates in
  the future. The Advance*BeginDate methods are its write path.

SEE ALSO:
  - sqlite.go: connection, schema, accounts, settled transactions
  - api/materializer.go: the background writer using the Advance methods
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/recur"
)

// =============================================================================
// RECURRENCE COLUMN HELPERS
// =============================================================================

// ruleArgs flattens a rule into the shared obligation column order:
// frequency, interval, day_of_week, week_of_month, day_of_month,
// month_of_year.
func ruleArgs(r recur.Rule) []any {
	return []any{
		string(r.Frequency),
		r.Interval,
		nullInt(intPtrFromWeekday(r.DayOfWeek)),
		nullInt(r.WeekOfMonth),
		nullInt(r.DayOfMonth),
		nullInt(intPtrFromMonth(r.MonthOfYear)),
	}
}

func intPtrFromWeekday(wd *time.Weekday) *int {
	if wd == nil {
		return nil
	}
	v := int(*wd)
	return &v
}

func intPtrFromMonth(m *time.Month) *int {
	if m == nil {
		return nil
	}
	v := int(*m)
	return &v
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// ruleFromColumns rebuilds a rule from the shared obligation columns.
func ruleFromColumns(freq string, interval int, dow, wom, dom, moy sql.NullInt64) recur.Rule {
	r := recur.Rule{Frequency: recur.Frequency(freq), Interval: interval}
	if dow.Valid {
		wd := time.Weekday(dow.Int64)
		r.DayOfWeek = &wd
	}
	if wom.Valid {
		v := int(wom.Int64)
		r.WeekOfMonth = &v
	}
	if dom.Valid {
		v := int(dom.Int64)
		r.DayOfMonth = &v
	}
	if moy.Valid {
		m := time.Month(moy.Int64)
		r.MonthOfYear = &m
	}
	return r
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: storeTime(*t), Valid: true}
}

// =============================================================================
// EXPENSES
// =============================================================================

// CreateExpense persists a recurring expense. A zero id is assigned.
func (s *Store) CreateExpense(ctx context.Context, e *budget.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	args := []any{e.ID.String(), e.AccountID.String(), e.Title, e.Description, e.Amount.String()}
	args = append(args, ruleArgs(e.Rule)...)
	args = append(args, storeTime(e.BeginDate), nullTime(e.EndDate))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, account_id, title, description, amount,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// ListExpenses returns every recurring expense.
func (s *Store) ListExpenses(ctx context.Context) ([]budget.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, title, description, amount,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date
		 FROM expenses ORDER BY begin_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []budget.Expense
	for rows.Next() {
		var (
			e                       budget.Expense
			id, acct, amount, begin string
			freq                    string
			interval                int
			dow, wom, dom, moy      sql.NullInt64
			end                     sql.NullString
		)
		if err := rows.Scan(&id, &acct, &e.Title, &e.Description, &amount,
			&freq, &interval, &dow, &wom, &dom, &moy, &begin, &end); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if e.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		if e.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if e.BeginDate, err = parseTime(begin); err != nil {
			return nil, err
		}
		if e.EndDate, err = parseNullTime(end); err != nil {
			return nil, err
		}
		e.Rule = ruleFromColumns(freq, interval, dow, wom, dom, moy)
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// INCOMES
// =============================================================================

// CreateIncome persists a recurring income. A zero id is assigned.
func (s *Store) CreateIncome(ctx context.Context, in *budget.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	args := []any{in.ID.String(), in.AccountID.String(), in.Title, in.Description, in.Amount.String()}
	args = append(args, ruleArgs(in.Rule)...)
	args = append(args, storeTime(in.BeginDate), nullTime(in.EndDate))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO incomes (id, account_id, title, description, amount,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

// ListIncomes returns every recurring income.
func (s *Store) ListIncomes(ctx context.Context) ([]budget.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, title, description, amount,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date
		 FROM incomes ORDER BY begin_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var out []budget.Income
	for rows.Next() {
		var (
			in                      budget.Income
			id, acct, amount, begin string
			freq                    string
			interval                int
			dow, wom, dom, moy      sql.NullInt64
			end                     sql.NullString
		)
		if err := rows.Scan(&id, &acct, &in.Title, &in.Description, &amount,
			&freq, &interval, &dow, &wom, &dom, &moy, &begin, &end); err != nil {
			return nil, err
		}
		if in.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if in.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		if in.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if in.BeginDate, err = parseTime(begin); err != nil {
			return nil, err
		}
		if in.EndDate, err = parseNullTime(end); err != nil {
			return nil, err
		}
		in.Rule = ruleFromColumns(freq, interval, dow, wom, dom, moy)
		out = append(out, in)
	}
	return out, rows.Err()
}

// =============================================================================
// LOANS
// =============================================================================

// CreateLoan persists a loan obligation. A zero id is assigned.
func (s *Store) CreateLoan(ctx context.Context, l *budget.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	args := []any{
		l.ID.String(), l.AccountID.String(), l.Title, l.Description,
		l.Amount.String(), l.PlanAmount.String(), l.InterestRate.String(),
		string(l.InterestFrequency), l.SubsidizedFraction.String(),
	}
	args = append(args, ruleArgs(l.Rule)...)
	args = append(args, storeTime(l.BeginDate), nullTime(l.EndDate))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loans (id, account_id, title, description, amount, plan_amount,
		   interest_rate, interest_frequency, subsidized_fraction,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

// ListLoans returns every loan obligation.
func (s *Store) ListLoans(ctx context.Context) ([]budget.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, title, description, amount, plan_amount,
		   interest_rate, interest_frequency, subsidized_fraction,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date
		 FROM loans ORDER BY begin_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var out []budget.Loan
	for rows.Next() {
		var (
			l                                  budget.Loan
			id, acct, amount, plan, rate, frac string
			interestFreq, begin                string
			freq                               string
			interval                           int
			dow, wom, dom, moy                 sql.NullInt64
			end                                sql.NullString
		)
		if err := rows.Scan(&id, &acct, &l.Title, &l.Description, &amount, &plan,
			&rate, &interestFreq, &frac,
			&freq, &interval, &dow, &wom, &dom, &moy, &begin, &end); err != nil {
			return nil, err
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if l.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		if l.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if l.PlanAmount, err = parseDecimal(plan); err != nil {
			return nil, err
		}
		if l.InterestRate, err = parseDecimal(rate); err != nil {
			return nil, err
		}
		if l.SubsidizedFraction, err = parseDecimal(frac); err != nil {
			return nil, err
		}
		if l.BeginDate, err = parseTime(begin); err != nil {
			return nil, err
		}
		if l.EndDate, err = parseNullTime(end); err != nil {
			return nil, err
		}
		l.InterestFrequency = recur.Frequency(interestFreq)
		l.Rule = ruleFromColumns(freq, interval, dow, wom, dom, moy)
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateLoanPlanAmount rewrites a loan's remaining plan amount, used by the
// materializer when applying interest.
func (s *Store) UpdateLoanPlanAmount(ctx context.Context, id uuid.UUID, plan decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE loans SET plan_amount = ? WHERE id = ?`, plan.String(), id.String())
	if err != nil {
		return fmt.Errorf("update loan plan amount: %w", err)
	}
	return nil
}

// =============================================================================
// TRANSFERS
// =============================================================================

// CreateTransfer persists a recurring transfer. A zero id is assigned.
func (s *Store) CreateTransfer(ctx context.Context, t *budget.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	args := []any{
		t.ID.String(), t.SourceAccountID.String(), t.DestinationAccountID.String(),
		t.Title, t.Description, t.Amount.String(),
	}
	args = append(args, ruleArgs(t.Rule)...)
	args = append(args, storeTime(t.BeginDate), nullTime(t.EndDate))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transfers (id, source_account_id, destination_account_id,
		   title, description, amount,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// ListTransfers returns every recurring transfer.
func (s *Store) ListTransfers(ctx context.Context) ([]budget.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_account_id, destination_account_id, title, description, amount,
		   frequency, interval, day_of_week, week_of_month, day_of_month, month_of_year,
		   begin_date, end_date
		 FROM transfers ORDER BY begin_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []budget.Transfer
	for rows.Next() {
		var (
			t                            budget.Transfer
			id, src, dst, amount, begin string
			freq                         string
			interval                     int
			dow, wom, dom, moy           sql.NullInt64
			end                          sql.NullString
		)
		if err := rows.Scan(&id, &src, &dst, &t.Title, &t.Description, &amount,
			&freq, &interval, &dow, &wom, &dom, &moy, &begin, &end); err != nil {
			return nil, err
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if t.SourceAccountID, err = uuid.Parse(src); err != nil {
			return nil, err
		}
		if t.DestinationAccountID, err = uuid.Parse(dst); err != nil {
			return nil, err
		}
		if t.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if t.BeginDate, err = parseTime(begin); err != nil {
			return nil, err
		}
		if t.EndDate, err = parseNullTime(end); err != nil {
			return nil, err
		}
		t.Rule = ruleFromColumns(freq, interval, dow, wom, dom, moy)
		out = append(out, t)
	}
	return out, rows.Err()
}

// =============================================================================
// BEGIN-DATE ADVANCEMENT (materializer write path)
// =============================================================================

func (s *Store) advanceBeginDate(ctx context.Context, table string, id uuid.UUID, to time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf(`UPDATE %s SET begin_date = ? WHERE id = ?`, table)
	_, err := s.db.ExecContext(ctx, query, storeTime(to), id.String())
	if err != nil {
		return fmt.Errorf("advance %s begin date: %w", table, err)
	}
	return nil
}

// AdvanceExpenseBeginDate moves an expense's anchor past settled occurrences.
func (s *Store) AdvanceExpenseBeginDate(ctx context.Context, id uuid.UUID, to time.Time) error {
	return s.advanceBeginDate(ctx, "expenses", id, to)
}

// AdvanceIncomeBeginDate moves an income's anchor past settled occurrences.
func (s *Store) AdvanceIncomeBeginDate(ctx context.Context, id uuid.UUID, to time.Time) error {
	return s.advanceBeginDate(ctx, "incomes", id, to)
}

// AdvanceLoanBeginDate moves a loan's anchor past settled occurrences.
func (s *Store) AdvanceLoanBeginDate(ctx context.Context, id uuid.UUID, to time.Time) error {
	return s.advanceBeginDate(ctx, "loans", id, to)
}

// AdvanceTransferBeginDate moves a transfer's anchor past settled occurrences.
func (s *Store) AdvanceTransferBeginDate(ctx context.Context, id uuid.UUID, to time.Time) error {
	return s.advanceBeginDate(ctx, "transfers", id, to)
}

// =============================================================================
// JOBS AND PAYROLL
// =============================================================================

// CreateJob persists a job. A zero id is assigned.
func (s *Store) CreateJob(ctx context.Context, j *budget.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, account_id, name) VALUES (?, ?, ?)`,
		j.ID.String(), j.AccountID.String(), j.Name)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// ListJobs returns every job.
func (s *Store) ListJobs(ctx context.Context) ([]budget.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, account_id, name FROM jobs ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []budget.Job
	for rows.Next() {
		var (
			j        budget.Job
			id, acct string
		)
		if err := rows.Scan(&id, &acct, &j.Name); err != nil {
			return nil, err
		}
		if j.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if j.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// CreatePayrollEntry persists a scheduled pay event. A zero id is assigned.
func (s *Store) CreatePayrollEntry(ctx context.Context, p *budget.PayrollEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payroll_entries (id, job_id, pay_date, gross_amount, tax_rate)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID.String(), p.JobID.String(), storeTime(p.PayDate),
		p.GrossAmount.String(), p.TaxRate.String())
	if err != nil {
		return fmt.Errorf("create payroll entry: %w", err)
	}
	return nil
}

// ListPayrollEntries returns every scheduled pay event.
func (s *Store) ListPayrollEntries(ctx context.Context) ([]budget.PayrollEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, pay_date, gross_amount, tax_rate
		 FROM payroll_entries ORDER BY pay_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list payroll entries: %w", err)
	}
	defer rows.Close()

	var out []budget.PayrollEntry
	for rows.Next() {
		var (
			p                            budget.PayrollEntry
			id, job, date, gross, tax string
		)
		if err := rows.Scan(&id, &job, &date, &gross, &tax); err != nil {
			return nil, err
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if p.JobID, err = uuid.Parse(job); err != nil {
			return nil, err
		}
		if p.PayDate, err = parseTime(date); err != nil {
			return nil, err
		}
		if p.GrossAmount, err = parseDecimal(gross); err != nil {
			return nil, err
		}
		if p.TaxRate, err = parseDecimal(tax); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// COMMUTE
// =============================================================================

// CreateCommuteSystem persists a transit system. A zero id is assigned.
func (s *Store) CreateCommuteSystem(ctx context.Context, cs *budget.CommuteSystem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	var cap, duration sql.NullString
	if cs.FareCap != nil {
		cap = sql.NullString{String: cs.FareCap.Cap.String(), Valid: true}
		duration = sql.NullString{String: string(cs.FareCap.Duration), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commute_systems (id, name, fare_cap, fare_cap_duration)
		 VALUES (?, ?, ?, ?)`,
		cs.ID.String(), cs.Name, cap, duration)
	if err != nil {
		return fmt.Errorf("create commute system: %w", err)
	}
	return nil
}

// ListCommuteSystems returns every transit system.
func (s *Store) ListCommuteSystems(ctx context.Context) ([]budget.CommuteSystem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, fare_cap, fare_cap_duration FROM commute_systems ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list commute systems: %w", err)
	}
	defer rows.Close()

	var out []budget.CommuteSystem
	for rows.Next() {
		var (
			cs            budget.CommuteSystem
			id            string
			cap, duration sql.NullString
		)
		if err := rows.Scan(&id, &cs.Name, &cap, &duration); err != nil {
			return nil, err
		}
		if cs.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if cap.Valid && duration.Valid {
			c, err := parseDecimal(cap.String)
			if err != nil {
				return nil, err
			}
			cs.FareCap = &budget.FareCapPolicy{
				Duration: budget.CapDuration(duration.String),
				Cap:      c,
			}
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// CreateCommuteRide persists a scheduled ride. A zero id is assigned.
func (s *Store) CreateCommuteRide(ctx context.Context, r *budget.CommuteRide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commute_rides (id, account_id, system_id, description, fare, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.AccountID.String(), r.SystemID.String(),
		r.Description, r.Fare.String(), storeTime(r.Date))
	if err != nil {
		return fmt.Errorf("create commute ride: %w", err)
	}
	return nil
}

// ListCommuteRides returns every scheduled ride.
func (s *Store) ListCommuteRides(ctx context.Context) ([]budget.CommuteRide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, system_id, description, fare, date
		 FROM commute_rides ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list commute rides: %w", err)
	}
	defer rows.Close()

	var out []budget.CommuteRide
	for rows.Next() {
		var (
			r                        budget.CommuteRide
			id, acct, system, fare, date string
		)
		if err := rows.Scan(&id, &acct, &system, &r.Description, &fare, &date); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if r.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		if r.SystemID, err = uuid.Parse(system); err != nil {
			return nil, err
		}
		if r.Fare, err = parseDecimal(fare); err != nil {
			return nil, err
		}
		if r.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// WISHLISTS
// =============================================================================

// CreateWishlist persists a desired purchase. A zero id is assigned.
func (s *Store) CreateWishlist(ctx context.Context, w *budget.Wishlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wishlists (id, account_id, title, description, amount, date_available)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID.String(), w.AccountID.String(), w.Title, w.Description,
		w.Amount.String(), nullTime(w.DateAvailable))
	if err != nil {
		return fmt.Errorf("create wishlist: %w", err)
	}
	return nil
}

// ListWishlists returns every wishlist item in stable collection order.
func (s *Store) ListWishlists(ctx context.Context) ([]budget.Wishlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, title, description, amount, date_available
		 FROM wishlists ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list wishlists: %w", err)
	}
	defer rows.Close()

	var out []budget.Wishlist
	for rows.Next() {
		var (
			w                 budget.Wishlist
			id, acct, amount string
			available         sql.NullString
		)
		if err := rows.Scan(&id, &acct, &w.Title, &w.Description, &amount, &available); err != nil {
			return nil, err
		}
		if w.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if w.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		if w.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if w.DateAvailable, err = parseNullTime(available); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
