/*
Package sqlite provides the SQLite-backed persistence layer.

PURPOSE:
  Persists the full budgeting domain: accounts, settled transactions, the
  recurring obligations (expenses, incomes, loans, transfers), jobs and
  payroll entries, commute systems and rides, and wishlists. The forecast
  engine itself never touches the database; the api package loads a
  ProjectionInput from here and hands it to the engine.

KEY TABLES:
  accounts:         Cash accounts with their settled balance
  transactions:     Settled ledger entries (written by API and materializer)
  expenses/incomes/loans/transfers:
                    Recurring obligations, each embedding recurrence columns
  jobs/payroll_entries:
                    Payroll schedule, tagged by job
  commute_systems/commute_rides:
                    Transit systems (with optional fare cap) and rides
  wishlists:        Desired purchases

STORAGE CONVENTIONS:
  - uuids as TEXT
  - money as TEXT via decimal.Decimal.String() (no float drift)
  - dates as RFC 3339 TEXT in UTC

WAL MODE:
  The database is opened with WAL so readers don't block the materializer's
  periodic writes.

USAGE:
  store, err := sqlite.New("./data/budgeting.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - obligations.go: obligation and schedule persistence
  - api: the only consumer of this package
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
)

// Store implements persistence for the budgeting domain using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store backed by the database at dbPath. Use ":memory:" for
// an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		tax_rate TEXT NOT NULL DEFAULT '0',
		date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_account_date
		ON transactions(account_id, date);

	CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		frequency TEXT NOT NULL,
		interval INTEGER NOT NULL DEFAULT 1,
		day_of_week INTEGER,
		week_of_month INTEGER,
		day_of_month INTEGER,
		month_of_year INTEGER,
		begin_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE TABLE IF NOT EXISTS incomes (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		frequency TEXT NOT NULL,
		interval INTEGER NOT NULL DEFAULT 1,
		day_of_week INTEGER,
		week_of_month INTEGER,
		day_of_month INTEGER,
		month_of_year INTEGER,
		begin_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		plan_amount TEXT NOT NULL,
		interest_rate TEXT NOT NULL DEFAULT '0',
		interest_frequency TEXT NOT NULL DEFAULT 'monthly',
		subsidized_fraction TEXT NOT NULL DEFAULT '0',
		frequency TEXT NOT NULL,
		interval INTEGER NOT NULL DEFAULT 1,
		day_of_week INTEGER,
		week_of_month INTEGER,
		day_of_month INTEGER,
		month_of_year INTEGER,
		begin_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE TABLE IF NOT EXISTS transfers (
		id TEXT PRIMARY KEY,
		source_account_id TEXT NOT NULL REFERENCES accounts(id),
		destination_account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		frequency TEXT NOT NULL,
		interval INTEGER NOT NULL DEFAULT 1,
		day_of_week INTEGER,
		week_of_month INTEGER,
		day_of_month INTEGER,
		month_of_year INTEGER,
		begin_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payroll_entries (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL REFERENCES jobs(id),
		pay_date TEXT NOT NULL,
		gross_amount TEXT NOT NULL,
		tax_rate TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_payroll_job_date
		ON payroll_entries(job_id, pay_date);

	CREATE TABLE IF NOT EXISTS commute_systems (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		fare_cap TEXT,
		fare_cap_duration TEXT
	);

	CREATE TABLE IF NOT EXISTS commute_rides (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		system_id TEXT NOT NULL REFERENCES commute_systems(id),
		description TEXT NOT NULL DEFAULT '',
		fare TEXT NOT NULL,
		date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_rides_account_date
		ON commute_rides(account_id, date);

	CREATE TABLE IF NOT EXISTS wishlists (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		date_available TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCAN/STORE HELPERS
// =============================================================================

func storeTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// ACCOUNTS
// =============================================================================

// CreateAccount persists a new account. A zero id is assigned.
func (s *Store) CreateAccount(ctx context.Context, a *budget.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, balance, created_at) VALUES (?, ?, ?, ?)`,
		a.ID.String(), a.Name, a.Balance.String(), storeTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccount loads one account by id.
func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*budget.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, balance, created_at FROM accounts WHERE id = ?`, id.String())
	return scanAccount(row)
}

// ListAccounts returns every account ordered by creation time.
func (s *Store) ListAccounts(ctx context.Context) ([]budget.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, balance, created_at FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []budget.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateAccountBalance sets the account's settled balance.
func (s *Store) UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET balance = ? WHERE id = ?`, balance.String(), id.String())
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	return nil
}

func scanAccount(r rowScanner) (*budget.Account, error) {
	var (
		a                      budget.Account
		id, balance, createdAt string
	)
	if err := r.Scan(&id, &a.Name, &balance, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if a.Balance, err = parseDecimal(balance); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// =============================================================================
// SETTLED TRANSACTIONS
// =============================================================================

// CreateTransaction persists a settled ledger entry.
func (s *Store) CreateTransaction(ctx context.Context, tx *budget.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, title, description, amount, tax_rate, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID.String(), tx.AccountID.String(), tx.Title, tx.Description,
		tx.Amount.String(), tx.TaxRate.String(), storeTime(tx.Date), storeTime(tx.CreatedAt))
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// TransactionsInRange returns one account's settled entries with dates in
// [from, to], ordered ascending.
func (s *Store) TransactionsInRange(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]budget.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, title, description, amount, tax_rate, date, created_at
		 FROM transactions
		 WHERE account_id = ? AND date >= ? AND date <= ?
		 ORDER BY date`,
		accountID.String(), storeTime(from), storeTime(to))
	if err != nil {
		return nil, fmt.Errorf("transactions in range: %w", err)
	}
	defer rows.Close()

	var out []budget.Transaction
	for rows.Next() {
		var (
			tx                              budget.Transaction
			id, acct, amount, taxRate, d, c string
		)
		if err := rows.Scan(&id, &acct, &tx.Title, &tx.Description, &amount, &taxRate, &d, &c); err != nil {
			return nil, err
		}
		if tx.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if tx.AccountID, err = uuid.Parse(acct); err != nil {
			return nil, err
		}
		if tx.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if tx.TaxRate, err = parseDecimal(taxRate); err != nil {
			return nil, err
		}
		if tx.Date, err = parseTime(d); err != nil {
			return nil, err
		}
		if tx.CreatedAt, err = parseTime(c); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
