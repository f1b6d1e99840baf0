/*
Package budget defines the personal-finance domain model.

PURPOSE:
  Plain data types for everything the forecast engine consumes: accounts,
  historical transactions, the recurring obligations (expenses, incomes,
  loans, transfers), payroll entries, commute systems with fare caps, and
  wishlist purchases. These are read-only inputs to the projection; the
  store package persists them and the api package serializes them.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every monetary field
  2. Identity: uuid.UUID row ids throughout
  3. No behavior: sign conventions and expansion logic live in forecast

SEE ALSO:
  - recur: the Rule type embedded in every recurring obligation
  - forecast: expands obligations into dated cash-flow events
*/
package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/recur"
)

// =============================================================================
// ACCOUNTS AND HISTORICAL TRANSACTIONS
// =============================================================================

// Account is a cash account whose balance the engine projects.
type Account struct {
	ID        uuid.UUID
	Name      string
	Balance   decimal.Decimal // present-moment settled balance
	CreatedAt time.Time
}

// Transaction is a settled, historical ledger entry. Unlike projected
// events it carries a known tax rate at record time.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal // signed; negative = debit
	TaxRate     decimal.Decimal // 0..1
	Date        time.Time
	CreatedAt   time.Time
}

// =============================================================================
// RECURRING OBLIGATIONS
// =============================================================================

// Expense is a recurring outgoing payment.
type Expense struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal // positive magnitude; expanded as a debit
	Rule        recur.Rule
	BeginDate   time.Time
	EndDate     *time.Time // inclusive generation bound, independent of the query window
}

// Income is a recurring incoming payment.
type Income struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
	Rule        recur.Rule
	BeginDate   time.Time
	EndDate     *time.Time
}

// Loan is a recurring repayment obligation. PlanAmount is the total amount
// to pay back; the fully-paid-back date is projected from it. Interest
// fields drive the background interest application in the api package, not
// the in-request projection.
type Loan struct {
	ID                 uuid.UUID
	AccountID          uuid.UUID
	Title              string
	Description        string
	Amount             decimal.Decimal // per-payment magnitude
	PlanAmount         decimal.Decimal
	InterestRate       decimal.Decimal // 0..1 per interest period
	InterestFrequency  recur.Frequency
	SubsidizedFraction decimal.Decimal // 0..1; fraction of interest covered externally
	Rule               recur.Rule
	BeginDate          time.Time
	EndDate            *time.Time
}

// Transfer moves money between two accounts on a schedule. Its sign in a
// projection depends on which account is being viewed.
type Transfer struct {
	ID                   uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Title                string
	Description          string
	Amount               decimal.Decimal
	Rule                 recur.Rule
	BeginDate            time.Time
	EndDate              *time.Time
}

// =============================================================================
// PAYROLL
// =============================================================================

// Job links payroll entries to the account receiving the pay.
type Job struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
}

// PayrollEntry is a single scheduled pay event for a job. Projection nets
// the gross amount against the tax rate.
type PayrollEntry struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	PayDate     time.Time
	GrossAmount decimal.Decimal
	TaxRate     decimal.Decimal // 0..1
}

// =============================================================================
// COMMUTE
// =============================================================================

// CapDuration is the period over which a fare cap accumulates.
type CapDuration string

const (
	CapDaily   CapDuration = "daily"
	CapWeekly  CapDuration = "weekly"
	CapMonthly CapDuration = "monthly"
)

// FareCapPolicy limits cumulative commute spend per period.
type FareCapPolicy struct {
	Duration CapDuration
	Cap      decimal.Decimal
}

// CommuteSystem is a transit system an account rides on, optionally with a
// fare-capping policy.
type CommuteSystem struct {
	ID      uuid.UUID
	Name    string
	FareCap *FareCapPolicy
}

// CommuteRide is a single scheduled ride. Rides are single-shot events; the
// fare-capping post-processor may reduce their effective fare.
type CommuteRide struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	SystemID    uuid.UUID
	Description string
	Fare        decimal.Decimal // positive magnitude; expanded as a debit
	Date        time.Time
}

// =============================================================================
// WISHLIST
// =============================================================================

// Wishlist is a desired future purchase. DateAvailable is the earliest date
// the purchase may be considered (e.g. a release date).
type Wishlist struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Title         string
	Description   string
	Amount        decimal.Decimal // positive magnitude
	DateAvailable *time.Time
}
