/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CONVENTIONS:
  Money crosses the wire as float64 and is converted to decimal at the
  boundary. Calendar dates use "2006-01-02"; timestamps use RFC3339.
  Recurrence rules are a flat object mirroring recur.Rule, with the
  optional refinements omitted when unset.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - forecast/types.go: GeneratedTransaction, the projection event
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/forecast"
	"github.com/EphraimB/budgeting-sub004/recur"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

const dateLayout = "2006-01-02"

// RuleDTO mirrors a recurrence rule on the wire.
type RuleDTO struct {
	Frequency   string `json:"frequency"`
	Interval    int    `json:"interval"`
	DayOfWeek   *int   `json:"day_of_week,omitempty"`
	WeekOfMonth *int   `json:"week_of_month,omitempty"`
	DayOfMonth  *int   `json:"day_of_month,omitempty"`
	MonthOfYear *int   `json:"month_of_year,omitempty"`
}

func (d RuleDTO) toRule() recur.Rule {
	r := recur.Rule{Frequency: recur.Frequency(d.Frequency), Interval: d.Interval}
	if d.DayOfWeek != nil {
		wd := time.Weekday(*d.DayOfWeek)
		r.DayOfWeek = &wd
	}
	r.WeekOfMonth = d.WeekOfMonth
	r.DayOfMonth = d.DayOfMonth
	if d.MonthOfYear != nil {
		m := time.Month(*d.MonthOfYear)
		r.MonthOfYear = &m
	}
	return r
}

func ruleDTO(r recur.Rule) RuleDTO {
	d := RuleDTO{Frequency: string(r.Frequency), Interval: r.Interval}
	if r.DayOfWeek != nil {
		v := int(*r.DayOfWeek)
		d.DayOfWeek = &v
	}
	d.WeekOfMonth = r.WeekOfMonth
	d.DayOfMonth = r.DayOfMonth
	if r.MonthOfYear != nil {
		v := int(*r.MonthOfYear)
		d.MonthOfYear = &v
	}
	return d
}

// AccountDTO represents an account in API responses.
type AccountDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	CreatedAt string  `json:"created_at,omitempty"`
}

func accountDTO(a budget.Account) AccountDTO {
	return AccountDTO{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   a.Balance.InexactFloat64(),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

// CreateAccountRequest is the request to create an account.
type CreateAccountRequest struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// TransactionDTO represents a settled transaction in API responses.
type TransactionDTO struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"account_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	TaxRate     float64 `json:"tax_rate"`
	Date        string  `json:"date"`
}

func transactionDTO(t budget.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          t.ID.String(),
		AccountID:   t.AccountID.String(),
		Title:       t.Title,
		Description: t.Description,
		Amount:      t.Amount.InexactFloat64(),
		TaxRate:     t.TaxRate.InexactFloat64(),
		Date:        t.Date.Format(dateLayout),
	}
}

// CreateTransactionRequest records a settled transaction against an account.
type CreateTransactionRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	TaxRate     float64 `json:"tax_rate"`
	Date        string  `json:"date"`
}

// GeneratedTransactionDTO is one projected event with its running balance.
type GeneratedTransactionDTO struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	TaxRate     float64 `json:"tax_rate"`
	TotalAmount float64 `json:"total_amount"`
	Balance     float64 `json:"balance"`
}

func generatedDTO(tx forecast.GeneratedTransaction) GeneratedTransactionDTO {
	return GeneratedTransactionDTO{
		ID:          tx.ID.String(),
		Date:        tx.Date.Format(dateLayout),
		Title:       tx.Title,
		Description: tx.Description,
		Amount:      tx.Amount.InexactFloat64(),
		TaxRate:     tx.TaxRate.InexactFloat64(),
		TotalAmount: tx.TotalAmount.InexactFloat64(),
		Balance:     tx.Balance.InexactFloat64(),
	}
}

// AccountProjectionDTO is the projection for a single account.
type AccountProjectionDTO struct {
	AccountID      string                    `json:"account_id"`
	CurrentBalance float64                   `json:"current_balance"`
	Transactions   []GeneratedTransactionDTO `json:"transactions"`
}

// ProjectionResponse wraps a projection across one or more accounts.
type ProjectionResponse struct {
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Accounts    []AccountProjectionDTO `json:"accounts"`
	LoanPayoffs map[string]*string     `json:"loan_payoffs"`
	Failed      map[string]string      `json:"failed,omitempty"`
}

// ObligationDTO represents any dated recurring obligation in responses.
type ObligationDTO struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"account_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Rule        RuleDTO `json:"rule"`
	BeginDate   string  `json:"begin_date"`
	EndDate     *string `json:"end_date,omitempty"`
}

// CreateObligationRequest covers expense and income creation.
type CreateObligationRequest struct {
	AccountID   string  `json:"account_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Rule        RuleDTO `json:"rule"`
	BeginDate   string  `json:"begin_date"`
	EndDate     *string `json:"end_date"`
}

// LoanDTO adds the repayment plan fields to an obligation.
type LoanDTO struct {
	ObligationDTO
	PlanAmount         float64 `json:"plan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	InterestFrequency  string  `json:"interest_frequency"`
	SubsidizedFraction float64 `json:"subsidized_fraction"`
}

// CreateLoanRequest is the request to create a loan.
type CreateLoanRequest struct {
	CreateObligationRequest
	PlanAmount         float64 `json:"plan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	InterestFrequency  string  `json:"interest_frequency"`
	SubsidizedFraction float64 `json:"subsidized_fraction"`
}

// TransferDTO represents a recurring transfer between two accounts.
type TransferDTO struct {
	ID                   string  `json:"id"`
	SourceAccountID      string  `json:"source_account_id"`
	DestinationAccountID string  `json:"destination_account_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description,omitempty"`
	Amount               float64 `json:"amount"`
	Rule                 RuleDTO `json:"rule"`
	BeginDate            string  `json:"begin_date"`
	EndDate              *string `json:"end_date,omitempty"`
}

// CreateTransferRequest is the request to create a transfer.
type CreateTransferRequest struct {
	SourceAccountID      string  `json:"source_account_id"`
	DestinationAccountID string  `json:"destination_account_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Amount               float64 `json:"amount"`
	Rule                 RuleDTO `json:"rule"`
	BeginDate            string  `json:"begin_date"`
	EndDate              *string `json:"end_date"`
}

// JobDTO represents a job in API responses.
type JobDTO struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

// CreateJobRequest is the request to create a job.
type CreateJobRequest struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

// PayrollEntryDTO represents a scheduled pay event.
type PayrollEntryDTO struct {
	ID          string  `json:"id"`
	JobID       string  `json:"job_id"`
	PayDate     string  `json:"pay_date"`
	GrossAmount float64 `json:"gross_amount"`
	TaxRate     float64 `json:"tax_rate"`
}

// CreatePayrollEntryRequest is the request to schedule a pay event.
type CreatePayrollEntryRequest struct {
	JobID       string  `json:"job_id"`
	PayDate     string  `json:"pay_date"`
	GrossAmount float64 `json:"gross_amount"`
	TaxRate     float64 `json:"tax_rate"`
}

// CommuteSystemDTO represents a transit system and its optional fare cap.
type CommuteSystemDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	FareCap         *float64 `json:"fare_cap,omitempty"`
	FareCapDuration *string  `json:"fare_cap_duration,omitempty"`
}

// CreateCommuteSystemRequest is the request to create a transit system.
type CreateCommuteSystemRequest struct {
	Name            string   `json:"name"`
	FareCap         *float64 `json:"fare_cap"`
	FareCapDuration *string  `json:"fare_cap_duration"`
}

// CommuteRideDTO represents a scheduled ride.
type CommuteRideDTO struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"account_id"`
	SystemID    string  `json:"system_id"`
	Description string  `json:"description,omitempty"`
	Fare        float64 `json:"fare"`
	Date        string  `json:"date"`
}

// CreateCommuteRideRequest is the request to schedule a ride.
type CreateCommuteRideRequest struct {
	AccountID   string  `json:"account_id"`
	SystemID    string  `json:"system_id"`
	Description string  `json:"description"`
	Fare        float64 `json:"fare"`
	Date        string  `json:"date"`
}

// WishlistDTO represents a desired purchase.
type WishlistDTO struct {
	ID            string  `json:"id"`
	AccountID     string  `json:"account_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Amount        float64 `json:"amount"`
	DateAvailable *string `json:"date_available,omitempty"`
}

// CreateWishlistRequest is the request to create a wishlist item.
type CreateWishlistRequest struct {
	AccountID     string  `json:"account_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	DateAvailable *string `json:"date_available"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func expenseDTO(e budget.Expense) ObligationDTO {
	return ObligationDTO{
		ID:          e.ID.String(),
		AccountID:   e.AccountID.String(),
		Title:       e.Title,
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		Rule:        ruleDTO(e.Rule),
		BeginDate:   e.BeginDate.Format(dateLayout),
		EndDate:     formatDatePtr(e.EndDate),
	}
}

func incomeDTO(in budget.Income) ObligationDTO {
	return ObligationDTO{
		ID:          in.ID.String(),
		AccountID:   in.AccountID.String(),
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount.InexactFloat64(),
		Rule:        ruleDTO(in.Rule),
		BeginDate:   in.BeginDate.Format(dateLayout),
		EndDate:     formatDatePtr(in.EndDate),
	}
}

func loanDTO(l budget.Loan) LoanDTO {
	return LoanDTO{
		ObligationDTO: ObligationDTO{
			ID:          l.ID.String(),
			AccountID:   l.AccountID.String(),
			Title:       l.Title,
			Description: l.Description,
			Amount:      l.Amount.InexactFloat64(),
			Rule:        ruleDTO(l.Rule),
			BeginDate:   l.BeginDate.Format(dateLayout),
			EndDate:     formatDatePtr(l.EndDate),
		},
		PlanAmount:         l.PlanAmount.InexactFloat64(),
		InterestRate:       l.InterestRate.InexactFloat64(),
		InterestFrequency:  string(l.InterestFrequency),
		SubsidizedFraction: l.SubsidizedFraction.InexactFloat64(),
	}
}

func transferDTO(t budget.Transfer) TransferDTO {
	return TransferDTO{
		ID:                   t.ID.String(),
		SourceAccountID:      t.SourceAccountID.String(),
		DestinationAccountID: t.DestinationAccountID.String(),
		Title:                t.Title,
		Description:          t.Description,
		Amount:               t.Amount.InexactFloat64(),
		Rule:                 ruleDTO(t.Rule),
		BeginDate:            t.BeginDate.Format(dateLayout),
		EndDate:              formatDatePtr(t.EndDate),
	}
}
