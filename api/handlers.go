/*
handlers.go - HTTP API handlers for the budgeting engine

PURPOSE:
  Exposes accounts, obligations and projections via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Accounts:
    GET    /api/accounts                    List all accounts
    POST   /api/accounts                    Create account
    GET    /api/accounts/{id}               Get account details
    GET    /api/accounts/{id}/transactions  Settled transaction history
    POST   /api/accounts/{id}/transactions  Record a settled transaction
    GET    /api/accounts/{id}/projection    Project the account over a window

  Projections:
    GET    /api/projection                  Project every account at once

  Obligations:
    GET/POST /api/expenses /api/incomes /api/loans /api/transfers

  Payroll:
    GET/POST /api/jobs /api/payroll

  Commute:
    GET/POST /api/commute/systems /api/commute/rides

  Wishlists:
    GET/POST /api/wishlists

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (store, forecast engine)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid rules, unbounded windows
  - 404: Account not found
  - 500: Internal errors
  forecast.IsClientError decides the 4xx/5xx split for projection errors.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - forecast/engine.go: The projection orchestrator
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/forecast"
	"github.com/EphraimB/budgeting-sub004/recur"
	"github.com/EphraimB/budgeting-sub004/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Log   zerolog.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns all accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list accounts", err)
		return
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = accountDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAccount returns a single account.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	acct, err := h.Store.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get account", err)
		return
	}
	if acct == nil {
		writeError(w, http.StatusNotFound, "Account not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, accountDTO(*acct))
}

// CreateAccount creates a new account.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Account name is required", nil)
		return
	}

	acct := budget.Account{Name: req.Name, Balance: money(req.Balance)}
	if err := h.Store.CreateAccount(r.Context(), &acct); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account", err)
		return
	}
	writeJSON(w, http.StatusCreated, accountDTO(acct))
}

// GetTransactions returns an account's settled transactions for a range.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	from, to, ok := parseWindowParams(w, r)
	if !ok {
		return
	}

	txs, err := h.Store.TransactionsInRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	dtos := make([]TransactionDTO, len(txs))
	for i, t := range txs {
		dtos[i] = transactionDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTransaction records a settled transaction and moves the balance.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	acct, err := h.Store.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get account", err)
		return
	}
	if acct == nil {
		writeError(w, http.StatusNotFound, "Account not found", nil)
		return
	}

	tx := budget.Transaction{
		AccountID:   id,
		Title:       req.Title,
		Description: req.Description,
		Amount:      money(req.Amount),
		TaxRate:     money(req.TaxRate),
		Date:        date,
	}
	if err := h.Store.CreateTransaction(r.Context(), &tx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create transaction", err)
		return
	}

	// Settled money moves the account balance by the tax-adjusted amount.
	total := tx.Amount.Sub(tx.Amount.Mul(tx.TaxRate))
	if err := h.Store.UpdateAccountBalance(r.Context(), id, acct.Balance.Add(total)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update balance", err)
		return
	}
	writeJSON(w, http.StatusCreated, transactionDTO(tx))
}

// =============================================================================
// PROJECTION HANDLERS
// =============================================================================

// GetProjection projects a single account over the requested window.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	h.projection(w, r, &id)
}

// GetAllProjections projects every account over the requested window.
func (h *Handler) GetAllProjections(w http.ResponseWriter, r *http.Request) {
	h.projection(w, r, nil)
}

func (h *Handler) projection(w http.ResponseWriter, r *http.Request, accountID *uuid.UUID) {
	from, to, ok := parseWindowParams(w, r)
	if !ok {
		return
	}

	window := forecast.Window{From: from, To: to, Now: recur.Midnight(time.Now().UTC())}
	input, err := h.Store.LoadProjectionInput(r.Context(), window, accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load projection input", err)
		return
	}

	result, err := forecast.Project(input)
	if err != nil {
		status := http.StatusInternalServerError
		if forecast.IsClientError(err) {
			status = http.StatusBadRequest
			if errors.Is(err, forecast.ErrAccountNotFound) {
				status = http.StatusNotFound
			}
		}
		writeError(w, status, "Projection failed", err)
		return
	}

	resp := ProjectionResponse{
		From:        from.Format(dateLayout),
		To:          to.Format(dateLayout),
		LoanPayoffs: make(map[string]*string),
	}
	for _, acct := range result.Accounts {
		dto := AccountProjectionDTO{
			AccountID:      acct.AccountID.String(),
			CurrentBalance: acct.CurrentBalance.InexactFloat64(),
			Transactions:   make([]GeneratedTransactionDTO, len(acct.Transactions)),
		}
		for i, tx := range acct.Transactions {
			dto.Transactions[i] = generatedDTO(tx)
		}
		resp.Accounts = append(resp.Accounts, dto)
	}
	for loanID, payoff := range result.LoanPayoffs {
		resp.LoanPayoffs[loanID.String()] = formatDatePtr(payoff)
	}
	if len(result.Failed) > 0 {
		resp.Failed = make(map[string]string, len(result.Failed))
		for acctID, ferr := range result.Failed {
			resp.Failed[acctID.String()] = ferr.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// OBLIGATION HANDLERS
// =============================================================================

// ListExpenses returns all recurring expenses.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Store.ListExpenses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list expenses", err)
		return
	}
	dtos := make([]ObligationDTO, len(expenses))
	for i, e := range expenses {
		dtos[i] = expenseDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateExpense creates a recurring expense.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	accountID, rule, begin, end, ok := h.obligationFields(w, req)
	if !ok {
		return
	}
	e := budget.Expense{
		AccountID:   accountID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      money(req.Amount),
		Rule:        rule,
		BeginDate:   begin,
		EndDate:     end,
	}
	if err := h.Store.CreateExpense(r.Context(), &e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create expense", err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseDTO(e))
}

// ListIncomes returns all recurring incomes.
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.Store.ListIncomes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list incomes", err)
		return
	}
	dtos := make([]ObligationDTO, len(incomes))
	for i, in := range incomes {
		dtos[i] = incomeDTO(in)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateIncome creates a recurring income.
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req CreateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	accountID, rule, begin, end, ok := h.obligationFields(w, req)
	if !ok {
		return
	}
	in := budget.Income{
		AccountID:   accountID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      money(req.Amount),
		Rule:        rule,
		BeginDate:   begin,
		EndDate:     end,
	}
	if err := h.Store.CreateIncome(r.Context(), &in); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create income", err)
		return
	}
	writeJSON(w, http.StatusCreated, incomeDTO(in))
}

// ListLoans returns all loans.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.Store.ListLoans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list loans", err)
		return
	}
	dtos := make([]LoanDTO, len(loans))
	for i, l := range loans {
		dtos[i] = loanDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLoan creates a loan obligation.
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	accountID, rule, begin, end, ok := h.obligationFields(w, req.CreateObligationRequest)
	if !ok {
		return
	}
	l := budget.Loan{
		AccountID:          accountID,
		Title:              req.Title,
		Description:        req.Description,
		Amount:             money(req.Amount),
		Rule:               rule,
		BeginDate:          begin,
		EndDate:            end,
		PlanAmount:         money(req.PlanAmount),
		InterestRate:       money(req.InterestRate),
		InterestFrequency:  recur.Frequency(req.InterestFrequency),
		SubsidizedFraction: money(req.SubsidizedFraction),
	}
	if err := h.Store.CreateLoan(r.Context(), &l); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create loan", err)
		return
	}
	writeJSON(w, http.StatusCreated, loanDTO(l))
}

// ListTransfers returns all recurring transfers.
func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.Store.ListTransfers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transfers", err)
		return
	}
	dtos := make([]TransferDTO, len(transfers))
	for i, t := range transfers {
		dtos[i] = transferDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTransfer creates a recurring transfer between two accounts.
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	src, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid source account id", err)
		return
	}
	dst, err := uuid.Parse(req.DestinationAccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid destination account id", err)
		return
	}
	if src == dst {
		writeError(w, http.StatusBadRequest, "Source and destination must differ", nil)
		return
	}
	rule := req.Rule.toRule()
	if err := rule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recurrence rule", err)
		return
	}
	begin, err := time.Parse(dateLayout, req.BeginDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid begin date", err)
		return
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}

	t := budget.Transfer{
		SourceAccountID:      src,
		DestinationAccountID: dst,
		Title:                req.Title,
		Description:          req.Description,
		Amount:               money(req.Amount),
		Rule:                 rule,
		BeginDate:            begin,
		EndDate:              end,
	}
	if err := h.Store.CreateTransfer(r.Context(), &t); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create transfer", err)
		return
	}
	writeJSON(w, http.StatusCreated, transferDTO(t))
}

// =============================================================================
// JOB AND PAYROLL HANDLERS
// =============================================================================

// ListJobs returns all jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Store.ListJobs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}
	dtos := make([]JobDTO, len(jobs))
	for i, j := range jobs {
		dtos[i] = JobDTO{ID: j.ID.String(), AccountID: j.AccountID.String(), Name: j.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateJob creates a job.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid account id", err)
		return
	}

	j := budget.Job{AccountID: accountID, Name: req.Name}
	if err := h.Store.CreateJob(r.Context(), &j); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create job", err)
		return
	}
	writeJSON(w, http.StatusCreated, JobDTO{ID: j.ID.String(), AccountID: j.AccountID.String(), Name: j.Name})
}

// ListPayroll returns all scheduled pay events.
func (h *Handler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListPayrollEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payroll", err)
		return
	}
	dtos := make([]PayrollEntryDTO, len(entries))
	for i, p := range entries {
		dtos[i] = PayrollEntryDTO{
			ID:          p.ID.String(),
			JobID:       p.JobID.String(),
			PayDate:     p.PayDate.Format(dateLayout),
			GrossAmount: p.GrossAmount.InexactFloat64(),
			TaxRate:     p.TaxRate.InexactFloat64(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePayrollEntry schedules a pay event for a job.
func (h *Handler) CreatePayrollEntry(w http.ResponseWriter, r *http.Request) {
	var req CreatePayrollEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job id", err)
		return
	}
	payDate, err := time.Parse(dateLayout, req.PayDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay date", err)
		return
	}

	p := budget.PayrollEntry{
		JobID:       jobID,
		PayDate:     payDate,
		GrossAmount: money(req.GrossAmount),
		TaxRate:     money(req.TaxRate),
	}
	if err := h.Store.CreatePayrollEntry(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create payroll entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, PayrollEntryDTO{
		ID:          p.ID.String(),
		JobID:       p.JobID.String(),
		PayDate:     p.PayDate.Format(dateLayout),
		GrossAmount: p.GrossAmount.InexactFloat64(),
		TaxRate:     p.TaxRate.InexactFloat64(),
	})
}

// =============================================================================
// COMMUTE HANDLERS
// =============================================================================

// ListCommuteSystems returns all transit systems.
func (h *Handler) ListCommuteSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := h.Store.ListCommuteSystems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list commute systems", err)
		return
	}
	dtos := make([]CommuteSystemDTO, len(systems))
	for i, cs := range systems {
		dto := CommuteSystemDTO{ID: cs.ID.String(), Name: cs.Name}
		if cs.FareCap != nil {
			cap := cs.FareCap.Cap.InexactFloat64()
			duration := string(cs.FareCap.Duration)
			dto.FareCap = &cap
			dto.FareCapDuration = &duration
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCommuteSystem creates a transit system, optionally fare-capped.
func (h *Handler) CreateCommuteSystem(w http.ResponseWriter, r *http.Request) {
	var req CreateCommuteSystemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if (req.FareCap == nil) != (req.FareCapDuration == nil) {
		writeError(w, http.StatusBadRequest, "Fare cap and duration come together", nil)
		return
	}

	cs := budget.CommuteSystem{Name: req.Name}
	if req.FareCap != nil {
		duration := budget.CapDuration(*req.FareCapDuration)
		switch duration {
		case budget.CapDaily, budget.CapWeekly, budget.CapMonthly:
		default:
			writeError(w, http.StatusBadRequest, "Invalid fare cap duration", nil)
			return
		}
		cs.FareCap = &budget.FareCapPolicy{Duration: duration, Cap: money(*req.FareCap)}
	}
	if err := h.Store.CreateCommuteSystem(r.Context(), &cs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create commute system", err)
		return
	}

	dto := CommuteSystemDTO{ID: cs.ID.String(), Name: cs.Name}
	if cs.FareCap != nil {
		cap := cs.FareCap.Cap.InexactFloat64()
		duration := string(cs.FareCap.Duration)
		dto.FareCap = &cap
		dto.FareCapDuration = &duration
	}
	writeJSON(w, http.StatusCreated, dto)
}

// ListCommuteRides returns all scheduled rides.
func (h *Handler) ListCommuteRides(w http.ResponseWriter, r *http.Request) {
	rides, err := h.Store.ListCommuteRides(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list commute rides", err)
		return
	}
	dtos := make([]CommuteRideDTO, len(rides))
	for i, ride := range rides {
		dtos[i] = CommuteRideDTO{
			ID:          ride.ID.String(),
			AccountID:   ride.AccountID.String(),
			SystemID:    ride.SystemID.String(),
			Description: ride.Description,
			Fare:        ride.Fare.InexactFloat64(),
			Date:        ride.Date.Format(dateLayout),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCommuteRide schedules a ride on a transit system.
func (h *Handler) CreateCommuteRide(w http.ResponseWriter, r *http.Request) {
	var req CreateCommuteRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid account id", err)
		return
	}
	systemID, err := uuid.Parse(req.SystemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid system id", err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	ride := budget.CommuteRide{
		AccountID:   accountID,
		SystemID:    systemID,
		Description: req.Description,
		Fare:        money(req.Fare),
		Date:        date,
	}
	if err := h.Store.CreateCommuteRide(r.Context(), &ride); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create commute ride", err)
		return
	}
	writeJSON(w, http.StatusCreated, CommuteRideDTO{
		ID:          ride.ID.String(),
		AccountID:   ride.AccountID.String(),
		SystemID:    ride.SystemID.String(),
		Description: ride.Description,
		Fare:        ride.Fare.InexactFloat64(),
		Date:        ride.Date.Format(dateLayout),
	})
}

// =============================================================================
// WISHLIST HANDLERS
// =============================================================================

// ListWishlists returns all wishlist items.
func (h *Handler) ListWishlists(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListWishlists(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list wishlists", err)
		return
	}
	dtos := make([]WishlistDTO, len(items))
	for i, item := range items {
		dtos[i] = WishlistDTO{
			ID:            item.ID.String(),
			AccountID:     item.AccountID.String(),
			Title:         item.Title,
			Description:   item.Description,
			Amount:        item.Amount.InexactFloat64(),
			DateAvailable: formatDatePtr(item.DateAvailable),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWishlist creates a wishlist item.
func (h *Handler) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	var req CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid account id", err)
		return
	}
	available, err := parseDatePtr(req.DateAvailable)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date available", err)
		return
	}

	item := budget.Wishlist{
		AccountID:     accountID,
		Title:         req.Title,
		Description:   req.Description,
		Amount:        money(req.Amount),
		DateAvailable: available,
	}
	if err := h.Store.CreateWishlist(r.Context(), &item); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create wishlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, WishlistDTO{
		ID:            item.ID.String(),
		AccountID:     item.AccountID.String(),
		Title:         item.Title,
		Description:   item.Description,
		Amount:        item.Amount.InexactFloat64(),
		DateAvailable: formatDatePtr(item.DateAvailable),
	})
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// obligationFields validates the shared obligation request fields, writing
// the error response itself when something is off.
func (h *Handler) obligationFields(w http.ResponseWriter, req CreateObligationRequest) (uuid.UUID, recur.Rule, time.Time, *time.Time, bool) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid account id", err)
		return uuid.Nil, recur.Rule{}, time.Time{}, nil, false
	}
	rule := req.Rule.toRule()
	if err := rule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recurrence rule", err)
		return uuid.Nil, recur.Rule{}, time.Time{}, nil, false
	}
	begin, err := time.Parse(dateLayout, req.BeginDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid begin date", err)
		return uuid.Nil, recur.Rule{}, time.Time{}, nil, false
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return uuid.Nil, recur.Rule{}, time.Time{}, nil, false
	}
	return accountID, rule, begin, end, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}

// parseWindowParams reads from/to query params. Missing values default to a
// window from today to a year out.
func parseWindowParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	today := recur.Midnight(time.Now().UTC())
	from, to := today, today.AddDate(1, 0, 0)

	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
		to = from.AddDate(1, 0, 0)
	}
	if s := r.URL.Query().Get("to"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
