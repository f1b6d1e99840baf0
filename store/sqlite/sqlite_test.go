package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/forecast"
	"github.com/EphraimB/budgeting-sub004/recur"
	"github.com/EphraimB/budgeting-sub004/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createAccount(t *testing.T, s *sqlite.Store, name string, balance float64) budget.Account {
	acct := budget.Account{Name: name, Balance: decimal.NewFromFloat(balance)}
	require.NoError(t, s.CreateAccount(context.Background(), &acct))
	return acct
}

func weeklyOn(wd time.Weekday) recur.Rule {
	return recur.Rule{Frequency: recur.FreqWeekly, Interval: 1, DayOfWeek: &wd}
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func TestAccounts_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acct := createAccount(t, s, "Checking", 1234.56)
	assert.NotEqual(t, uuid.Nil, acct.ID, "create should assign an id")

	got, err := s.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Checking", got.Name)
	assert.True(t, got.Balance.Equal(decimal.NewFromFloat(1234.56)))
}

func TestAccounts_UpdateBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acct := createAccount(t, s, "Checking", 100)
	require.NoError(t, s.UpdateAccountBalance(ctx, acct.ID, decimal.NewFromInt(250)))

	got, err := s.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(250)))
}

func TestAccounts_ListOrderedByCreation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createAccount(t, s, "First", 0)
	createAccount(t, s, "Second", 0)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}

// =============================================================================
// SETTLED TRANSACTIONS
// =============================================================================

func TestTransactions_RangeQueryFiltersDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	for _, d := range []time.Time{
		recur.Date(2024, time.January, 5),
		recur.Date(2024, time.February, 5),
		recur.Date(2024, time.March, 5),
	} {
		tx := budget.Transaction{
			AccountID: acct.ID,
			Title:     "Groceries",
			Amount:    decimal.NewFromInt(-40),
			Date:      d,
		}
		require.NoError(t, s.CreateTransaction(ctx, &tx))
	}

	txs, err := s.TransactionsInRange(ctx, acct.ID,
		recur.Date(2024, time.January, 15), recur.Date(2024, time.February, 28))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Date.Equal(recur.Date(2024, time.February, 5)))
}

// =============================================================================
// OBLIGATION ROUND-TRIPS
// =============================================================================

func TestExpenses_RuleRefinementsSurviveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	week := 1
	e := budget.Expense{
		AccountID: acct.ID,
		Title:     "Cleaning service",
		Amount:    decimal.NewFromInt(80),
		Rule: recur.Rule{
			Frequency:   recur.FreqMonthly,
			Interval:    1,
			DayOfWeek:   weeklyOn(time.Tuesday).DayOfWeek,
			WeekOfMonth: &week,
		},
		BeginDate: recur.Date(2024, time.January, 1),
	}
	require.NoError(t, s.CreateExpense(ctx, &e))

	expenses, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	got := expenses[0]
	assert.Equal(t, recur.FreqMonthly, got.Rule.Frequency)
	require.NotNil(t, got.Rule.DayOfWeek)
	assert.Equal(t, time.Tuesday, *got.Rule.DayOfWeek)
	require.NotNil(t, got.Rule.WeekOfMonth)
	assert.Equal(t, 1, *got.Rule.WeekOfMonth)
	assert.Nil(t, got.Rule.DayOfMonth)
	assert.Nil(t, got.Rule.MonthOfYear)
	assert.Nil(t, got.EndDate)
}

func TestIncomes_EndDateSurvivesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	end := recur.Date(2025, time.June, 30)
	in := budget.Income{
		AccountID: acct.ID,
		Title:     "Stipend",
		Amount:    decimal.NewFromInt(900),
		Rule:      recur.Rule{Frequency: recur.FreqMonthly, Interval: 1},
		BeginDate: recur.Date(2024, time.January, 1),
		EndDate:   &end,
	}
	require.NoError(t, s.CreateIncome(ctx, &in))

	incomes, err := s.ListIncomes(ctx)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	require.NotNil(t, incomes[0].EndDate)
	assert.True(t, incomes[0].EndDate.Equal(end))
}

func TestLoans_PlanAmountUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	l := budget.Loan{
		AccountID:          acct.ID,
		Title:              "Car loan",
		Amount:             decimal.NewFromInt(300),
		PlanAmount:         decimal.NewFromInt(9000),
		InterestRate:       decimal.NewFromFloat(0.01),
		InterestFrequency:  recur.FreqMonthly,
		SubsidizedFraction: decimal.NewFromFloat(0.5),
		Rule:               recur.Rule{Frequency: recur.FreqMonthly, Interval: 1},
		BeginDate:          recur.Date(2024, time.January, 1),
	}
	require.NoError(t, s.CreateLoan(ctx, &l))
	require.NoError(t, s.UpdateLoanPlanAmount(ctx, l.ID, decimal.NewFromInt(8745)))

	loans, err := s.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.True(t, loans[0].PlanAmount.Equal(decimal.NewFromInt(8745)))
	assert.True(t, loans[0].InterestRate.Equal(decimal.NewFromFloat(0.01)))
	assert.True(t, loans[0].SubsidizedFraction.Equal(decimal.NewFromFloat(0.5)))
	assert.Equal(t, recur.FreqMonthly, loans[0].InterestFrequency)
}

func TestTransfers_BothAccountsReferenced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := createAccount(t, s, "Checking", 0)
	dst := createAccount(t, s, "Savings", 0)

	tr := budget.Transfer{
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Title:                "Sweep",
		Amount:               decimal.NewFromInt(200),
		Rule:                 recur.Rule{Frequency: recur.FreqMonthly, Interval: 1},
		BeginDate:            recur.Date(2024, time.January, 1),
	}
	require.NoError(t, s.CreateTransfer(ctx, &tr))

	transfers, err := s.ListTransfers(ctx)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, src.ID, transfers[0].SourceAccountID)
	assert.Equal(t, dst.ID, transfers[0].DestinationAccountID)
}

func TestAdvanceBeginDate_MovesAnchor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	e := budget.Expense{
		AccountID: acct.ID,
		Title:     "Rent",
		Amount:    decimal.NewFromInt(1000),
		Rule:      recur.Rule{Frequency: recur.FreqMonthly, Interval: 1},
		BeginDate: recur.Date(2024, time.January, 1),
	}
	require.NoError(t, s.CreateExpense(ctx, &e))
	require.NoError(t, s.AdvanceExpenseBeginDate(ctx, e.ID, recur.Date(2024, time.April, 1)))

	expenses, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.True(t, expenses[0].BeginDate.Equal(recur.Date(2024, time.April, 1)))
}

// =============================================================================
// PAYROLL, COMMUTE, WISHLISTS
// =============================================================================

func TestPayroll_EntriesOrderedByPayDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	job := budget.Job{AccountID: acct.ID, Name: "Barista"}
	require.NoError(t, s.CreateJob(ctx, &job))

	later := budget.PayrollEntry{JobID: job.ID, PayDate: recur.Date(2024, time.February, 15), GrossAmount: decimal.NewFromInt(2000), TaxRate: decimal.NewFromFloat(0.2)}
	earlier := budget.PayrollEntry{JobID: job.ID, PayDate: recur.Date(2024, time.January, 15), GrossAmount: decimal.NewFromInt(2000), TaxRate: decimal.NewFromFloat(0.2)}
	require.NoError(t, s.CreatePayrollEntry(ctx, &later))
	require.NoError(t, s.CreatePayrollEntry(ctx, &earlier))

	entries, err := s.ListPayrollEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].PayDate.Before(entries[1].PayDate))
}

func TestCommuteSystems_FareCapOptional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	capped := budget.CommuteSystem{
		Name:    "Metro",
		FareCap: &budget.FareCapPolicy{Duration: budget.CapDaily, Cap: decimal.NewFromInt(6)},
	}
	uncapped := budget.CommuteSystem{Name: "Ferry"}
	require.NoError(t, s.CreateCommuteSystem(ctx, &capped))
	require.NoError(t, s.CreateCommuteSystem(ctx, &uncapped))

	systems, err := s.ListCommuteSystems(ctx)
	require.NoError(t, err)
	require.Len(t, systems, 2)

	byName := map[string]budget.CommuteSystem{}
	for _, cs := range systems {
		byName[cs.Name] = cs
	}
	require.NotNil(t, byName["Metro"].FareCap)
	assert.Equal(t, budget.CapDaily, byName["Metro"].FareCap.Duration)
	assert.True(t, byName["Metro"].FareCap.Cap.Equal(decimal.NewFromInt(6)))
	assert.Nil(t, byName["Ferry"].FareCap)
}

func TestWishlists_PreserveCollectionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 0)

	// Insertion order drives resolution priority, not alphabetical order.
	for _, title := range []string{"Zebra print rug", "Armchair"} {
		item := budget.Wishlist{AccountID: acct.ID, Title: title, Amount: decimal.NewFromInt(50)}
		require.NoError(t, s.CreateWishlist(ctx, &item))
	}

	items, err := s.ListWishlists(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Zebra print rug", items[0].Title)
	assert.Equal(t, "Armchair", items[1].Title)
}

// =============================================================================
// PROJECTION INPUT ASSEMBLY
// =============================================================================

func TestLoadProjectionInput_GathersEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := createAccount(t, s, "Checking", 1000)

	e := budget.Expense{
		AccountID: acct.ID, Title: "Rent", Amount: decimal.NewFromInt(900),
		Rule:      recur.Rule{Frequency: recur.FreqMonthly, Interval: 1},
		BeginDate: recur.Date(2024, time.April, 1),
	}
	require.NoError(t, s.CreateExpense(ctx, &e))

	tx := budget.Transaction{
		AccountID: acct.ID, Title: "Groceries",
		Amount: decimal.NewFromInt(-60), Date: recur.Date(2024, time.February, 10),
	}
	require.NoError(t, s.CreateTransaction(ctx, &tx))

	w := forecast.Window{
		From: recur.Date(2024, time.March, 1),
		To:   recur.Date(2024, time.June, 30),
		Now:  recur.Date(2024, time.March, 15),
	}
	input, err := s.LoadProjectionInput(ctx, w, nil)
	require.NoError(t, err)

	require.Len(t, input.Accounts, 1)
	assert.True(t, input.Balances[acct.ID].Equal(decimal.NewFromInt(1000)))
	assert.Len(t, input.Expenses, 1)
	require.Len(t, input.Transactions, 1, "history before the window still loads")

	// The assembled input projects end to end.
	result, err := forecast.Project(input)
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Len(t, result.Accounts[0].Transactions, 3, "Apr, May, Jun rent debits")
}
