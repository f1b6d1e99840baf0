package forecast_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/forecast"
	"github.com/EphraimB/budgeting-sub004/recur"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func testAccount(balance float64) (budget.Account, map[uuid.UUID]decimal.Decimal) {
	acct := budget.Account{ID: uuid.New(), Name: "Checking", Balance: dec(balance)}
	return acct, map[uuid.UUID]decimal.Decimal{acct.ID: dec(balance)}
}

// =============================================================================
// WINDOW VALIDATION
// =============================================================================

func TestProject_MissingToDate_Rejected(t *testing.T) {
	acct, balances := testAccount(100)
	_, err := forecast.Project(forecast.ProjectionInput{
		Window:   forecast.Window{From: day(2024, time.January, 1)},
		Accounts: []budget.Account{acct},
		Balances: balances,
	})
	if !errors.Is(err, forecast.ErrUnboundedWindow) {
		t.Fatalf("expected ErrUnboundedWindow, got %v", err)
	}
}

func TestProject_HorizonBeyondFiftyYears_Rejected(t *testing.T) {
	acct, balances := testAccount(100)
	_, err := forecast.Project(forecast.ProjectionInput{
		Window: forecast.Window{
			From: day(2024, time.January, 1),
			To:   day(2090, time.January, 1),
			Now:  day(2024, time.January, 1),
		},
		Accounts: []budget.Account{acct},
		Balances: balances,
	})
	if !errors.Is(err, forecast.ErrUnboundedWindow) {
		t.Fatalf("expected ErrUnboundedWindow, got %v", err)
	}
}

// =============================================================================
// ACCOUNT SELECTION
// =============================================================================

func TestProject_UnknownAccountFilter_NotFound(t *testing.T) {
	acct, balances := testAccount(100)
	ghost := uuid.New()
	_, err := forecast.Project(forecast.ProjectionInput{
		Window: window(day(2024, time.January, 1), day(2024, time.June, 30), day(2024, time.January, 1)),
		AccountID: &ghost,
		Accounts:  []budget.Account{acct},
		Balances:  balances,
	})
	if !errors.Is(err, forecast.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestProject_SingleAccount_MissingBalance_Errors(t *testing.T) {
	acct := budget.Account{ID: uuid.New(), Name: "Checking"}
	id := acct.ID
	_, err := forecast.Project(forecast.ProjectionInput{
		Window:    window(day(2024, time.January, 1), day(2024, time.June, 30), day(2024, time.January, 1)),
		AccountID: &id,
		Accounts:  []budget.Account{acct},
		Balances:  map[uuid.UUID]decimal.Decimal{},
	})
	if !errors.Is(err, forecast.ErrMissingBalance) {
		t.Fatalf("expected ErrMissingBalance, got %v", err)
	}
}

func TestProject_Bulk_FailureIsolatedPerAccount(t *testing.T) {
	// GIVEN: Two accounts, one with no balance baseline
	// WHEN: Projecting in bulk
	// THEN: The healthy account projects; the broken one lands in Failed
	good := budget.Account{ID: uuid.New(), Name: "Checking", Balance: dec(100)}
	broken := budget.Account{ID: uuid.New(), Name: "Savings"}

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   window(day(2024, time.January, 1), day(2024, time.June, 30), day(2024, time.January, 1)),
		Accounts: []budget.Account{good, broken},
		Balances: map[uuid.UUID]decimal.Decimal{good.ID: dec(100)},
	})
	if err != nil {
		t.Fatalf("bulk projection must not fail outright: %v", err)
	}
	if len(result.Accounts) != 1 || result.Accounts[0].AccountID != good.ID {
		t.Errorf("expected only the healthy account projected, got %d", len(result.Accounts))
	}
	if !errors.Is(result.Failed[broken.ID], forecast.ErrMissingBalance) {
		t.Errorf("expected the broken account recorded in Failed, got %v", result.Failed[broken.ID])
	}
}

// =============================================================================
// FULL PIPELINE
// =============================================================================

func TestProject_MergesObligationsInWindow(t *testing.T) {
	// GIVEN: Balance 1000 with a monthly +3000 income and a future-anchored
	//        monthly -1200 expense
	// WHEN: Projecting February through April, now = Feb 1
	// THEN: Events interleave chronologically with running balances
	acct, balances := testAccount(1000)
	w := window(day(2024, time.February, 1), day(2024, time.April, 30), day(2024, time.February, 1))

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   w,
		Accounts: []budget.Account{acct},
		Balances: balances,
		Incomes: []budget.Income{{
			ID: uuid.New(), AccountID: acct.ID, Title: "Salary",
			Amount: dec(3000), Rule: monthlyOn(5), BeginDate: day(2024, time.February, 1),
		}},
		Expenses: []budget.Expense{{
			ID: uuid.New(), AccountID: acct.ID, Title: "Rent",
			Amount: dec(1200), Rule: monthlyOn(10), BeginDate: day(2024, time.February, 1),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txs := result.Accounts[0].Transactions
	if len(txs) != 6 {
		t.Fatalf("expected 6 events (3 paydays, 3 rents), got %d", len(txs))
	}
	// Feb 5 +3000 -> 4000, Feb 10 -1200 -> 2800, Mar 5 -> 5800, ...
	wantBalances := []float64{4000, 2800, 5800, 4600, 7600, 6400}
	for i, tx := range txs {
		if !tx.Balance.Equal(dec(wantBalances[i])) {
			t.Errorf("event %d (%s %v): expected balance %v, got %v",
				i, tx.Title, tx.Date, wantBalances[i], tx.Balance)
		}
	}
}

func TestProject_SkippedEventsShiftBaselineButStayHidden(t *testing.T) {
	// GIVEN: An income occurring before the window start
	// WHEN: Projecting
	// THEN: The pre-window credit lifts in-window balances but is absent
	//       from the returned list
	acct, balances := testAccount(0)
	w := window(day(2024, time.March, 1), day(2024, time.April, 30), day(2024, time.January, 1))

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   w,
		Accounts: []budget.Account{acct},
		Balances: balances,
		Incomes: []budget.Income{{
			ID: uuid.New(), AccountID: acct.ID, Title: "Dividend",
			Amount: dec(100), Rule: monthlyOn(15), BeginDate: day(2024, time.January, 1),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txs := result.Accounts[0].Transactions
	for _, tx := range txs {
		if tx.Date.Before(w.From) {
			t.Errorf("pre-window event leaked into the result: %v", tx.Date)
		}
	}
	if len(txs) != 2 {
		t.Fatalf("expected Mar 15 and Apr 15 visible, got %d", len(txs))
	}
	// Jan 15 and Feb 15 are hidden but counted: 200 entering the window.
	if !txs[0].Balance.Equal(dec(300)) {
		t.Errorf("expected 300 on Mar 15 (200 baseline + 100), got %v", txs[0].Balance)
	}
}

func TestProject_LoanPayoffsKeyedByLoan(t *testing.T) {
	acct, balances := testAccount(5000)
	w := window(day(2024, time.January, 1), day(2024, time.December, 31), day(2024, time.January, 1))

	paid := budget.Loan{
		ID: uuid.New(), AccountID: acct.ID, Title: "Bike loan",
		Amount: dec(100), PlanAmount: dec(250),
		Rule: monthlyOn(1), BeginDate: day(2024, time.January, 1),
	}
	unpaid := budget.Loan{
		ID: uuid.New(), AccountID: acct.ID, Title: "Car loan",
		Amount: dec(100), PlanAmount: dec(100000),
		Rule: monthlyOn(1), BeginDate: day(2024, time.January, 1),
	}

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   w,
		Accounts: []budget.Account{acct},
		Balances: balances,
		Loans:    []budget.Loan{paid, unpaid},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.LoanPayoffs[paid.ID]; got == nil || !got.Equal(day(2024, time.March, 1)) {
		t.Errorf("expected bike loan paid off Mar 1, got %v", got)
	}
	if got, present := result.LoanPayoffs[unpaid.ID]; !present || got != nil {
		t.Errorf("unreached payoff must be present and nil, got %v (present=%v)", got, present)
	}
}

func TestProject_TransferTouchesBothAccounts(t *testing.T) {
	src := budget.Account{ID: uuid.New(), Name: "Checking", Balance: dec(1000)}
	dst := budget.Account{ID: uuid.New(), Name: "Savings", Balance: dec(0)}
	w := window(day(2024, time.January, 1), day(2024, time.January, 31), day(2024, time.January, 1))

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   w,
		Accounts: []budget.Account{src, dst},
		Balances: map[uuid.UUID]decimal.Decimal{src.ID: dec(1000), dst.ID: dec(0)},
		Transfers: []budget.Transfer{{
			ID:                   uuid.New(),
			SourceAccountID:      src.ID,
			DestinationAccountID: dst.ID,
			Title:                "Savings sweep",
			Amount:               dec(300),
			Rule:                 monthlyOn(15),
			BeginDate:            day(2024, time.January, 1),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := map[uuid.UUID]forecast.AccountProjection{}
	for _, p := range result.Accounts {
		byID[p.AccountID] = p
	}
	if !byID[src.ID].Transactions[0].Balance.Equal(dec(700)) {
		t.Errorf("source should drop to 700, got %v", byID[src.ID].Transactions[0].Balance)
	}
	if !byID[dst.ID].Transactions[0].Balance.Equal(dec(300)) {
		t.Errorf("destination should rise to 300, got %v", byID[dst.ID].Transactions[0].Balance)
	}
}

func TestProject_CommuteRidesCappedPerSystem(t *testing.T) {
	acct, balances := testAccount(100)
	w := window(day(2024, time.January, 1), day(2024, time.January, 31), day(2024, time.January, 1))

	metro := budget.CommuteSystem{
		ID: uuid.New(), Name: "Metro",
		FareCap: &budget.FareCapPolicy{Duration: budget.CapDaily, Cap: dec(6)},
	}
	d := day(2024, time.January, 8)
	rides := []budget.CommuteRide{
		{ID: uuid.New(), AccountID: acct.ID, SystemID: metro.ID, Fare: dec(3), Date: d},
		{ID: uuid.New(), AccountID: acct.ID, SystemID: metro.ID, Fare: dec(3), Date: d},
		{ID: uuid.New(), AccountID: acct.ID, SystemID: metro.ID, Fare: dec(3), Date: d},
	}

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   w,
		Accounts: []budget.Account{acct},
		Balances: balances,
		Systems:  []budget.CommuteSystem{metro},
		Rides:    rides,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txs := result.Accounts[0].Transactions
	if len(txs) != 3 {
		t.Fatalf("expected 3 ride events, got %d", len(txs))
	}
	// Day total capped at 6: final balance 94.
	if !txs[2].Balance.Equal(dec(94)) {
		t.Errorf("expected balance 94 after the capped day, got %v", txs[2].Balance)
	}
}

func TestProject_WishlistResolvedAgainstTrajectory(t *testing.T) {
	acct, balances := testAccount(100)
	w := window(day(2024, time.March, 15), day(2024, time.June, 30), day(2024, time.March, 15))

	result, err := forecast.Project(forecast.ProjectionInput{
		Window:   w,
		Accounts: []budget.Account{acct},
		Balances: balances,
		Incomes: []budget.Income{{
			ID: uuid.New(), AccountID: acct.ID, Title: "Salary",
			Amount: dec(500), Rule: monthlyOn(1), BeginDate: day(2024, time.April, 1),
		}},
		Wishlists: []budget.Wishlist{{
			ID: uuid.New(), AccountID: acct.ID, Title: "Camera", Amount: dec(300),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txs := result.Accounts[0].Transactions
	var purchase *forecast.GeneratedTransaction
	for i := range txs {
		if txs[i].Title == "Camera" {
			purchase = &txs[i]
		}
	}
	if purchase == nil {
		t.Fatal("expected the wishlist purchase in the projection")
	}
	if !purchase.Date.Equal(day(2024, time.April, 1)) {
		t.Errorf("expected purchase on the first qualifying payday, got %v", purchase.Date)
	}
}

func TestProject_InvalidObligationRule_SingleAccountFails(t *testing.T) {
	acct, balances := testAccount(100)
	id := acct.ID
	w := window(day(2024, time.January, 1), day(2024, time.June, 30), day(2024, time.January, 1))

	_, err := forecast.Project(forecast.ProjectionInput{
		Window:    w,
		AccountID: &id,
		Accounts:  []budget.Account{acct},
		Balances:  balances,
		Incomes: []budget.Income{{
			ID: uuid.New(), AccountID: acct.ID,
			Rule:      recur.Rule{Frequency: "sometimes"},
			BeginDate: day(2024, time.January, 1),
		}},
	})
	if err == nil || forecast.IsClientError(err) != true {
		t.Fatalf("expected a client error from the invalid rule, got %v", err)
	}
}
