package forecast_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/EphraimB/budgeting-sub004/budget"
	"github.com/EphraimB/budgeting-sub004/forecast"
)

// =============================================================================
// RIDE EXPANSION
// =============================================================================

func TestExpandRides_FiltersSystemAndWindowEnd(t *testing.T) {
	system := budget.CommuteSystem{ID: uuid.New(), Name: "Metro"}
	other := uuid.New()
	w := window(day(2024, time.January, 1), day(2024, time.January, 31), day(2024, time.January, 1))

	rides := []budget.CommuteRide{
		{ID: uuid.New(), SystemID: system.ID, Fare: dec(2.75), Date: day(2024, time.January, 5)},
		{ID: uuid.New(), SystemID: other, Fare: dec(9), Date: day(2024, time.January, 5)},
		{ID: uuid.New(), SystemID: system.ID, Fare: dec(2.75), Date: day(2024, time.February, 5)},
	}

	x := forecast.ExpandRides(w, system, rides)
	if len(x.InWindow) != 1 {
		t.Fatalf("expected one in-window ride, got %d", len(x.InWindow))
	}
	tx := x.InWindow[0]
	if tx.Title != "Metro fare" {
		t.Errorf("expected title %q, got %q", "Metro fare", tx.Title)
	}
	if !tx.Amount.Equal(dec(-2.75)) {
		t.Errorf("expected -2.75, got %v", tx.Amount)
	}
}

// =============================================================================
// FARE CAPPING
// =============================================================================

func TestApplyFareCap_DailyCap_ThirdRideFree(t *testing.T) {
	// GIVEN: Three 3.00 rides on one day under a 6.00 daily cap
	// WHEN: Applying the cap
	// THEN: The third ride is reduced to zero; the day's spend totals 6.00
	d := day(2024, time.January, 8)
	rides := []forecast.GeneratedTransaction{
		rideEvent(d, -3), rideEvent(d, -3), rideEvent(d, -3),
	}
	policy := budget.FareCapPolicy{Duration: budget.CapDaily, Cap: dec(6)}

	capped := forecast.ApplyFareCap(rides, policy)
	if !capped[0].Amount.Equal(dec(-3)) || !capped[1].Amount.Equal(dec(-3)) {
		t.Errorf("first two rides should be untouched: %v, %v", capped[0].Amount, capped[1].Amount)
	}
	if !capped[2].Amount.Equal(dec(0)) {
		t.Errorf("third ride should be zeroed, got %v", capped[2].Amount)
	}
}

func TestApplyFareCap_PartialExcessRefundedIntoCrossingRide(t *testing.T) {
	d := day(2024, time.January, 8)
	rides := []forecast.GeneratedTransaction{
		rideEvent(d, -4), rideEvent(d, -4),
	}
	policy := budget.FareCapPolicy{Duration: budget.CapDaily, Cap: dec(6)}

	capped := forecast.ApplyFareCap(rides, policy)
	if !capped[1].Amount.Equal(dec(-2)) {
		t.Errorf("crossing ride should shrink to -2, got %v", capped[1].Amount)
	}
	if !capped[1].TotalAmount.Equal(dec(-2)) {
		t.Errorf("effective amount should follow, got %v", capped[1].TotalAmount)
	}
}

func TestApplyFareCap_DailyCap_ResetsNextDay(t *testing.T) {
	rides := []forecast.GeneratedTransaction{
		rideEvent(day(2024, time.January, 8), -5),
		rideEvent(day(2024, time.January, 8), -5),
		rideEvent(day(2024, time.January, 9), -5),
	}
	policy := budget.FareCapPolicy{Duration: budget.CapDaily, Cap: dec(6)}

	capped := forecast.ApplyFareCap(rides, policy)
	if !capped[1].Amount.Equal(dec(-1)) {
		t.Errorf("second ride same day should shrink to -1, got %v", capped[1].Amount)
	}
	if !capped[2].Amount.Equal(dec(-5)) {
		t.Errorf("next day's ride should be uncapped, got %v", capped[2].Amount)
	}
}

func TestApplyFareCap_WeeklyCap_AnchorAdvancesAfterSevenDays(t *testing.T) {
	// GIVEN: A 10.00 weekly cap with rides on days 1, 5 and 8
	// WHEN: Applying the cap
	// THEN: Days 1 and 5 share a period; day 8 starts a fresh one
	rides := []forecast.GeneratedTransaction{
		rideEvent(day(2024, time.January, 1), -6),
		rideEvent(day(2024, time.January, 5), -6),
		rideEvent(day(2024, time.January, 8), -6),
	}
	policy := budget.FareCapPolicy{Duration: budget.CapWeekly, Cap: dec(10)}

	capped := forecast.ApplyFareCap(rides, policy)
	if !capped[1].Amount.Equal(dec(-4)) {
		t.Errorf("second ride should be capped to -4, got %v", capped[1].Amount)
	}
	if !capped[2].Amount.Equal(dec(-6)) {
		t.Errorf("ride seven days past the anchor starts fresh, got %v", capped[2].Amount)
	}
}

func TestApplyFareCap_MonthlyCap_ResetsAcrossMonths(t *testing.T) {
	rides := []forecast.GeneratedTransaction{
		rideEvent(day(2024, time.January, 10), -80),
		rideEvent(day(2024, time.January, 20), -80),
		rideEvent(day(2024, time.February, 1), -80),
	}
	policy := budget.FareCapPolicy{Duration: budget.CapMonthly, Cap: dec(100)}

	capped := forecast.ApplyFareCap(rides, policy)
	if !capped[1].Amount.Equal(dec(-20)) {
		t.Errorf("January's second ride should be capped to -20, got %v", capped[1].Amount)
	}
	if !capped[2].Amount.Equal(dec(-80)) {
		t.Errorf("February resets the period, got %v", capped[2].Amount)
	}
}

func TestApplyFareCap_SortsUnorderedRides(t *testing.T) {
	rides := []forecast.GeneratedTransaction{
		rideEvent(day(2024, time.January, 9), -5),
		rideEvent(day(2024, time.January, 8), -5),
	}
	policy := budget.FareCapPolicy{Duration: budget.CapDaily, Cap: dec(6)}

	capped := forecast.ApplyFareCap(rides, policy)
	if !capped[0].Date.Equal(day(2024, time.January, 8)) {
		t.Errorf("output should be date-ordered, got %v first", capped[0].Date)
	}
	// Different days, so neither ride is capped.
	for i, tx := range capped {
		if !tx.Amount.Equal(dec(-5)) {
			t.Errorf("ride %d should be uncapped, got %v", i, tx.Amount)
		}
	}
}

func rideEvent(date time.Time, amount float64) forecast.GeneratedTransaction {
	return forecast.GeneratedTransaction{
		Date:        date,
		Title:       "Metro fare",
		Amount:      dec(amount),
		TotalAmount: dec(amount),
	}
}
