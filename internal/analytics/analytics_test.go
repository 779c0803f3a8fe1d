package analytics

import (
	"testing"
	"time"

	"extraque/internal/core"
)

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, nil, nil)
	if got.Income.Cents != 0 || got.Expenses.Cents != 0 || got.Net.Cents != 0 ||
		got.DebtTotal.Cents != 0 || got.SavingsTotal.Cents != 0 {
		t.Fatalf("empty input should yield all zeros, got %+v", got)
	}
}

func TestComputeTotals(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, 1, 5), core.Income, 100000, "Income"),
		tx(core.NewDate(2024, 1, 5), core.Expense, 30000, "Food"),
		tx(core.NewDate(2024, 1, 8), core.Expense, 20000, "Transport"),
	}
	debts := []core.Debt{
		{RemainingBalance: core.Money{Cents: 1240000}},
		{RemainingBalance: core.Money{Cents: 60000}},
	}
	savings := []core.SavingsGoal{
		{CurrentAmount: core.Money{Cents: 120000}},
	}

	got := ComputeTotals(txns, debts, savings)
	if got.Income.Cents != 100000 {
		t.Fatalf("income: expected 100000, got %d", got.Income.Cents)
	}
	if got.Expenses.Cents != 50000 {
		t.Fatalf("expenses: expected 50000, got %d", got.Expenses.Cents)
	}
	if got.Net.Cents != 50000 {
		t.Fatalf("net: expected 50000, got %d", got.Net.Cents)
	}
	if got.DebtTotal.Cents != 1300000 {
		t.Fatalf("debt total: expected 1300000, got %d", got.DebtTotal.Cents)
	}
	if got.SavingsTotal.Cents != 120000 {
		t.Fatalf("savings total: expected 120000, got %d", got.SavingsTotal.Cents)
	}
}

// The monthly scenario from the dashboard: income 1000, one Food expense 300,
// reference date at the end of the same month.
func TestMonthlyScenario(t *testing.T) {
	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	txns := []core.Transaction{
		tx(core.NewDate(2024, 1, 5), core.Income, 100000, "Income"),
		tx(core.NewDate(2024, 1, 5), core.Expense, 30000, "Food"),
	}

	filtered := FilterByPeriod(txns, core.PeriodMonthly, now)
	totals := ComputeTotals(filtered, nil, nil)
	if totals.Income.Cents != 100000 || totals.Expenses.Cents != 30000 || totals.Net.Cents != 70000 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	lookup := func(id string) core.CategoryItem {
		return core.CategoryItem{ID: id, Label: id, Color: "#ef4444"}
	}
	breakdown := BreakdownByCategory(filtered, core.Expense, lookup)
	if len(breakdown) != 1 {
		t.Fatalf("expected a single category slice, got %d", len(breakdown))
	}
	food := breakdown[0]
	if food.Label != "Food" || food.Count != 1 || food.Total.Cents != 30000 || food.Share != 100 {
		t.Fatalf("unexpected Food slice %+v", food)
	}
}

// Breakdown totals must reconcile with the expense grand total.
func TestBreakdownSumsMatchTotals(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, 1, 1), core.Expense, 100, "Food"),
		tx(core.NewDate(2024, 1, 2), core.Expense, 250, "Food"),
		tx(core.NewDate(2024, 1, 3), core.Expense, 400, "Transport"),
		tx(core.NewDate(2024, 1, 4), core.Income, 9999, "Income"),
	}
	lookup := func(id string) core.CategoryItem { return core.CategoryItem{ID: id, Label: id} }

	breakdown := BreakdownByCategory(txns, core.Expense, lookup)
	var sum int64
	var share float64
	for _, s := range breakdown {
		sum += s.Total.Cents
		share += s.Share
	}
	if want := ComputeTotals(txns, nil, nil).Expenses.Cents; sum != want {
		t.Fatalf("breakdown sum %d != expense total %d", sum, want)
	}
	if share < 99.999 || share > 100.001 {
		t.Fatalf("shares should sum to 100, got %v", share)
	}
}
