// Package analytics computes every derived value shown on the dashboard from
// an in-memory snapshot of the record collections. All functions are pure:
// same snapshot and parameters, same result. No I/O, no hidden state, and
// empty inputs always yield the zero/neutral result rather than an error.
package analytics

import "extraque/internal/core"

// Snapshot is the full in-memory copy of the record collections fetched from
// the store at a point in time.
type Snapshot struct {
	Transactions []core.Transaction
	Bills        []core.Bill
	Debts        []core.Debt
	Savings      []core.SavingsGoal
}

// Totals are the headline figures for a (possibly period-filtered) snapshot.
// Debts and savings are deliberately not period-filtered; only transactions
// are.
type Totals struct {
	Income       core.Money
	Expenses     core.Money
	Net          core.Money
	DebtTotal    core.Money
	SavingsTotal core.Money
}

// ComputeTotals sums income and expense transactions, remaining debt balances
// and saved amounts.
func ComputeTotals(txns []core.Transaction, debts []core.Debt, savings []core.SavingsGoal) Totals {
	var t Totals
	for _, tx := range txns {
		switch tx.Polarity {
		case core.Income:
			t.Income.Cents += tx.Amount.Cents
		case core.Expense:
			t.Expenses.Cents += tx.Amount.Cents
		}
	}
	t.Net.Cents = t.Income.Cents - t.Expenses.Cents
	for _, d := range debts {
		t.DebtTotal.Cents += d.RemainingBalance.Cents
	}
	for _, g := range savings {
		t.SavingsTotal.Cents += g.CurrentAmount.Cents
	}
	return t
}
