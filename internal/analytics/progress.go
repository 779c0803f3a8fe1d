package analytics

import "extraque/internal/core"

// DebtProgress is the raw percentage of a debt paid off. The value can fall
// outside [0, 100] when the remaining balance overshoots the total; callers
// that render a bar should pass it through ClampProgress.
func DebtProgress(d core.Debt) float64 {
	if d.TotalAmount.Cents == 0 {
		return 0
	}
	return float64(d.TotalAmount.Cents-d.RemainingBalance.Cents) / float64(d.TotalAmount.Cents) * 100
}

// ClampProgress bounds a percentage to [0, 100] for display.
func ClampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// AverageInterestRate is the arithmetic mean of interest rates across all
// debts, 0 when there are none.
func AverageInterestRate(debts []core.Debt) float64 {
	var sum float64
	for _, d := range debts {
		sum += d.InterestRate
	}
	n := len(debts)
	if n == 0 {
		n = 1
	}
	return sum / float64(n)
}

// TotalRepaid sums the amount already paid off across all debts.
func TotalRepaid(debts []core.Debt) core.Money {
	var m core.Money
	for _, d := range debts {
		m.Cents += d.TotalAmount.Cents - d.RemainingBalance.Cents
	}
	return m
}

// GoalProgress is the raw percentage of a savings goal reached; it exceeds
// 100 once the goal is overshot.
func GoalProgress(g core.SavingsGoal) float64 {
	if g.TargetAmount.Cents == 0 {
		return 0
	}
	return float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
}

// GoalCompleted reports whether the saved amount has reached the target.
func GoalCompleted(g core.SavingsGoal) bool {
	return g.CurrentAmount.Cents >= g.TargetAmount.Cents
}

// GoalRemaining is the amount still to save, never negative.
func GoalRemaining(g core.SavingsGoal) core.Money {
	rem := g.TargetAmount.Cents - g.CurrentAmount.Cents
	if rem < 0 {
		rem = 0
	}
	return core.Money{Cents: rem}
}

// CrossedTarget detects the incomplete-to-complete transition of an amount
// against a target. It is the pure rule behind the one-time celebration
// signal: true only when before was under the target and after reaches it.
// Already-completed values never re-fire.
func CrossedTarget(before, after, target core.Money) bool {
	if target.Cents <= 0 {
		return false
	}
	return before.Cents < target.Cents && after.Cents >= target.Cents
}
