package analytics

import (
	"time"

	"extraque/internal/core"
)

// FilterByPeriod returns the transactions that fall inside the selected
// period relative to now. Boundaries are local calendar dates, never rolling
// 24h windows:
//
//   - daily: same calendar date as now
//   - weekly: date >= start of the current week (Sunday-indexed), no upper bound
//   - monthly: same calendar month and year
//   - yearly: same calendar year
//   - custom or anything else: pass-through
//
// A transaction dated today is included by every period.
func FilterByPeriod(txns []core.Transaction, period core.Period, now time.Time) []core.Transaction {
	switch period {
	case core.PeriodDaily, core.PeriodWeekly, core.PeriodMonthly, core.PeriodYearly:
	default:
		return txns
	}

	weekStart := startOfWeek(now)
	out := make([]core.Transaction, 0, len(txns))
	for _, tx := range txns {
		var keep bool
		switch period {
		case core.PeriodDaily:
			keep = tx.Date.SameDay(now)
		case core.PeriodWeekly:
			keep = !tx.Date.Before(weekStart)
		case core.PeriodMonthly:
			keep = tx.Date.Month() == now.Month() && tx.Date.Year() == now.Year()
		case core.PeriodYearly:
			keep = tx.Date.Year() == now.Year()
		}
		if keep {
			out = append(out, tx)
		}
	}
	return out
}

// startOfWeek is now's calendar date minus its weekday index, so Sunday is
// always day zero of the week.
func startOfWeek(now time.Time) time.Time {
	d := core.DateOf(now)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
