package analytics

import (
	"sort"

	"extraque/internal/core"
)

// TrendPlaceholderLabel is emitted when there is nothing to chart. Charts must
// never receive an empty series.
const TrendPlaceholderLabel = "No Data"

// Trend is a chronological income/expense series, one point per distinct
// transaction date. The three slices always have equal, non-zero length.
type Trend struct {
	Labels  []string
	Income  []core.Money
	Expense []core.Money
}

// BuildTrend groups transactions by exact date, sums income and expense
// separately, and emits the points in ascending date order. With no
// transactions it emits a single zero placeholder point.
func BuildTrend(txns []core.Transaction) Trend {
	type daySum struct {
		income  int64
		expense int64
	}
	byDate := make(map[string]*daySum)
	for _, tx := range txns {
		key := tx.Date.String()
		d, ok := byDate[key]
		if !ok {
			d = &daySum{}
			byDate[key] = d
		}
		switch tx.Polarity {
		case core.Income:
			d.income += tx.Amount.Cents
		case core.Expense:
			d.expense += tx.Amount.Cents
		}
	}

	if len(byDate) == 0 {
		return Trend{
			Labels:  []string{TrendPlaceholderLabel},
			Income:  []core.Money{{}},
			Expense: []core.Money{{}},
		}
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys) // YYYY-MM-DD sorts chronologically

	t := Trend{
		Labels:  make([]string, 0, len(keys)),
		Income:  make([]core.Money, 0, len(keys)),
		Expense: make([]core.Money, 0, len(keys)),
	}
	for _, k := range keys {
		d := byDate[k]
		t.Labels = append(t.Labels, trendLabel(k))
		t.Income = append(t.Income, core.Money{Cents: d.income})
		t.Expense = append(t.Expense, core.Money{Cents: d.expense})
	}
	return t
}

// trendLabel shortens a YYYY-MM-DD key to the "Jan 2" form used on chart axes.
func trendLabel(key string) string {
	d, err := core.ParseDate(key)
	if err != nil {
		return key
	}
	return d.Format("Jan 2")
}
