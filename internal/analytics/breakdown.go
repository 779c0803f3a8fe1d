package analytics

import (
	"sort"

	"extraque/internal/core"
)

// CategoryLookup resolves a category id to a displayable item. It must be
// total: when the id dangles (category deleted out from under the record) it
// returns a fallback rather than failing.
type CategoryLookup func(id string) core.CategoryItem

// CategorySlice is one category's share of a polarity's grand total.
type CategorySlice struct {
	CategoryID string
	Label      string
	Color      string
	Count      int
	Total      core.Money
	Share      float64 // percent of the polarity grand total, 0 when empty
}

// BreakdownByCategory aggregates transactions of the given polarity per
// category, sorted descending by total. Shares are percentages of the
// polarity's grand total and sum to 100 when any transactions exist.
func BreakdownByCategory(txns []core.Transaction, polarity core.Polarity, lookup CategoryLookup) []CategorySlice {
	sums := make(map[string]*CategorySlice)
	order := make([]string, 0)
	var grand int64

	for _, tx := range txns {
		if tx.Polarity != polarity {
			continue
		}
		s, ok := sums[tx.CategoryID]
		if !ok {
			item := lookup(tx.CategoryID)
			s = &CategorySlice{
				CategoryID: tx.CategoryID,
				Label:      item.Label,
				Color:      item.Color,
			}
			sums[tx.CategoryID] = s
			order = append(order, tx.CategoryID)
		}
		s.Count++
		s.Total.Cents += tx.Amount.Cents
		grand += tx.Amount.Cents
	}

	out := make([]CategorySlice, 0, len(order))
	for _, id := range order {
		s := *sums[id]
		if grand > 0 {
			s.Share = float64(s.Total.Cents) / float64(grand) * 100
		}
		out = append(out, s)
	}
	// Stable keeps first-seen order between equal totals.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	return out
}
