package http

import (
	"net/http"
	"time"

	"extraque/internal/analytics"
	"extraque/internal/core"
	"extraque/internal/currency"
	"extraque/internal/log"
	"extraque/internal/registry"
)

// DashboardResponse is the full derived view for one period and display
// currency. Everything in it is computed from a single snapshot, so the
// figures are mutually consistent.
type DashboardResponse struct {
	Period   string       `json:"period"`
	Currency currencyJSON `json:"currency"`

	Totals    totalsJSON        `json:"totals"`
	Breakdown []breakdownJSON   `json:"breakdown"`
	Trend     trendJSON         `json:"trend"`
	Bills     billsJSON         `json:"bills"`
	Debts     debtsJSON         `json:"debts"`
	Savings   []savingsGoalJSON `json:"savings"`
}

type totalsJSON struct {
	Income   moneyJSON `json:"income"`
	Expenses moneyJSON `json:"expenses"`
	Net      moneyJSON `json:"net"`
	Debt     moneyJSON `json:"debt"`
	Savings  moneyJSON `json:"savings"`
}

type breakdownJSON struct {
	CategoryID string    `json:"category_id"`
	Label      string    `json:"label"`
	Color      string    `json:"color"`
	Count      int       `json:"count"`
	Total      moneyJSON `json:"total"`
	Share      float64   `json:"share"`
}

type trendJSON struct {
	Labels  []string `json:"labels"`
	Income  []int64  `json:"income_cents"`
	Expense []int64  `json:"expense_cents"`
}

type billsJSON struct {
	UnpaidTotal moneyJSON  `json:"unpaid_total"`
	PaidTotal   moneyJSON  `json:"paid_total"`
	UnpaidCount int        `json:"unpaid_count"`
	AllClear    bool       `json:"all_clear"`
	NextDue     *billJSON  `json:"next_due,omitempty"`
	Items       []billJSON `json:"items"`
}

type debtsJSON struct {
	Remaining       moneyJSON  `json:"remaining"`
	Repaid          moneyJSON  `json:"repaid"`
	AvgInterestRate float64    `json:"avg_interest_rate"`
	Items           []debtJSON `json:"items"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	cur := s.parseCurrency(r)

	key := s.dashboardKey(string(period), cur.Code)
	if cached, ok := s.dashboardCache.Get(key); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	snap, categories, err := s.finance.LoadSnapshot(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed loading snapshot",
			log.FieldError, err)
		respondDomainError(w, err)
		return
	}

	resp := buildDashboard(snap, categories, period, cur, time.Now())
	s.dashboardCache.Set(key, resp)
	respondJSON(w, http.StatusOK, resp)
}

// buildDashboard derives every dashboard figure from one snapshot. Only
// transactions are period-filtered; bills, debts and savings always show
// their full state.
func buildDashboard(snap analytics.Snapshot, categories []core.CategoryItem, period core.Period, cur currency.Currency, now time.Time) DashboardResponse {
	txns := analytics.FilterByPeriod(snap.Transactions, period, now)
	totals := analytics.ComputeTotals(txns, snap.Debts, snap.Savings)
	lookup := registry.LookupIn(categories)

	breakdown := analytics.BreakdownByCategory(txns, core.Expense, analytics.CategoryLookup(lookup))
	slices := make([]breakdownJSON, 0, len(breakdown))
	for _, b := range breakdown {
		slices = append(slices, breakdownJSON{
			CategoryID: b.CategoryID,
			Label:      b.Label,
			Color:      b.Color,
			Count:      b.Count,
			Total:      toMoneyJSON(b.Total, cur),
			Share:      b.Share,
		})
	}

	trend := analytics.BuildTrend(txns)
	trendOut := trendJSON{
		Labels:  trend.Labels,
		Income:  make([]int64, 0, len(trend.Income)),
		Expense: make([]int64, 0, len(trend.Expense)),
	}
	for i := range trend.Income {
		trendOut.Income = append(trendOut.Income, trend.Income[i].Cents)
		trendOut.Expense = append(trendOut.Expense, trend.Expense[i].Cents)
	}

	billSummary := analytics.SummarizeBills(snap.Bills)
	bills := billsJSON{
		UnpaidTotal: toMoneyJSON(billSummary.UnpaidTotal, cur),
		PaidTotal:   toMoneyJSON(billSummary.PaidTotal, cur),
		UnpaidCount: billSummary.UnpaidCount,
		Items:       make([]billJSON, 0, len(snap.Bills)),
	}
	for _, b := range snap.Bills {
		bills.Items = append(bills.Items, toBillJSON(b))
	}
	if next, ok := analytics.NextDue(snap.Bills, now); ok {
		nextJSON := toBillJSON(next)
		bills.NextDue = &nextJSON
	} else {
		bills.AllClear = true
	}

	debts := debtsJSON{
		Remaining:       toMoneyJSON(totals.DebtTotal, cur),
		Repaid:          toMoneyJSON(analytics.TotalRepaid(snap.Debts), cur),
		AvgInterestRate: analytics.AverageInterestRate(snap.Debts),
		Items:           make([]debtJSON, 0, len(snap.Debts)),
	}
	for _, d := range snap.Debts {
		debts.Items = append(debts.Items, toDebtJSON(d))
	}

	savings := make([]savingsGoalJSON, 0, len(snap.Savings))
	for _, g := range snap.Savings {
		savings = append(savings, toSavingsGoalJSON(g))
	}

	return DashboardResponse{
		Period:   string(period),
		Currency: toCurrencyJSON(cur),
		Totals: totalsJSON{
			Income:   toMoneyJSON(totals.Income, cur),
			Expenses: toMoneyJSON(totals.Expenses, cur),
			Net:      toMoneyJSON(totals.Net, cur),
			Debt:     toMoneyJSON(totals.DebtTotal, cur),
			Savings:  toMoneyJSON(totals.SavingsTotal, cur),
		},
		Breakdown: slices,
		Trend:     trendOut,
		Bills:     bills,
		Debts:     debts,
		Savings:   savings,
	}
}
