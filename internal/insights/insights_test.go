package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"extraque/internal/analytics"
	"extraque/internal/cache"
	"extraque/internal/core"
	"extraque/internal/currency"
)

func sampleSnapshot() analytics.Snapshot {
	return analytics.Snapshot{
		Transactions: []core.Transaction{
			{ID: "1", Description: "Salary", Amount: core.Money{Cents: 250000}, CategoryID: "Income", Polarity: core.Income, Date: core.NewDate(2024, 3, 1)},
			{ID: "2", Description: "Rent", Amount: core.Money{Cents: 120000}, CategoryID: "Housing", Polarity: core.Expense, Date: core.NewDate(2024, 3, 2)},
			{ID: "3", Description: "Groceries", Amount: core.Money{Cents: 8000}, CategoryID: "Food", Polarity: core.Expense, Date: core.NewDate(2024, 3, 5)},
			{ID: "4", Description: "Cinema", Amount: core.Money{Cents: 2500}, CategoryID: "Entertainment", Polarity: core.Expense, Date: core.NewDate(2024, 3, 6)},
			{ID: "5", Description: "Coffee", Amount: core.Money{Cents: 450}, CategoryID: "Food", Polarity: core.Expense, Date: core.NewDate(2024, 3, 7)},
			{ID: "6", Description: "Old purchase", Amount: core.Money{Cents: 9900}, CategoryID: "Shopping", Polarity: core.Expense, Date: core.NewDate(2024, 1, 1)},
		},
		Debts: []core.Debt{
			{ID: "d1", Creditor: "Student Loan", TotalAmount: core.Money{Cents: 1500000}, RemainingBalance: core.Money{Cents: 1240000}, DueDate: core.NewDate(2024, 11, 5)},
		},
		Savings: []core.SavingsGoal{
			{ID: "g1", Title: "New Laptop", TargetAmount: core.Money{Cents: 250000}, CurrentAmount: core.Money{Cents: 120000}, Deadline: core.NewDate(2024, 12, 1)},
		},
	}
}

func usd(t *testing.T) currency.Currency {
	t.Helper()
	c, ok := currency.ByCode("USD")
	if !ok {
		t.Fatal("USD missing from currency table")
	}
	return c
}

func TestBuildDigestKeepsFiveMostRecent(t *testing.T) {
	d := BuildDigest(sampleSnapshot(), usd(t))

	if len(d.Recent) != 5 {
		t.Fatalf("len(Recent) = %d, want 5", len(d.Recent))
	}
	if d.Recent[0].Description != "Coffee" {
		t.Fatalf("Recent[0] = %q, want newest first", d.Recent[0].Description)
	}
	for _, tx := range d.Recent {
		if tx.Description == "Old purchase" {
			t.Fatal("oldest transaction should have been dropped")
		}
	}
	if d.DebtLeft.Cents != 1240000 {
		t.Fatalf("DebtLeft = %d cents, want 1240000", d.DebtLeft.Cents)
	}
}

func TestPromptContent(t *testing.T) {
	d := BuildDigest(sampleSnapshot(), usd(t))
	prompt := d.Prompt()

	for _, want := range []string{
		"3 actionable advice points",
		"US Dollar - USD",
		"Coffee 4.50 (Food)",
		"Total Debts Remaining: 12400.00",
		"New Laptop: 1200.00/2500.00",
		"habits in USD.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestPromptConvertsCurrency(t *testing.T) {
	eur, _ := currency.ByCode("EUR")
	d := BuildDigest(sampleSnapshot(), eur)
	prompt := d.Prompt()

	// 12400.00 USD at 0.94.
	if !strings.Contains(prompt, "Total Debts Remaining: 11656.00") {
		t.Fatalf("debt total not converted to EUR:\n%s", prompt)
	}
}

func TestPromptEmptySnapshot(t *testing.T) {
	d := BuildDigest(analytics.Snapshot{}, usd(t))
	prompt := d.Prompt()

	if !strings.Contains(prompt, "Recent Transactions: none") {
		t.Errorf("expected 'none' for empty transactions:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Savings Progress: none") {
		t.Errorf("expected 'none' for empty savings:\n%s", prompt)
	}
}

type scriptedAdvisor struct {
	calls int
	text  string
	err   error
}

func (a *scriptedAdvisor) Advise(context.Context, Digest) (string, error) {
	a.calls++
	return a.text, a.err
}

func TestServiceCachesPerCurrency(t *testing.T) {
	ctx := context.Background()
	advisor := &scriptedAdvisor{text: "Cut back on coffee."}
	svc := NewService(advisor, cache.NewLRUCache[string](4, time.Minute))
	d := BuildDigest(sampleSnapshot(), usd(t))

	if got := svc.Get(ctx, d, false); got != "Cut back on coffee." {
		t.Fatalf("Get = %q", got)
	}
	svc.Get(ctx, d, false)
	if advisor.calls != 1 {
		t.Fatalf("advisor called %d times, want 1 (cached)", advisor.calls)
	}

	svc.Get(ctx, d, true)
	if advisor.calls != 2 {
		t.Fatalf("refresh should bypass the cache, calls = %d", advisor.calls)
	}
}

func TestServiceDegradesOnAdvisorError(t *testing.T) {
	ctx := context.Background()
	advisor := &scriptedAdvisor{err: errors.New("model unavailable")}
	svc := NewService(advisor, cache.NewLRUCache[string](4, time.Minute))

	got := svc.Get(ctx, BuildDigest(sampleSnapshot(), usd(t)), false)
	if got != TextError {
		t.Fatalf("Get = %q, want error placeholder", got)
	}
}

func TestStaticAdvisor(t *testing.T) {
	text, err := StaticAdvisor{}.Advise(context.Background(), Digest{})
	if err != nil || text != TextNoAdvisor {
		t.Fatalf("StaticAdvisor = %q, %v", text, err)
	}
}
