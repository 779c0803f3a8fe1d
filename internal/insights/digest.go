// Package insights produces the AI advisory shown on the dashboard. A
// compact digest of the user's finances is rendered into a prompt; the
// advisor answers with a few actionable points.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"extraque/internal/analytics"
	"extraque/internal/core"
	"extraque/internal/currency"
)

// recentLimit caps how many transactions make it into the prompt.
const recentLimit = 5

// SystemInstruction frames the model as an advisor, not a chatbot.
const SystemInstruction = "You are a professional financial advisor. Provide concise, clear, and actionable bullet points without conversational filler. Focus on trends and immediate improvements."

// Digest is the advisor's view of the user's finances: a handful of recent
// transactions plus debt and savings aggregates, all in one display currency.
type Digest struct {
	Currency currency.Currency
	Recent   []core.Transaction
	DebtLeft core.Money
	Savings  []core.SavingsGoal
}

// BuildDigest condenses a snapshot for the advisor. Recent transactions are
// the newest first.
func BuildDigest(snap analytics.Snapshot, cur currency.Currency) Digest {
	recent := make([]core.Transaction, len(snap.Transactions))
	copy(recent, snap.Transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date.Time)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	var debtLeft core.Money
	for _, d := range snap.Debts {
		debtLeft.Cents += d.RemainingBalance.Cents
	}

	return Digest{
		Currency: cur,
		Recent:   recent,
		DebtLeft: debtLeft,
		Savings:  snap.Savings,
	}
}

// Prompt renders the digest into the advisor prompt. Amounts are converted
// to the display currency so the advice quotes figures the user recognizes.
func (d Digest) Prompt() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this financial data and provide 3 actionable advice points:\n")
	fmt.Fprintf(&b, "(Note: All numerical amounts are in %s - %s)\n\n", d.Currency.Label, d.Currency.Code)

	b.WriteString("- Recent Transactions: ")
	for i, t := range d.Recent {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s (%s)", t.Description, d.amount(t.Amount), t.CategoryID)
	}
	if len(d.Recent) == 0 {
		b.WriteString("none")
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "- Total Debts Remaining: %s\n", d.amount(d.DebtLeft))

	b.WriteString("- Savings Progress: ")
	for i, g := range d.Savings {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s/%s", g.Title, d.amount(g.CurrentAmount), d.amount(g.TargetAmount))
	}
	if len(d.Savings) == 0 {
		b.WriteString("none")
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "\nKeep points short and punchy. Address the user specifically regarding their spending and saving habits in %s.\n", d.Currency.Code)
	return b.String()
}

func (d Digest) amount(m core.Money) string {
	return fmt.Sprintf("%.2f", m.Units()*d.Currency.Rate)
}
