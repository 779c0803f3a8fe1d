package http

import (
	"extraque/internal/analytics"
	"extraque/internal/core"
	"extraque/internal/currency"
)

type transactionJSON struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Polarity    string `json:"polarity"`
	Date        string `json:"date"`
	Recurring   bool   `json:"recurring"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		AmountCents: t.Amount.Cents,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		Polarity:    string(t.Polarity),
		Date:        t.Date.String(),
		Recurring:   t.Recurring,
	}
}

type billJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	DueDate     string `json:"due_date"`
	CategoryID  string `json:"category_id"`
	Paid        bool   `json:"paid"`
}

func toBillJSON(b core.Bill) billJSON {
	return billJSON{
		ID:          b.ID,
		Name:        b.Name,
		AmountCents: b.Amount.Cents,
		DueDate:     b.DueDate.String(),
		CategoryID:  b.CategoryID,
		Paid:        b.Paid,
	}
}

type debtJSON struct {
	ID                    string  `json:"id"`
	Creditor              string  `json:"creditor"`
	TotalAmountCents      int64   `json:"total_amount_cents"`
	RemainingBalanceCents int64   `json:"remaining_balance_cents"`
	InterestRate          float64 `json:"interest_rate"`
	DueDate               string  `json:"due_date"`
	Progress              float64 `json:"progress"`
}

func toDebtJSON(d core.Debt) debtJSON {
	return debtJSON{
		ID:                    d.ID,
		Creditor:              d.Creditor,
		TotalAmountCents:      d.TotalAmount.Cents,
		RemainingBalanceCents: d.RemainingBalance.Cents,
		InterestRate:          d.InterestRate,
		DueDate:               d.DueDate.String(),
		Progress:              analytics.DebtProgress(d),
	}
}

type savingsGoalJSON struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	TargetAmountCents  int64   `json:"target_amount_cents"`
	CurrentAmountCents int64   `json:"current_amount_cents"`
	Deadline           string  `json:"deadline"`
	Progress           float64 `json:"progress"`
	Completed          bool    `json:"completed"`
}

func toSavingsGoalJSON(g core.SavingsGoal) savingsGoalJSON {
	return savingsGoalJSON{
		ID:                 g.ID,
		Title:              g.Title,
		TargetAmountCents:  g.TargetAmount.Cents,
		CurrentAmountCents: g.CurrentAmount.Cents,
		Deadline:           g.Deadline.String(),
		Progress:           analytics.GoalProgress(g),
		Completed:          analytics.GoalCompleted(g),
	}
}

type categoryJSON struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Polarity string `json:"polarity"`
}

func toCategoryJSON(c core.CategoryItem) categoryJSON {
	return categoryJSON{
		ID:       c.ID,
		Label:    c.Label,
		Color:    c.Color,
		Polarity: string(c.Polarity),
	}
}

type identityJSON struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Premium bool   `json:"premium"`
}

func toIdentityJSON(id core.Identity) identityJSON {
	return identityJSON{
		ID:      id.ID,
		Email:   id.Email,
		Name:    id.Name,
		Premium: id.Premium,
	}
}

type currencyJSON struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
	Label  string  `json:"label"`
}

func toCurrencyJSON(c currency.Currency) currencyJSON {
	return currencyJSON{
		Code:   c.Code,
		Symbol: c.Symbol,
		Rate:   c.Rate,
		Label:  c.Label,
	}
}

// moneyJSON carries both the raw base-currency cents and the string
// formatted in the requested display currency.
type moneyJSON struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func toMoneyJSON(m core.Money, cur currency.Currency) moneyJSON {
	return moneyJSON{
		Cents:     m.Cents,
		Formatted: currency.Format(m, cur),
	}
}
