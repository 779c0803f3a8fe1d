package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"extraque/internal/core"
	"extraque/internal/store"
)

// maxBodySize caps JSON request bodies. The API only ever carries small
// records.
const maxBodySize = 1 << 20

var errBadBody = errors.New("malformed request body")

// decodeJSON strictly decodes a JSON body into dst. Unknown fields and
// trailing garbage are rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errBadBody
	}
	if dec.More() {
		return errBadBody
	}
	return nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// moneyField resolves the two wire representations of an amount. A decimal
// string ("12.34" or "12,34") takes precedence over pre-converted cents.
func moneyField(decimal string, cents int64) (core.Money, error) {
	if decimal == "" {
		return core.Money{Cents: cents}, nil
	}
	c, err := core.ParseDecimalToCents(decimal)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: c}, nil
}

type transactionPayload struct {
	Amount      string `json:"amount,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Polarity    string `json:"polarity"`
	Date        string `json:"date"`
	Recurring   bool   `json:"recurring"`
}

func (p transactionPayload) toTransaction() (core.Transaction, error) {
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := moneyField(p.Amount, p.AmountCents)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Amount:      amount,
		CategoryID:  sanitizeInput(p.CategoryID),
		Description: sanitizeInput(p.Description),
		Polarity:    core.Polarity(p.Polarity),
		Date:        date,
		Recurring:   p.Recurring,
	}, nil
}

type transactionPatch struct {
	Amount      *string `json:"amount"`
	AmountCents *int64  `json:"amount_cents"`
	CategoryID  *string `json:"category_id"`
	Description *string `json:"description"`
	Polarity    *string `json:"polarity"`
	Date        *string `json:"date"`
	Recurring   *bool   `json:"recurring"`
}

func (p transactionPatch) toUpdate() (store.TransactionUpdate, error) {
	var upd store.TransactionUpdate
	if p.Amount != nil {
		cents, err := core.ParseDecimalToCents(*p.Amount)
		if err != nil {
			return store.TransactionUpdate{}, err
		}
		upd.Amount = &core.Money{Cents: cents}
	} else if p.AmountCents != nil {
		upd.Amount = &core.Money{Cents: *p.AmountCents}
	}
	if p.CategoryID != nil {
		v := sanitizeInput(*p.CategoryID)
		upd.CategoryID = &v
	}
	if p.Description != nil {
		v := sanitizeInput(*p.Description)
		upd.Description = &v
	}
	if p.Polarity != nil {
		v := core.Polarity(*p.Polarity)
		upd.Polarity = &v
	}
	if p.Date != nil {
		date, err := core.ParseDate(*p.Date)
		if err != nil {
			return store.TransactionUpdate{}, err
		}
		upd.Date = &date
	}
	upd.Recurring = p.Recurring
	return upd, nil
}

type billPayload struct {
	Name        string `json:"name"`
	Amount      string `json:"amount,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	DueDate     string `json:"due_date"`
	CategoryID  string `json:"category_id"`
	Paid        bool   `json:"paid"`
}

func (p billPayload) toBill() (core.Bill, error) {
	due, err := core.ParseDate(p.DueDate)
	if err != nil {
		return core.Bill{}, err
	}
	amount, err := moneyField(p.Amount, p.AmountCents)
	if err != nil {
		return core.Bill{}, err
	}
	return core.Bill{
		Name:       sanitizeInput(p.Name),
		Amount:     amount,
		DueDate:    due,
		CategoryID: sanitizeInput(p.CategoryID),
		Paid:       p.Paid,
	}, nil
}

type debtPayload struct {
	Creditor              string  `json:"creditor"`
	TotalAmount           string  `json:"total_amount,omitempty"`
	TotalAmountCents      int64   `json:"total_amount_cents"`
	RemainingBalanceCents int64   `json:"remaining_balance_cents"`
	InterestRate          float64 `json:"interest_rate"`
	DueDate               string  `json:"due_date"`
}

func (p debtPayload) toDebt() (core.Debt, error) {
	due, err := core.ParseDate(p.DueDate)
	if err != nil {
		return core.Debt{}, err
	}
	total, err := moneyField(p.TotalAmount, p.TotalAmountCents)
	if err != nil {
		return core.Debt{}, err
	}
	return core.Debt{
		Creditor:         sanitizeInput(p.Creditor),
		TotalAmount:      total,
		RemainingBalance: core.Money{Cents: p.RemainingBalanceCents},
		InterestRate:     p.InterestRate,
		DueDate:          due,
	}, nil
}

type savingsPayload struct {
	Title              string `json:"title"`
	TargetAmount       string `json:"target_amount,omitempty"`
	TargetAmountCents  int64  `json:"target_amount_cents"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
	Deadline           string `json:"deadline"`
}

func (p savingsPayload) toGoal() (core.SavingsGoal, error) {
	deadline, err := core.ParseDate(p.Deadline)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	target, err := moneyField(p.TargetAmount, p.TargetAmountCents)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	return core.SavingsGoal{
		Title:         sanitizeInput(p.Title),
		TargetAmount:  target,
		CurrentAmount: core.Money{Cents: p.CurrentAmountCents},
		Deadline:      deadline,
	}, nil
}

type savingsPatch struct {
	Title              *string `json:"title"`
	TargetAmountCents  *int64  `json:"target_amount_cents"`
	CurrentAmountCents *int64  `json:"current_amount_cents"`
	Deadline           *string `json:"deadline"`
}

func (p savingsPatch) toUpdate() (store.SavingsGoalUpdate, error) {
	var upd store.SavingsGoalUpdate
	if p.Title != nil {
		v := sanitizeInput(*p.Title)
		upd.Title = &v
	}
	if p.TargetAmountCents != nil {
		upd.TargetAmount = &core.Money{Cents: *p.TargetAmountCents}
	}
	if p.CurrentAmountCents != nil {
		upd.CurrentAmount = &core.Money{Cents: *p.CurrentAmountCents}
	}
	if p.Deadline != nil {
		deadline, err := core.ParseDate(*p.Deadline)
		if err != nil {
			return store.SavingsGoalUpdate{}, err
		}
		upd.Deadline = &deadline
	}
	return upd, nil
}

type categoryPayload struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Polarity string `json:"polarity"`
}

type renamePayload struct {
	Label string `json:"label"`
}

type balancePayload struct {
	BalanceCents int64 `json:"balance_cents"`
}

type topUpPayload struct {
	Amount      string `json:"amount,omitempty"`
	AmountCents int64  `json:"amount_cents"`
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}
