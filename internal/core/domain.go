package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Polarity = "income"
	Expense Polarity = "expense"
)

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodCustom  Period = "custom"
)

type (
	// Polarity says whether a record represents money in or money out.
	Polarity string

	// Period is the window used to filter transactions for summary views.
	Period string

	// Date is a calendar date; the time-of-day component is always UTC midnight.
	Date struct {
		time.Time
	}

	// Money is an amount in base-currency cents. All arithmetic stays in
	// cents; display currencies are derived at format time.
	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string
		OwnerID     string
		Amount      Money
		CategoryID  string
		Description string
		Polarity    Polarity
		Date        Date
		Recurring   bool
	}

	Bill struct {
		ID         string
		OwnerID    string
		Name       string
		Amount     Money
		DueDate    Date
		CategoryID string
		Paid       bool
	}

	Debt struct {
		ID               string
		OwnerID          string
		Creditor         string
		TotalAmount      Money
		RemainingBalance Money
		InterestRate     float64 // percent per year
		DueDate          Date
	}

	SavingsGoal struct {
		ID            string
		OwnerID       string
		Title         string
		TargetAmount  Money
		CurrentAmount Money
		Deadline      Date
	}

	CategoryItem struct {
		ID       string
		Label    string
		Color    string
		Polarity Polarity
	}

	Identity struct {
		ID      string
		Email   string
		Name    string
		Premium bool
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidPolarity  = errors.New("invalid polarity")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyTitle       = errors.New("empty title")
	ErrNegativeBalance  = errors.New("negative remaining balance")
)

func (p Polarity) Valid() bool {
	return p == Income || p == Expense
}

// ParsePeriod validates a period string. Unknown values are rejected rather
// than silently treated as custom.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodCustom:
		return Period(s), nil
	}
	return "", ErrInvalidPeriod
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// SameDay reports whether d falls on the same calendar date as t.
func (d Date) SameDay(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month() && d.Day() == t.Day()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Cents < 0
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if !t.Polarity.Valid() {
		return ErrInvalidPolarity
	}
	return nil
}

func (b Bill) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if err := b.DueDate.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (d Debt) Validate() error {
	if len(strings.TrimSpace(d.Creditor)) == 0 {
		return ErrEmptyName
	}
	if err := d.TotalAmount.Validate(); err != nil {
		return err
	}
	// Overshoot above the total is tolerated (raw progress just exceeds 100
	// and display clamps it), but a balance below zero is rejected.
	if d.RemainingBalance.IsNegative() {
		return ErrNegativeBalance
	}
	if d.InterestRate < 0 {
		return errors.New("negative interest rate")
	}
	if err := d.DueDate.Validate(); err != nil {
		return err
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	// CurrentAmount may legitimately exceed the target ("exceeded goal").
	if g.CurrentAmount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	return nil
}

func (c CategoryItem) Validate() error {
	if len(strings.TrimSpace(c.Label)) == 0 {
		return errors.New("empty label")
	}
	if !c.Polarity.Valid() {
		return ErrInvalidPolarity
	}
	return nil
}
