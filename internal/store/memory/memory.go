// Package memory provides an in-process store.Backend. It backs tests and
// the standalone demo mode, seeded with a small starter dataset.
package memory

import (
	"context"
	"strings"
	"sync"

	"extraque/internal/core"
	"extraque/internal/store"
)

// Store keeps all collections in memory behind a single mutex. Collections
// preserve insertion order.
type Store struct {
	mu sync.Mutex

	newID store.IDGenerator

	transactions []core.Transaction
	bills        []core.Bill
	debts        []core.Debt
	savings      []core.SavingsGoal
	categories   []core.CategoryItem

	users   []store.User
	session string
}

var _ store.Backend = (*Store)(nil)

// New returns an empty store. A nil generator falls back to store.NewID.
func New(newID store.IDGenerator) *Store {
	if newID == nil {
		newID = store.NewID
	}
	return &Store{newID: newID}
}

// Seed loads the starter dataset: the default category set plus a handful of
// records so a fresh install is not a blank page.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = append(s.categories, core.DefaultCategories()...)
	s.transactions = append(s.transactions,
		seedTx("tx-1", "Salary", "Income", core.Income, 250000, "2023-10-01", true),
		seedTx("tx-2", "Monthly Rent", "Housing", core.Expense, 120000, "2023-10-02", true),
		seedTx("tx-3", "Grocery Store", "Food", core.Expense, 8000, "2023-10-05", false),
		seedTx("tx-4", "Electricity Bill", "Utilities", core.Expense, 15000, "2023-10-10", true),
	)
	s.bills = append(s.bills,
		core.Bill{ID: "bill-1", OwnerID: store.DemoUserID, Name: "Netflix", Amount: core.Money{Cents: 1599}, DueDate: mustDate("2023-11-15"), CategoryID: "Entertainment"},
		core.Bill{ID: "bill-2", OwnerID: store.DemoUserID, Name: "Gym Membership", Amount: core.Money{Cents: 4500}, DueDate: mustDate("2023-11-01"), CategoryID: "Healthcare", Paid: true},
	)
	s.debts = append(s.debts, core.Debt{
		ID:               "debt-1",
		OwnerID:          store.DemoUserID,
		Creditor:         "Student Loan",
		TotalAmount:      core.Money{Cents: 1500000},
		RemainingBalance: core.Money{Cents: 1240000},
		InterestRate:     4.5,
		DueDate:          mustDate("2023-11-05"),
	})
	s.savings = append(s.savings, core.SavingsGoal{
		ID:            "goal-1",
		OwnerID:       store.DemoUserID,
		Title:         "New Laptop",
		TargetAmount:  core.Money{Cents: 250000},
		CurrentAmount: core.Money{Cents: 120000},
		Deadline:      mustDate("2024-03-01"),
	})
}

func seedTx(id, desc, category string, polarity core.Polarity, cents int64, date string, recurring bool) core.Transaction {
	return core.Transaction{
		ID:          id,
		OwnerID:     store.DemoUserID,
		Amount:      core.Money{Cents: cents},
		CategoryID:  category,
		Description: desc,
		Polarity:    polarity,
		Date:        mustDate(date),
		Recurring:   recurring,
	}
}

func mustDate(s string) core.Date {
	d, err := core.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Transactions

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true, nil
		}
	}
	return core.Transaction{}, false, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.newID()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id string, upd store.TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		t := &s.transactions[i]
		if upd.Amount != nil {
			t.Amount = *upd.Amount
		}
		if upd.CategoryID != nil {
			t.CategoryID = *upd.CategoryID
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Polarity != nil {
			t.Polarity = *upd.Polarity
		}
		if upd.Date != nil {
			t.Date = *upd.Date
		}
		if upd.Recurring != nil {
			t.Recurring = *upd.Recurring
		}
		return nil
	}
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = deleteByID(s.transactions, id, func(t core.Transaction) string { return t.ID })
	return nil
}

// Bills

func (s *Store) ListBills(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Bill, len(s.bills))
	copy(out, s.bills)
	return out, nil
}

func (s *Store) CreateBill(_ context.Context, b core.Bill) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.newID()
	s.bills = append(s.bills, b)
	return b, nil
}

func (s *Store) ToggleBillPaid(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills[i].Paid = !s.bills[i].Paid
			break
		}
	}
	return nil
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = deleteByID(s.bills, id, func(b core.Bill) string { return b.ID })
	return nil
}

// Debts

func (s *Store) ListDebts(_ context.Context) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Debt, len(s.debts))
	copy(out, s.debts)
	return out, nil
}

func (s *Store) CreateDebt(_ context.Context, d core.Debt) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.newID()
	s.debts = append(s.debts, d)
	return d, nil
}

func (s *Store) UpdateDebtBalance(_ context.Context, id string, balance core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.debts {
		if s.debts[i].ID == id {
			s.debts[i].RemainingBalance = balance
			break
		}
	}
	return nil
}

func (s *Store) DeleteDebt(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debts = deleteByID(s.debts, id, func(d core.Debt) string { return d.ID })
	return nil
}

// Savings goals

func (s *Store) ListSavingsGoals(_ context.Context) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.SavingsGoal, len(s.savings))
	copy(out, s.savings)
	return out, nil
}

func (s *Store) CreateSavingsGoal(_ context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.newID()
	s.savings = append(s.savings, g)
	return g, nil
}

func (s *Store) UpdateSavingsGoal(_ context.Context, id string, upd store.SavingsGoalUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.savings {
		if s.savings[i].ID != id {
			continue
		}
		g := &s.savings[i]
		if upd.Title != nil {
			g.Title = *upd.Title
		}
		if upd.TargetAmount != nil {
			g.TargetAmount = *upd.TargetAmount
		}
		if upd.CurrentAmount != nil {
			g.CurrentAmount = *upd.CurrentAmount
		}
		if upd.Deadline != nil {
			g.Deadline = *upd.Deadline
		}
		return nil
	}
	return nil
}

func (s *Store) DeleteSavingsGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savings = deleteByID(s.savings, id, func(g core.SavingsGoal) string { return g.ID })
	return nil
}

// Categories

func (s *Store) ListCategories(_ context.Context) ([]core.CategoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.CategoryItem, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.CategoryItem) (core.CategoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.newID()
	}
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) UpdateCategoryLabel(_ context.Context, id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Label = label
			break
		}
	}
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = deleteByID(s.categories, id, func(c core.CategoryItem) string { return c.ID })
	return nil
}

// Identity

func (s *Store) GetUserByEmail(_ context.Context, email string) (store.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return store.User{}, false, nil
}

func (s *Store) CreateUser(_ context.Context, u store.User) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.newID()
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) SaveSession(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = userID
	return nil
}

func (s *Store) CurrentSession(_ context.Context) (core.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == "" {
		return core.Identity{}, false, nil
	}
	for _, u := range s.users {
		if u.ID == s.session {
			return u.Identity, true, nil
		}
	}
	return core.Identity{}, false, nil
}

func (s *Store) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
	return nil
}

func deleteByID[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}
