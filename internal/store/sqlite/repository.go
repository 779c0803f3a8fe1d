// Package sqlite is the durable store.Backend, one file on disk per install.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"extraque/internal/core"
	"extraque/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db    *sql.DB
	newID store.IDGenerator
}

var _ store.Backend = (*Repository)(nil)

// NewRepository opens (creating if needed) the database at dbPath and runs
// migrations. A nil generator falls back to store.NewID.
func NewRepository(dbPath string, newID store.IDGenerator) (*Repository, error) {
	if newID == nil {
		newID = store.NewID
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, newID: newID}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Transactions

func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, amount_cents, category_id, description, polarity, date, recurring
		FROM transactions ORDER BY date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) GetTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, amount_cents, category_id, description, polarity, date, recurring
		FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, err
	}
	return t, true, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = r.newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, owner_id, amount_cents, category_id, description, polarity, date, recurring)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Amount.Cents, t.CategoryID, t.Description, string(t.Polarity), t.Date.String(), boolToInt(t.Recurring))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, id string, upd store.TransactionUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.Amount != nil {
		sets, args = append(sets, "amount_cents = ?"), append(args, upd.Amount.Cents)
	}
	if upd.CategoryID != nil {
		sets, args = append(sets, "category_id = ?"), append(args, *upd.CategoryID)
	}
	if upd.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *upd.Description)
	}
	if upd.Polarity != nil {
		sets, args = append(sets, "polarity = ?"), append(args, string(*upd.Polarity))
	}
	if upd.Date != nil {
		sets, args = append(sets, "date = ?"), append(args, upd.Date.String())
	}
	if upd.Recurring != nil {
		sets, args = append(sets, "recurring = ?"), append(args, boolToInt(*upd.Recurring))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Bills

func (r *Repository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, amount_cents, due_date, category_id, paid
		FROM bills ORDER BY due_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []core.Bill
	for rows.Next() {
		var (
			b       core.Bill
			dueDate string
			paid    int
		)
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Amount.Cents, &dueDate, &b.CategoryID, &paid); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if b.DueDate, err = core.ParseDate(dueDate); err != nil {
			return nil, fmt.Errorf("parse bill due date %q: %w", dueDate, err)
		}
		b.Paid = paid != 0
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) CreateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	b.ID = r.newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bills (id, owner_id, name, amount_cents, due_date, category_id, paid)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Name, b.Amount.Cents, b.DueDate.String(), b.CategoryID, boolToInt(b.Paid))
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	return b, nil
}

func (r *Repository) ToggleBillPaid(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bills SET paid = CASE paid WHEN 0 THEN 1 ELSE 0 END WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("toggle bill paid: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBill(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}

// Debts

func (r *Repository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, creditor, total_cents, remaining_cents, interest_rate, due_date
		FROM debts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		var (
			d       core.Debt
			dueDate string
		)
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Creditor, &d.TotalAmount.Cents, &d.RemainingBalance.Cents, &d.InterestRate, &dueDate); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		if d.DueDate, err = core.ParseDate(dueDate); err != nil {
			return nil, fmt.Errorf("parse debt due date %q: %w", dueDate, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	d.ID = r.newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (id, owner_id, creditor, total_cents, remaining_cents, interest_rate, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OwnerID, d.Creditor, d.TotalAmount.Cents, d.RemainingBalance.Cents, d.InterestRate, d.DueDate.String())
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return d, nil
}

func (r *Repository) UpdateDebtBalance(ctx context.Context, id string, balance core.Money) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE debts SET remaining_cents = ? WHERE id = ?", balance.Cents, id)
	if err != nil {
		return fmt.Errorf("update debt balance: %w", err)
	}
	return nil
}

func (r *Repository) DeleteDebt(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM debts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}

// Savings goals

func (r *Repository) ListSavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, target_cents, current_cents, deadline
		FROM savings_goals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		var (
			g        core.SavingsGoal
			deadline string
		)
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &deadline); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		if g.Deadline, err = core.ParseDate(deadline); err != nil {
			return nil, fmt.Errorf("parse goal deadline %q: %w", deadline, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repository) CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	g.ID = r.newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO savings_goals (id, owner_id, title, target_cents, current_cents, deadline)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.OwnerID, g.Title, g.TargetAmount.Cents, g.CurrentAmount.Cents, g.Deadline.String())
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("create savings goal: %w", err)
	}
	return g, nil
}

func (r *Repository) UpdateSavingsGoal(ctx context.Context, id string, upd store.SavingsGoalUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *upd.Title)
	}
	if upd.TargetAmount != nil {
		sets, args = append(sets, "target_cents = ?"), append(args, upd.TargetAmount.Cents)
	}
	if upd.CurrentAmount != nil {
		sets, args = append(sets, "current_cents = ?"), append(args, upd.CurrentAmount.Cents)
	}
	if upd.Deadline != nil {
		sets, args = append(sets, "deadline = ?"), append(args, upd.Deadline.String())
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE savings_goals SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	return nil
}

func (r *Repository) DeleteSavingsGoal(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return nil
}

// Categories

func (r *Repository) ListCategories(ctx context.Context) ([]core.CategoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, label, color, polarity FROM categories ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryItem
	for rows.Next() {
		var (
			c        core.CategoryItem
			polarity string
		)
		if err := rows.Scan(&c.ID, &c.Label, &c.Color, &polarity); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Polarity = core.Polarity(polarity)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, c core.CategoryItem) (core.CategoryItem, error) {
	if c.ID == "" {
		c.ID = r.newID()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (id, label, color, polarity) VALUES (?, ?, ?, ?)",
		c.ID, c.Label, c.Color, string(c.Polarity))
	if err != nil {
		return core.CategoryItem{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (r *Repository) UpdateCategoryLabel(ctx context.Context, id, label string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE categories SET label = ? WHERE id = ?", label, id); err != nil {
		return fmt.Errorf("update category label: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Identity

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (store.User, bool, error) {
	var (
		u       store.User
		premium int
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, name, premium, password_hash FROM users WHERE email = ?", email).
		Scan(&u.ID, &u.Email, &u.Name, &premium, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return store.User{}, false, nil
	}
	if err != nil {
		return store.User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	u.Premium = premium != 0
	return u, true, nil
}

func (r *Repository) CreateUser(ctx context.Context, u store.User) (store.User, error) {
	if u.ID == "" {
		u.ID = r.newID()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, premium, password_hash) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Name, boolToInt(u.Premium), u.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *Repository) SaveSession(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET user_id = excluded.user_id`, userID)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *Repository) CurrentSession(ctx context.Context) (core.Identity, bool, error) {
	var (
		ident   core.Identity
		premium int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.name, u.premium
		FROM session s JOIN users u ON u.id = s.user_id
		WHERE s.id = 1`).
		Scan(&ident.ID, &ident.Email, &ident.Name, &premium)
	if err == sql.ErrNoRows {
		return core.Identity{}, false, nil
	}
	if err != nil {
		return core.Identity{}, false, fmt.Errorf("load session: %w", err)
	}
	ident.Premium = premium != 0
	return ident, true, nil
}

func (r *Repository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		polarity  string
		date      string
		recurring int
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Amount.Cents, &t.CategoryID, &t.Description, &polarity, &date, &recurring)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Polarity = core.Polarity(polarity)
	if t.Date, err = core.ParseDate(date); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	t.Recurring = recurring != 0
	return t, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
