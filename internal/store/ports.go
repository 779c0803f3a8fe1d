// Package store defines the record-store ports the rest of the application
// depends on. Identifiers are opaque strings generated by the backend at
// creation time, unique within their collection and never reused. Updates and
// deletes on unknown ids are silent no-ops.
package store

import (
	"context"

	"extraque/internal/core"
)

type (
	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// GetTransaction reports found=false, not an error, for unknown ids.
		GetTransaction(ctx context.Context, id string) (core.Transaction, bool, error)
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) error
		DeleteTransaction(ctx context.Context, id string) error
	}

	BillStore interface {
		ListBills(ctx context.Context) ([]core.Bill, error)
		CreateBill(ctx context.Context, b core.Bill) (core.Bill, error)
		// ToggleBillPaid flips the paid flag in place.
		ToggleBillPaid(ctx context.Context, id string) error
		DeleteBill(ctx context.Context, id string) error
	}

	DebtStore interface {
		ListDebts(ctx context.Context) ([]core.Debt, error)
		CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		// UpdateDebtBalance is the only post-creation mutation a debt supports.
		UpdateDebtBalance(ctx context.Context, id string, balance core.Money) error
		DeleteDebt(ctx context.Context, id string) error
	}

	SavingsStore interface {
		ListSavingsGoals(ctx context.Context) ([]core.SavingsGoal, error)
		CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error)
		UpdateSavingsGoal(ctx context.Context, id string, upd SavingsGoalUpdate) error
		DeleteSavingsGoal(ctx context.Context, id string) error
	}

	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.CategoryItem, error)
		CreateCategory(ctx context.Context, c core.CategoryItem) (core.CategoryItem, error)
		UpdateCategoryLabel(ctx context.Context, id, label string) error
		DeleteCategory(ctx context.Context, id string) error
	}

	// IdentityStore backs the identity provider: credential records plus the
	// single persisted session that survives restarts.
	IdentityStore interface {
		GetUserByEmail(ctx context.Context, email string) (User, bool, error)
		CreateUser(ctx context.Context, u User) (User, error)
		SaveSession(ctx context.Context, userID string) error
		CurrentSession(ctx context.Context) (core.Identity, bool, error)
		ClearSession(ctx context.Context) error
	}

	// Backend is the full record store a binary wires up once.
	Backend interface {
		TransactionStore
		BillStore
		DebtStore
		SavingsStore
		CategoryStore
		IdentityStore
	}
)

// DemoUserID is the fixed id of the seeded demo account, shared between the
// identity seeding and the demo dataset so seed records line up with it.
const DemoUserID = "demo-user"

// User is an identity plus its credential hash. The hash never leaves the
// store/auth boundary.
type User struct {
	core.Identity
	PasswordHash string
}

// TransactionUpdate is a partial update; nil fields are left untouched.
type TransactionUpdate struct {
	Amount      *core.Money
	CategoryID  *string
	Description *string
	Polarity    *core.Polarity
	Date        *core.Date
	Recurring   *bool
}

// SavingsGoalUpdate is a partial update; nil fields are left untouched.
type SavingsGoalUpdate struct {
	Title         *string
	TargetAmount  *core.Money
	CurrentAmount *core.Money
	Deadline      *core.Date
}
