// Package services provides business logic and orchestration over the record
// store, the change-event pipeline and the derived analytics.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"extraque/internal/amqp"
	"extraque/internal/analytics"
	"extraque/internal/core"
	"extraque/internal/store"
)

// ChangePublisher emits change notifications after successful writes.
// *amqp.Client satisfies it.
type ChangePublisher interface {
	PublishChange(ctx context.Context, msg *amqp.ChangeMessage) error
}

// IdentityResolver reports the logged-in identity. *auth.Service satisfies it.
type IdentityResolver interface {
	Current(ctx context.Context) (core.Identity, bool, error)
}

// FinanceService validates writes, stamps record ownership, applies writes to
// the store and notifies the change pipeline. Publish failures never fail the
// request; the local write already succeeded.
type FinanceService struct {
	backend  store.Backend
	events   ChangePublisher
	identity IdentityResolver
}

// NewFinanceService builds the service. A nil publisher disables change
// notifications (standalone mode); a nil resolver leaves records unowned
// unless the caller pre-sets an owner.
func NewFinanceService(backend store.Backend, events ChangePublisher, identity IdentityResolver) *FinanceService {
	return &FinanceService{backend: backend, events: events, identity: identity}
}

// ownerID resolves the owner for a new record from the active session.
func (s *FinanceService) ownerID(ctx context.Context) string {
	if s.identity == nil {
		return ""
	}
	ident, ok, err := s.identity.Current(ctx)
	if err != nil || !ok {
		return ""
	}
	return ident.ID
}

// LoadSnapshot fetches all collections concurrently, plus the category
// catalog, as one consistent read for the dashboard.
func (s *FinanceService) LoadSnapshot(ctx context.Context) (analytics.Snapshot, []core.CategoryItem, error) {
	var (
		snap analytics.Snapshot
		cats []core.CategoryItem
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Transactions, err = s.backend.ListTransactions(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Bills, err = s.backend.ListBills(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Debts, err = s.backend.ListDebts(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Savings, err = s.backend.ListSavingsGoals(ctx)
		return err
	})
	g.Go(func() (err error) {
		cats, err = s.backend.ListCategories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Snapshot{}, nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, cats, nil
}

// Transactions

func (s *FinanceService) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.OwnerID == "" {
		t.OwnerID = s.ownerID(ctx)
	}
	created, err := s.backend.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.publishChange(ctx, amqp.EntityTransaction, created.ID, amqp.OpCreated)
	return created, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id string, upd store.TransactionUpdate) error {
	if upd.Amount != nil {
		if err := upd.Amount.Validate(); err != nil {
			return err
		}
	}
	if upd.Polarity != nil && !upd.Polarity.Valid() {
		return core.ErrInvalidPolarity
	}
	if upd.Date != nil {
		if err := upd.Date.Validate(); err != nil {
			return err
		}
	}
	if err := s.backend.UpdateTransaction(ctx, id, upd); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.publishChange(ctx, amqp.EntityTransaction, id, amqp.OpUpdated)
	return nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.backend.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publishChange(ctx, amqp.EntityTransaction, id, amqp.OpDeleted)
	return nil
}

// Bills

func (s *FinanceService) AddBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	if b.OwnerID == "" {
		b.OwnerID = s.ownerID(ctx)
	}
	created, err := s.backend.CreateBill(ctx, b)
	if err != nil {
		return core.Bill{}, fmt.Errorf("save bill: %w", err)
	}
	s.publishChange(ctx, amqp.EntityBill, created.ID, amqp.OpCreated)
	return created, nil
}

func (s *FinanceService) ToggleBillPaid(ctx context.Context, id string) error {
	if err := s.backend.ToggleBillPaid(ctx, id); err != nil {
		return fmt.Errorf("toggle bill: %w", err)
	}
	s.publishChange(ctx, amqp.EntityBill, id, amqp.OpUpdated)
	return nil
}

func (s *FinanceService) DeleteBill(ctx context.Context, id string) error {
	if err := s.backend.DeleteBill(ctx, id); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	s.publishChange(ctx, amqp.EntityBill, id, amqp.OpDeleted)
	return nil
}

// Debts

func (s *FinanceService) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	if d.OwnerID == "" {
		d.OwnerID = s.ownerID(ctx)
	}
	created, err := s.backend.CreateDebt(ctx, d)
	if err != nil {
		return core.Debt{}, fmt.Errorf("save debt: %w", err)
	}
	s.publishChange(ctx, amqp.EntityDebt, created.ID, amqp.OpCreated)
	return created, nil
}

// UpdateDebtBalance records a repayment (or correction). The balance may
// reach zero but never go below it.
func (s *FinanceService) UpdateDebtBalance(ctx context.Context, id string, balance core.Money) error {
	if balance.IsNegative() {
		return core.ErrNegativeBalance
	}
	if err := s.backend.UpdateDebtBalance(ctx, id, balance); err != nil {
		return fmt.Errorf("update debt balance: %w", err)
	}
	s.publishChange(ctx, amqp.EntityDebt, id, amqp.OpUpdated)
	return nil
}

func (s *FinanceService) DeleteDebt(ctx context.Context, id string) error {
	if err := s.backend.DeleteDebt(ctx, id); err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	s.publishChange(ctx, amqp.EntityDebt, id, amqp.OpDeleted)
	return nil
}

// Savings goals

func (s *FinanceService) AddSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	if g.OwnerID == "" {
		g.OwnerID = s.ownerID(ctx)
	}
	created, err := s.backend.CreateSavingsGoal(ctx, g)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("save savings goal: %w", err)
	}
	s.publishChange(ctx, amqp.EntitySavingsGoal, created.ID, amqp.OpCreated)
	return created, nil
}

func (s *FinanceService) UpdateSavingsGoal(ctx context.Context, id string, upd store.SavingsGoalUpdate) error {
	if upd.TargetAmount != nil {
		if err := upd.TargetAmount.Validate(); err != nil {
			return err
		}
	}
	if upd.CurrentAmount != nil && upd.CurrentAmount.IsNegative() {
		return core.ErrInvalidAmount
	}
	if err := s.backend.UpdateSavingsGoal(ctx, id, upd); err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	s.publishChange(ctx, amqp.EntitySavingsGoal, id, amqp.OpUpdated)
	return nil
}

// TopUpSavingsGoal adds amount to a goal's saved total. celebrate is true
// exactly when this top-up carries the goal across its target; further
// top-ups past the target stay false.
func (s *FinanceService) TopUpSavingsGoal(ctx context.Context, id string, amount core.Money) (celebrate bool, err error) {
	if err := amount.Validate(); err != nil {
		return false, err
	}

	goals, err := s.backend.ListSavingsGoals(ctx)
	if err != nil {
		return false, fmt.Errorf("load savings goals: %w", err)
	}
	for _, g := range goals {
		if g.ID != id {
			continue
		}
		before := g.CurrentAmount
		after := core.Money{Cents: before.Cents + amount.Cents}
		upd := store.SavingsGoalUpdate{CurrentAmount: &after}
		if err := s.backend.UpdateSavingsGoal(ctx, id, upd); err != nil {
			return false, fmt.Errorf("update savings goal: %w", err)
		}
		s.publishChange(ctx, amqp.EntitySavingsGoal, id, amqp.OpUpdated)
		return analytics.CrossedTarget(before, after, g.TargetAmount), nil
	}
	// Unknown goal: no-op, consistent with the other write paths.
	return false, nil
}

func (s *FinanceService) DeleteSavingsGoal(ctx context.Context, id string) error {
	if err := s.backend.DeleteSavingsGoal(ctx, id); err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	s.publishChange(ctx, amqp.EntitySavingsGoal, id, amqp.OpDeleted)
	return nil
}

func (s *FinanceService) publishChange(ctx context.Context, entity, id, op string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, amqp.NewChangeMessage(entity, id, op)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"entity", entity,
			"id", id,
			"op", op,
			"error", err)
		// Don't fail the request - the write already succeeded locally.
	}
}
