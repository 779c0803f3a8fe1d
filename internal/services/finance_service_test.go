package services

import (
	"context"
	"errors"
	"testing"

	"extraque/internal/amqp"
	"extraque/internal/core"
	"extraque/internal/store/memory"
)

type recordingPublisher struct {
	messages []*amqp.ChangeMessage
	fail     bool
}

func (p *recordingPublisher) PublishChange(_ context.Context, msg *amqp.ChangeMessage) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.messages = append(p.messages, msg)
	return nil
}

func newTestService(pub ChangePublisher) (*FinanceService, *memory.Store) {
	s := memory.New(nil)
	return NewFinanceService(s, pub, nil), s
}

func validTransaction() core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: 1500},
		CategoryID:  "Food",
		Description: "Lunch",
		Polarity:    core.Expense,
		Date:        core.NewDate(2024, 2, 10),
	}
}

func TestAddTransactionPublishesChange(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, _ := newTestService(pub)

	created, err := svc.AddTransaction(ctx, validTransaction())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 change message, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Entity != amqp.EntityTransaction || msg.ID != created.ID || msg.Op != amqp.OpCreated {
		t.Fatalf("unexpected change message: %+v", msg)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, _ := newTestService(pub)

	bad := validTransaction()
	bad.Amount = core.Money{Cents: 0}
	if _, err := svc.AddTransaction(ctx, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(pub.messages) != 0 {
		t.Fatal("rejected write must not publish")
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	svc, backend := newTestService(&recordingPublisher{fail: true})

	if _, err := svc.AddTransaction(ctx, validTransaction()); err != nil {
		t.Fatalf("write should succeed despite publish failure: %v", err)
	}
	txns, _ := backend.ListTransactions(ctx)
	if len(txns) != 1 {
		t.Fatalf("expected the write to land, got %d transactions", len(txns))
	}
}

func TestNilPublisherIsStandaloneMode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	if _, err := svc.AddTransaction(ctx, validTransaction()); err != nil {
		t.Fatalf("AddTransaction without publisher: %v", err)
	}
}

func TestUpdateDebtBalanceRejectsNegative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	d, err := svc.AddDebt(ctx, core.Debt{
		Creditor:         "Bank",
		TotalAmount:      core.Money{Cents: 100000},
		RemainingBalance: core.Money{Cents: 60000},
		DueDate:          core.NewDate(2024, 12, 1),
	})
	if err != nil {
		t.Fatalf("AddDebt: %v", err)
	}

	if err := svc.UpdateDebtBalance(ctx, d.ID, core.Money{Cents: -1}); !errors.Is(err, core.ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}
	if err := svc.UpdateDebtBalance(ctx, d.ID, core.Money{Cents: 0}); err != nil {
		t.Fatalf("paying off to zero should be allowed: %v", err)
	}
}

func TestTopUpSavingsGoalCelebratesOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	g, err := svc.AddSavingsGoal(ctx, core.SavingsGoal{
		Title:         "Emergency Fund",
		TargetAmount:  core.Money{Cents: 100000},
		CurrentAmount: core.Money{Cents: 45000},
		Deadline:      core.NewDate(2025, 6, 1),
	})
	if err != nil {
		t.Fatalf("AddSavingsGoal: %v", err)
	}

	steps := []struct {
		name      string
		amount    int64
		celebrate bool
	}{
		{name: "below target", amount: 30000, celebrate: false},
		{name: "crosses target", amount: 30000, celebrate: true},
		{name: "already past target", amount: 10000, celebrate: false},
	}
	for _, step := range steps {
		celebrate, err := svc.TopUpSavingsGoal(ctx, g.ID, core.Money{Cents: step.amount})
		if err != nil {
			t.Fatalf("%s: TopUpSavingsGoal: %v", step.name, err)
		}
		if celebrate != step.celebrate {
			t.Fatalf("%s: celebrate = %v, want %v", step.name, celebrate, step.celebrate)
		}
	}
}

func TestTopUpUnknownGoalIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	celebrate, err := svc.TopUpSavingsGoal(ctx, "no-such-goal", core.Money{Cents: 100})
	if err != nil {
		t.Fatalf("TopUpSavingsGoal: %v", err)
	}
	if celebrate {
		t.Fatal("unknown goal must not celebrate")
	}
}

type staticIdentity struct {
	ident core.Identity
	ok    bool
}

func (r staticIdentity) Current(context.Context) (core.Identity, bool, error) {
	return r.ident, r.ok, nil
}

func TestCreatesStampOwnerFromSession(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(nil)
	resolver := staticIdentity{ident: core.Identity{ID: "user-7"}, ok: true}
	svc := NewFinanceService(backend, nil, resolver)

	tx, err := svc.AddTransaction(ctx, validTransaction())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.OwnerID != "user-7" {
		t.Errorf("transaction owner = %q, want %q", tx.OwnerID, "user-7")
	}

	bill, err := svc.AddBill(ctx, core.Bill{
		Name:       "Internet",
		Amount:     core.Money{Cents: 3999},
		DueDate:    core.NewDate(2024, 5, 1),
		CategoryID: "Utilities",
	})
	if err != nil {
		t.Fatalf("AddBill: %v", err)
	}
	if bill.OwnerID != "user-7" {
		t.Errorf("bill owner = %q, want %q", bill.OwnerID, "user-7")
	}

	debt, err := svc.AddDebt(ctx, core.Debt{
		Creditor:         "Bank",
		TotalAmount:      core.Money{Cents: 50000},
		RemainingBalance: core.Money{Cents: 50000},
		DueDate:          core.NewDate(2025, 1, 1),
	})
	if err != nil {
		t.Fatalf("AddDebt: %v", err)
	}
	if debt.OwnerID != "user-7" {
		t.Errorf("debt owner = %q, want %q", debt.OwnerID, "user-7")
	}

	goal, err := svc.AddSavingsGoal(ctx, core.SavingsGoal{
		Title:        "Vacation",
		TargetAmount: core.Money{Cents: 80000},
		Deadline:     core.NewDate(2025, 7, 1),
	})
	if err != nil {
		t.Fatalf("AddSavingsGoal: %v", err)
	}
	if goal.OwnerID != "user-7" {
		t.Errorf("goal owner = %q, want %q", goal.OwnerID, "user-7")
	}
}

func TestCreateKeepsPresetOwner(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(nil)
	svc := NewFinanceService(backend, nil, staticIdentity{ident: core.Identity{ID: "user-7"}, ok: true})

	tx := validTransaction()
	tx.OwnerID = "user-2"
	created, err := svc.AddTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if created.OwnerID != "user-2" {
		t.Errorf("owner = %q, want preset %q", created.OwnerID, "user-2")
	}
}

func TestCreateWithoutSessionLeavesOwnerEmpty(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(nil)
	svc := NewFinanceService(backend, nil, staticIdentity{})

	created, err := svc.AddTransaction(ctx, validTransaction())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if created.OwnerID != "" {
		t.Errorf("owner = %q, want empty without a session", created.OwnerID)
	}
}

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(nil)
	backend.Seed()
	svc := NewFinanceService(backend, nil, nil)

	snap, cats, err := svc.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Transactions) != 4 || len(snap.Bills) != 2 || len(snap.Debts) != 1 || len(snap.Savings) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d/%d/%d/%d",
			len(snap.Transactions), len(snap.Bills), len(snap.Debts), len(snap.Savings))
	}
	if len(cats) != 13 {
		t.Fatalf("expected 13 categories, got %d", len(cats))
	}
}

func TestDeletePublishesChange(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, _ := newTestService(pub)

	created, _ := svc.AddTransaction(ctx, validTransaction())
	if err := svc.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	last := pub.messages[len(pub.messages)-1]
	if last.Op != amqp.OpDeleted || last.ID != created.ID {
		t.Fatalf("unexpected final message: %+v", last)
	}
}
