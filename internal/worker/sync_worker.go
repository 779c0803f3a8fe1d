// Package worker mirrors transaction changes into the external ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"extraque/internal/amqp"
	"extraque/internal/core"
	"extraque/internal/store"
)

// LedgerAppender is satisfied by the Google Sheets export client.
type LedgerAppender interface {
	AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
}

// SyncWorker consumes change messages and exports transaction records to the
// ledger. Other entities and deletions are acknowledged without action; the
// ledger is append-only.
type SyncWorker struct {
	transactions store.TransactionStore
	ledger       LedgerAppender
}

func NewSyncWorker(transactions store.TransactionStore, ledger LedgerAppender) *SyncWorker {
	return &SyncWorker{transactions: transactions, ledger: ledger}
}

// HandleChange processes a single change message. Returning an error requeues
// the message, so unrecoverable cases (record gone, wrong entity) return nil.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	if msg.Entity != amqp.EntityTransaction {
		slog.DebugContext(ctx, "Ignoring non-transaction change", "entity", msg.Entity, "id", msg.ID)
		return nil
	}
	if msg.Op == amqp.OpDeleted {
		slog.DebugContext(ctx, "Ignoring delete, ledger is append-only", "id", msg.ID)
		return nil
	}

	t, found, err := w.transactions.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction %s: %w", msg.ID, err)
	}
	if !found {
		// Deleted between publish and consume.
		slog.WarnContext(ctx, "Transaction vanished before export", "id", msg.ID)
		return nil
	}

	ref, err := w.ledger.AppendTransaction(ctx, t)
	if err != nil {
		return fmt.Errorf("append transaction %s to ledger: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Exported transaction to ledger",
		"id", msg.ID,
		"op", msg.Op,
		"row", ref)
	return nil
}
