package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"extraque/internal/core"
	"extraque/internal/store"
)

// RecurringProcessor materializes recurring transaction templates. A template
// is any transaction with the recurring flag set; each due run creates a
// plain copy dated today. The copy itself is never treated as a template.
type RecurringProcessor struct {
	transactions store.TransactionStore
	finance      *FinanceService
	frequency    core.Period
}

// NewRecurringProcessor builds a processor. Recurring templates repeat
// monthly unless configured otherwise.
func NewRecurringProcessor(transactions store.TransactionStore, finance *FinanceService, frequency core.Period) *RecurringProcessor {
	if frequency == "" {
		frequency = core.PeriodMonthly
	}
	return &RecurringProcessor{
		transactions: transactions,
		finance:      finance,
		frequency:    frequency,
	}
}

// ProcessDue materializes every template that is due as of now and returns
// how many occurrences were created. Individual template failures are logged
// and skipped so one bad template does not block the rest.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.transactions == nil || p.finance == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	checker, err := GetDuenessChecker(p.frequency)
	if err != nil {
		return 0, err
	}

	all, err := p.transactions.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list transactions: %w", err)
	}

	var templates []core.Transaction
	for _, t := range all {
		if t.Recurring {
			templates = append(templates, t)
		}
	}

	slog.InfoContext(ctx, "Processing recurring templates",
		"total_templates", len(templates),
		"processing_date", now.Format("2006-01-02"))

	processed := 0
	for _, tmpl := range templates {
		lastExecution := lastOccurrence(all, tmpl)
		if !checker.IsDue(lastExecution, now, tmpl.Date) {
			continue
		}

		occurrence := core.Transaction{
			OwnerID:     tmpl.OwnerID,
			Amount:      tmpl.Amount,
			CategoryID:  tmpl.CategoryID,
			Description: tmpl.Description,
			Polarity:    tmpl.Polarity,
			Date:        core.DateOf(now),
			Recurring:   false,
		}
		if _, err := p.finance.AddTransaction(ctx, occurrence); err != nil {
			slog.ErrorContext(ctx, "Failed to materialize recurring template",
				"template_id", tmpl.ID,
				"description", tmpl.Description,
				"error", err)
			continue
		}

		processed++
		slog.InfoContext(ctx, "Created occurrence from recurring template",
			"template_id", tmpl.ID,
			"description", tmpl.Description,
			"amount_cents", tmpl.Amount.Cents,
			"frequency", p.frequency)
	}

	slog.InfoContext(ctx, "Recurring template processing complete",
		"processed", processed,
		"total_checked", len(templates))

	return processed, nil
}

// lastOccurrence finds the most recent materialized copy of a template. The
// template's own date counts as the first occurrence, so a template created
// this month does not immediately duplicate itself.
func lastOccurrence(all []core.Transaction, tmpl core.Transaction) time.Time {
	last := tmpl.Date.Time
	for _, t := range all {
		if t.Recurring || t.ID == tmpl.ID {
			continue
		}
		if t.Description != tmpl.Description ||
			t.CategoryID != tmpl.CategoryID ||
			t.Amount != tmpl.Amount ||
			t.Polarity != tmpl.Polarity {
			continue
		}
		if t.Date.After(last) {
			last = t.Date.Time
		}
	}
	return last
}
