package analytics

import (
	"time"

	"extraque/internal/core"
)

// BillSummary aggregates the paid/unpaid state of all bills.
type BillSummary struct {
	UnpaidTotal core.Money
	PaidTotal   core.Money
	UnpaidCount int
}

// BillOverdue reports whether a bill's due date has passed without payment.
// Comparison is against today's calendar date; a bill due today is not
// overdue yet.
func BillOverdue(b core.Bill, now time.Time) bool {
	return !b.Paid && b.DueDate.Before(core.DateOf(now).Time)
}

// BillUpcoming reports whether an unpaid bill is still due today or later.
func BillUpcoming(b core.Bill, now time.Time) bool {
	return !b.Paid && !b.DueDate.Before(core.DateOf(now).Time)
}

// NextDue returns the upcoming bill with the smallest due date. Ties keep the
// original collection order. The second return is false when no bill is
// upcoming ("all clear").
func NextDue(bills []core.Bill, now time.Time) (core.Bill, bool) {
	var next core.Bill
	found := false
	for _, b := range bills {
		if !BillUpcoming(b, now) {
			continue
		}
		if !found || b.DueDate.Before(next.DueDate.Time) {
			next = b
			found = true
		}
	}
	return next, found
}

// SummarizeBills totals paid and unpaid amounts across all bills.
func SummarizeBills(bills []core.Bill) BillSummary {
	var s BillSummary
	for _, b := range bills {
		if b.Paid {
			s.PaidTotal.Cents += b.Amount.Cents
		} else {
			s.UnpaidTotal.Cents += b.Amount.Cents
			s.UnpaidCount++
		}
	}
	return s
}
