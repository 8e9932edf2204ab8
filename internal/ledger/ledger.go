// Package ledger holds the pure billing computations: payment status
// derivation, outstanding balances and per-student/per-class summaries.
// Every function is a side-effect-free fold over its input; results are
// order-independent since the reductions are commutative sums.
package ledger

import "github.com/abuzarban/school-admin/internal/models"

// DeriveStatus classifies a payment or invoice from its amounts:
// amount_paid >= amount is paid, a positive partial amount is partial,
// anything else is unpaid.
func DeriveStatus(amount, amountPaid float64) models.PaymentStatus {
	switch {
	case amountPaid >= amount:
		return models.StatusPaid
	case amountPaid > 0:
		return models.StatusPartial
	default:
		return models.StatusUnpaid
	}
}

// Outstanding returns the unpaid remainder, clamped at zero so that
// overpayments never produce a negative balance.
func Outstanding(amount, amountPaid float64) float64 {
	if remaining := amount - amountPaid; remaining > 0 {
		return remaining
	}
	return 0
}

// Summarize reduces a student's payments into paid and outstanding
// totals, bucketed by category type. Any type other than compulsory
// counts as optional.
func Summarize(payments []models.Payment) models.StudentSummary {
	var summary models.StudentSummary
	for _, p := range payments {
		paid := p.AmountPaid
		outstanding := Outstanding(p.Amount, p.AmountPaid)

		summary.TotalPaid += paid
		summary.TotalOutstanding += outstanding

		if p.Type == models.CategoryCompulsory {
			summary.CompulsoryPaid += paid
			summary.CompulsoryOutstanding += outstanding
		} else {
			summary.OptionalPaid += paid
			summary.OptionalOutstanding += outstanding
		}
	}
	return summary
}

// Totals reduces every payment in the store into the dashboard-wide
// paid/outstanding pair.
func Totals(payments []models.Payment) models.LedgerTotals {
	var totals models.LedgerTotals
	for _, p := range payments {
		totals.TotalPaid += p.AmountPaid
		totals.TotalOutstanding += Outstanding(p.Amount, p.AmountPaid)
	}
	return totals
}

// ClassStudentCounts groups students by class and counts them. Class
// read paths consume this projection; the count is never persisted.
func ClassStudentCounts(students []models.Student) map[int64]int {
	counts := make(map[int64]int, len(students))
	for _, s := range students {
		counts[s.ClassID]++
	}
	return counts
}
