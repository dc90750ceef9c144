// Package trialbalance performs the global debit/credit integrity
// check over a journal. The check is aggregate only: an individual
// unbalanced entry is never rejected, the discrepancy just shows up in
// the report.
package trialbalance

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Report holds the aggregate totals and the balanced flag. It is a
// non-fatal, user-visible result; downstream reporting renders either
// way.
type Report struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	// Difference is TotalDebits - TotalCredits, signed.
	Difference decimal.Decimal
	Balanced   bool
}

var defaultTolerance = decimal.NewFromFloat(0.01)

// Check sums debit and credit amounts across every line of every
// entry, including undated ones. Balanced means the absolute
// difference is below tolerance (0.01 when tolerance is not positive).
func Check(entries []model.JournalEntry, tolerance decimal.Decimal) Report {
	if !tolerance.IsPositive() {
		tolerance = defaultTolerance
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, e := range entries {
		for _, l := range e.Lines {
			totalDebits = totalDebits.Add(l.Debit)
			totalCredits = totalCredits.Add(l.Credit)
		}
	}

	diff := totalDebits.Sub(totalCredits)
	return Report{
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Difference:   diff,
		Balanced:     diff.Abs().LessThan(tolerance),
	}
}
