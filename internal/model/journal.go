package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one posting against an account. By convention at most
// one of Debit/Credit is non-zero, but upstream data sometimes carries
// both; categorization tolerates that.
type JournalLine struct {
	AccountID   int
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
}

// JournalEntry groups the lines posted together. Date is the zero time
// when the source date was missing or unparseable; such entries still
// count toward trial-balance totals but never land in a day bucket.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Description string
	Lines       []JournalLine
}

// HasDate reports whether the entry carries a usable posting date.
func (e JournalEntry) HasDate() bool {
	return !e.Date.IsZero()
}

// TotalDebits sums the debit side of all lines.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of all lines.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// TransactionRef is the capped per-day drill-down reference kept on a
// day bucket.
type TransactionRef struct {
	EntryID     string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}
