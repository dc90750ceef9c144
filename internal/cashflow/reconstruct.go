package cashflow

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/balancefeed"
)

// DailyBalance is the reconstructed opening/closing position for one
// day. Derived on every run, never persisted.
type DailyBalance struct {
	Date        string
	OpeningCash decimal.Decimal
	ClosingCash decimal.Decimal
	OpeningBank decimal.Decimal
	ClosingBank decimal.Decimal
	NetCashFlow decimal.Decimal
	// HasRealData is true when the day's values came from the
	// authoritative feed rather than carry-forward.
	HasRealData bool
}

// Reconstructor walks a bucket series chronologically and computes
// per-day balances, preferring the authoritative feed when it has a
// record for the day.
type Reconstructor struct {
	src balancefeed.Source // nil = no feed configured
	log zerolog.Logger
}

// NewReconstructor creates a Reconstructor. src may be nil.
func NewReconstructor(src balancefeed.Source, log zerolog.Logger) *Reconstructor {
	return &Reconstructor{src: src, log: log}
}

// Reconstruct computes the balance series for buckets (ordered
// descending, as BuildSeries returns them) and returns results in the
// same order.
//
// For each day: an authoritative feed hit supplies opening/closing
// directly; otherwise opening is the previous day's closing (zero at
// the start of the series) and closing is opening + inflows − outflows.
// Authoritative data propagates forward only through that closing
// hand-off — earlier days are never re-derived. A feed lookup failure
// degrades the single affected day to carry-forward.
func (r *Reconstructor) Reconstruct(ctx context.Context, buckets []DayBucket) []DailyBalance {
	out := make([]DailyBalance, len(buckets))
	prevCashClose := decimal.Zero
	prevBankClose := decimal.Zero

	// Oldest day is last in the descending series.
	for i := len(buckets) - 1; i >= 0; i-- {
		bkt := buckets[i]
		db := DailyBalance{
			Date:        bkt.Date,
			NetCashFlow: bkt.NetCashFlow(),
		}

		var auth balancefeed.DayBalance
		var ok bool
		if r.src != nil {
			var err error
			auth, ok, err = r.src.Lookup(ctx, bkt.Date)
			if err != nil {
				r.log.Warn().Str("date", bkt.Date).Err(err).
					Msg("balance feed lookup failed, falling back to carry-forward")
				ok = false
			}
		}

		if ok {
			db.OpeningCash = auth.OpeningCash
			db.ClosingCash = auth.ClosingCash
			db.OpeningBank = auth.OpeningBank
			db.ClosingBank = auth.ClosingBank
			db.HasRealData = true
		} else {
			db.OpeningCash = prevCashClose
			db.ClosingCash = prevCashClose.Add(bkt.CashInflows).Sub(bkt.CashOutflows)
			db.OpeningBank = prevBankClose
			db.ClosingBank = prevBankClose.Add(bkt.BankInflows).Sub(bkt.BankOutflows)
		}

		prevCashClose = db.ClosingCash
		prevBankClose = db.ClosingBank
		out[i] = db
	}
	return out
}
