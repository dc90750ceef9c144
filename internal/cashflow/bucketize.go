package cashflow

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/classify"
	"github.com/cleared-dev/tally/internal/model"
)

// DateFormat is the ISO day key used throughout the timeline.
const DateFormat = "2006-01-02"

const (
	defaultWindowDays = 90
	defaultTxnCap     = 50
)

// DayBucket holds one calendar day's inflow/outflow sums and a capped
// list of contributing transactions. Buckets exist for every date in
// the window, even empty ones, so the series has no gaps.
type DayBucket struct {
	Date         string // "2006-01-02"
	CashInflows  decimal.Decimal
	CashOutflows decimal.Decimal
	BankInflows  decimal.Decimal
	BankOutflows decimal.Decimal
	Transactions []model.TransactionRef
}

// NetCashFlow is total inflows minus total outflows across cash and bank.
func (b DayBucket) NetCashFlow() decimal.Decimal {
	return b.CashInflows.Add(b.BankInflows).Sub(b.CashOutflows).Sub(b.BankOutflows)
}

// Bucketizer folds journal lines into a fixed-length day series.
type Bucketizer struct {
	index      *classify.Index
	windowDays int
	txnCap     int
}

// NewBucketizer creates a Bucketizer. Non-positive windowDays or
// txnCap fall back to the defaults (90 days, 50/day).
func NewBucketizer(index *classify.Index, windowDays, txnCap int) *Bucketizer {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	if txnCap <= 0 {
		txnCap = defaultTxnCap
	}
	return &Bucketizer{index: index, windowDays: windowDays, txnCap: txnCap}
}

// BuildSeries constructs one bucket per calendar date in
// [today-window, today] inclusive and folds every dated line into its
// day. Undated entries and entries outside the window are skipped
// silently. The returned series is sorted descending by date for
// display; reconstruction walks it ascending internally.
func (b *Bucketizer) BuildSeries(entries []model.JournalEntry, today time.Time) []DayBucket {
	today = truncateDay(today)
	start := today.AddDate(0, 0, -b.windowDays)

	byDate := make(map[string]*DayBucket, b.windowDays+1)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateFormat)
		byDate[key] = &DayBucket{Date: key}
	}

	for _, entry := range entries {
		if !entry.HasDate() {
			continue
		}
		bucket, ok := byDate[truncateDay(entry.Date).Format(DateFormat)]
		if !ok {
			continue
		}

		for _, line := range entry.Lines {
			roles := b.index.Roles(line.AccountID, line.Description)
			flow := CategorizeLine(line, roles)
			if flow.IsZero() {
				continue
			}

			bucket.CashInflows = bucket.CashInflows.Add(flow.CashIn)
			bucket.CashOutflows = bucket.CashOutflows.Add(flow.CashOut)
			bucket.BankInflows = bucket.BankInflows.Add(flow.BankIn)
			bucket.BankOutflows = bucket.BankOutflows.Add(flow.BankOut)

			if len(bucket.Transactions) < b.txnCap {
				bucket.Transactions = append(bucket.Transactions, model.TransactionRef{
					EntryID:     entry.ID,
					Description: line.Description,
					Debit:       line.Debit,
					Credit:      line.Credit,
				})
			}
		}
	}

	series := make([]DayBucket, 0, len(byDate))
	for _, bucket := range byDate {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date > series[j].Date
	})
	return series
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
