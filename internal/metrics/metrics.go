// Package metrics is the engine's top-level entry point. It composes
// classification, bucketizing, balance reconstruction, the trial
// balance check, and aging into the KPI set consumed by reporting
// views. One Aggregator.Run is a pure computation over its input
// snapshot: inputs are never mutated and no state is shared between
// runs, so concurrent callers are safe.
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/aging"
	"github.com/cleared-dev/tally/internal/balancefeed"
	"github.com/cleared-dev/tally/internal/cashflow"
	"github.com/cleared-dev/tally/internal/classify"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/trialbalance"
)

// Input is the read-only snapshot one aggregation run works over.
// Balances is optional; Today is injected so runs are reproducible.
type Input struct {
	Accounts  []model.Account
	Entries   []model.JournalEntry
	OpenItems []model.OpenItem
	Balances  balancefeed.Source
	Today     time.Time
}

// Snapshot is the aggregated KPI object: a pure output value. All
// ratios are zero when their denominator is zero, never NaN.
type Snapshot struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	TotalRevenue     decimal.Decimal
	TotalExpenses    decimal.Decimal

	NetIncome     decimal.Decimal
	ProfitMargin  decimal.Decimal
	AssetTurnover decimal.Decimal
	DebtToEquity  decimal.Decimal
	CurrentRatio  decimal.Decimal

	// Month-over-month growth fractions: (current − previous) / previous.
	RevenueGrowth decimal.Decimal
	ExpenseGrowth decimal.Decimal
	AssetGrowth   decimal.Decimal
}

// Result bundles everything one run produces.
type Result struct {
	Snapshot     Snapshot
	Buckets      []cashflow.DayBucket
	Balances     []cashflow.DailyBalance
	TrialBalance trialbalance.Report
	Receivables  aging.Report
	Payables     aging.Report
}

// Aggregator runs the full pipeline with one configuration and rule
// set. It holds no per-run state.
type Aggregator struct {
	cfg        config.EngineConfig
	classifier *classify.Classifier
	log        zerolog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(cfg config.EngineConfig, classifier *classify.Classifier, log zerolog.Logger) *Aggregator {
	if classifier == nil {
		classifier = classify.Default()
	}
	return &Aggregator{cfg: cfg, classifier: classifier, log: log}
}

// Run executes the pipeline over the input snapshot.
func (a *Aggregator) Run(ctx context.Context, in Input) Result {
	today := in.Today
	entries := boundEntries(in.Entries, a.cfg.MaxJournalLines)
	index := classify.NewIndex(a.classifier, in.Accounts)

	snap := a.buildSnapshot(in.Accounts, entries, index, today)

	bucketizer := cashflow.NewBucketizer(index, a.cfg.WindowDays, a.cfg.MaxTransactionsPerDay)
	buckets := bucketizer.BuildSeries(entries, today)

	var src balancefeed.Source
	if in.Balances != nil {
		src = balancefeed.NewCache(in.Balances)
	}
	balances := cashflow.NewReconstructor(src, a.log).Reconstruct(ctx, buckets)

	tolerance := decimal.NewFromFloat(a.cfg.BalanceTolerance)
	tb := trialbalance.Check(entries, tolerance)
	if !tb.Balanced {
		a.log.Warn().
			Str("difference", tb.Difference.StringFixed(2)).
			Msg("trial balance does not balance")
	}

	return Result{
		Snapshot:     snap,
		Buckets:      buckets,
		Balances:     balances,
		TrialBalance: tb,
		Receivables:  aging.BuildReport(in.OpenItems, model.ItemReceivable, today, a.cfg.OverdueDays, snap.TotalRevenue),
		Payables:     aging.BuildReport(in.OpenItems, model.ItemPayable, today, a.cfg.OverdueDays, snap.TotalExpenses),
	}
}

func (a *Aggregator) buildSnapshot(accounts []model.Account, entries []model.JournalEntry, index *classify.Index, today time.Time) Snapshot {
	var snap Snapshot

	// Headline totals: absolute account balances grouped by trusted
	// type. Untyped accounts are excluded here; their keyword roles
	// still feed the cash timeline.
	for _, acct := range accounts {
		cl := a.classifier.Classify(acct)
		amount := acct.Balance.Abs()
		switch cl.Type {
		case model.AccountTypeAsset:
			snap.TotalAssets = snap.TotalAssets.Add(amount)
		case model.AccountTypeLiability:
			snap.TotalLiabilities = snap.TotalLiabilities.Add(amount)
		case model.AccountTypeEquity:
			snap.TotalEquity = snap.TotalEquity.Add(amount)
		case model.AccountTypeRevenue:
			snap.TotalRevenue = snap.TotalRevenue.Add(amount)
		case model.AccountTypeExpense:
			snap.TotalExpenses = snap.TotalExpenses.Add(amount)
		}
	}

	snap.NetIncome = snap.TotalRevenue.Sub(snap.TotalExpenses)
	snap.ProfitMargin = safeDiv(snap.NetIncome, snap.TotalRevenue)
	snap.AssetTurnover = safeDiv(snap.TotalRevenue, snap.TotalAssets)
	snap.DebtToEquity = safeDiv(snap.TotalLiabilities, snap.TotalEquity)
	snap.CurrentRatio = safeDiv(snap.TotalAssets, snap.TotalLiabilities)

	cur := monthFlows(entries, index, today.Year(), today.Month())
	prevMonth := today.AddDate(0, -1, 0)
	prev := monthFlows(entries, index, prevMonth.Year(), prevMonth.Month())

	snap.RevenueGrowth = growth(cur.revenue, prev.revenue)
	snap.ExpenseGrowth = growth(cur.expense, prev.expense)
	snap.AssetGrowth = growth(cur.assetNet, prev.assetNet)
	return snap
}

// flows is one month's activity re-summed from journal lines.
type flows struct {
	revenue  decimal.Decimal // credit − debit on revenue accounts
	expense  decimal.Decimal // debit − credit on expense accounts
	assetNet decimal.Decimal // debit − credit on asset accounts
}

func monthFlows(entries []model.JournalEntry, index *classify.Index, year int, month time.Month) flows {
	var f flows
	for _, e := range entries {
		if !e.HasDate() || e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		for _, l := range e.Lines {
			typ, typed := index.Type(l.AccountID)
			if typed {
				switch typ {
				case model.AccountTypeRevenue:
					f.revenue = f.revenue.Add(l.Credit).Sub(l.Debit)
				case model.AccountTypeExpense:
					f.expense = f.expense.Add(l.Debit).Sub(l.Credit)
				case model.AccountTypeAsset:
					f.assetNet = f.assetNet.Add(l.Debit).Sub(l.Credit)
				}
				continue
			}
			// Untyped account: fall back to keyword roles for the P&L sums.
			roles := index.Roles(l.AccountID, l.Description)
			if roles.Has(classify.RoleRevenue) {
				f.revenue = f.revenue.Add(l.Credit).Sub(l.Debit)
			}
			if roles.Has(classify.RoleExpense) {
				f.expense = f.expense.Add(decimal.Max(l.Debit, l.Credit))
			}
		}
	}
	return f
}

// boundEntries trims the journal to the most recent max lines. Undated
// entries sort oldest, so they are trimmed first. The trim copies;
// the caller's slice is never reordered.
func boundEntries(entries []model.JournalEntry, max int) []model.JournalEntry {
	if max <= 0 {
		return entries
	}
	total := 0
	for _, e := range entries {
		total += len(e.Lines)
	}
	if total <= max {
		return entries
	}

	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var out []model.JournalEntry
	remaining := max
	for _, e := range sorted {
		if remaining <= 0 {
			break
		}
		if len(e.Lines) > remaining {
			e.Lines = e.Lines[:remaining]
		}
		out = append(out, e)
		remaining -= len(e.Lines)
	}
	return out
}

func growth(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev)
}

func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
