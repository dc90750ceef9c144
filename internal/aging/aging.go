// Package aging buckets outstanding receivable and payable balances
// into current and overdue amounts and derives turnover ratios.
package aging

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

const defaultOverdueDays = 30

var daysPerYear = decimal.NewFromInt(365)

// EntityAging is the current/overdue partition for one counterparty.
type EntityAging struct {
	Counterparty string
	Current      decimal.Decimal
	Overdue      decimal.Decimal
}

// TotalOutstanding is Current + Overdue; the partition is exact.
func (e EntityAging) TotalOutstanding() decimal.Decimal {
	return e.Current.Add(e.Overdue)
}

// Report is the aging summary for one side (receivable or payable).
type Report struct {
	Kind             model.ItemKind
	Current          decimal.Decimal
	Overdue          decimal.Decimal
	TotalOutstanding decimal.Decimal
	// Turnover is periodFlow / TotalOutstanding (revenue over
	// receivables, expenses over payables). Zero when undefined.
	Turnover decimal.Decimal
	// DaysOutstanding is TotalOutstanding / periodFlow * 365.
	// Zero when undefined.
	DaysOutstanding decimal.Decimal
	Entities        []EntityAging
}

// BuildReport ages the items of the given kind as of today. An item is
// overdue when today is more than overdueDays past its due date (entry
// date when no due date is set); otherwise it is current. periodFlow
// is the revenue (receivables) or expense (payables) volume used for
// the derived ratios.
func BuildReport(items []model.OpenItem, kind model.ItemKind, today time.Time, overdueDays int, periodFlow decimal.Decimal) Report {
	if overdueDays <= 0 {
		overdueDays = defaultOverdueDays
	}

	byEntity := make(map[string]*EntityAging)
	var order []string
	rep := Report{Kind: kind}

	for _, item := range items {
		if item.Kind != kind {
			continue
		}

		entity, ok := byEntity[item.Counterparty]
		if !ok {
			entity = &EntityAging{Counterparty: item.Counterparty}
			byEntity[item.Counterparty] = entity
			order = append(order, item.Counterparty)
		}

		if isOverdue(item, today, overdueDays) {
			entity.Overdue = entity.Overdue.Add(item.Amount)
			rep.Overdue = rep.Overdue.Add(item.Amount)
		} else {
			entity.Current = entity.Current.Add(item.Amount)
			rep.Current = rep.Current.Add(item.Amount)
		}
	}

	sort.Strings(order)
	rep.Entities = make([]EntityAging, 0, len(order))
	for _, name := range order {
		rep.Entities = append(rep.Entities, *byEntity[name])
	}

	rep.TotalOutstanding = rep.Current.Add(rep.Overdue)
	rep.Turnover = safeDiv(periodFlow, rep.TotalOutstanding)
	if !periodFlow.IsZero() {
		rep.DaysOutstanding = rep.TotalOutstanding.Div(periodFlow).Mul(daysPerYear)
	}
	return rep
}

func isOverdue(item model.OpenItem, today time.Time, overdueDays int) bool {
	ref := item.ReferenceDate()
	if ref.IsZero() {
		// No date to age from; cannot call it overdue.
		return false
	}
	ageDays := int(today.Sub(ref).Hours() / 24)
	return ageDays > overdueDays
}

func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
