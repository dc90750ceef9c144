package aging

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestBuildReport_OverduePastDue(t *testing.T) {
	// Receivable due 45 days ago: fully overdue.
	items := []model.OpenItem{
		{
			Kind:         model.ItemReceivable,
			Counterparty: "Acme",
			Amount:       dec("1000"),
			DueDate:      today.AddDate(0, 0, -45),
		},
	}

	rep := BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	assert.True(t, rep.Overdue.Equal(dec("1000")))
	assert.True(t, rep.Current.IsZero())
	assert.True(t, rep.TotalOutstanding.Equal(dec("1000")))
}

func TestBuildReport_CurrentWithinThreshold(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "Acme", Amount: dec("400"), DueDate: today.AddDate(0, 0, -10)},
		{Kind: model.ItemReceivable, Counterparty: "Acme", Amount: dec("100"), DueDate: today.AddDate(0, 0, 5)},
	}

	rep := BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	assert.True(t, rep.Current.Equal(dec("500")))
	assert.True(t, rep.Overdue.IsZero())
}

func TestBuildReport_EntryDateFallback(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemPayable, Counterparty: "Supplier Co", Amount: dec("250"), EntryDate: today.AddDate(0, 0, -60)},
	}

	rep := BuildReport(items, model.ItemPayable, today, 30, decimal.Zero)
	assert.True(t, rep.Overdue.Equal(dec("250")))
}

func TestBuildReport_PartitionExact(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "A", Amount: dec("123.45"), DueDate: today.AddDate(0, 0, -90)},
		{Kind: model.ItemReceivable, Counterparty: "A", Amount: dec("67.89"), DueDate: today.AddDate(0, 0, -1)},
		{Kind: model.ItemReceivable, Counterparty: "B", Amount: dec("500.00"), DueDate: today.AddDate(0, 0, -31)},
		{Kind: model.ItemReceivable, Counterparty: "C", Amount: dec("0.01"), DueDate: today},
	}

	rep := BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	assert.True(t, rep.Current.Add(rep.Overdue).Equal(rep.TotalOutstanding))

	sum := decimal.Zero
	for _, e := range rep.Entities {
		assert.True(t, e.Current.Add(e.Overdue).Equal(e.TotalOutstanding()))
		sum = sum.Add(e.TotalOutstanding())
	}
	assert.True(t, sum.Equal(rep.TotalOutstanding), "entity partition must cover the total")
}

func TestBuildReport_FiltersByKind(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "A", Amount: dec("100"), DueDate: today},
		{Kind: model.ItemPayable, Counterparty: "B", Amount: dec("999"), DueDate: today},
	}

	rep := BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	assert.True(t, rep.TotalOutstanding.Equal(dec("100")))
	require.Len(t, rep.Entities, 1)
	assert.Equal(t, "A", rep.Entities[0].Counterparty)
}

func TestBuildReport_Ratios(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "A", Amount: dec("500"), DueDate: today},
	}

	rep := BuildReport(items, model.ItemReceivable, today, 30, dec("2000"))
	assert.True(t, rep.Turnover.Equal(dec("4")), "2000 / 500")

	// 500 / 2000 * 365 = 91.25
	assert.True(t, rep.DaysOutstanding.Equal(dec("91.25")), "got %s", rep.DaysOutstanding)
}

func TestBuildReport_ZeroDenominators(t *testing.T) {
	// No outstanding balance: turnover undefined -> 0.
	rep := BuildReport(nil, model.ItemReceivable, today, 30, dec("2000"))
	assert.True(t, rep.Turnover.IsZero())
	assert.True(t, rep.DaysOutstanding.IsZero())

	// No period flow: both ratios undefined -> 0.
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "A", Amount: dec("500"), DueDate: today},
	}
	rep = BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	assert.True(t, rep.Turnover.IsZero())
	assert.True(t, rep.DaysOutstanding.IsZero())
}

func TestBuildReport_UndatedItemStaysCurrent(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "A", Amount: dec("75")},
	}
	rep := BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	assert.True(t, rep.Current.Equal(dec("75")))
	assert.True(t, rep.Overdue.IsZero())
}

func TestBuildReport_EntitiesSorted(t *testing.T) {
	items := []model.OpenItem{
		{Kind: model.ItemReceivable, Counterparty: "Zed", Amount: dec("1"), DueDate: today},
		{Kind: model.ItemReceivable, Counterparty: "Alpha", Amount: dec("1"), DueDate: today},
	}
	rep := BuildReport(items, model.ItemReceivable, today, 30, decimal.Zero)
	require.Len(t, rep.Entities, 2)
	assert.Equal(t, "Alpha", rep.Entities[0].Counterparty)
	assert.Equal(t, "Zed", rep.Entities[1].Counterparty)
}
