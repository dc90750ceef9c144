package cashflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/classify"
	"github.com/cleared-dev/tally/internal/model"
)

func testIndex() *classify.Index {
	return classify.NewIndex(classify.Default(), []model.Account{
		{ID: 1010, Name: "Petty Cash", Type: model.AccountTypeAsset},
		{ID: 1020, Name: "Business Checking", Type: model.AccountTypeAsset},
		{ID: 4010, Name: "Service Revenue", Type: model.AccountTypeRevenue},
		{ID: 5040, Name: "Rent", Type: model.AccountTypeExpense},
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSeries_GapFreeDescending(t *testing.T) {
	b := NewBucketizer(testIndex(), 90, 50)
	series := b.BuildSeries(nil, day(2024, 3, 31))

	require.Len(t, series, 91, "window is inclusive of both ends")
	assert.Equal(t, "2024-03-31", series[0].Date)
	assert.Equal(t, "2024-01-01", series[len(series)-1].Date)

	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i].Date, series[i-1].Date, "series must be strictly descending")
	}
	for _, bucket := range series {
		assert.True(t, bucket.CashInflows.IsZero())
		assert.True(t, bucket.CashOutflows.IsZero())
		assert.Empty(t, bucket.Transactions)
	}
}

func TestBuildSeries_CashAndRevenueCredits(t *testing.T) {
	// One entry: a 500 cash credit plus a 500 revenue credit. Both
	// land in the cash inflow bucket for the day, giving 1000.
	entries := []model.JournalEntry{
		{
			ID:   "2024-01-001",
			Date: day(2024, 1, 1),
			Lines: []model.JournalLine{
				{AccountID: 1010, Credit: dec("500")},
				{AccountID: 4010, Credit: dec("500")},
			},
		},
	}

	b := NewBucketizer(testIndex(), 30, 50)
	series := b.BuildSeries(entries, day(2024, 1, 15))

	bucket := findBucket(t, series, "2024-01-01")
	assert.True(t, bucket.CashInflows.Equal(dec("1000")), "got %s", bucket.CashInflows)
	assert.True(t, bucket.CashOutflows.IsZero())
	assert.Len(t, bucket.Transactions, 2)
}

func TestBuildSeries_UndatedAndOutOfWindowDropped(t *testing.T) {
	entries := []model.JournalEntry{
		{ID: "undated", Lines: []model.JournalLine{{AccountID: 1010, Credit: dec("100")}}},
		{ID: "ancient", Date: day(2020, 1, 1), Lines: []model.JournalLine{{AccountID: 1010, Credit: dec("100")}}},
		{ID: "future", Date: day(2025, 1, 1), Lines: []model.JournalLine{{AccountID: 1010, Credit: dec("100")}}},
		{ID: "in-window", Date: day(2024, 1, 10), Lines: []model.JournalLine{{AccountID: 1010, Credit: dec("100")}}},
	}

	b := NewBucketizer(testIndex(), 30, 50)
	series := b.BuildSeries(entries, day(2024, 1, 15))

	total := dec("0")
	for _, bucket := range series {
		total = total.Add(bucket.CashInflows)
	}
	assert.True(t, total.Equal(dec("100")), "only the in-window entry counts, got %s", total)
}

func TestBuildSeries_TransactionCap(t *testing.T) {
	var lines []model.JournalLine
	for i := 0; i < 60; i++ {
		lines = append(lines, model.JournalLine{AccountID: 1010, Credit: dec("1")})
	}
	entries := []model.JournalEntry{{ID: "busy", Date: day(2024, 1, 5), Lines: lines}}

	b := NewBucketizer(testIndex(), 30, 50)
	series := b.BuildSeries(entries, day(2024, 1, 15))

	bucket := findBucket(t, series, "2024-01-05")
	assert.Len(t, bucket.Transactions, 50, "transaction list is capped")
	assert.True(t, bucket.CashInflows.Equal(dec("60")), "sums are not capped")
}

func TestBuildSeries_DescriptionDrivenExpense(t *testing.T) {
	// Bank account debit with an expense keyword in the description:
	// bank outflow and cash outflow both recorded.
	entries := []model.JournalEntry{
		{
			ID:   "2024-01-007",
			Date: day(2024, 1, 7),
			Lines: []model.JournalLine{
				{AccountID: 1020, Description: "office rent January", Debit: dec("1200")},
			},
		},
	}

	b := NewBucketizer(testIndex(), 30, 50)
	series := b.BuildSeries(entries, day(2024, 1, 15))

	bucket := findBucket(t, series, "2024-01-07")
	assert.True(t, bucket.BankOutflows.Equal(dec("1200")))
	assert.True(t, bucket.CashOutflows.Equal(dec("1200")))
}

func TestBuildSeries_DefaultBounds(t *testing.T) {
	b := NewBucketizer(testIndex(), 0, 0)
	series := b.BuildSeries(nil, day(2024, 3, 31))
	assert.Len(t, series, 91)
}

func findBucket(t *testing.T, series []DayBucket, date string) DayBucket {
	t.Helper()
	for _, b := range series {
		if b.Date == date {
			return b
		}
	}
	t.Fatalf("no bucket for %s", date)
	return DayBucket{}
}

func TestNetCashFlow(t *testing.T) {
	b := DayBucket{
		CashInflows:  dec("100"),
		BankInflows:  dec("50"),
		CashOutflows: dec("30"),
		BankOutflows: dec("20"),
	}
	assert.True(t, b.NetCashFlow().Equal(dec("100")), fmt.Sprintf("got %s", b.NetCashFlow()))
}
