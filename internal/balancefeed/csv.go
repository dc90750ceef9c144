package balancefeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// Header is the CSV header for daily-balances.csv.
const Header = "date,opening_cash,closing_cash,opening_bank,closing_bank"

const (
	numFields      = 5
	colDate        = 0
	colOpeningCash = 1
	colClosingCash = 2
	colOpeningBank = 3
	colClosingBank = 4
)

// Load reads <repoRoot>/balances/daily-balances.csv into a MapSource.
// A missing file yields an empty source: the feed is optional.
func Load(path string) (MapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return MapSource{}, nil
		}
		return nil, fmt.Errorf("opening balance feed: %w", err)
	}
	defer f.Close()

	return readBalances(f)
}

func readBalances(r io.Reader) (MapSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading balance feed CSV: %w", err)
	}

	src := make(MapSource)
	if len(records) <= 1 {
		return src, nil
	}

	for i, rec := range records[1:] {
		b, err := unmarshalBalance(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		src[b.Date] = b
	}
	return src, nil
}

func unmarshalBalance(record []string) (DayBalance, error) {
	if len(record) != numFields {
		return DayBalance{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	b := DayBalance{Date: record[colDate]}
	fields := []struct {
		col  int
		name string
		dst  *decimal.Decimal
	}{
		{colOpeningCash, "opening_cash", &b.OpeningCash},
		{colClosingCash, "closing_cash", &b.ClosingCash},
		{colOpeningBank, "opening_bank", &b.OpeningBank},
		{colClosingBank, "closing_bank", &b.ClosingBank},
	}
	for _, f := range fields {
		if record[f.col] == "" {
			continue
		}
		d, err := decimal.NewFromString(record[f.col])
		if err != nil {
			return DayBalance{}, fmt.Errorf("parsing %s %q: %w", f.name, record[f.col], err)
		}
		*f.dst = d
	}
	return b, nil
}
