package aging

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for open-items.csv.
const Header = "kind,item_id,counterparty,amount,due_date,entry_date,status"

const (
	numFields    = 7
	dateFormat   = "2006-01-02"
	colKind      = 0
	colItemID    = 1
	colCparty    = 2
	colAmount    = 3
	colDueDate   = 4
	colEntryDate = 5
	colStatus    = 6
)

// Load reads <repoRoot>/open-items.csv. A missing file means no open
// items, not an error.
func Load(repoRoot string) ([]model.OpenItem, error) {
	path := filepath.Join(repoRoot, "open-items.csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening open items: %w", err)
	}
	defer f.Close()

	return ReadItems(f)
}

// ReadItems reads open-items.csv rows.
func ReadItems(r io.Reader) ([]model.OpenItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading open items CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var items []model.OpenItem
	for i, rec := range records[1:] {
		item, err := UnmarshalItem(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteItems writes open-items.csv (including header).
func WriteItems(w io.Writer, items []model.OpenItem) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"kind", "item_id", "counterparty", "amount", "due_date", "entry_date", "status"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		rec := make([]string, numFields)
		rec[colKind] = string(item.Kind)
		rec[colItemID] = item.ID
		rec[colCparty] = item.Counterparty
		rec[colAmount] = item.Amount.StringFixed(2)
		if !item.DueDate.IsZero() {
			rec[colDueDate] = item.DueDate.Format(dateFormat)
		}
		if !item.EntryDate.IsZero() {
			rec[colEntryDate] = item.EntryDate.Format(dateFormat)
		}
		rec[colStatus] = item.Status
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing item %s: %w", item.ID, err)
		}
	}
	return cw.Error()
}

// UnmarshalItem converts a CSV row to an OpenItem.
func UnmarshalItem(record []string) (model.OpenItem, error) {
	if len(record) != numFields {
		return model.OpenItem{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind := model.ItemKind(record[colKind])
	if kind != model.ItemReceivable && kind != model.ItemPayable {
		return model.OpenItem{}, fmt.Errorf("unknown item kind %q", record[colKind])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.OpenItem{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	item := model.OpenItem{
		ID:           record[colItemID],
		Kind:         kind,
		Counterparty: record[colCparty],
		Amount:       amount,
		Status:       record[colStatus],
	}

	if record[colDueDate] != "" {
		d, err := time.Parse(dateFormat, record[colDueDate])
		if err != nil {
			return model.OpenItem{}, fmt.Errorf("parsing due_date %q: %w", record[colDueDate], err)
		}
		item.DueDate = d
	}
	if record[colEntryDate] != "" {
		d, err := time.Parse(dateFormat, record[colEntryDate])
		if err != nil {
			return model.OpenItem{}, fmt.Errorf("parsing entry_date %q: %w", record[colEntryDate], err)
		}
		item.EntryDate = d
	}
	return item, nil
}
