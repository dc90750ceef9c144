package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account_id,description,debit,credit"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
)

// row is one parsed CSV line before grouping into entries.
type row struct {
	entryID     string
	date        time.Time // zero when unparseable
	accountID   int
	description string
	debit       decimal.Decimal
	credit      decimal.Decimal
}

// ReadEntries reads journal rows and groups them into entries. Rows
// sharing an entry id (ignoring a trailing leg suffix like "a"/"b")
// form one entry. A row with a missing or malformed date is kept with
// a zero date rather than rejected: it still counts toward the trial
// balance, it just never lands in a day bucket.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	byGroup := make(map[string]*model.JournalEntry)
	var order []string
	for i, rec := range records[1:] {
		rw, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		g := entryGroup(rw.entryID)
		entry, seen := byGroup[g]
		if !seen {
			entry = &model.JournalEntry{
				ID:          g,
				Date:        rw.date,
				Description: rw.description,
			}
			byGroup[g] = entry
			order = append(order, g)
		}
		if entry.Date.IsZero() && !rw.date.IsZero() {
			entry.Date = rw.date
		}
		entry.Lines = append(entry.Lines, model.JournalLine{
			AccountID:   rw.accountID,
			Description: rw.description,
			Debit:       rw.debit,
			Credit:      rw.credit,
		})
	}

	entries := make([]model.JournalEntry, 0, len(order))
	for _, g := range order {
		entries = append(entries, *byGroup[g])
	}
	return entries, nil
}

// WriteEntries writes entries as journal.csv rows (including header).
// Leg rows get a lowercase suffix in entry order, matching the read
// side's grouping.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"entry_id", "date", "account_id", "description", "debit", "credit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		for i, l := range e.Lines {
			rec := make([]string, numFields)
			rec[colEntryID] = e.ID + string(rune('a'+i))
			if !e.Date.IsZero() {
				rec[colDate] = e.Date.Format(dateFormat)
			}
			rec[colAcctID] = strconv.Itoa(l.AccountID)
			rec[colDesc] = l.Description
			if !l.Debit.IsZero() {
				rec[colDebit] = l.Debit.StringFixed(2)
			}
			if !l.Credit.IsZero() {
				rec[colCredit] = l.Credit.StringFixed(2)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("writing entry %s: %w", e.ID, err)
			}
		}
	}
	return cw.Error()
}

func unmarshalRow(record []string) (row, error) {
	if len(record) != numFields {
		return row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return row{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	// Bad dates are tolerated; the zero time marks the row undated.
	var date time.Time
	if record[colDate] != "" {
		if d, err := time.Parse(dateFormat, record[colDate]); err == nil {
			date = d
		}
	}

	var debit, credit decimal.Decimal
	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return row{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}
	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return row{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return row{
		entryID:     record[colEntryID],
		date:        date,
		accountID:   accountID,
		description: record[colDesc],
		debit:       debit,
		credit:      credit,
	}, nil
}

// entryGroup strips the leg suffix from an entry id.
// "2025-01-001a" -> "2025-01-001"
func entryGroup(id string) string {
	i := len(id)
	for i > 0 && id[i-1] >= 'a' && id[i-1] <= 'z' {
		i--
	}
	return id[:i]
}
