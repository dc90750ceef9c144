package aging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestReadItems(t *testing.T) {
	input := `kind,item_id,counterparty,amount,due_date,entry_date,status
receivable,INV-001,Acme,1000.00,2024-05-01,2024-04-01,open
payable,BILL-007,Supplier Co,250.50,,2024-03-15,open
`
	items, err := ReadItems(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, model.ItemReceivable, items[0].Kind)
	assert.Equal(t, "Acme", items[0].Counterparty)
	assert.True(t, items[0].Amount.Equal(dec("1000.00")))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), items[0].DueDate)

	// Missing due date: aging falls back to the entry date.
	assert.True(t, items[1].DueDate.IsZero())
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), items[1].ReferenceDate())
}

func TestReadItems_UnknownKind(t *testing.T) {
	input := `kind,item_id,counterparty,amount,due_date,entry_date,status
loan,L-1,Bank,99.00,,,open
`
	_, err := ReadItems(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item kind")
}

func TestWriteReadRoundTrip(t *testing.T) {
	items := []model.OpenItem{
		{
			ID:           "INV-002",
			Kind:         model.ItemReceivable,
			Counterparty: "Beta LLC",
			Amount:       dec("42.00"),
			DueDate:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			EntryDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:       "open",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteItems(&buf, items))

	got, err := ReadItems(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, items[0].ID, got[0].ID)
	assert.True(t, got[0].Amount.Equal(items[0].Amount))
	assert.Equal(t, items[0].DueDate, got[0].DueDate)
}

func TestLoad_MissingFileMeansNoItems(t *testing.T) {
	items, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `kind,item_id,counterparty,amount,due_date,entry_date,status
receivable,INV-001,Acme,1000.00,2024-05-01,2024-04-01,open
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "open-items.csv"), []byte(content), 0o644))

	items, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-001", items[0].ID)
}
