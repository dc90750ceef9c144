package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind distinguishes receivable from payable open items.
type ItemKind string

const (
	ItemReceivable ItemKind = "receivable"
	ItemPayable    ItemKind = "payable"
)

// OpenItem is an outstanding receivable or payable balance owned by the
// AR/AP stores. DueDate may be zero; aging falls back to EntryDate.
type OpenItem struct {
	ID           string
	Kind         ItemKind
	Counterparty string
	Amount       decimal.Decimal
	DueDate      time.Time
	EntryDate    time.Time
	Status       string
}

// ReferenceDate returns the date aging is measured from.
func (i OpenItem) ReferenceDate() time.Time {
	if !i.DueDate.IsZero() {
		return i.DueDate
	}
	return i.EntryDate
}
