package model

import "github.com/shopspring/decimal"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five canonical account types.
// Upstream registries ship accounts with blank or garbage types; those
// fall back to keyword classification.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account represents a row in chart-of-accounts.csv. Balance is signed
// with whatever convention the source system uses; aggregation takes
// absolute values when grouping by type.
type Account struct {
	ID          int
	Code        string
	Name        string
	Type        AccountType // may be empty or untrusted
	Balance     decimal.Decimal
	Description string
}
