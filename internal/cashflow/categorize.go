// Package cashflow turns journal lines into a gap-free daily cash
// timeline and reconstructs opening/closing balances across it.
package cashflow

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/classify"
	"github.com/cleared-dev/tally/internal/model"
)

// Flow is one line's contribution to the day's cash and bank buckets.
type Flow struct {
	CashIn  decimal.Decimal
	CashOut decimal.Decimal
	BankIn  decimal.Decimal
	BankOut decimal.Decimal
}

// IsZero reports whether the line contributed nothing.
func (f Flow) IsZero() bool {
	return f.CashIn.IsZero() && f.CashOut.IsZero() && f.BankIn.IsZero() && f.BankOut.IsZero()
}

// CategorizeLine maps a line to bucket contributions given its
// account's roles. Each matching role contributes independently, so a
// line can feed several buckets at once.
//
// Cash and bank roles use the upstream system's convention: credit is
// an inflow, debit an outflow. That is inverted relative to textbook
// treatment of asset accounts and is kept as observed behavior;
// changing it would rewrite all historical cash-flow figures.
// Revenue credits double as a cash-inflow proxy, and expense lines
// contribute whichever side is larger as a cash outflow.
func CategorizeLine(line model.JournalLine, roles classify.RoleSet) Flow {
	var f Flow

	if roles.Has(classify.RoleCash) {
		if line.Credit.IsPositive() {
			f.CashIn = f.CashIn.Add(line.Credit)
		}
		if line.Debit.IsPositive() {
			f.CashOut = f.CashOut.Add(line.Debit)
		}
	}

	if roles.Has(classify.RoleBank) {
		if line.Credit.IsPositive() {
			f.BankIn = f.BankIn.Add(line.Credit)
		}
		if line.Debit.IsPositive() {
			f.BankOut = f.BankOut.Add(line.Debit)
		}
	}

	if roles.Has(classify.RoleRevenue) {
		if line.Credit.IsPositive() {
			f.CashIn = f.CashIn.Add(line.Credit)
		}
	}

	if roles.Has(classify.RoleExpense) {
		amount := decimal.Max(line.Debit, line.Credit)
		if amount.IsPositive() {
			f.CashOut = f.CashOut.Add(amount)
		}
	}

	return f
}
