package accounts

import "github.com/cleared-dev/tally/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "llc_single_member":
		return llcSingleMemberChart()
	default:
		return llcSingleMemberChart()
	}
}

func llcSingleMemberChart() []model.Account {
	return []model.Account{
		{ID: 1010, Code: "1010", Name: "Petty Cash", Type: model.AccountTypeAsset, Description: "Cash on hand"},
		{ID: 1020, Code: "1020", Name: "Business Checking", Type: model.AccountTypeAsset, Description: "Primary bank account"},
		{ID: 1030, Code: "1030", Name: "Business Savings", Type: model.AccountTypeAsset, Description: "Bank savings account"},
		{ID: 1200, Code: "1200", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Description: "Customer invoices outstanding"},
		{ID: 2010, Code: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, Description: "Vendor bills outstanding"},
		{ID: 2020, Code: "2020", Name: "Credit Card", Type: model.AccountTypeLiability, Description: "Business credit card"},
		{ID: 3010, Code: "3010", Name: "Owner's Equity", Type: model.AccountTypeEquity, Description: "Owner's equity"},
		{ID: 4010, Code: "4010", Name: "Service Revenue", Type: model.AccountTypeRevenue},
		{ID: 4020, Code: "4020", Name: "Product Sales", Type: model.AccountTypeRevenue},
		{ID: 5010, Code: "5010", Name: "Advertising & Marketing", Type: model.AccountTypeExpense, Description: "Advertising costs"},
		{ID: 5020, Code: "5020", Name: "Software Subscriptions", Type: model.AccountTypeExpense, Description: "SaaS subscriptions"},
		{ID: 5030, Code: "5030", Name: "Office Supplies", Type: model.AccountTypeExpense, Description: "Office supplies and expenses"},
		{ID: 5040, Code: "5040", Name: "Rent", Type: model.AccountTypeExpense, Description: "Office rent"},
		{ID: 5050, Code: "5050", Name: "Salaries & Wages", Type: model.AccountTypeExpense, Description: "Payroll"},
		{ID: 5060, Code: "5060", Name: "Utilities", Type: model.AccountTypeExpense, Description: "Power, water, internet"},
	}
}
