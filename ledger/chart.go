/*
chart.go - Default chart of accounts

A minimal five-class chart used to bootstrap a fresh ledger. Codes
follow the 1xxx..5xxx convention enforced by codes.go.
*/
package ledger

// ChartEntry is one predefined account in the default chart.
type ChartEntry struct {
	Code        string
	Name        string
	Type        AccountType
	ParentCode  string // empty = top-level
	Description string
}

// DefaultChart is the bootstrap chart of accounts.
var DefaultChart = []ChartEntry{
	// Assets (1xxx)
	{Code: "1000", Name: "Assets", Type: AccountTypeAsset, Description: "Top-level asset class"},
	{Code: "1010", Name: "Cash", Type: AccountTypeAsset, ParentCode: "1000", Description: "Cash on hand and at bank"},
	{Code: "1020", Name: "Accounts Receivable", Type: AccountTypeAsset, ParentCode: "1000", Description: "Amounts owed by customers"},
	{Code: "1030", Name: "Inventory", Type: AccountTypeAsset, ParentCode: "1000", Description: "Goods held for sale"},
	{Code: "1040", Name: "Prepaid Expenses", Type: AccountTypeAsset, ParentCode: "1000", Description: "Payments made in advance"},

	// Liabilities (2xxx)
	{Code: "2000", Name: "Liabilities", Type: AccountTypeLiability, Description: "Top-level liability class"},
	{Code: "2010", Name: "Accounts Payable", Type: AccountTypeLiability, ParentCode: "2000", Description: "Amounts owed to suppliers"},
	{Code: "2020", Name: "Accrued Expenses", Type: AccountTypeLiability, ParentCode: "2000", Description: "Expenses incurred but not yet paid"},
	{Code: "2030", Name: "Taxes Payable", Type: AccountTypeLiability, ParentCode: "2000", Description: "Tax held for the tax authority"},

	// Equity (3xxx)
	{Code: "3000", Name: "Equity", Type: AccountTypeEquity, Description: "Top-level equity class"},
	{Code: "3010", Name: "Owner Capital", Type: AccountTypeEquity, ParentCode: "3000", Description: "Owner contributions"},
	{Code: "3020", Name: "Retained Earnings", Type: AccountTypeEquity, ParentCode: "3000", Description: "Accumulated profits"},

	// Revenue (4xxx)
	{Code: "4000", Name: "Revenue", Type: AccountTypeRevenue, Description: "Top-level revenue class"},
	{Code: "4010", Name: "Sales Revenue", Type: AccountTypeRevenue, ParentCode: "4000", Description: "Income from sales"},
	{Code: "4020", Name: "Interest Income", Type: AccountTypeRevenue, ParentCode: "4000", Description: "Income earned from interest"},

	// Expenses (5xxx)
	{Code: "5000", Name: "Expenses", Type: AccountTypeExpense, Description: "Top-level expense class"},
	{Code: "5010", Name: "Operating Expenses", Type: AccountTypeExpense, ParentCode: "5000", Description: "General operating costs"},
	{Code: "5020", Name: "Rent Expense", Type: AccountTypeExpense, ParentCode: "5000", Description: "Office and facility rent"},
	{Code: "5030", Name: "Salaries and Wages", Type: AccountTypeExpense, ParentCode: "5000", Description: "Employee compensation"},
}

// LookupChartEntry finds a default chart entry by code.
func LookupChartEntry(code string) *ChartEntry {
	for i := range DefaultChart {
		if DefaultChart[i].Code == code {
			return &DefaultChart[i]
		}
	}
	return nil
}
