package dto

import "github.com/shopspring/decimal"

type RegisterResponse struct {
	ID             string          `json:"id"` // YYYY-MM-DD
	Date           string          `json:"date"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	SystemBalance  decimal.Decimal `json:"system_balance"`
}

// RegisterSnapshot is the engine's public contract: the current register (nil
// while bootstrap has not completed), today's record sets, and the derived
// totals. IsLoading distinguishes "no data yet" from a genuine zero balance.
type RegisterSnapshot struct {
	Register      *RegisterResponse `json:"register"`
	Incomes       []IncomeResponse  `json:"incomes"`
	Expenses      []ExpenseResponse `json:"expenses"`
	TotalIncome   decimal.Decimal   `json:"total_income"`
	TotalExpense  decimal.Decimal   `json:"total_expense"`
	SystemBalance decimal.Decimal   `json:"system_balance"`
	IsLoading     bool              `json:"is_loading"`
}
