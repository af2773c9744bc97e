package dto

import "github.com/shopspring/decimal"

// ReportFilter selects an inclusive date range and a transaction-type filter.
type ReportFilter struct {
	From string // YYYY-MM-DD, inclusive
	To   string // YYYY-MM-DD, inclusive
	Type string // all | income | expense
}

// ReportTransaction is a unified income/expense row for report rendering.
type ReportTransaction struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"` // income | expense
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	// Details: student name + fee breakdown for income, payee + category for expense
	Details     string `json:"details"`
	PaymentMode string `json:"payment_mode,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// ReportDayGroup holds one calendar day's transactions and derived sums.
type ReportDayGroup struct {
	Date         string              `json:"date"`
	Transactions []ReportTransaction `json:"transactions"`
	DailyIncome  decimal.Decimal     `json:"daily_income"`
	DailyExpense decimal.Decimal     `json:"daily_expense"`
	DailyBalance decimal.Decimal     `json:"daily_balance"`
}

type ReportTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type ReportResponse struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Type   string           `json:"type"`
	Totals ReportTotals     `json:"totals"`
	Days   []ReportDayGroup `json:"days"`
}
