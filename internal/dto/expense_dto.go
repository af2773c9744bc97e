package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category    string          `json:"category"     validate:"required,oneof=Salary Maintenance Electricity Entertainment Stationery Other"`
	PayTo       string          `json:"pay_to"       validate:"required"`
	VoucherNo   string          `json:"voucher_no"   validate:"required"`
	Amount      decimal.Decimal `json:"amount"       validate:"required,gt=0"`
	PaymentMode string          `json:"payment_mode" validate:"required,oneof=Cash Bank"`
	Description string          `json:"description"  validate:"required"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	PayTo       string          `json:"pay_to"`
	VoucherNo   string          `json:"voucher_no"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Timestamp   string          `json:"timestamp"`
}
