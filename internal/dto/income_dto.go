package dto

import (
	"github.com/shopspring/decimal"

	"schoolcash/internal/model"
)

// CreateIncomeRequest mirrors the fee-collection form. The server stamps the
// date and the collecting user; clients never choose either.
type CreateIncomeRequest struct {
	StudentID   string `json:"student_id"   validate:"required"`
	StudentName string `json:"student_name" validate:"required"`
	Class       string `json:"class"        validate:"required"`
	// Section: Primary | High
	Section string           `json:"section" validate:"required,oneof=Primary High"`
	Fees    model.FeeDetails `json:"fees"    validate:"required"`
	// TotalAmount must equal the sum of the fee breakdown — the service
	// rejects the record otherwise rather than silently recomputing.
	TotalAmount decimal.Decimal `json:"total_amount" validate:"required"`
}

type IncomeResponse struct {
	ID          string           `json:"id"`
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Class       string           `json:"class"`
	Section     string           `json:"section"`
	Fees        model.FeeDetails `json:"fees"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Date        string           `json:"date"`
	CollectedBy string           `json:"collected_by"`
	Timestamp   string           `json:"timestamp"`
}
