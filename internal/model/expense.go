package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense categories.
const (
	CategorySalary        = "Salary"
	CategoryMaintenance   = "Maintenance"
	CategoryElectricity   = "Electricity"
	CategoryEntertainment = "Entertainment"
	CategoryStationery    = "Stationery"
	CategoryOther         = "Other"
)

// Payment modes. Only Cash-mode expenses reduce the physical drawer balance;
// Bank payments are tracked for reporting but never touch the register.
const (
	PaymentModeCash = "Cash"
	PaymentModeBank = "Bank"
)

// Expense is an office payment event. Immutable once created except for deletion.
type Expense struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Category: Salary | Maintenance | Electricity | Entertainment | Stationery | Other
	Category  string          `gorm:"type:varchar(20);not null"`
	PayTo     string          `gorm:"not null"`
	VoucherNo string          `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// PaymentMode: "Cash" | "Bank"
	PaymentMode string `gorm:"type:varchar(10);not null"`
	Date        string `gorm:"type:varchar(10);not null;index"`
	Description string `gorm:"not null"`
	CreatedAt   time.Time
}
