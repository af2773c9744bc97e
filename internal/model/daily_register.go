package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRegister is the per-date cash ledger document. Exactly one row per
// local calendar day, keyed by the YYYY-MM-DD date string.
//
// OpeningBalance is carried from the previous day's SystemBalance at creation
// and never recomputed afterwards. TotalIncome, TotalExpense and
// SystemBalance are derived from the day's transaction stream and rewritten
// by the reconciliation engine whenever they change. TotalExpense counts
// Cash-mode expenses only — the register tracks physical cash, not total spend.
type DailyRegister struct {
	ID             string          `gorm:"type:varchar(10);primaryKey"` // YYYY-MM-DD
	Date           time.Time       `gorm:"not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalIncome    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalExpense   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SystemBalance = OpeningBalance + TotalIncome - TotalExpense
	SystemBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
