package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Fee kinds accepted in an income record's breakdown.
const (
	FeeTuition   = "Tuition"
	FeeExam      = "Exam"
	FeeFine      = "Fine"
	FeeAdmission = "Admission"
)

// Section labels. The office splits collections between the two wings.
const (
	SectionPrimary = "Primary"
	SectionHigh    = "High"
)

// FeeDetails is the per-kind breakdown of a collection. Absent kinds are
// omitted; present amounts must be positive.
type FeeDetails struct {
	Tuition   *decimal.Decimal `json:"Tuition,omitempty"`
	Exam      *decimal.Decimal `json:"Exam,omitempty"`
	Fine      *decimal.Decimal `json:"Fine,omitempty"`
	Admission *decimal.Decimal `json:"Admission,omitempty"`
}

// Total sums all present fee amounts.
func (f FeeDetails) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range []*decimal.Decimal{f.Tuition, f.Exam, f.Fine, f.Admission} {
		if amount != nil {
			total = total.Add(*amount)
		}
	}
	return total
}

// Validate enforces the breakdown invariant: at least one fee present,
// every present amount strictly positive.
func (f FeeDetails) Validate() error {
	present := 0
	for _, amount := range []*decimal.Decimal{f.Tuition, f.Exam, f.Fine, f.Admission} {
		if amount == nil {
			continue
		}
		present++
		if !amount.IsPositive() {
			return errors.New("fee amounts must be greater than zero")
		}
	}
	if present == 0 {
		return errors.New("at least one fee amount is required")
	}
	return nil
}

// Income is a fee collection event. Immutable once created — records are
// only ever deleted, never updated.
type Income struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID   string    `gorm:"not null"`
	StudentName string    `gorm:"not null"`
	Class       string    `gorm:"not null"`
	// Section: "Primary" | "High"
	Section string                           `gorm:"type:varchar(10);not null"`
	Fees    datatypes.JSONType[FeeDetails]   `gorm:"type:jsonb;not null"`
	// TotalAmount must equal Fees.Total() at write time (enforced in the service)
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Date is the local calendar day the money entered the drawer, YYYY-MM-DD
	Date        string    `gorm:"type:varchar(10);not null;index"`
	CollectedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}
