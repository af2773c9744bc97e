package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores office staff accounts. Authorization for destructive
// operations is not role-based — it is decided by membership in the
// admins table (see Admin).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
