package model

import "time"

// Admin is a row in the authorization policy store. An identity may perform
// destructive operations (transaction deletes, admin management) iff its
// email appears here — there is no hardcoded address anywhere.
type Admin struct {
	Email     string `gorm:"primaryKey"`
	AddedBy   string `gorm:"not null"`
	CreatedAt time.Time
}
