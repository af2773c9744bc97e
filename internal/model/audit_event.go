package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEvent is a persisted storage-failure report. Purely observational:
// nothing in the request path reads these rows.
type AuditEvent struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Path string    `gorm:"not null"`
	// Operation: create | get | update | delete | list
	Operation      string         `gorm:"type:varchar(10);not null"`
	RequestPayload datatypes.JSON `gorm:"type:jsonb"`
	Detail         string
	CreatedAt      time.Time
}
