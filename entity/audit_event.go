package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEvent is one persisted lifecycle event (create/update/delete)
// for an object or thing, written by the consumer worker.
type AuditEvent struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ResourceType string         `json:"resource_type" gorm:"type:varchar(64);not null;index:idx_audit_resource"`
	ResourceID   uuid.UUID      `json:"resource_id" gorm:"type:uuid;not null;index:idx_audit_resource"`
	ScopeID      uuid.UUID      `json:"scope_id" gorm:"type:uuid;not null;index"`
	Action       string         `json:"action" gorm:"type:varchar(32);not null"`
	Payload      datatypes.JSON `json:"payload"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null"`
}
