package entity

import (
	"time"

	"github.com/google/uuid"
)

// Thing is keyed by the (id, tenant_id) pair: the tenant is the
// partition, so the same identifier may exist under different tenants.
type Thing struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Type         string    `json:"type" gorm:"type:varchar(255);not null;index"`
	TenantID     uuid.UUID `json:"tenant_id" gorm:"type:uuid;primaryKey;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	LastModified time.Time `json:"last_modified" gorm:"not null;index"`
	Active       bool      `json:"active" gorm:"not null"`
}

// Validate checks the field constraints enforced at persist time.
func (t *Thing) Validate() []FieldViolation {
	var violations []FieldViolation
	if t.ID == uuid.Nil {
		violations = append(violations, FieldViolation{Field: "id", Message: "is required"})
	}
	if t.Type == "" {
		violations = append(violations, FieldViolation{Field: "type", Message: "is required"})
	}
	if len(t.Type) > 255 {
		violations = append(violations, FieldViolation{Field: "type", Message: "must be at most 255 characters"})
	}
	if t.TenantID == uuid.Nil {
		violations = append(violations, FieldViolation{Field: "tenant_id", Message: "is required"})
	}
	return violations
}
