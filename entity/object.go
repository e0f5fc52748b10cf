package entity

import (
	"time"

	"github.com/google/uuid"
)

type Object struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ObjectID     string    `json:"object_id" gorm:"type:varchar(767);not null;uniqueIndex:idx_object_account"`
	Type         string    `json:"type" gorm:"type:varchar(255);not null;index"`
	AccountID    uuid.UUID `json:"account_id" gorm:"type:uuid;not null;uniqueIndex:idx_object_account;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	LastModified time.Time `json:"last_modified" gorm:"not null;index"`
	Moniker      string    `json:"moniker" gorm:"type:varchar(2048)"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Description  string    `json:"description" gorm:"type:varchar(1024)"`
	Active       bool      `json:"active" gorm:"not null"`
}

// Validate checks the field constraints enforced at persist time.
// ObjectID and AccountID are immutable after creation; the service
// layer keeps them out of the merge path.
func (o *Object) Validate() []FieldViolation {
	var violations []FieldViolation
	if o.ObjectID == "" {
		violations = append(violations, FieldViolation{Field: "object_id", Message: "is required"})
	}
	if len(o.ObjectID) > 767 {
		violations = append(violations, FieldViolation{Field: "object_id", Message: "must be at most 767 characters"})
	}
	if o.Type == "" {
		violations = append(violations, FieldViolation{Field: "type", Message: "is required"})
	}
	if len(o.Type) > 255 {
		violations = append(violations, FieldViolation{Field: "type", Message: "must be at most 255 characters"})
	}
	if o.AccountID == uuid.Nil {
		violations = append(violations, FieldViolation{Field: "account_id", Message: "is required"})
	}
	if o.Name == "" {
		violations = append(violations, FieldViolation{Field: "name", Message: "is required"})
	}
	if len(o.Name) > 255 {
		violations = append(violations, FieldViolation{Field: "name", Message: "must be at most 255 characters"})
	}
	if len(o.Moniker) > 2048 {
		violations = append(violations, FieldViolation{Field: "moniker", Message: "must be at most 2048 characters"})
	}
	if len(o.Description) > 1024 {
		violations = append(violations, FieldViolation{Field: "description", Message: "must be at most 1024 characters"})
	}
	return violations
}
