package repository

import (
	"github.com/google/uuid"
	"github.com/tnqbao/gau-resource-registry/entity"
	"gorm.io/gorm"
)

type AuditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(db *gorm.DB) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

func (r *AuditEventRepository) Create(event *entity.AuditEvent) error {
	return r.db.Create(event).Error
}

func (r *AuditEventRepository) FindByResource(resourceType string, resourceID uuid.UUID) ([]entity.AuditEvent, error) {
	var events []entity.AuditEvent
	err := r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
