package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-resource-registry/entity"
	"gorm.io/gorm"
)

type ThingRepository struct {
	db *gorm.DB
}

func NewThingRepository(db *gorm.DB) *ThingRepository {
	return &ThingRepository{db: db}
}

// Create inserts a new thing. A (id, tenant_id) uniqueness conflict
// surfaces as gorm.ErrDuplicatedKey.
func (r *ThingRepository) Create(thing *entity.Thing) error {
	return r.db.Create(thing).Error
}

func (r *ThingRepository) Save(thing *entity.Thing) error {
	return r.db.Save(thing).Error
}

func (r *ThingRepository) FindByTenantAndID(tenantID, id uuid.UUID) (*entity.Thing, error) {
	var thing entity.Thing
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&thing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thing, nil
}

// FindByTenantAndIDs returns the things matching any of the given ids.
// Ids with no matching row are simply absent from the result.
func (r *ThingRepository) FindByTenantAndIDs(tenantID uuid.UUID, ids []uuid.UUID) ([]entity.Thing, error) {
	if len(ids) == 0 {
		return []entity.Thing{}, nil
	}
	var things []entity.Thing
	err := r.db.Where("tenant_id = ? AND id IN ?", tenantID, ids).Find(&things).Error
	if err != nil {
		return nil, err
	}
	return things, nil
}

func (r *ThingRepository) FindByFilters(filters []Filter) ([]entity.Thing, error) {
	var things []entity.Thing
	err := ApplyFilters(r.db, filters).Find(&things).Error
	if err != nil {
		return nil, err
	}
	return things, nil
}

// DeleteAndReturn removes every thing matching the filters and returns
// the removed rows so the caller can confirm what was deleted.
func (r *ThingRepository) DeleteAndReturn(filters []Filter) ([]entity.Thing, error) {
	var things []entity.Thing
	err := ApplyFilters(r.db, filters).Find(&things).Error
	if err != nil {
		return nil, err
	}
	if len(things) == 0 {
		return things, nil
	}
	err = ApplyFilters(r.db, filters).Delete(&entity.Thing{}).Error
	if err != nil {
		return nil, err
	}
	return things, nil
}
