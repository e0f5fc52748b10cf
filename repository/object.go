package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-resource-registry/entity"
	"gorm.io/gorm"
)

type ObjectRepository struct {
	db *gorm.DB
}

func NewObjectRepository(db *gorm.DB) *ObjectRepository {
	return &ObjectRepository{db: db}
}

// Create inserts a new object. A (object_id, account_id) uniqueness
// conflict surfaces as gorm.ErrDuplicatedKey.
func (r *ObjectRepository) Create(object *entity.Object) error {
	return r.db.Create(object).Error
}

func (r *ObjectRepository) Save(object *entity.Object) error {
	return r.db.Save(object).Error
}

func (r *ObjectRepository) FindByAccountAndID(accountID, id uuid.UUID) (*entity.Object, error) {
	var object entity.Object
	err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&object).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &object, nil
}

func (r *ObjectRepository) FindByAccountAndObjectID(accountID uuid.UUID, objectID string) (*entity.Object, error) {
	var object entity.Object
	err := r.db.Where("account_id = ? AND object_id = ?", accountID, objectID).First(&object).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &object, nil
}

func (r *ObjectRepository) FindByObjectIDPrefix(accountID uuid.UUID, prefix string) ([]entity.Object, error) {
	filters := []Filter{
		Equals("account_id", accountID),
		Prefix("object_id", prefix),
	}
	return r.FindByFilters(filters)
}

func (r *ObjectRepository) FindByFilters(filters []Filter) ([]entity.Object, error) {
	var objects []entity.Object
	err := ApplyFilters(r.db, filters).Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}
