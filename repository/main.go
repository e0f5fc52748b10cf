package repository

import (
	"github.com/tnqbao/gau-resource-registry/infra"
	"gorm.io/gorm"
)

// ErrDuplicateKey is the storage-level uniqueness violation, translated
// by the postgres driver.
var ErrDuplicateKey = gorm.ErrDuplicatedKey

type Repository struct {
	ObjectRepo     *ObjectRepository
	ThingRepo      *ThingRepository
	AuditEventRepo *AuditEventRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		ObjectRepo:     NewObjectRepository(infra.Postgres.DB),
		ThingRepo:      NewThingRepository(infra.Postgres.DB),
		AuditEventRepo: NewAuditEventRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		ObjectRepo:     NewObjectRepository(tx),
		ThingRepo:      NewThingRepository(tx),
		AuditEventRepo: NewAuditEventRepository(tx),
	}
}
