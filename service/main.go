package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-resource-registry/entity"
	"github.com/tnqbao/gau-resource-registry/infra"
	"github.com/tnqbao/gau-resource-registry/infra/produce"
	"github.com/tnqbao/gau-resource-registry/repository"
)

// ObjectStore is the storage boundary for object records. Find-one
// methods return (nil, nil) when no record matches.
type ObjectStore interface {
	Create(object *entity.Object) error
	Save(object *entity.Object) error
	FindByAccountAndID(accountID, id uuid.UUID) (*entity.Object, error)
	FindByAccountAndObjectID(accountID uuid.UUID, objectID string) (*entity.Object, error)
	FindByObjectIDPrefix(accountID uuid.UUID, prefix string) ([]entity.Object, error)
	FindByFilters(filters []repository.Filter) ([]entity.Object, error)
}

// ThingStore is the storage boundary for thing records.
type ThingStore interface {
	Create(thing *entity.Thing) error
	Save(thing *entity.Thing) error
	FindByTenantAndID(tenantID, id uuid.UUID) (*entity.Thing, error)
	FindByTenantAndIDs(tenantID uuid.UUID, ids []uuid.UUID) ([]entity.Thing, error)
	FindByFilters(filters []repository.Filter) ([]entity.Thing, error)
	DeleteAndReturn(filters []repository.Filter) ([]entity.Thing, error)
}

type EventPublisher interface {
	PublishResourceEvent(ctx context.Context, message produce.ResourceEventMessage) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	Object *ObjectService
	Thing  *ThingService
}

var serviceInstance *Service

func InitService(repo *repository.Repository, infraInstance *infra.Infra) *Service {
	var cache Cache
	if infraInstance.Redis != nil {
		cache = infraInstance.Redis
	}
	var events EventPublisher
	if infraInstance.Produce != nil && infraInstance.Produce.ResourceEvents != nil {
		events = infraInstance.Produce.ResourceEvents
	}
	serviceInstance = &Service{
		Object: NewObjectService(repo.ObjectRepo, cache, events),
		Thing:  NewThingService(repo.ThingRepo, events),
	}
	return serviceInstance
}

func GetService() *Service {
	if serviceInstance == nil {
		panic("service not initialized")
	}
	return serviceInstance
}
