package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-resource-registry/entity"
	"github.com/tnqbao/gau-resource-registry/infra/produce"
	"github.com/tnqbao/gau-resource-registry/repository"
	"github.com/tnqbao/gau-resource-registry/service/dto"
	"github.com/tnqbao/gau-resource-registry/urn"
)

const (
	ObjectURNPrefix  = "object"
	AccountURNPrefix = "account"

	objectCacheTTL = 5 * time.Minute
)

type ObjectService struct {
	store  ObjectStore
	cache  Cache
	events EventPublisher
}

func NewObjectService(store ObjectStore, cache Cache, events EventPublisher) *ObjectService {
	return &ObjectService{store: store, cache: cache, events: events}
}

// Create builds a new object record with a generated surrogate id,
// timestamps set to now and active defaulted to true when absent, then
// persists it. A uniqueness conflict on (object_id, account_id) comes
// back as a ConstraintViolationError.
func (s *ObjectService) Create(ctx context.Context, accountUrn string, req *dto.CreateObjectRequest) (*dto.ObjectResponse, error) {
	accountID, err := urn.Decode(accountUrn)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	object := &entity.Object{
		ID:           uuid.New(),
		ObjectID:     req.ObjectID,
		Type:         req.Type,
		AccountID:    accountID,
		CreatedAt:    now,
		LastModified: now,
		Moniker:      req.Moniker,
		Name:         req.Name,
		Description:  req.Description,
		Active:       true,
	}
	if req.Active != nil {
		object.Active = *req.Active
	}

	if violations := object.Validate(); len(violations) > 0 {
		return nil, &ConstraintViolationError{Violations: violations}
	}

	if err := s.store.Create(object); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, uniquenessViolation("object_id")
		}
		return nil, err
	}

	s.publish(ctx, object, "created")
	return objectResponse(object), nil
}

// Update resolves the target record from the identifiers in the
// payload, merges the mutable fields onto it and persists the result.
// Returns (nil, nil) when no record matches.
func (s *ObjectService) Update(ctx context.Context, accountUrn string, req *dto.UpdateObjectRequest) (*dto.ObjectResponse, error) {
	accountID, err := urn.Decode(accountUrn)
	if err != nil {
		return nil, err
	}

	existing, err := s.resolve(accountID, req.Urn, req.ObjectID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	mergeObject(existing, req)
	if violations := existing.Validate(); len(violations) > 0 {
		return nil, &ConstraintViolationError{Violations: violations}
	}
	existing.LastModified = time.Now().UTC()

	if err := s.store.Save(existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, uniquenessViolation("object_id")
		}
		return nil, err
	}

	s.invalidate(ctx, existing)
	s.publish(ctx, existing, "updated")
	return objectResponse(existing), nil
}

func (s *ObjectService) FindByObjectID(ctx context.Context, accountUrn, objectID string) (*dto.ObjectResponse, error) {
	accountID, err := urn.Decode(accountUrn)
	if err != nil {
		return nil, err
	}
	object, err := s.store.FindByAccountAndObjectID(accountID, objectID)
	if err != nil || object == nil {
		return nil, err
	}
	return objectResponse(object), nil
}

func (s *ObjectService) FindByObjectIDPrefix(ctx context.Context, accountUrn, prefix string) ([]dto.ObjectResponse, error) {
	accountID, err := urn.Decode(accountUrn)
	if err != nil {
		return nil, err
	}
	objects, err := s.store.FindByObjectIDPrefix(accountID, prefix)
	if err != nil {
		return nil, err
	}
	return objectResponses(objects), nil
}

// FindByURN looks up a single object by its surrogate-id URN, with a
// cache read-through when a cache is wired.
func (s *ObjectService) FindByURN(ctx context.Context, accountUrn, objectUrn string) (*dto.ObjectResponse, error) {
	accountID, err := urn.Decode(accountUrn)
	if err != nil {
		return nil, err
	}
	id, err := urn.Decode(objectUrn)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached dto.ObjectResponse
		if err := s.cache.Get(ctx, objectCacheKey(accountID, id), &cached); err == nil {
			return &cached, nil
		}
	}

	object, err := s.store.FindByAccountAndID(accountID, id)
	if err != nil || object == nil {
		return nil, err
	}

	resp := objectResponse(object)
	if s.cache != nil {
		_ = s.cache.Set(ctx, objectCacheKey(accountID, id), resp, objectCacheTTL)
	}
	return resp, nil
}

func (s *ObjectService) FindByFilters(ctx context.Context, accountUrn string, filters *dto.ObjectFilters) ([]dto.ObjectResponse, error) {
	accountID, err := urn.Decode(accountUrn)
	if err != nil {
		return nil, err
	}
	objects, err := s.store.FindByFilters(composeObjectFilters(accountID, filters))
	if err != nil {
		return nil, err
	}
	return objectResponses(objects), nil
}

// resolve locates the update target. A surrogate-id URN wins when
// given; an external identifier supplied alongside it must agree with
// the stored record or the pair is rejected as contradictory.
func (s *ObjectService) resolve(accountID uuid.UUID, objectUrn, objectID *string) (*entity.Object, error) {
	if objectUrn != nil && *objectUrn != "" {
		id, err := urn.Decode(*objectUrn)
		if err != nil {
			return nil, err
		}
		object, err := s.store.FindByAccountAndID(accountID, id)
		if err != nil || object == nil {
			return nil, err
		}
		if objectID != nil && *objectID != "" && object.ObjectID != *objectID {
			return nil, ErrIdentifierConflict
		}
		return object, nil
	}
	if objectID != nil && *objectID != "" {
		return s.store.FindByAccountAndObjectID(accountID, *objectID)
	}
	return nil, nil
}

// mergeObject overwrites each mutable field that is present in the
// update (non-nil, non-empty for strings) and leaves the rest alone.
// ObjectID and AccountID are immutable and deliberately not listed.
func mergeObject(existing *entity.Object, req *dto.UpdateObjectRequest) {
	if req.Type != nil && *req.Type != "" {
		existing.Type = *req.Type
	}
	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	if req.Moniker != nil && *req.Moniker != "" {
		existing.Moniker = *req.Moniker
	}
	if req.Description != nil && *req.Description != "" {
		existing.Description = *req.Description
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}
}

// composeObjectFilters builds the composite AND predicate in a stable
// order: account scope first, then each present criterion.
func composeObjectFilters(accountID uuid.UUID, f *dto.ObjectFilters) []repository.Filter {
	filters := []repository.Filter{repository.Equals("account_id", accountID)}
	if f == nil {
		return filters
	}
	if f.ObjectIDPrefix != "" {
		filters = append(filters, repository.Prefix("object_id", f.ObjectIDPrefix))
	}
	if f.Type != "" {
		filters = append(filters, repository.Equals("type", f.Type))
	}
	if f.NamePrefix != "" {
		filters = append(filters, repository.Prefix("name", f.NamePrefix))
	}
	if f.MonikerPrefix != "" {
		filters = append(filters, repository.Prefix("moniker", f.MonikerPrefix))
	}
	if f.ModifiedAfter != nil {
		filters = append(filters, repository.GreaterThan("last_modified", time.UnixMilli(*f.ModifiedAfter).UTC()))
	}
	return filters
}

// publish emits a lifecycle event. Best-effort: a broker failure must
// not fail the already-committed persistence operation.
func (s *ObjectService) publish(ctx context.Context, object *entity.Object, action string) {
	if s.events == nil {
		return
	}
	payload, _ := json.Marshal(object)
	_ = s.events.PublishResourceEvent(ctx, produce.ResourceEventMessage{
		ResourceType: "object",
		ResourceID:   object.ID.String(),
		ScopeID:      object.AccountID.String(),
		Action:       action,
		Payload:      payload,
		Timestamp:    time.Now().UnixMilli(),
	})
}

func (s *ObjectService) invalidate(ctx context.Context, object *entity.Object) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, objectCacheKey(object.AccountID, object.ID))
}

func objectCacheKey(accountID, id uuid.UUID) string {
	return "object:" + accountID.String() + ":" + id.String()
}

func objectResponse(object *entity.Object) *dto.ObjectResponse {
	return &dto.ObjectResponse{
		Urn:          urn.Encode(ObjectURNPrefix, object.ID),
		ObjectID:     object.ObjectID,
		Type:         object.Type,
		AccountUrn:   urn.Encode(AccountURNPrefix, object.AccountID),
		CreatedAt:    object.CreatedAt.UnixMilli(),
		LastModified: object.LastModified.UnixMilli(),
		Moniker:      object.Moniker,
		Name:         object.Name,
		Description:  object.Description,
		Active:       object.Active,
	}
}

func objectResponses(objects []entity.Object) []dto.ObjectResponse {
	responses := make([]dto.ObjectResponse, 0, len(objects))
	for i := range objects {
		responses = append(responses, *objectResponse(&objects[i]))
	}
	return responses
}
