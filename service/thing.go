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
	ThingURNPrefix  = "thing"
	TenantURNPrefix = "tenant"
)

type ThingService struct {
	store  ThingStore
	events EventPublisher
}

func NewThingService(store ThingStore, events EventPublisher) *ThingService {
	return &ThingService{store: store, events: events}
}

// Create persists a new thing. The identifier is client-supplied when
// the payload carries a URN, server-generated otherwise. A uniqueness
// conflict on (id, tenant_id) comes back as a ConstraintViolationError.
func (s *ThingService) Create(ctx context.Context, tenantUrn string, req *dto.CreateThingRequest) (*dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	if req.Urn != nil && *req.Urn != "" {
		id, err = urn.Decode(*req.Urn)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	thing := &entity.Thing{
		ID:           id,
		Type:         req.Type,
		TenantID:     tenantID,
		CreatedAt:    now,
		LastModified: now,
		Active:       true,
	}
	if req.Active != nil {
		thing.Active = *req.Active
	}

	if violations := thing.Validate(); len(violations) > 0 {
		return nil, &ConstraintViolationError{Violations: violations}
	}

	if err := s.store.Create(thing); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, uniquenessViolation("id")
		}
		return nil, err
	}

	s.publish(ctx, thing, "created")
	return thingResponse(thing), nil
}

// Update merges the mutable fields onto the stored record. Type and
// TenantID are immutable. Returns (nil, nil) when no record matches.
func (s *ThingService) Update(ctx context.Context, tenantUrn string, req *dto.UpdateThingRequest) (*dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}
	id, err := urn.Decode(req.Urn)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByTenantAndID(tenantID, id)
	if err != nil || existing == nil {
		return nil, err
	}

	mergeThing(existing, req)
	if violations := existing.Validate(); len(violations) > 0 {
		return nil, &ConstraintViolationError{Violations: violations}
	}
	existing.LastModified = time.Now().UTC()

	if err := s.store.Save(existing); err != nil {
		return nil, err
	}

	s.publish(ctx, existing, "updated")
	return thingResponse(existing), nil
}

// Delete removes the thing addressed by the URN and returns the
// removed records so the caller can confirm what was deleted.
func (s *ThingService) Delete(ctx context.Context, tenantUrn, thingUrn string) ([]dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}
	id, err := urn.Decode(thingUrn)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteAndReturn([]repository.Filter{
		repository.Equals("tenant_id", tenantID),
		repository.Equals("id", id),
	})
	if err != nil {
		return nil, err
	}

	for i := range deleted {
		s.publish(ctx, &deleted[i], "deleted")
	}
	return thingResponses(deleted), nil
}

// DeleteByType removes every thing of the given type within the tenant
// and returns the removed records.
func (s *ThingService) DeleteByType(ctx context.Context, tenantUrn, thingType string) ([]dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteAndReturn([]repository.Filter{
		repository.Equals("tenant_id", tenantID),
		repository.Equals("type", thingType),
	})
	if err != nil {
		return nil, err
	}

	for i := range deleted {
		s.publish(ctx, &deleted[i], "deleted")
	}
	return thingResponses(deleted), nil
}

func (s *ThingService) FindByURN(ctx context.Context, tenantUrn, thingUrn string) (*dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}
	id, err := urn.Decode(thingUrn)
	if err != nil {
		return nil, err
	}
	thing, err := s.store.FindByTenantAndID(tenantID, id)
	if err != nil || thing == nil {
		return nil, err
	}
	return thingResponse(thing), nil
}

// FindByURNs looks up a batch of things. Unparseable entries and
// entries with no matching record are omitted from the result rather
// than failing the batch.
func (s *ThingService) FindByURNs(ctx context.Context, tenantUrn string, thingUrns []string) ([]dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(thingUrns))
	for _, u := range thingUrns {
		id, err := urn.Decode(u)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	things, err := s.store.FindByTenantAndIDs(tenantID, ids)
	if err != nil {
		return nil, err
	}
	return thingResponses(things), nil
}

func (s *ThingService) FindByFilters(ctx context.Context, tenantUrn string, filters *dto.ThingFilters) ([]dto.ThingResponse, error) {
	tenantID, err := urn.Decode(tenantUrn)
	if err != nil {
		return nil, err
	}
	things, err := s.store.FindByFilters(composeThingFilters(tenantID, filters))
	if err != nil {
		return nil, err
	}
	return thingResponses(things), nil
}

// mergeThing overwrites each mutable field present in the update.
// Type and TenantID are immutable and deliberately not listed.
func mergeThing(existing *entity.Thing, req *dto.UpdateThingRequest) {
	if req.Active != nil {
		existing.Active = *req.Active
	}
}

// composeThingFilters builds the composite AND predicate in a stable
// order: tenant scope first, then each present criterion. The id
// prefix matches against the text form of the uuid column.
func composeThingFilters(tenantID uuid.UUID, f *dto.ThingFilters) []repository.Filter {
	filters := []repository.Filter{repository.Equals("tenant_id", tenantID)}
	if f == nil {
		return filters
	}
	if f.IDPrefix != "" {
		filters = append(filters, repository.Prefix("CAST(id AS TEXT)", f.IDPrefix))
	}
	if f.Type != "" {
		filters = append(filters, repository.Equals("type", f.Type))
	}
	if f.ModifiedAfter != nil {
		filters = append(filters, repository.GreaterThan("last_modified", time.UnixMilli(*f.ModifiedAfter).UTC()))
	}
	return filters
}

func (s *ThingService) publish(ctx context.Context, thing *entity.Thing, action string) {
	if s.events == nil {
		return
	}
	payload, _ := json.Marshal(thing)
	_ = s.events.PublishResourceEvent(ctx, produce.ResourceEventMessage{
		ResourceType: "thing",
		ResourceID:   thing.ID.String(),
		ScopeID:      thing.TenantID.String(),
		Action:       action,
		Payload:      payload,
		Timestamp:    time.Now().UnixMilli(),
	})
}

func thingResponse(thing *entity.Thing) *dto.ThingResponse {
	return &dto.ThingResponse{
		Urn:          urn.Encode(ThingURNPrefix, thing.ID),
		Type:         thing.Type,
		TenantUrn:    urn.Encode(TenantURNPrefix, thing.TenantID),
		CreatedAt:    thing.CreatedAt.UnixMilli(),
		LastModified: thing.LastModified.UnixMilli(),
		Active:       thing.Active,
	}
}

func thingResponses(things []entity.Thing) []dto.ThingResponse {
	responses := make([]dto.ThingResponse, 0, len(things))
	for i := range things {
		responses = append(responses, *thingResponse(&things[i]))
	}
	return responses
}
