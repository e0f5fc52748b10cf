package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-resource-registry/entity"
	"github.com/tnqbao/gau-resource-registry/infra/produce"
	"github.com/tnqbao/gau-resource-registry/repository"
	"github.com/tnqbao/gau-resource-registry/service/dto"
	"github.com/tnqbao/gau-resource-registry/urn"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(v int64) *int64 { return &v }

type fakeObjectStore struct {
	objects map[uuid.UUID]entity.Object
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[uuid.UUID]entity.Object)}
}

func (f *fakeObjectStore) Create(object *entity.Object) error {
	for _, existing := range f.objects {
		if existing.AccountID == object.AccountID && existing.ObjectID == object.ObjectID {
			return repository.ErrDuplicateKey
		}
	}
	f.objects[object.ID] = *object
	return nil
}

func (f *fakeObjectStore) Save(object *entity.Object) error {
	f.objects[object.ID] = *object
	return nil
}

func (f *fakeObjectStore) FindByAccountAndID(accountID, id uuid.UUID) (*entity.Object, error) {
	object, ok := f.objects[id]
	if !ok || object.AccountID != accountID {
		return nil, nil
	}
	found := object
	return &found, nil
}

func (f *fakeObjectStore) FindByAccountAndObjectID(accountID uuid.UUID, objectID string) (*entity.Object, error) {
	for _, object := range f.objects {
		if object.AccountID == accountID && object.ObjectID == objectID {
			found := object
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeObjectStore) FindByObjectIDPrefix(accountID uuid.UUID, prefix string) ([]entity.Object, error) {
	return f.FindByFilters([]repository.Filter{
		repository.Equals("account_id", accountID),
		repository.Prefix("object_id", prefix),
	})
}

func (f *fakeObjectStore) FindByFilters(filters []repository.Filter) ([]entity.Object, error) {
	var out []entity.Object
	for _, object := range f.objects {
		if objectMatchesAll(object, filters) {
			out = append(out, object)
		}
	}
	return out, nil
}

func objectMatchesAll(object entity.Object, filters []repository.Filter) bool {
	for _, f := range filters {
		if !objectMatches(object, f) {
			return false
		}
	}
	return true
}

func objectMatches(object entity.Object, f repository.Filter) bool {
	switch f.Column {
	case "account_id":
		return object.AccountID == f.Value.(uuid.UUID)
	case "object_id":
		if f.Op == repository.FilterPrefix {
			return strings.HasPrefix(object.ObjectID, f.Value.(string))
		}
		return object.ObjectID == f.Value.(string)
	case "type":
		return object.Type == f.Value.(string)
	case "name":
		return strings.HasPrefix(object.Name, f.Value.(string))
	case "moniker":
		return strings.HasPrefix(object.Moniker, f.Value.(string))
	case "last_modified":
		return object.LastModified.After(f.Value.(time.Time))
	}
	return false
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := f.entries[key]
	if !ok {
		return errors.New("key not found in cache")
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

type recordingPublisher struct {
	messages []produce.ResourceEventMessage
}

func (r *recordingPublisher) PublishResourceEvent(ctx context.Context, message produce.ResourceEventMessage) error {
	r.messages = append(r.messages, message)
	return nil
}

func newObjectFixture() (*ObjectService, *fakeObjectStore, *recordingPublisher, string) {
	store := newFakeObjectStore()
	publisher := &recordingPublisher{}
	svc := NewObjectService(store, nil, publisher)
	accountUrn := urn.Encode(AccountURNPrefix, uuid.New())
	return svc, store, publisher, accountUrn
}

func TestObjectCreateThenLookup(t *testing.T) {
	svc, _, publisher, accountUrn := newObjectFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-001",
		Type:     "sensor",
		Name:     "temperature sensor",
		Moniker:  "temp-1",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "device-001", created.ObjectID)
	assert.Equal(t, accountUrn, created.AccountUrn)
	assert.True(t, created.Active)

	found, err := svc.FindByObjectID(ctx, accountUrn, "device-001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created, found)

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "created", publisher.messages[0].Action)
	assert.Equal(t, "object", publisher.messages[0].ResourceType)
}

func TestObjectCreateActiveDefault(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-002", Type: "sensor", Name: "s",
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	created, err = svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-003", Type: "sensor", Name: "s", Active: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, created.Active)
}

func TestObjectCreateDuplicate(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()
	ctx := context.Background()

	req := &dto.CreateObjectRequest{ObjectID: "device-001", Type: "sensor", Name: "s"}
	_, err := svc.Create(ctx, accountUrn, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, accountUrn, req)
	var violation *ConstraintViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "object_id", violation.Violations[0].Field)
}

func TestObjectCreateInvalidAccountUrn(t *testing.T) {
	svc, _, _, _ := newObjectFixture()

	_, err := svc.Create(context.Background(), "not-a-urn", &dto.CreateObjectRequest{
		ObjectID: "device-001", Type: "sensor", Name: "s",
	})
	assert.ErrorIs(t, err, urn.ErrInvalidIdentifier)
}

func TestObjectCreateValidationFailure(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()

	_, err := svc.Create(context.Background(), accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-001", Type: "sensor",
	})
	var violation *ConstraintViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "name", violation.Violations[0].Field)
}

func TestObjectUpdateMergesPresentFields(t *testing.T) {
	svc, _, publisher, accountUrn := newObjectFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID:    "device-001",
		Type:        "sensor",
		Name:        "old name",
		Moniker:     "old moniker",
		Description: "old description",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, accountUrn, &dto.UpdateObjectRequest{
		Urn:  strPtr(created.Urn),
		Name: strPtr("new name"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "new name", updated.Name)
	assert.Equal(t, "old moniker", updated.Moniker)
	assert.Equal(t, "old description", updated.Description)
	assert.Equal(t, "device-001", updated.ObjectID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.LastModified, created.LastModified)

	require.Len(t, publisher.messages, 2)
	assert.Equal(t, "updated", publisher.messages[1].Action)
}

func TestObjectUpdateByExternalIDOnly(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-001", Type: "sensor", Name: "s",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, accountUrn, &dto.UpdateObjectRequest{
		ObjectID: strPtr("device-001"),
		Active:   boolPtr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Active)
}

func TestObjectUpdateIdentifierConflict(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-001", Type: "sensor", Name: "s",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, accountUrn, &dto.UpdateObjectRequest{
		Urn:      strPtr(created.Urn),
		ObjectID: strPtr("device-999"),
	})
	assert.ErrorIs(t, err, ErrIdentifierConflict)
}

func TestObjectUpdateNonexistentSurrogate(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()

	updated, err := svc.Update(context.Background(), accountUrn, &dto.UpdateObjectRequest{
		Urn:  strPtr(urn.Encode(ObjectURNPrefix, uuid.New())),
		Name: strPtr("whatever"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestObjectUpdateNoIdentifiers(t *testing.T) {
	svc, _, _, accountUrn := newObjectFixture()

	updated, err := svc.Update(context.Background(), accountUrn, &dto.UpdateObjectRequest{
		Name: strPtr("whatever"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestMergeObjectIdempotent(t *testing.T) {
	existing := entity.Object{
		ID:          uuid.New(),
		ObjectID:    "device-001",
		Type:        "sensor",
		AccountID:   uuid.New(),
		Moniker:     "m",
		Name:        "n",
		Description: "d",
		Active:      true,
	}
	before := existing

	mergeObject(&existing, &dto.UpdateObjectRequest{
		Type:        strPtr("sensor"),
		Name:        strPtr("n"),
		Moniker:     strPtr("m"),
		Description: strPtr("d"),
		Active:      boolPtr(true),
	})
	assert.Equal(t, before, existing)
}

func TestMergeObjectSkipsAbsentAndEmpty(t *testing.T) {
	existing := entity.Object{ObjectID: "device-001", Type: "sensor", Name: "n", Moniker: "m"}
	before := existing

	mergeObject(&existing, &dto.UpdateObjectRequest{
		Name:    strPtr(""),
		Moniker: nil,
	})
	assert.Equal(t, before, existing)
}

func TestMergeObjectNeverTouchesImmutableFields(t *testing.T) {
	existing := entity.Object{
		ObjectID:  "device-001",
		Type:      "sensor",
		AccountID: uuid.New(),
		Name:      "n",
	}
	originalObjectID := existing.ObjectID
	originalAccountID := existing.AccountID

	mergeObject(&existing, &dto.UpdateObjectRequest{
		ObjectID: strPtr("device-999"),
		Name:     strPtr("renamed"),
	})
	assert.Equal(t, originalObjectID, existing.ObjectID)
	assert.Equal(t, originalAccountID, existing.AccountID)
	assert.Equal(t, "renamed", existing.Name)
}

func seedObject(store *fakeObjectStore, accountID uuid.UUID, objectID, objectType, name, moniker string, modified time.Time) {
	id := uuid.New()
	store.objects[id] = entity.Object{
		ID:           id,
		ObjectID:     objectID,
		Type:         objectType,
		AccountID:    accountID,
		CreatedAt:    modified,
		LastModified: modified,
		Moniker:      moniker,
		Name:         name,
		Active:       true,
	}
}

func TestObjectFindByFiltersTypeSplit(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewObjectService(store, nil, nil)
	accountID := uuid.New()
	accountUrn := urn.Encode(AccountURNPrefix, accountID)
	now := time.Now().UTC()

	for i := 0; i < 6; i++ {
		seedObject(store, accountID, "sensor-"+uuid.NewString(), "sensor", "sensor", "", now)
	}
	for i := 0; i < 6; i++ {
		seedObject(store, accountID, "actuator-"+uuid.NewString(), "actuator", "actuator", "", now)
	}

	results, err := svc.FindByFilters(context.Background(), accountUrn, &dto.ObjectFilters{Type: "sensor"})
	require.NoError(t, err)
	assert.Len(t, results, 6)
}

func TestObjectFindByFiltersNameAndMonikerPrefix(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewObjectService(store, nil, nil)
	accountID := uuid.New()
	accountUrn := urn.Encode(AccountURNPrefix, accountID)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		seedObject(store, accountID, "a-"+uuid.NewString(), "sensor", "name one", "mon-a", now)
	}
	for i := 0; i < 3; i++ {
		seedObject(store, accountID, "b-"+uuid.NewString(), "sensor", "name two", "mon-b", now)
	}
	for i := 0; i < 3; i++ {
		seedObject(store, accountID, "c-"+uuid.NewString(), "sensor", "other", "other", now)
	}

	results, err := svc.FindByFilters(context.Background(), accountUrn, &dto.ObjectFilters{NamePrefix: "name o"})
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = svc.FindByFilters(context.Background(), accountUrn, &dto.ObjectFilters{NamePrefix: "name"})
	require.NoError(t, err)
	assert.Len(t, results, 6)

	results, err = svc.FindByFilters(context.Background(), accountUrn, &dto.ObjectFilters{MonikerPrefix: "mon-"})
	require.NoError(t, err)
	assert.Len(t, results, 6)
}

func TestObjectFindByFiltersModifiedAfterStrictBoundary(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewObjectService(store, nil, nil)
	accountID := uuid.New()
	accountUrn := urn.Encode(AccountURNPrefix, accountID)

	t1 := time.UnixMilli(1000).UTC()
	t2 := time.UnixMilli(2000).UTC()
	t3 := time.UnixMilli(3000).UTC()
	seedObject(store, accountID, "one", "sensor", "one", "", t1)
	seedObject(store, accountID, "two", "sensor", "two", "", t2)
	seedObject(store, accountID, "three", "sensor", "three", "", t3)

	tests := []struct {
		modifiedAfter int64
		want          int
	}{
		{modifiedAfter: 999, want: 3},
		{modifiedAfter: 1000, want: 2}, // strict greater-than excludes the t1 record
		{modifiedAfter: 2000, want: 1},
		{modifiedAfter: 3000, want: 0},
		{modifiedAfter: 4000, want: 0},
	}
	for _, tt := range tests {
		results, err := svc.FindByFilters(context.Background(), accountUrn, &dto.ObjectFilters{
			ModifiedAfter: int64Ptr(tt.modifiedAfter),
		})
		require.NoError(t, err)
		assert.Len(t, results, tt.want, "modified_after=%d", tt.modifiedAfter)
	}
}

func TestObjectFindByFiltersAlwaysScopedToAccount(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewObjectService(store, nil, nil)
	accountID := uuid.New()
	otherAccountID := uuid.New()
	now := time.Now().UTC()

	seedObject(store, accountID, "mine", "sensor", "mine", "", now)
	seedObject(store, otherAccountID, "theirs", "sensor", "theirs", "", now)

	results, err := svc.FindByFilters(context.Background(), urn.Encode(AccountURNPrefix, accountID), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mine", results[0].ObjectID)
}

func TestObjectFindByObjectIDPrefix(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewObjectService(store, nil, nil)
	accountID := uuid.New()
	accountUrn := urn.Encode(AccountURNPrefix, accountID)
	now := time.Now().UTC()

	seedObject(store, accountID, "dev-001", "sensor", "a", "", now)
	seedObject(store, accountID, "dev-002", "sensor", "b", "", now)
	seedObject(store, accountID, "gw-001", "gateway", "c", "", now)

	results, err := svc.FindByObjectIDPrefix(context.Background(), accountUrn, "dev-")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestComposeObjectFiltersStableOrder(t *testing.T) {
	accountID := uuid.New()
	filters := composeObjectFilters(accountID, &dto.ObjectFilters{
		ObjectIDPrefix: "dev-",
		Type:           "sensor",
		NamePrefix:     "name",
		MonikerPrefix:  "mon",
		ModifiedAfter:  int64Ptr(1000),
	})

	columns := make([]string, 0, len(filters))
	for _, f := range filters {
		columns = append(columns, f.Column)
	}
	assert.Equal(t, []string{"account_id", "object_id", "type", "name", "moniker", "last_modified"}, columns)

	// absent criteria leave only the scope filter
	assert.Len(t, composeObjectFilters(accountID, &dto.ObjectFilters{}), 1)
	assert.Len(t, composeObjectFilters(accountID, nil), 1)
}

func TestObjectFindByURNUsesCache(t *testing.T) {
	store := newFakeObjectStore()
	cache := newFakeCache()
	svc := NewObjectService(store, cache, nil)
	ctx := context.Background()
	accountUrn := urn.Encode(AccountURNPrefix, uuid.New())

	created, err := svc.Create(ctx, accountUrn, &dto.CreateObjectRequest{
		ObjectID: "device-001", Type: "sensor", Name: "s",
	})
	require.NoError(t, err)

	first, err := svc.FindByURN(ctx, accountUrn, created.Urn)
	require.NoError(t, err)
	require.NotNil(t, first)

	// second read is served from the cache even without the store row
	store.objects = make(map[uuid.UUID]entity.Object)
	second, err := svc.FindByURN(ctx, accountUrn, created.Urn)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
