package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/storage/memory"
)

type recordingInvalidator struct {
	tags []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, tags ...string) {
	r.tags = append(r.tags, tags...)
}

var testActor = shared.Actor{ID: "editor-1", Type: shared.ActorTypeUser}

type fixture struct {
	store   *memory.Store
	service model.Service
	inv     *recordingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	inv := &recordingInvalidator{}
	return &fixture{
		store:   store,
		service: NewService(store, inv),
		inv:     inv,
	}
}

func (f *fixture) seedCollection(t *testing.T) *collection.Collection {
	t.Helper()
	ctx := context.Background()

	y := year.NewYear("2025", "1.0")
	require.NoError(t, f.store.Years().Create(ctx, y))
	l := location.NewLocation(y.ID, "Lofoten", "", "1.0")
	require.NoError(t, f.store.Locations().Create(ctx, l))

	c := collection.NewCollection(y.ID, &l.ID, "Winter Light", "")
	require.NoError(t, f.store.Collections().Create(ctx, c))
	return c
}

func (f *fixture) seedAsset(t *testing.T) *model.Asset {
	t.Helper()
	a := &model.Asset{ID: uuid.New(), Alt: "drying racks on the shore", Width: 3000, Height: 2000}
	require.NoError(t, f.store.Assets().Create(context.Background(), a))
	return a
}

func (f *fixture) auditCount(t *testing.T, action audit.Action) int {
	t.Helper()
	entries, _, err := f.store.Audit().Query(context.Background(), audit.Filter{
		Action: action,
		Limit:  100,
	})
	require.NoError(t, err)
	return len(entries)
}

func addRequest(assets ...*model.Asset) model.AddToCollectionRequest {
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID.String()
	}
	return model.AddToCollectionRequest{AssetIDs: ids}
}

func TestAddToCollectionAssignsSequentialPositions(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a, b := f.seedAsset(t), f.seedAsset(t)
	ctx := context.Background()

	result, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a, b))
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "1.0", result.Created[0].OrderKey)
	assert.Equal(t, "2.0", result.Created[1].OrderKey)

	links, err := f.store.Assets().ListLinks(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, a.ID, links[0].AssetID)
	assert.Equal(t, b.ID, links[1].AssetID)
}

func TestAddToCollectionIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a := f.seedAsset(t)
	ctx := context.Background()

	ghost := uuid.New()
	req := model.AddToCollectionRequest{AssetIDs: []string{a.ID.String(), ghost.String()}}

	_, err := f.service.AddToCollection(ctx, testActor, c.ID, req)
	var missing *model.MissingAssetsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []uuid.UUID{ghost}, missing.MissingIDs)

	// The valid asset was not linked either.
	links, err := f.store.Assets().ListLinks(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.Equal(t, 0, f.auditCount(t, audit.ActionLink))
}

func TestAddToCollectionSkipsDuplicatesWithoutConsumingPositions(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a, b := f.seedAsset(t), f.seedAsset(t)
	ctx := context.Background()

	_, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a))
	require.NoError(t, err)

	// Re-sending the whole batch: a is skipped, b takes the next position,
	// not the one after a phantom slot.
	result, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a, b))
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, b.ID, result.Created[0].AssetID)
	assert.Equal(t, "2.0", result.Created[0].OrderKey)
}

func TestAddToCollectionFullDuplicateIsNoOp(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a := f.seedAsset(t)
	ctx := context.Background()

	_, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a))
	require.NoError(t, err)
	linkAudits := f.auditCount(t, audit.ActionLink)

	result, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a))
	require.NoError(t, err)
	assert.True(t, result.NoOp())
	assert.Equal(t, 1, result.Skipped)

	// A no-op leaves no ledger entry behind.
	assert.Equal(t, linkAudits, f.auditCount(t, audit.ActionLink))
}

func TestAddToCollectionHonorsInsertAt(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a, b := f.seedAsset(t), f.seedAsset(t)
	ctx := context.Background()

	insertAt := 0.5
	result, err := f.service.AddToCollection(ctx, testActor, c.ID, model.AddToCollectionRequest{
		AssetIDs: []string{a.ID.String(), b.ID.String()},
		InsertAt: &insertAt,
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Equal(t, "0.5", result.Created[0].OrderKey)
	assert.Equal(t, "1.5", result.Created[1].OrderKey)
}

func TestAddToCollectionUnknownCollection(t *testing.T) {
	f := newFixture(t)
	a := f.seedAsset(t)

	_, err := f.service.AddToCollection(context.Background(), testActor, uuid.New(), addRequest(a))
	assert.ErrorIs(t, err, model.ErrCollectionNotFound)
}

func TestReorderSkipsDanglingPairs(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a, b := f.seedAsset(t), f.seedAsset(t)
	ctx := context.Background()

	_, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a, b))
	require.NoError(t, err)

	// One pair points at an asset that was never linked.
	err = f.service.Reorder(ctx, testActor, c.ID, model.ReorderRequest{
		Pairs: []model.ReorderPair{
			{AssetID: b.ID.String(), OrderKey: "0.5"},
			{AssetID: uuid.NewString(), OrderKey: "9.0"},
		},
	})
	require.NoError(t, err)

	links, err := f.store.Assets().ListLinks(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, b.ID, links[0].AssetID)
	assert.Equal(t, "0.5", links[0].OrderKey)
}

func TestRemoveFromCollectionIsIdempotent(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t)
	a := f.seedAsset(t)
	ctx := context.Background()

	_, err := f.service.AddToCollection(ctx, testActor, c.ID, addRequest(a))
	require.NoError(t, err)

	require.NoError(t, f.service.RemoveFromCollection(ctx, testActor, c.ID, a.ID))
	unlinks := f.auditCount(t, audit.ActionUnlink)
	assert.Equal(t, 1, unlinks)

	// Removing again succeeds silently and records nothing.
	require.NoError(t, f.service.RemoveFromCollection(ctx, testActor, c.ID, a.ID))
	assert.Equal(t, unlinks, f.auditCount(t, audit.ActionUnlink))

	// The asset itself survives.
	_, err = f.store.Assets().GetByID(ctx, a.ID)
	require.NoError(t, err)
}

func TestDeleteAssetBlockedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	c1 := f.seedCollection(t)
	y, err := f.store.Years().List(context.Background())
	require.NoError(t, err)
	c2 := collection.NewCollection(y[0].ID, nil, "Second Set", "")
	require.NoError(t, f.store.Collections().Create(context.Background(), c2))

	a := f.seedAsset(t)
	ctx := context.Background()

	_, err = f.service.AddToCollection(ctx, testActor, c1.ID, addRequest(a))
	require.NoError(t, err)
	_, err = f.service.AddToCollection(ctx, testActor, c2.ID, addRequest(a))
	require.NoError(t, err)

	err = f.service.Delete(ctx, testActor, a.ID)
	var inUse *model.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Len(t, inUse.ReferencedBy, 2)

	// Unlink everywhere, then delete succeeds.
	require.NoError(t, f.service.RemoveFromCollection(ctx, testActor, c1.ID, a.ID))
	require.NoError(t, f.service.RemoveFromCollection(ctx, testActor, c2.ID, a.ID))
	require.NoError(t, f.service.Delete(ctx, testActor, a.ID))

	_, err = f.store.Assets().GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrAssetNotFound)
}

func TestCreateAssetWithSuppliedID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := uuid.NewString()
	created, err := f.service.Create(ctx, testActor, model.CreateAssetRequest{
		ID:     &id,
		Alt:    "harbor at dusk",
		Width:  1200,
		Height: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID.String())

	// Same id again collides.
	_, err = f.service.Create(ctx, testActor, model.CreateAssetRequest{
		ID:     &id,
		Alt:    "harbor at dusk",
		Width:  1200,
		Height: 800,
	})
	assert.ErrorIs(t, err, model.ErrAssetAlreadyExists)
}
