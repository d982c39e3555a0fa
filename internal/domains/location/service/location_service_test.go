package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	model "gallery-backend/internal/domains/location"
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

func (f *fixture) seedYear(t *testing.T, label string) *year.Year {
	t.Helper()
	y := year.NewYear(label, "1.0")
	require.NoError(t, f.store.Years().Create(context.Background(), y))
	return y
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

func TestCreateDerivesSlugAndOrderKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.seedYear(t, "2025")

	first, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Lofoten Islands"})
	require.NoError(t, err)
	second, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Senja"})
	require.NoError(t, err)

	assert.Equal(t, "lofoten-islands", first.Slug)
	assert.Equal(t, "1.0", first.OrderKey)
	assert.Equal(t, "2.0", second.OrderKey)
	assert.Contains(t, f.inv.tags, "year:"+y.ID.String())
}

func TestCreateRejectsDuplicateSlugWithinYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.seedYear(t, "2025")
	other := f.seedYear(t, "2024")

	_, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Lofoten"})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Lofoten"})
	require.ErrorIs(t, err, model.ErrDuplicateSlug)

	// The slug is scoped per year, so the same name elsewhere is fine.
	_, err = f.service.Create(ctx, testActor, other.ID, model.CreateLocationRequest{Name: "Lofoten"})
	require.NoError(t, err)
}

func TestCreateUnknownYear(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), testActor, uuid.New(), model.CreateLocationRequest{Name: "Lofoten"})
	require.ErrorIs(t, err, model.ErrYearNotFound)
	assert.Equal(t, 0, f.auditCount(t, audit.ActionCreate))
}

func TestCreateCoverAssetMustExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.seedYear(t, "2025")

	ghost := uuid.NewString()
	_, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{
		Name:         "Lofoten",
		CoverAssetID: &ghost,
	})
	require.ErrorIs(t, err, asset.ErrAssetNotFound)
}

func TestUpdateRenameReslugs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.seedYear(t, "2025")

	l, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Lofoten"})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Senja"})
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, testActor, l.ID, model.UpdateLocationRequest{Name: "Vesteralen"})
	require.NoError(t, err)
	assert.Equal(t, "vesteralen", updated.Slug)

	// Renaming onto a sibling's slug is rejected.
	_, err = f.service.Update(ctx, testActor, l.ID, model.UpdateLocationRequest{Name: "Senja"})
	require.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestDeleteBlockedByCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.seedYear(t, "2025")

	l, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Lofoten"})
	require.NoError(t, err)
	c := collection.NewCollection(y.ID, &l.ID, "Winter Light", "")
	require.NoError(t, f.store.Collections().Create(ctx, c))

	err = f.service.Delete(ctx, testActor, l.ID)
	var inUse *model.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Contains(t, inUse.CollectionIDs, c.ID)

	_, err = f.store.Locations().GetByID(ctx, l.ID)
	require.NoError(t, err)
}

func TestDeleteRemovesEmptyLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.seedYear(t, "2025")

	l, err := f.service.Create(ctx, testActor, y.ID, model.CreateLocationRequest{Name: "Lofoten"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, testActor, l.ID))

	_, err = f.store.Locations().GetByID(ctx, l.ID)
	require.ErrorIs(t, err, model.ErrLocationNotFound)
	assert.Equal(t, 1, f.auditCount(t, audit.ActionDelete))
}
