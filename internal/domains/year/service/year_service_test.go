package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/location"
	model "gallery-backend/internal/domains/year"
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

func (f *fixture) auditCount(t *testing.T, action audit.Action) int {
	t.Helper()
	entries, _, err := f.store.Audit().Query(context.Background(), audit.Filter{
		Action: action,
		Limit:  100,
	})
	require.NoError(t, err)
	return len(entries)
}

func TestCreateAssignsNextOrderKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2024"})
	require.NoError(t, err)
	second, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2025"})
	require.NoError(t, err)

	assert.Equal(t, "1.0", first.OrderKey)
	assert.Equal(t, "2.0", second.OrderKey)
	assert.Equal(t, model.StatusDraft, first.Status)

	assert.Equal(t, 2, f.auditCount(t, audit.ActionCreate))
	assert.Contains(t, f.inv.tags, "years")
	assert.Contains(t, f.inv.tags, "homepage")
}

func TestCreateHonorsExplicitOrderKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2024"})
	require.NoError(t, err)

	key := "0.5"
	y, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2023", OrderKey: &key})
	require.NoError(t, err)
	assert.Equal(t, "0.5", y.OrderKey)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	y, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2024"})
	require.NoError(t, err)

	status := "archived"
	_, err = f.service.Update(ctx, testActor, y.ID, model.UpdateYearRequest{Label: "2024", Status: &status})
	require.Error(t, err)

	stored, err := f.store.Years().GetByID(ctx, y.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, stored.Status)
}

func TestDeleteBlockedWhileInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	y, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2025"})
	require.NoError(t, err)

	l := location.NewLocation(y.ID, "Lofoten", "", "1.0")
	require.NoError(t, f.store.Locations().Create(ctx, l))
	c := collection.NewCollection(y.ID, &l.ID, "Winter Light", "")
	require.NoError(t, f.store.Collections().Create(ctx, c))

	err = f.service.Delete(ctx, testActor, y.ID)
	var inUse *model.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Contains(t, inUse.LocationIDs, l.ID)
	assert.Contains(t, inUse.CollectionIDs, c.ID)

	_, err = f.store.Years().GetByID(ctx, y.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.auditCount(t, audit.ActionDelete))
}

func TestDeleteRemovesEmptyYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	y, err := f.service.Create(ctx, testActor, model.CreateYearRequest{Label: "2025"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, testActor, y.ID))

	_, err = f.store.Years().GetByID(ctx, y.ID)
	require.ErrorIs(t, err, model.ErrYearNotFound)
	assert.Equal(t, 1, f.auditCount(t, audit.ActionDelete))
	assert.Contains(t, f.inv.tags, "year:"+y.ID.String())
}
