package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	model "gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/storage/memory"
)

// recordingInvalidator captures the tags a service asked to purge.
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

// seedCollection builds a publishable collection: a year, a location, and
// assetCount linked images with alt text.
func (f *fixture) seedCollection(t *testing.T, withLocation bool, assetCount int) *model.Collection {
	t.Helper()
	ctx := context.Background()

	y := year.NewYear("2025", "1.0")
	require.NoError(t, f.store.Years().Create(ctx, y))

	var locID *uuid.UUID
	if withLocation {
		l := location.NewLocation(y.ID, "Dolomites", "", "1.0")
		require.NoError(t, f.store.Locations().Create(ctx, l))
		locID = &l.ID
	}

	c := model.NewCollection(y.ID, locID, "Autumn Hike", "A week in the mountains")
	require.NoError(t, f.store.Collections().Create(ctx, c))

	for i := 0; i < assetCount; i++ {
		a := &asset.Asset{
			ID:     uuid.New(),
			Alt:    "mountain ridge at dawn",
			Width:  3000,
			Height: 2000,
		}
		require.NoError(t, f.store.Assets().Create(ctx, a))
		require.NoError(t, f.store.Assets().CreateLink(ctx,
			asset.NewLink(c.ID, a.ID, "1.0")))
	}

	return c
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

func TestPublishRequiresLocation(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, false, 3)
	ctx := context.Background()

	_, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{})
	assert.ErrorIs(t, err, model.ErrMissingLocation)

	// force has no effect on the location guard.
	_, err = f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{Force: true})
	assert.ErrorIs(t, err, model.ErrMissingLocation)

	// Nothing was recorded.
	assert.Equal(t, 0, f.auditCount(t, audit.ActionPublish))
	total, err := f.store.Collections().CountHistory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestPublishIncrementsVersionAndRecords(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, true, 3)
	ctx := context.Background()

	note := "first release"
	published, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{Note: &note})
	require.NoError(t, err)

	assert.Equal(t, 2, published.Version)
	assert.Equal(t, model.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	require.NotNil(t, published.LastPublishedAt)

	total, err := f.store.Collections().CountHistory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	entries, err := f.store.Collections().ListHistory(ctx, c.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryPublish, entries[0].Action)
	assert.Equal(t, 2, entries[0].Version)
	assert.Equal(t, testActor.ID, entries[0].ActorID)
	assert.NotNil(t, entries[0].Snapshot)

	assert.Equal(t, 1, f.auditCount(t, audit.ActionPublish))
	assert.Contains(t, f.inv.tags, "collection:"+c.ID.String())
	assert.Contains(t, f.inv.tags, "homepage")
}

func TestPublishChecklistBlocksEmptyCollection(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, true, 0)
	ctx := context.Background()

	_, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{})
	var checklistErr *model.ChecklistError
	require.ErrorAs(t, err, &checklistErr)
	assert.NotEmpty(t, checklistErr.Failed)

	// force bypasses editorial checks.
	published, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 2, published.Version)
}

func TestRepublishAndUnpublishLifecycle(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, true, 2)
	ctx := context.Background()

	first, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{})
	require.NoError(t, err)
	firstPublishedAt := *first.PublishedAt

	// Republishing is legal and bumps the version again.
	second, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, second.Version)
	assert.Equal(t, firstPublishedAt, *second.PublishedAt) // set once

	// Unpublish returns to draft without touching the version.
	unpublished, err := f.service.Unpublish(ctx, testActor, c.ID, model.UnpublishRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, unpublished.Status)
	assert.Equal(t, 3, unpublished.Version)

	history, err := f.service.ListHistory(ctx, c.ID, model.HistoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, history.Total)
	// Newest first: unpublish, then the two publishes.
	require.Len(t, history.Versions, 3)
	assert.Equal(t, model.HistoryUnpublish, history.Versions[0].Entry.Action)
	assert.Equal(t, model.HistoryPublish, history.Versions[1].Entry.Action)
}

func TestUnpublishRequiresPublished(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, true, 2)

	_, err := f.service.Unpublish(context.Background(), testActor, c.ID, model.UnpublishRequest{})
	assert.ErrorIs(t, err, model.ErrNotPublished)
}

func TestChecklistReportsMissingAlt(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, true, 1)
	ctx := context.Background()

	// Add an image without alt text.
	bare := &asset.Asset{ID: uuid.New(), Width: 800, Height: 600}
	require.NoError(t, f.store.Assets().Create(ctx, bare))
	require.NoError(t, f.store.Assets().CreateLink(ctx, asset.NewLink(c.ID, bare.ID, "2.0")))

	report, err := f.service.Checklist(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, report.CanPublish)

	var altItem *model.ChecklistItem
	for i := range report.Items {
		if report.Items[i].Key == model.CheckAltText {
			altItem = &report.Items[i]
		}
	}
	require.NotNil(t, altItem)
	assert.Equal(t, model.CheckFailed, altItem.Status)

	// Checklist is a preview: nothing changed.
	got, err := f.store.Collections().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, got.Status)
	assert.Equal(t, 1, got.Version)
}

func TestHistoryPagination(t *testing.T) {
	f := newFixture(t)
	c := f.seedCollection(t, true, 1)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.service.Publish(ctx, testActor, c.ID, model.PublishRequest{})
		require.NoError(t, err)
	}

	page, err := f.service.ListHistory(ctx, c.ID, model.HistoryRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Versions, 2)
	assert.Equal(t, 5, page.Total)
	assert.True(t, page.HasMore)
	// Versions descend from the latest publish.
	assert.Equal(t, 6, page.Versions[0].Entry.Version)

	last, err := f.service.ListHistory(ctx, c.ID, model.HistoryRequest{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, last.Versions, 1)
	assert.False(t, last.HasMore)
}

func TestPublishUnknownCollection(t *testing.T) {
	f := newFixture(t)
	f.seedCollection(t, true, 1)

	_, err := f.service.Publish(context.Background(), testActor, uuid.New(), model.PublishRequest{})
	assert.ErrorIs(t, err, model.ErrCollectionNotFound)
}
