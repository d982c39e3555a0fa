package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "gallery-backend/internal/domains/audit"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/storage/memory"
)

var testActor = shared.Actor{ID: "editor-1", Type: shared.ActorTypeUser}

func seedEntries(t *testing.T, store *memory.Store, n int) []string {
	t.Helper()
	ctx := context.Background()

	ids := make([]string, n)
	for i := 0; i < n; i++ {
		entityID := uuid.NewString()
		entry := model.NewEntry(testActor, model.EntityCollection, entityID, model.ActionEdit, nil)
		// Spread timestamps so ordering is deterministic.
		entry.CreatedAt = time.Now().UTC().Add(time.Duration(i-n) * time.Minute)
		require.NoError(t, store.Audit().Append(ctx, entry))
		ids[i] = entityID
	}
	return ids
}

func TestQueryPaginatesNewestFirst(t *testing.T) {
	store := memory.NewStore()
	seedEntries(t, store, 5)
	svc := NewService(store)

	page, err := svc.Query(context.Background(), model.QueryRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, 5, page.Total)
	assert.True(t, page.HasMore)
	assert.True(t, page.Results[0].CreatedAt.After(page.Results[1].CreatedAt))

	last, err := svc.Query(context.Background(), model.QueryRequest{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, last.Results, 1)
	assert.False(t, last.HasMore)
}

func TestQueryDefaultsAndFilters(t *testing.T) {
	store := memory.NewStore()
	ids := seedEntries(t, store, 3)
	svc := NewService(store)
	ctx := context.Background()

	// Default limit kicks in when none is given.
	page, err := svc.Query(ctx, model.QueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultQueryLimit, page.Limit)
	assert.Len(t, page.Results, 3)

	// Entity filter narrows to one row.
	one, err := svc.Query(ctx, model.QueryRequest{
		EntityType: model.EntityCollection,
		EntityID:   ids[0],
	})
	require.NoError(t, err)
	require.Len(t, one.Results, 1)
	assert.Equal(t, ids[0], one.Results[0].EntityID)
}

func TestQueryRejectsUnknownFilters(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	_, err := svc.Query(ctx, model.QueryRequest{EntityType: "invoice"})
	assert.Error(t, err)

	_, err = svc.Query(ctx, model.QueryRequest{Action: "explode"})
	assert.Error(t, err)

	_, err = svc.Query(ctx, model.QueryRequest{Limit: 1000})
	assert.Error(t, err)
}

func TestRetentionPreviewCountsWithoutDeleting(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	old := model.NewEntry(testActor, model.EntityAsset, uuid.NewString(), model.ActionCreate, nil)
	old.CreatedAt = time.Now().UTC().AddDate(0, 0, -400)
	require.NoError(t, store.Audit().Append(ctx, old))

	recent := model.NewEntry(testActor, model.EntityAsset, uuid.NewString(), model.ActionCreate, nil)
	require.NoError(t, store.Audit().Append(ctx, recent))

	svc := NewService(store)
	preview, err := svc.PreviewRetention(ctx, model.RetentionPreviewRequest{RetentionDays: 365})
	require.NoError(t, err)

	assert.Equal(t, 1, preview.Count)
	require.NotNil(t, preview.OldestLogDate)
	assert.WithinDuration(t, old.CreatedAt, *preview.OldestLogDate, time.Second)
	require.Len(t, preview.Sample, 1)
	assert.Equal(t, old.ID, preview.Sample[0].ID)

	// Preview only: both rows are still there.
	all, total, err := store.Audit().Query(ctx, model.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestRetentionPreviewValidatesHorizon(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	_, err := svc.PreviewRetention(ctx, model.RetentionPreviewRequest{})
	assert.Error(t, err)

	_, err = svc.PreviewRetention(ctx, model.RetentionPreviewRequest{RetentionDays: 5000})
	assert.Error(t, err)
}
