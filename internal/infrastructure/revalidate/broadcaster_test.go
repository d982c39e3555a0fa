package revalidate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/pkg/cache"
)

// flakyCache fails DeletePattern for patterns containing a marker substring
// and records every attempted purge.
type flakyCache struct {
	*cache.MemoryCache
	failOn string
	purged []string
}

func (f *flakyCache) DeletePattern(ctx context.Context, pattern string) error {
	f.purged = append(f.purged, pattern)
	if f.failOn != "" && strings.Contains(pattern, f.failOn) {
		return errors.New("purge unavailable")
	}
	return f.MemoryCache.DeletePattern(ctx, pattern)
}

func TestInvalidatePurgesEveryTag(t *testing.T) {
	mem := cache.NewMemoryCache()
	ctx := context.Background()

	collectionID := uuid.New()
	yearID := uuid.New()
	require.NoError(t, mem.Set(ctx, "tag:"+TagCollection(collectionID)+":detail", "cached", time.Minute))
	require.NoError(t, mem.Set(ctx, "tag:"+TagYear(yearID)+":index", "cached", time.Minute))
	require.NoError(t, mem.Set(ctx, "tag:"+TagHomepage+":landing", "cached", time.Minute))
	require.NoError(t, mem.Set(ctx, "tag:unrelated:page", "cached", time.Minute))

	b := NewBroadcaster(mem, nil, true)
	b.Invalidate(ctx, TagCollection(collectionID), TagYear(yearID), TagHomepage)

	// Only the unrelated entry survives.
	assert.Equal(t, 1, mem.Len())
}

func TestInvalidateOneTagFailureDoesNotBlockOthers(t *testing.T) {
	fc := &flakyCache{MemoryCache: cache.NewMemoryCache(), failOn: TagHomepage}
	ctx := context.Background()

	collectionID := uuid.New()
	b := NewBroadcaster(fc, nil, true)

	// Must not panic or error out; the failing homepage tag is logged and
	// the remaining tags still get purged.
	assert.NotPanics(t, func() {
		b.Invalidate(ctx, TagHomepage, TagCollection(collectionID), TagCollections)
	})
	assert.Len(t, fc.purged, 3)
}

func TestInvalidateDisabledIsNoOp(t *testing.T) {
	fc := &flakyCache{MemoryCache: cache.NewMemoryCache()}
	b := NewBroadcaster(fc, nil, false)

	b.Invalidate(context.Background(), TagHomepage)
	assert.Empty(t, fc.purged)
}

func TestTagVocabulary(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	assert.Equal(t, "year:550e8400-e29b-41d4-a716-446655440000", TagYear(id))
	assert.Equal(t, "collections:550e8400-e29b-41d4-a716-446655440000", TagYearCollections(id))
	assert.Equal(t, "collection:550e8400-e29b-41d4-a716-446655440000", TagCollection(id))
}
