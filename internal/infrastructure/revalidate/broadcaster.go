// Package revalidate turns committed mutations into cache-tag invalidations.
// Everything here is best-effort: a tag that fails to purge is logged and
// skipped, never surfaced to the caller, and the broadcaster is only ever
// invoked after the owning transaction has committed.
package revalidate

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"gallery-backend/internal/shared"
	"gallery-backend/pkg/cache"
	"gallery-backend/pkg/logger"
)

// Tag vocabulary. Read paths cache under "tag:<tag>:<key>", so purging the
// prefix drops every cached view the tag covers.
const (
	TagYears       = "years"
	TagCollections = "collections"
	TagHomepage    = "homepage"
)

func TagYear(yearID uuid.UUID) string {
	return "year:" + yearID.String()
}

func TagYearCollections(yearID uuid.UUID) string {
	return "collections:" + yearID.String()
}

func TagCollection(collectionID uuid.UUID) string {
	return "collection:" + collectionID.String()
}

// Invalidator is what the services depend on; tests swap in a recorder.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string)
}

// Broadcaster purges the local cache per tag and hands the downstream CDN
// purge to the worker queue. Each tag is processed independently.
type Broadcaster struct {
	cache   cache.Cache
	client  *asynq.Client
	enabled bool
}

// NewBroadcaster builds a broadcaster. client may be nil (no queue
// configured); enabled=false turns the whole thing into a no-op, which is
// what local tooling wants.
func NewBroadcaster(c cache.Cache, client *asynq.Client, enabled bool) *Broadcaster {
	return &Broadcaster{cache: c, client: client, enabled: enabled}
}

// Invalidate drops everything cached under each tag and enqueues the
// downstream purge. Failures are logged, never returned: the primary write
// has already committed and must not be reported as failed.
func (b *Broadcaster) Invalidate(ctx context.Context, tags ...string) {
	if !b.enabled {
		return
	}

	for _, tag := range tags {
		if err := b.cache.DeletePattern(ctx, "tag:"+tag+":*"); err != nil {
			logger.Warn("cache purge failed for tag", map[string]interface{}{
				"tag":   tag,
				"error": err.Error(),
			})
		}

		if b.client == nil {
			continue
		}
		payload, err := json.Marshal(shared.RevalidateTagPayload{Tag: tag})
		if err != nil {
			logger.Error("failed to marshal revalidate payload", err)
			continue
		}
		task := asynq.NewTask(shared.TypeRevalidateTag, payload, asynq.MaxRetry(3))
		if _, err := b.client.EnqueueContext(ctx, task); err != nil {
			logger.Warn("failed to enqueue revalidate task", map[string]interface{}{
				"tag":   tag,
				"error": err.Error(),
			})
		}
	}
}
