package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	model "gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/infrastructure/revalidate"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/storage"
	"gallery-backend/pkg/logger"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Publish moves a collection to published, bumping its version and writing
// the history snapshot and audit entry in the same transaction.
//
// The location guard is absolute: a collection without a location has no
// public route, so publish fails with MissingLocation even under force.
// force bypasses the editorial checklist only. Publishing an already
// published collection is legal and still increments the version.
//
// Concurrent publishes on the same collection are not serialized; the last
// write wins and one version increment may be lost. Known limitation.
func (s *CollectionService) Publish(ctx context.Context, actor shared.Actor, id uuid.UUID, req model.PublishRequest) (*model.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var published *model.Collection
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := tx.Collections().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if c.LocationID == nil {
			return model.ErrMissingLocation
		}

		links, err := tx.Assets().ListLinks(ctx, id)
		if err != nil {
			return err
		}
		assets, err := loadLinkedAssets(ctx, tx, links)
		if err != nil {
			return err
		}

		if !req.Force {
			report := model.EvaluateChecklist(c, links, assets)
			if !report.CanPublish {
				return &model.ChecklistError{Failed: report.FailedRequirements()}
			}
		}

		now := nowUTC()
		c.Version++
		c.Status = model.StatusPublished
		if c.PublishedAt == nil {
			c.PublishedAt = &now
		}
		c.LastPublishedAt = &now
		c.UpdatedAt = now

		if err := tx.Collections().Update(ctx, c); err != nil {
			return err
		}

		yr, err := tx.Years().GetByID(ctx, c.YearID)
		if err != nil {
			return err
		}
		if err := insertHistory(ctx, tx, c, yr, assets, links, model.HistoryPublish, req.Note, actor); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, c.ID.String(), audit.ActionPublish,
			map[string]interface{}{"version": c.Version, "note": req.Note, "force": req.Force},
		)); err != nil {
			return err
		}

		published = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagCollection(id),
		revalidate.TagYear(published.YearID),
		revalidate.TagHomepage,
	)
	return published, nil
}

// Unpublish returns a published collection to draft. The version is left
// untouched; only publish increments it.
func (s *CollectionService) Unpublish(ctx context.Context, actor shared.Actor, id uuid.UUID, req model.UnpublishRequest) (*model.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var unpublished *model.Collection
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := tx.Collections().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !c.IsPublished() {
			return model.ErrNotPublished
		}

		links, err := tx.Assets().ListLinks(ctx, id)
		if err != nil {
			return err
		}
		assets, err := loadLinkedAssets(ctx, tx, links)
		if err != nil {
			return err
		}

		c.Status = model.StatusDraft
		c.UpdatedAt = nowUTC()

		if err := tx.Collections().Update(ctx, c); err != nil {
			return err
		}

		yr, err := tx.Years().GetByID(ctx, c.YearID)
		if err != nil {
			return err
		}
		if err := insertHistory(ctx, tx, c, yr, assets, links, model.HistoryUnpublish, req.Note, actor); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, c.ID.String(), audit.ActionUnpublish,
			map[string]interface{}{"version": c.Version, "note": req.Note},
		)); err != nil {
			return err
		}

		unpublished = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagCollection(id),
		revalidate.TagYear(unpublished.YearID),
		revalidate.TagHomepage,
	)
	return unpublished, nil
}

// Checklist previews publish-readiness without mutating anything.
func (s *CollectionService) Checklist(ctx context.Context, id uuid.UUID) (*model.ChecklistReport, error) {
	c, err := s.store.Collections().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	links, err := s.store.Assets().ListLinks(ctx, id)
	if err != nil {
		return nil, err
	}
	assets, err := loadLinkedAssets(ctx, s.store, links)
	if err != nil {
		return nil, err
	}

	return model.EvaluateChecklist(c, links, assets), nil
}

// ListHistory pages through the publish history, newest first, pairing each
// row with a digest of its snapshot.
func (s *CollectionService) ListHistory(ctx context.Context, id uuid.UUID, req model.HistoryRequest) (*model.HistoryResult, error) {
	req.Normalize()

	if _, err := s.store.Collections().GetByID(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.store.Collections().ListHistory(ctx, id, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Collections().CountHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]model.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.HistoryItem{
			Entry:   e,
			Summary: model.SummarizeSnapshot(e.Snapshot),
		})
	}

	return &model.HistoryResult{
		Versions: items,
		Total:    total,
		Limit:    req.Limit,
		Offset:   req.Offset,
		HasMore:  req.Offset+len(items) < total,
	}, nil
}

func loadLinkedAssets(ctx context.Context, store storage.Store, links []asset.Link) ([]asset.Asset, error) {
	if len(links) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(links))
	for i, l := range links {
		ids[i] = l.AssetID
	}
	return store.Assets().GetByIDs(ctx, ids)
}

func insertHistory(ctx context.Context, tx storage.Store, c *model.Collection, yr *year.Year,
	assets []asset.Asset, links []asset.Link, action model.HistoryAction, note *string, actor shared.Actor) error {

	snapshot, err := model.BuildSnapshot(c, yr, assets, links)
	if err != nil {
		// A snapshot that cannot marshal must not abort the transition;
		// the history row is still written without it.
		logger.Error("failed to build publish snapshot", err)
		snapshot = nil
	}

	return tx.Collections().InsertHistory(ctx, &model.PublishHistoryEntry{
		ID:           uuid.New(),
		CollectionID: c.ID,
		Version:      c.Version,
		Action:       action,
		Note:         note,
		ActorID:      actor.ID,
		Snapshot:     snapshot,
		CreatedAt:    nowUTC(),
	})
}
