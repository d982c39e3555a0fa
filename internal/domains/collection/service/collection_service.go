package service

import (
	"context"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	model "gallery-backend/internal/domains/collection"
	"gallery-backend/internal/infrastructure/revalidate"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/shared/utils"
	"gallery-backend/internal/storage"
)

// CollectionService implements model.Service. Every mutation runs as one
// storage transaction that also carries its audit entry; cache invalidation
// happens after commit and never affects the result.
type CollectionService struct {
	store       storage.Store
	invalidator revalidate.Invalidator
}

func NewService(store storage.Store, invalidator revalidate.Invalidator) model.Service {
	return &CollectionService{store: store, invalidator: invalidator}
}

func (s *CollectionService) Get(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	return s.store.Collections().GetByID(ctx, id)
}

func (s *CollectionService) ListByYear(ctx context.Context, yearID uuid.UUID) ([]model.Collection, error) {
	if _, err := s.store.Years().GetByID(ctx, yearID); err != nil {
		return nil, model.ErrYearNotFound
	}
	return s.store.Collections().ListByYear(ctx, yearID)
}

func (s *CollectionService) Create(ctx context.Context, actor shared.Actor, req model.CreateCollectionRequest) (*model.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	yearID, err := uuid.Parse(req.YearID)
	if err != nil {
		return nil, model.ErrYearNotFound
	}

	var locationID *uuid.UUID
	if req.LocationID != nil {
		id, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, model.ErrLocationNotFound
		}
		locationID = &id
	}

	var created *model.Collection
	err = s.store.InTx(ctx, func(tx storage.Store) error {
		if _, err := tx.Years().GetByID(ctx, yearID); err != nil {
			return model.ErrYearNotFound
		}
		if locationID != nil {
			loc, err := tx.Locations().GetByID(ctx, *locationID)
			if err != nil {
				return model.ErrLocationNotFound
			}
			if loc.YearID != yearID {
				return model.ErrLocationNotFound
			}
		}

		c := model.NewCollection(yearID, locationID, req.Title, req.Summary)
		taken, err := tx.Collections().ExistsSlug(ctx, yearID, c.Slug, c.ID)
		if err != nil {
			return err
		}
		if taken {
			return model.ErrDuplicateSlug
		}

		if err := tx.Collections().Create(ctx, c); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, c.ID.String(), audit.ActionCreate,
			map[string]interface{}{"title": c.Title, "year_id": yearID},
		)); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagYearCollections(created.YearID),
		revalidate.TagYear(created.YearID),
		revalidate.TagCollections,
	)
	return created, nil
}

func (s *CollectionService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req model.UpdateCollectionRequest) (*model.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Collection
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := tx.Collections().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.LocationID != nil {
			locID, err := uuid.Parse(*req.LocationID)
			if err != nil {
				return model.ErrLocationNotFound
			}
			loc, err := tx.Locations().GetByID(ctx, locID)
			if err != nil {
				return model.ErrLocationNotFound
			}
			if loc.YearID != c.YearID {
				return model.ErrLocationNotFound
			}
			c.LocationID = &locID
		}

		if req.Title != c.Title {
			slug := utils.GenerateSlug(req.Title)
			taken, err := tx.Collections().ExistsSlug(ctx, c.YearID, slug, c.ID)
			if err != nil {
				return err
			}
			if taken {
				return model.ErrDuplicateSlug
			}
			c.Title = req.Title
			c.Slug = slug
		}

		c.Summary = req.Summary
		if req.CoverAssetID != nil {
			coverID, err := uuid.Parse(*req.CoverAssetID)
			if err != nil {
				return asset.ErrAssetNotFound
			}
			if _, err := tx.Assets().GetByID(ctx, coverID); err != nil {
				return err
			}
			c.CoverAssetID = &coverID
		}
		if req.SEOTitle != nil {
			c.SEOTitle = req.SEOTitle
		}
		if req.SEODescription != nil {
			c.SEODescription = req.SEODescription
		}
		if req.SEOKeywords != nil {
			c.SEOKeywords = req.SEOKeywords
		}
		c.UpdatedAt = nowUTC()

		if err := tx.Collections().Update(ctx, c); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, c.ID.String(), audit.ActionEdit,
			map[string]interface{}{"title": c.Title},
		)); err != nil {
			return err
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagCollection(id),
		revalidate.TagYear(updated.YearID),
		revalidate.TagHomepage,
	)
	return updated, nil
}

func (s *CollectionService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	var yearID uuid.UUID
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := tx.Collections().GetByID(ctx, id)
		if err != nil {
			return err
		}
		yearID = c.YearID

		if err := tx.Collections().Delete(ctx, id); err != nil {
			return err
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, id.String(), audit.ActionDelete,
			map[string]interface{}{"title": c.Title},
		))
	})
	if err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagCollection(id),
		revalidate.TagYear(yearID),
		revalidate.TagYearCollections(yearID),
		revalidate.TagHomepage,
	)
	return nil
}
