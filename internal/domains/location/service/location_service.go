package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	model "gallery-backend/internal/domains/location"
	"gallery-backend/internal/infrastructure/revalidate"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/shared/utils"
	"gallery-backend/internal/storage"
	"gallery-backend/pkg/ordering"
)

type LocationService struct {
	store       storage.Store
	invalidator revalidate.Invalidator
}

func NewService(store storage.Store, invalidator revalidate.Invalidator) model.Service {
	return &LocationService{store: store, invalidator: invalidator}
}

func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	return s.store.Locations().GetByID(ctx, id)
}

func (s *LocationService) ListByYear(ctx context.Context, yearID uuid.UUID) ([]model.Location, error) {
	if _, err := s.store.Years().GetByID(ctx, yearID); err != nil {
		return nil, model.ErrYearNotFound
	}
	return s.store.Locations().ListByYear(ctx, yearID)
}

func (s *LocationService) Create(ctx context.Context, actor shared.Actor, yearID uuid.UUID, req model.CreateLocationRequest) (*model.Location, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *model.Location
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		if _, err := tx.Years().GetByID(ctx, yearID); err != nil {
			return model.ErrYearNotFound
		}

		orderKey := ""
		if req.OrderKey != nil {
			orderKey = *req.OrderKey
		} else {
			siblings, err := tx.Locations().ListByYear(ctx, yearID)
			if err != nil {
				return err
			}
			keys := make([]string, len(siblings))
			for i, sib := range siblings {
				keys[i] = sib.OrderKey
			}
			orderKey = ordering.Next(keys)
		}

		l := model.NewLocation(yearID, req.Name, req.Summary, orderKey)
		taken, err := tx.Locations().ExistsSlug(ctx, yearID, l.Slug, l.ID)
		if err != nil {
			return err
		}
		if taken {
			return model.ErrDuplicateSlug
		}

		if req.CoverAssetID != nil {
			coverID, err := resolveCoverAsset(ctx, tx, *req.CoverAssetID)
			if err != nil {
				return err
			}
			l.CoverAssetID = coverID
		}

		if err := tx.Locations().Create(ctx, l); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityLocation, l.ID.String(), audit.ActionCreate,
			map[string]interface{}{"name": l.Name, "year_id": yearID},
		)); err != nil {
			return err
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagYear(yearID),
		revalidate.TagYears,
	)
	return created, nil
}

func (s *LocationService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req model.UpdateLocationRequest) (*model.Location, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Location
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		l, err := tx.Locations().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != l.Name {
			slug := utils.GenerateSlug(req.Name)
			taken, err := tx.Locations().ExistsSlug(ctx, l.YearID, slug, l.ID)
			if err != nil {
				return err
			}
			if taken {
				return model.ErrDuplicateSlug
			}
			l.Name = req.Name
			l.Slug = slug
		}

		l.Summary = req.Summary
		if req.CoverAssetID != nil {
			coverID, err := resolveCoverAsset(ctx, tx, *req.CoverAssetID)
			if err != nil {
				return err
			}
			l.CoverAssetID = coverID
		}
		if req.OrderKey != nil {
			l.OrderKey = *req.OrderKey
		}
		l.UpdatedAt = time.Now().UTC()

		if err := tx.Locations().Update(ctx, l); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityLocation, l.ID.String(), audit.ActionEdit,
			map[string]interface{}{"name": l.Name},
		)); err != nil {
			return err
		}

		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagYear(updated.YearID),
		revalidate.TagYears,
	)
	return updated, nil
}

func (s *LocationService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	var yearID uuid.UUID
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		l, err := tx.Locations().GetByID(ctx, id)
		if err != nil {
			return err
		}
		yearID = l.YearID

		refs, err := tx.Collections().ByLocation(ctx, id)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return &model.InUseError{CollectionIDs: refs}
		}

		if err := tx.Locations().Delete(ctx, id); err != nil {
			return err
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityLocation, id.String(), audit.ActionDelete,
			map[string]interface{}{"name": l.Name},
		))
	})
	if err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagYear(yearID),
		revalidate.TagYears,
	)
	return nil
}

func resolveCoverAsset(ctx context.Context, tx storage.Store, raw string) (*uuid.UUID, error) {
	coverID, err := uuid.Parse(raw)
	if err != nil {
		return nil, asset.ErrAssetNotFound
	}
	if _, err := tx.Assets().GetByID(ctx, coverID); err != nil {
		return nil, err
	}
	return &coverID, nil
}
