package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/audit"
	model "gallery-backend/internal/domains/year"
	"gallery-backend/internal/infrastructure/revalidate"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/storage"
	"gallery-backend/pkg/ordering"
)

type YearService struct {
	store       storage.Store
	invalidator revalidate.Invalidator
}

func NewService(store storage.Store, invalidator revalidate.Invalidator) model.Service {
	return &YearService{store: store, invalidator: invalidator}
}

func (s *YearService) Get(ctx context.Context, id uuid.UUID) (*model.Year, error) {
	return s.store.Years().GetByID(ctx, id)
}

func (s *YearService) List(ctx context.Context) ([]model.Year, error) {
	return s.store.Years().List(ctx)
}

func (s *YearService) Create(ctx context.Context, actor shared.Actor, req model.CreateYearRequest) (*model.Year, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *model.Year
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		orderKey, err := resolveOrderKey(ctx, tx, req.OrderKey)
		if err != nil {
			return err
		}

		y := model.NewYear(req.Label, orderKey)
		if err := tx.Years().Create(ctx, y); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityYear, y.ID.String(), audit.ActionCreate,
			map[string]interface{}{"label": y.Label},
		)); err != nil {
			return err
		}

		created = y
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, revalidate.TagYears, revalidate.TagHomepage)
	return created, nil
}

func (s *YearService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req model.UpdateYearRequest) (*model.Year, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Year
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		y, err := tx.Years().GetByID(ctx, id)
		if err != nil {
			return err
		}

		y.Label = req.Label
		if req.OrderKey != nil {
			y.OrderKey = *req.OrderKey
		}
		if req.Status != nil {
			y.Status = model.Status(*req.Status)
		}
		y.UpdatedAt = time.Now().UTC()

		if err := tx.Years().Update(ctx, y); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityYear, y.ID.String(), audit.ActionEdit,
			map[string]interface{}{"label": y.Label, "status": y.Status},
		)); err != nil {
			return err
		}

		updated = y
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagYears,
		revalidate.TagYear(id),
		revalidate.TagHomepage,
	)
	return updated, nil
}

func (s *YearService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		y, err := tx.Years().GetByID(ctx, id)
		if err != nil {
			return err
		}

		locations, err := tx.Locations().ListByYear(ctx, id)
		if err != nil {
			return err
		}
		collections, err := tx.Collections().ListByYear(ctx, id)
		if err != nil {
			return err
		}
		if len(locations) > 0 || len(collections) > 0 {
			inUse := &model.InUseError{}
			for _, l := range locations {
				inUse.LocationIDs = append(inUse.LocationIDs, l.ID)
			}
			for _, c := range collections {
				inUse.CollectionIDs = append(inUse.CollectionIDs, c.ID)
			}
			return inUse
		}

		if err := tx.Years().Delete(ctx, id); err != nil {
			return err
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityYear, id.String(), audit.ActionDelete,
			map[string]interface{}{"label": y.Label},
		))
	})
	if err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx,
		revalidate.TagYears,
		revalidate.TagYear(id),
		revalidate.TagHomepage,
	)
	return nil
}

// resolveOrderKey honors an explicit key and otherwise appends after the
// last existing year.
func resolveOrderKey(ctx context.Context, tx storage.Store, explicit *string) (string, error) {
	if explicit != nil {
		return *explicit, nil
	}
	years, err := tx.Years().List(ctx)
	if err != nil {
		return "", err
	}
	keys := make([]string, len(years))
	for i, y := range years {
		keys[i] = y.OrderKey
	}
	return ordering.Next(keys), nil
}
