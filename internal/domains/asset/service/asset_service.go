package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	"gallery-backend/internal/infrastructure/revalidate"
	"gallery-backend/internal/shared"
	"gallery-backend/internal/storage"
	"gallery-backend/pkg/ordering"
)

// AssetService implements model.Service. Mutations carry their audit entry
// in the same storage transaction; cache invalidation runs after commit.
type AssetService struct {
	store       storage.Store
	invalidator revalidate.Invalidator
}

func NewService(store storage.Store, invalidator revalidate.Invalidator) model.Service {
	return &AssetService{store: store, invalidator: invalidator}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func loadCollection(ctx context.Context, tx storage.Store, id uuid.UUID) (*collection.Collection, error) {
	c, err := tx.Collections().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, collection.ErrCollectionNotFound) {
			return nil, model.ErrCollectionNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *AssetService) Get(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	return s.store.Assets().GetByID(ctx, id)
}

func (s *AssetService) List(ctx context.Context, req model.ListAssetsRequest) ([]model.Asset, int, error) {
	req.Normalize()
	return s.store.Assets().List(ctx, req.Limit, req.Offset)
}

func (s *AssetService) Create(ctx context.Context, actor shared.Actor, req model.CreateAssetRequest) (*model.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	if req.ID != nil {
		parsed, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	now := nowUTC()
	a := &model.Asset{
		ID:          id,
		Alt:         req.Alt,
		Caption:     req.Caption,
		Description: req.Description,
		Width:       req.Width,
		Height:      req.Height,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.store.InTx(ctx, func(tx storage.Store) error {
		if err := tx.Assets().Create(ctx, a); err != nil {
			return err
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityAsset, a.ID.String(), audit.ActionCreate,
			map[string]interface{}{"alt": a.Alt, "width": a.Width, "height": a.Height},
		))
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req model.UpdateAssetRequest) (*model.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Asset
	var affected []uuid.UUID
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		a, err := tx.Assets().GetByID(ctx, id)
		if err != nil {
			return err
		}

		a.Alt = req.Alt
		a.Caption = req.Caption
		a.Description = req.Description
		if req.Metadata != nil {
			a.Metadata = req.Metadata
		}
		a.UpdatedAt = nowUTC()

		if err := tx.Assets().Update(ctx, a); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityAsset, a.ID.String(), audit.ActionEdit,
			map[string]interface{}{"alt": a.Alt},
		)); err != nil {
			return err
		}

		affected, err = tx.Assets().LinkedCollections(ctx, id)
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Every collection showing this asset has a stale view now.
	tags := make([]string, 0, len(affected))
	for _, collectionID := range affected {
		tags = append(tags, revalidate.TagCollection(collectionID))
	}
	if len(tags) > 0 {
		s.invalidator.Invalidate(ctx, tags...)
	}
	return updated, nil
}

func (s *AssetService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return s.store.InTx(ctx, func(tx storage.Store) error {
		a, err := tx.Assets().GetByID(ctx, id)
		if err != nil {
			return err
		}

		refs, err := tx.Assets().LinkedCollections(ctx, id)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return &model.InUseError{ReferencedBy: refs}
		}

		if err := tx.Assets().Delete(ctx, id); err != nil {
			return err
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityAsset, id.String(), audit.ActionDelete,
			map[string]interface{}{"alt": a.Alt},
		))
	})
}

// AddToCollection links a batch of assets in input order. If any requested
// asset does not exist the whole batch is rejected and nothing is linked.
// Assets already in the collection are skipped without consuming an
// ordinal, so re-sending a request is harmless.
func (s *AssetService) AddToCollection(ctx context.Context, actor shared.Actor, collectionID uuid.UUID, req model.AddToCollectionRequest) (*model.AddResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	requested := make([]uuid.UUID, 0, len(req.AssetIDs))
	for _, raw := range req.AssetIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		requested = append(requested, id)
	}

	result := &model.AddResult{}
	var yearID uuid.UUID
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := loadCollection(ctx, tx, collectionID)
		if err != nil {
			return err
		}
		yearID = c.YearID

		// Existence check for the whole batch before anything is written.
		found, err := tx.Assets().GetByIDs(ctx, requested)
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]bool, len(found))
		for _, a := range found {
			known[a.ID] = true
		}
		var missing []uuid.UUID
		for _, id := range requested {
			if !known[id] {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &model.MissingAssetsError{MissingIDs: missing}
		}

		links, err := tx.Assets().ListLinks(ctx, collectionID)
		if err != nil {
			return err
		}
		linked := make(map[uuid.UUID]bool, len(links))
		keys := make([]string, 0, len(links))
		for _, l := range links {
			linked[l.AssetID] = true
			keys = append(keys, l.OrderKey)
		}

		ordinal := ordering.Parse(ordering.Next(keys))
		if req.InsertAt != nil {
			ordinal = decimal.NewFromFloat(*req.InsertAt)
		}

		for _, id := range requested {
			if linked[id] {
				result.Skipped++
				continue
			}
			link := model.NewLink(collectionID, id, ordering.Format(ordinal))
			if err := tx.Assets().CreateLink(ctx, link); err != nil {
				return err
			}
			linked[id] = true
			result.Created = append(result.Created, *link)
			ordinal = ordinal.Add(decimal.NewFromInt(1))
		}

		if len(result.Created) == 0 {
			// Whole batch was already linked: successful no-op, nothing
			// mutated, nothing to audit.
			return nil
		}

		createdIDs := make([]string, len(result.Created))
		for i, l := range result.Created {
			createdIDs[i] = l.AssetID.String()
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, collectionID.String(), audit.ActionLink,
			map[string]interface{}{"asset_ids": createdIDs, "skipped": result.Skipped},
		))
	})
	if err != nil {
		return nil, err
	}

	if len(result.Created) > 0 {
		s.invalidator.Invalidate(ctx,
			revalidate.TagCollection(collectionID),
			revalidate.TagYear(yearID),
		)
	}
	return result, nil
}

// Reorder applies the given position updates in one transaction. Pairs
// pointing at links that do not exist are skipped; the rest still apply.
func (s *AssetService) Reorder(ctx context.Context, actor shared.Actor, collectionID uuid.UUID, req model.ReorderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	applied := 0
	var yearID uuid.UUID
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := loadCollection(ctx, tx, collectionID)
		if err != nil {
			return err
		}
		yearID = c.YearID

		for _, pair := range req.Pairs {
			assetID, err := uuid.Parse(pair.AssetID)
			if err != nil {
				continue
			}
			ok, err := tx.Assets().UpdateLinkOrder(ctx, collectionID, assetID, pair.OrderKey)
			if err != nil {
				return err
			}
			if ok {
				applied++
			}
		}

		if applied == 0 {
			return nil
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, collectionID.String(), audit.ActionSort,
			map[string]interface{}{"applied": applied, "requested": len(req.Pairs)},
		))
	})
	if err != nil {
		return err
	}

	if applied > 0 {
		s.invalidator.Invalidate(ctx,
			revalidate.TagCollection(collectionID),
			revalidate.TagYear(yearID),
		)
	}
	return nil
}

// RemoveFromCollection unlinks one asset. Removing a link that does not
// exist is a successful no-op.
func (s *AssetService) RemoveFromCollection(ctx context.Context, actor shared.Actor, collectionID, assetID uuid.UUID) error {
	removed := false
	var yearID uuid.UUID
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := loadCollection(ctx, tx, collectionID)
		if err != nil {
			return err
		}
		yearID = c.YearID

		removed, err = tx.Assets().DeleteLink(ctx, collectionID, assetID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return tx.Audit().Append(ctx, audit.NewEntry(
			actor, audit.EntityCollection, collectionID.String(), audit.ActionUnlink,
			map[string]interface{}{"asset_id": assetID.String()},
		))
	})
	if err != nil {
		return err
	}

	if removed {
		s.invalidator.Invalidate(ctx,
			revalidate.TagCollection(collectionID),
			revalidate.TagYear(yearID),
		)
	}
	return nil
}
