package asset

import (
	"context"

	"github.com/google/uuid"

	"gallery-backend/internal/shared"
)

// Service is the asset business-logic contract: asset CRUD plus admission
// of assets into collections.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context, req ListAssetsRequest) ([]Asset, int, error)
	Create(ctx context.Context, actor shared.Actor, req CreateAssetRequest) (*Asset, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateAssetRequest) (*Asset, error)
	// Delete refuses while any collection still references the asset.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error

	// AddToCollection admits a batch of assets into a collection.
	// All-or-nothing on existence, idempotent on duplicates.
	AddToCollection(ctx context.Context, actor shared.Actor, collectionID uuid.UUID, req AddToCollectionRequest) (*AddResult, error)
	// Reorder applies position updates; pairs referencing missing links
	// are skipped silently.
	Reorder(ctx context.Context, actor shared.Actor, collectionID uuid.UUID, req ReorderRequest) error
	// RemoveFromCollection unlinks an asset; an absent link is a no-op.
	RemoveFromCollection(ctx context.Context, actor shared.Actor, collectionID, assetID uuid.UUID) error
}
