package asset

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the asset and asset-link storage port.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	// GetByIDs resolves a batch. Missing ids are simply absent from the
	// result; the caller decides whether that is an error.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Asset, error)
	List(ctx context.Context, limit, offset int) ([]Asset, int, error)
	Create(ctx context.Context, a *Asset) error
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListLinks returns a collection's links in position order
	// (numeric order key, creation time as tie-breaker).
	ListLinks(ctx context.Context, collectionID uuid.UUID) ([]Link, error)
	CountLinks(ctx context.Context, collectionID uuid.UUID) (int, error)
	CreateLink(ctx context.Context, l *Link) error
	// UpdateLinkOrder moves a link; returns false when the link does not exist.
	UpdateLinkOrder(ctx context.Context, collectionID, assetID uuid.UUID, orderKey string) (bool, error)
	// DeleteLink removes a link; returns false when the link did not exist.
	DeleteLink(ctx context.Context, collectionID, assetID uuid.UUID) (bool, error)
	// LinkedCollections lists the collections referencing an asset.
	LinkedCollections(ctx context.Context, assetID uuid.UUID) ([]uuid.UUID, error)
}
