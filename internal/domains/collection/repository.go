package collection

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the collection + publish-history storage port. History rows
// are append-only; there is no update or delete for them.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	ListByYear(ctx context.Context, yearID uuid.UUID) ([]Collection, error)
	// ByLocation returns the ids of collections assigned to a location.
	ByLocation(ctx context.Context, locationID uuid.UUID) ([]uuid.UUID, error)
	// ExistsSlug reports whether slug is taken within the year,
	// ignoring excludeID.
	ExistsSlug(ctx context.Context, yearID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, c *Collection) error
	Update(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, id uuid.UUID) error

	InsertHistory(ctx context.Context, entry *PublishHistoryEntry) error
	// ListHistory returns history rows newest-first.
	ListHistory(ctx context.Context, collectionID uuid.UUID, limit, offset int) ([]PublishHistoryEntry, error)
	CountHistory(ctx context.Context, collectionID uuid.UUID) (int, error)
}
