package location

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the location storage port.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	// ListByYear returns a year's locations in position order.
	ListByYear(ctx context.Context, yearID uuid.UUID) ([]Location, error)
	// ExistsSlug reports whether slug is taken within the year,
	// ignoring excludeID.
	ExistsSlug(ctx context.Context, yearID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, l *Location) error
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}
