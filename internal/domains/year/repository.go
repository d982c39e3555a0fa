package year

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the year storage port.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Year, error)
	// List returns all years in position order.
	List(ctx context.Context) ([]Year, error)
	Create(ctx context.Context, y *Year) error
	Update(ctx context.Context, y *Year) error
	Delete(ctx context.Context, id uuid.UUID) error
}
