package location

import (
	"context"

	"github.com/google/uuid"

	"gallery-backend/internal/shared"
)

// Service is the location use-case surface.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*Location, error)
	ListByYear(ctx context.Context, yearID uuid.UUID) ([]Location, error)
	Create(ctx context.Context, actor shared.Actor, yearID uuid.UUID, req CreateLocationRequest) (*Location, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateLocationRequest) (*Location, error)
	// Delete removes an empty location. A location that still has
	// collections is rejected with InUseError.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}
