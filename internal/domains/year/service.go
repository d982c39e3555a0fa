package year

import (
	"context"

	"github.com/google/uuid"

	"gallery-backend/internal/shared"
)

// Service is the year use-case surface.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*Year, error)
	List(ctx context.Context) ([]Year, error)
	Create(ctx context.Context, actor shared.Actor, req CreateYearRequest) (*Year, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateYearRequest) (*Year, error)
	// Delete removes an empty year. A year that still has locations or
	// collections is rejected with InUseError.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}
