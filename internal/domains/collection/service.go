package collection

import (
	"context"

	"github.com/google/uuid"

	"gallery-backend/internal/shared"
)

// Service is the collection business-logic contract: CRUD plus the
// publication lifecycle.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*Collection, error)
	ListByYear(ctx context.Context, yearID uuid.UUID) ([]Collection, error)
	Create(ctx context.Context, actor shared.Actor, req CreateCollectionRequest) (*Collection, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateCollectionRequest) (*Collection, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error

	Publish(ctx context.Context, actor shared.Actor, id uuid.UUID, req PublishRequest) (*Collection, error)
	Unpublish(ctx context.Context, actor shared.Actor, id uuid.UUID, req UnpublishRequest) (*Collection, error)
	Checklist(ctx context.Context, id uuid.UUID) (*ChecklistReport, error)
	ListHistory(ctx context.Context, id uuid.UUID, req HistoryRequest) (*HistoryResult, error)
}
