package location

import (
	"time"

	"github.com/google/uuid"

	"gallery-backend/internal/shared/utils"
)

// Location is a place within a year. Its slug is unique per year and is the
// public URL segment for the location page.
type Location struct {
	ID           uuid.UUID  `json:"id"`
	YearID       uuid.UUID  `json:"year_id"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	Summary      string     `json:"summary,omitempty"`
	CoverAssetID *uuid.UUID `json:"cover_asset_id,omitempty"`
	OrderKey     string     `json:"order_key"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewLocation creates a location under a year. The slug is derived from the
// name; uniqueness per year is enforced by the repository.
func NewLocation(yearID uuid.UUID, name, summary, orderKey string) *Location {
	now := time.Now().UTC()
	return &Location{
		ID:        uuid.New(),
		YearID:    yearID,
		Slug:      utils.GenerateSlug(name),
		Name:      name,
		Summary:   summary,
		OrderKey:  orderKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
