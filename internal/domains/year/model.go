package year

import (
	"time"

	"github.com/google/uuid"
)

// Status of a year on the public site.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Year is the top level of the content tree: Year -> Location -> Collection.
type Year struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	OrderKey  string    `json:"order_key"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewYear creates a draft year at the given position.
func NewYear(label, orderKey string) *Year {
	now := time.Now().UTC()
	return &Year{
		ID:        uuid.New(),
		Label:     label,
		OrderKey:  orderKey,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
