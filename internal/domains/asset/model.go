package asset

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Asset is an opaque content reference plus display metadata. Binary storage
// and variant generation live in the delivery collaborator; this core only
// tracks the identifier and the editorial fields around it.
type Asset struct {
	ID          uuid.UUID       `json:"id"`
	Alt         string          `json:"alt"`
	Caption     string          `json:"caption,omitempty"`
	Description string          `json:"description,omitempty"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// HasAlt reports whether the asset carries usable alt text.
// Publishing blocks on this.
func (a *Asset) HasAlt() bool {
	return strings.TrimSpace(a.Alt) != ""
}

// Link is the ordered association between a collection and an asset.
// (CollectionID, AssetID) is unique; OrderKey positions the asset inside the
// collection with creation time as the tie-breaker.
type Link struct {
	CollectionID uuid.UUID `json:"collection_id"`
	AssetID      uuid.UUID `json:"asset_id"`
	OrderKey     string    `json:"order_key"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewLink creates a link at the given position.
func NewLink(collectionID, assetID uuid.UUID, orderKey string) *Link {
	now := time.Now().UTC()
	return &Link{
		CollectionID: collectionID,
		AssetID:      assetID,
		OrderKey:     orderKey,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
