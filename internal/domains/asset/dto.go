package asset

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateAssetRequest - POST /admin/assets
type CreateAssetRequest struct {
	ID          *string         `json:"id,omitempty"` // supplied by the storage collaborator, generated when absent
	Alt         string          `json:"alt" binding:"required"`
	Caption     string          `json:"caption,omitempty"`
	Description string          `json:"description,omitempty"`
	Width       int             `json:"width" binding:"required"`
	Height      int             `json:"height" binding:"required"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

func (r CreateAssetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.When(r.ID != nil, is.UUID.Error("id must be a valid identifier")),
		),
		validation.Field(&r.Alt,
			validation.Required.Error("alt text is required"),
			validation.Length(1, 200).Error("alt text must be 1-200 characters"),
		),
		validation.Field(&r.Caption, validation.Length(0, 500)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Width, validation.Required, validation.Min(1).Error("width must be at least 1")),
		validation.Field(&r.Height, validation.Required, validation.Min(1).Error("height must be at least 1")),
	)
}

// UpdateAssetRequest - PUT /admin/assets/:id
type UpdateAssetRequest struct {
	Alt         string          `json:"alt" binding:"required"`
	Caption     string          `json:"caption,omitempty"`
	Description string          `json:"description,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

func (r UpdateAssetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Alt,
			validation.Required.Error("alt text is required"),
			validation.Length(1, 200).Error("alt text must be 1-200 characters"),
		),
		validation.Field(&r.Caption, validation.Length(0, 500)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// AddToCollectionRequest - POST /admin/collections/:id/assets
// InsertAt, when present, is the starting ordinal for the batch.
type AddToCollectionRequest struct {
	AssetIDs []string `json:"asset_ids" binding:"required"`
	InsertAt *float64 `json:"insert_at,omitempty"`
}

func (r AddToCollectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AssetIDs,
			validation.Required.Error("asset_ids is required"),
			validation.Length(1, 500),
			validation.Each(is.UUID.Error("asset id must be a valid identifier")),
		),
	)
}

// ReorderPair assigns one asset a new position.
type ReorderPair struct {
	AssetID  string `json:"asset_id" binding:"required"`
	OrderKey string `json:"order_key" binding:"required"`
}

// ReorderRequest - PUT /admin/collections/:id/assets/order
type ReorderRequest struct {
	Pairs []ReorderPair `json:"pairs" binding:"required"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Pairs,
			validation.Required.Error("pairs is required"),
			validation.Length(1, 500),
			validation.Each(validation.By(func(value interface{}) error {
				pair, _ := value.(ReorderPair)
				return validation.ValidateStruct(&pair,
					validation.Field(&pair.AssetID,
						validation.Required,
						is.UUID.Error("asset id must be a valid identifier"),
					),
					validation.Field(&pair.OrderKey,
						validation.Required.Error("order_key is required"),
					),
				)
			})),
		),
	)
}

// ListAssetsRequest - GET /admin/assets
type ListAssetsRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *ListAssetsRequest) Normalize() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 50
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// AddResult reports what a batch admission actually did.
type AddResult struct {
	Created []Link `json:"created"`
	Skipped int    `json:"skipped"`
}

// NoOp reports whether the whole batch was already linked.
func (r AddResult) NoOp() bool {
	return len(r.Created) == 0
}
