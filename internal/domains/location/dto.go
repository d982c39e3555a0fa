package location

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateLocationRequest - POST /admin/years/:yearId/locations
type CreateLocationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Summary      string  `json:"summary,omitempty"`
	CoverAssetID *string `json:"cover_asset_id,omitempty"`
	OrderKey     *string `json:"order_key,omitempty"`
}

func (r CreateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Summary,
			validation.Length(0, 2000),
		),
		validation.Field(&r.CoverAssetID,
			validation.When(r.CoverAssetID != nil, is.UUID.Error("cover_asset_id must be a valid identifier")),
		),
	)
}

// UpdateLocationRequest - PUT /admin/locations/:id
type UpdateLocationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Summary      string  `json:"summary,omitempty"`
	CoverAssetID *string `json:"cover_asset_id,omitempty"`
	OrderKey     *string `json:"order_key,omitempty"`
}

func (r UpdateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Summary,
			validation.Length(0, 2000),
		),
		validation.Field(&r.CoverAssetID,
			validation.When(r.CoverAssetID != nil, is.UUID.Error("cover_asset_id must be a valid identifier")),
		),
	)
}
