package collection

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateCollectionRequest - POST /admin/collections
type CreateCollectionRequest struct {
	YearID     string  `json:"year_id" binding:"required"`
	LocationID *string `json:"location_id,omitempty"`
	Title      string  `json:"title" binding:"required"`
	Summary    string  `json:"summary,omitempty"`
}

func (r CreateCollectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.YearID,
			validation.Required.Error("year_id is required"),
			is.UUID.Error("year_id must be a valid identifier"),
		),
		validation.Field(&r.LocationID,
			validation.When(r.LocationID != nil, is.UUID.Error("location_id must be a valid identifier")),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Summary, validation.Length(0, 2000)),
	)
}

// UpdateCollectionRequest - PUT /admin/collections/:id
type UpdateCollectionRequest struct {
	LocationID     *string `json:"location_id,omitempty"`
	Title          string  `json:"title" binding:"required"`
	Summary        string  `json:"summary,omitempty"`
	CoverAssetID   *string `json:"cover_asset_id,omitempty"`
	SEOTitle       *string `json:"seo_title,omitempty"`
	SEODescription *string `json:"seo_description,omitempty"`
	SEOKeywords    *string `json:"seo_keywords,omitempty"`
}

func (r UpdateCollectionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LocationID,
			validation.When(r.LocationID != nil, is.UUID.Error("location_id must be a valid identifier")),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Summary, validation.Length(0, 2000)),
		validation.Field(&r.CoverAssetID,
			validation.When(r.CoverAssetID != nil, is.UUID.Error("cover_asset_id must be a valid identifier")),
		),
		validation.Field(&r.SEOTitle,
			validation.When(r.SEOTitle != nil, validation.Length(0, 200)),
		),
		validation.Field(&r.SEODescription,
			validation.When(r.SEODescription != nil, validation.Length(0, 500)),
		),
	)
}

// PublishRequest - POST /admin/collections/:id/publish
// Force bypasses the editorial checklist. It never bypasses the location
// guard: a collection without a location has no public route to publish to.
type PublishRequest struct {
	Note  *string `json:"note,omitempty"`
	Force bool    `json:"force,omitempty"`
}

func (r PublishRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Note,
			validation.When(r.Note != nil, validation.Length(0, 1000)),
		),
	)
}

// UnpublishRequest - POST /admin/collections/:id/unpublish
type UnpublishRequest struct {
	Note *string `json:"note,omitempty"`
}

func (r UnpublishRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Note,
			validation.When(r.Note != nil, validation.Length(0, 1000)),
		),
	)
}

// HistoryRequest - GET /admin/collections/:id/history
type HistoryRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *HistoryRequest) Normalize() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// HistoryItem pairs a history row with its snapshot digest.
type HistoryItem struct {
	Entry   PublishHistoryEntry `json:"entry"`
	Summary VersionSummary      `json:"summary"`
}

// HistoryResult is a paginated history page.
type HistoryResult struct {
	Versions []HistoryItem `json:"versions"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
	HasMore  bool          `json:"has_more"`
}
