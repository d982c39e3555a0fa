package year

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateYearRequest - POST /admin/years
type CreateYearRequest struct {
	Label    string  `json:"label" binding:"required"`
	OrderKey *string `json:"order_key,omitempty"`
}

func (r CreateYearRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label,
			validation.Required.Error("label is required"),
			validation.Length(1, 100),
		),
	)
}

// UpdateYearRequest - PUT /admin/years/:id
type UpdateYearRequest struct {
	Label    string  `json:"label" binding:"required"`
	OrderKey *string `json:"order_key,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (r UpdateYearRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label,
			validation.Required.Error("label is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil,
				validation.In(string(StatusDraft), string(StatusPublished)).Error("status must be draft or published"),
			),
		),
	)
}
