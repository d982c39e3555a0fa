package audit

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 100
)

// QueryRequest carries the ledger query filters. All fields are optional;
// validation runs before any query executes.
type QueryRequest struct {
	EntityType string     `form:"entity_type" json:"entity_type"`
	EntityID   string     `form:"entity_id" json:"entity_id"`
	Action     string     `form:"action" json:"action"`
	From       *time.Time `form:"from" json:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" json:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit" json:"limit"`
	Offset     int        `form:"offset" json:"offset"`
}

func (r QueryRequest) Validate() error {
	entityTypes := make([]interface{}, len(ValidEntityTypes))
	for i, t := range ValidEntityTypes {
		entityTypes[i] = t
	}
	actions := make([]interface{}, len(ValidActions))
	for i, a := range ValidActions {
		actions[i] = string(a)
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.EntityType,
			validation.In(entityTypes...).Error("unknown entity type"),
		),
		validation.Field(&r.EntityID,
			is.UUID.Error("entity_id must be a valid identifier"),
		),
		validation.Field(&r.Action,
			validation.In(actions...).Error("unknown action"),
		),
		validation.Field(&r.Limit,
			validation.Min(0),
			validation.Max(MaxQueryLimit).Error("limit must not exceed 100"),
		),
		validation.Field(&r.Offset,
			validation.Min(0).Error("offset must not be negative"),
		),
	)
}

// Normalize applies defaults after validation.
func (r *QueryRequest) Normalize() {
	if r.Limit == 0 {
		r.Limit = DefaultQueryLimit
	}
}

// Filter is the repository-level view of a validated query.
type Filter struct {
	EntityType string
	EntityID   string
	Action     Action
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (r QueryRequest) ToFilter() Filter {
	return Filter{
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     Action(r.Action),
		From:       r.From,
		To:         r.To,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// QueryResult is the paginated ledger page returned to callers.
type QueryResult struct {
	Results []Entry `json:"results"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	HasMore bool    `json:"has_more"`
}

// RetentionPreviewRequest asks what a purge at the given horizon would touch.
type RetentionPreviewRequest struct {
	RetentionDays int `form:"retention_days" json:"retention_days"`
}

func (r RetentionPreviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RetentionDays,
			validation.Required.Error("retention_days is required"),
			validation.Min(1).Error("retention_days must be at least 1"),
			validation.Max(3650).Error("retention_days must not exceed 3650"),
		),
	)
}

// RetentionPreview reports what would be purged. Nothing is deleted.
type RetentionPreview struct {
	RetentionDays int        `json:"retention_days"`
	CutoffDate    time.Time  `json:"cutoff_date"`
	Count         int        `json:"count"`
	OldestLogDate *time.Time `json:"oldest_log_date,omitempty"`
	Sample        []Entry    `json:"sample"`
}
