package collection

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/shared/utils"
)

// Status of a collection. Collections start as drafts; publishing is guarded
// (see service.PublishService) and every successful publish bumps Version.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Collection is the publishable unit: an ordered set of assets under a year,
// routed through a location once published.
type Collection struct {
	ID              uuid.UUID  `json:"id"`
	YearID          uuid.UUID  `json:"year_id"`
	LocationID      *uuid.UUID `json:"location_id,omitempty"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary,omitempty"`
	CoverAssetID    *uuid.UUID `json:"cover_asset_id,omitempty"`
	Status          Status     `json:"status"`
	Version         int        `json:"version"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	LastPublishedAt *time.Time `json:"last_published_at,omitempty"`
	SEOTitle        *string    `json:"seo_title,omitempty"`
	SEODescription  *string    `json:"seo_description,omitempty"`
	SEOKeywords     *string    `json:"seo_keywords,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewCollection creates a draft collection at version 1.
func NewCollection(yearID uuid.UUID, locationID *uuid.UUID, title, summary string) *Collection {
	now := time.Now().UTC()
	return &Collection{
		ID:         uuid.New(),
		YearID:     yearID,
		LocationID: locationID,
		Slug:       utils.GenerateSlug(title),
		Title:      title,
		Summary:    summary,
		Status:     StatusDraft,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsPublished reports whether the collection is live.
func (c *Collection) IsPublished() bool {
	return c.Status == StatusPublished
}

// HasSEO reports whether both core SEO fields are set.
func (c *Collection) HasSEO() bool {
	return strPtrSet(c.SEOTitle) && strPtrSet(c.SEODescription)
}

func strPtrSet(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// HistoryAction distinguishes publish from unpublish history rows.
type HistoryAction string

const (
	HistoryPublish   HistoryAction = "publish"
	HistoryUnpublish HistoryAction = "unpublish"
)

// PublishHistoryEntry is an immutable point-in-time record written in the
// same transaction as the publish/unpublish it describes.
type PublishHistoryEntry struct {
	ID           uuid.UUID       `json:"id"`
	CollectionID uuid.UUID       `json:"collection_id"`
	Version      int             `json:"version"`
	Action       HistoryAction   `json:"action"`
	Note         *string         `json:"note,omitempty"`
	ActorID      string          `json:"actor_id"`
	Snapshot     json.RawMessage `json:"snapshot,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Snapshot is the serialized state captured at a transition. It carries
// enough to rebuild the collection as it looked at that instant.
type Snapshot struct {
	Collection Collection    `json:"collection"`
	Year       *year.Year    `json:"year,omitempty"`
	Assets     []asset.Asset `json:"assets"`
	Links      []asset.Link  `json:"links"`
}

// BuildSnapshot serializes the current state for a history entry.
func BuildSnapshot(c *Collection, yr *year.Year, assets []asset.Asset, links []asset.Link) (json.RawMessage, error) {
	snap := Snapshot{
		Collection: *c,
		Year:       yr,
		Assets:     assets,
		Links:      links,
	}
	return json.Marshal(snap)
}

// VersionSummary is the lightweight digest derived from a snapshot when
// listing publish history.
type VersionSummary struct {
	Title      string `json:"title"`
	AssetCount int    `json:"asset_count"`
	HasSEO     bool   `json:"has_seo"`
}

// SummarizeSnapshot derives a VersionSummary from a stored snapshot.
// A snapshot that no longer parses yields an empty summary rather than an
// error; history listing must not break on old rows.
func SummarizeSnapshot(raw json.RawMessage) VersionSummary {
	var snap Snapshot
	if len(raw) == 0 || json.Unmarshal(raw, &snap) != nil {
		return VersionSummary{}
	}
	return VersionSummary{
		Title:      snap.Collection.Title,
		AssetCount: len(snap.Links),
		HasSEO:     snap.Collection.HasSEO(),
	}
}
