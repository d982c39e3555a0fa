package collection

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
)

// CheckStatus is the outcome of a single checklist item.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckWarning CheckStatus = "warning"
)

// Checklist item keys. The hard items block publishing; the soft ones only
// warn.
const (
	CheckTitle               = "title"
	CheckImages              = "images"
	CheckAltText             = "alt_text"
	CheckSEOTitle            = "seo_title"
	CheckSEODescription      = "seo_description"
	CheckSummary             = "summary"
	CheckCoverAsset          = "cover_asset"
	CheckDescriptionCoverage = "description_coverage"
)

// ChecklistItem is one evaluated check.
type ChecklistItem struct {
	Key      string      `json:"key"`
	Label    string      `json:"label"`
	Required bool        `json:"required"`
	Status   CheckStatus `json:"status"`
	Detail   string      `json:"detail,omitempty"`
}

// ChecklistReport is the publish-readiness preview. Only failed hard items
// block CanPublish; warnings are recommendations.
type ChecklistReport struct {
	CollectionID uuid.UUID       `json:"collection_id"`
	Items        []ChecklistItem `json:"items"`
	CanPublish   bool            `json:"can_publish"`
}

// FailedRequirements lists the hard items that failed, in checklist order.
func (r *ChecklistReport) FailedRequirements() []string {
	var failed []string
	for _, item := range r.Items {
		if item.Required && item.Status == CheckFailed {
			failed = append(failed, item.Detail)
		}
	}
	return failed
}

// EvaluateChecklist runs every check against the collection and its linked
// assets. Pure function, no storage access.
func EvaluateChecklist(c *Collection, links []asset.Link, assets []asset.Asset) *ChecklistReport {
	report := &ChecklistReport{CollectionID: c.ID}

	// Hard requirements.
	report.add(ChecklistItem{
		Key:      CheckTitle,
		Label:    "Title",
		Required: true,
	}, strings.TrimSpace(c.Title) != "", "collection has no title")

	report.add(ChecklistItem{
		Key:      CheckImages,
		Label:    "Images",
		Required: true,
	}, len(links) > 0, "collection has no images")

	missingAlt := 0
	for _, a := range assets {
		if !a.HasAlt() {
			missingAlt++
		}
	}
	report.add(ChecklistItem{
		Key:      CheckAltText,
		Label:    "Alt text",
		Required: true,
	}, missingAlt == 0, fmt.Sprintf("%d images are missing alt text", missingAlt))

	// Soft recommendations.
	report.warn(ChecklistItem{
		Key:   CheckSEOTitle,
		Label: "SEO title",
	}, strPtrSet(c.SEOTitle), "no SEO title set")

	report.warn(ChecklistItem{
		Key:   CheckSEODescription,
		Label: "SEO description",
	}, strPtrSet(c.SEODescription), "no SEO description set")

	report.warn(ChecklistItem{
		Key:   CheckSummary,
		Label: "Summary",
	}, strings.TrimSpace(c.Summary) != "", "no summary set")

	report.warn(ChecklistItem{
		Key:   CheckCoverAsset,
		Label: "Cover image",
	}, c.CoverAssetID != nil, "no cover image selected")

	described := 0
	for _, a := range assets {
		if strings.TrimSpace(a.Description) != "" {
			described++
		}
	}
	coverageOK := len(assets) == 0 || described*2 >= len(assets)
	report.warn(ChecklistItem{
		Key:   CheckDescriptionCoverage,
		Label: "Image descriptions",
	}, coverageOK, fmt.Sprintf("only %d of %d images have descriptions", described, len(assets)))

	canPublish := true
	for _, item := range report.Items {
		if item.Required && item.Status == CheckFailed {
			canPublish = false
			break
		}
	}
	report.CanPublish = canPublish

	return report
}

func (r *ChecklistReport) add(item ChecklistItem, ok bool, failDetail string) {
	if ok {
		item.Status = CheckPassed
	} else {
		item.Status = CheckFailed
		item.Detail = failDetail
	}
	r.Items = append(r.Items, item)
}

func (r *ChecklistReport) warn(item ChecklistItem, ok bool, warnDetail string) {
	if ok {
		item.Status = CheckPassed
	} else {
		item.Status = CheckWarning
		item.Detail = warnDetail
	}
	r.Items = append(r.Items, item)
}
