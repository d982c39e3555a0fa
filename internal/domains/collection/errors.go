package collection

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/logger"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrMissingLocation    = errors.New("collection has no location")
	ErrNotPublished       = errors.New("collection is not published")
	ErrDuplicateSlug      = errors.New("collection slug already exists in this year")
	ErrYearNotFound       = errors.New("year not found")
	ErrLocationNotFound   = errors.New("location not found")
)

// ChecklistError aborts a publish whose hard requirements failed.
// All failing checks are reported at once.
type ChecklistError struct {
	Failed []string `json:"failed_checks"`
}

func (e *ChecklistError) Error() string {
	return fmt.Sprintf("publish checklist failed: %d requirements not met", len(e.Failed))
}

// HandleCollectionError maps domain errors to HTTP responses.
func HandleCollectionError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verr validation.Errors
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", verr)
		return true
	}

	var checklist *ChecklistError
	if errors.As(err, &checklist) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"Collection is not ready to publish", checklist.Failed)
		return true
	}

	switch {
	case errors.Is(err, ErrMissingLocation):
		response.ErrorWithDetails(c, http.StatusConflict, "CONFLICT",
			"Collection must be assigned to a location before publishing", gin.H{"reason": "MissingLocation"})
	case errors.Is(err, ErrNotPublished):
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"Collection is not published")
	case errors.Is(err, ErrCollectionNotFound):
		response.NotFound(c, "The specified collection does not exist")
	case errors.Is(err, ErrYearNotFound):
		response.NotFound(c, "The specified year does not exist")
	case errors.Is(err, ErrLocationNotFound):
		response.NotFound(c, "The specified location does not exist")
	case errors.Is(err, asset.ErrAssetNotFound):
		response.NotFound(c, "The specified cover asset does not exist")
	case errors.Is(err, ErrDuplicateSlug):
		response.Conflict(c, "A collection with a similar title already exists in this year")
	default:
		logger.Error("collection operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
	return true
}
