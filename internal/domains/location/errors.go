package location

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/logger"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrDuplicateSlug    = errors.New("location slug already exists in this year")
	ErrLocationNotEmpty = errors.New("location still has collections")
	ErrYearNotFound     = errors.New("year not found")
)

// InUseError carries the collection ids blocking a delete.
type InUseError struct {
	CollectionIDs []uuid.UUID `json:"collection_ids"`
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("location still referenced by %d collections", len(e.CollectionIDs))
}

func (e *InUseError) Unwrap() error { return ErrLocationNotEmpty }

// HandleLocationError maps domain errors to HTTP responses.
func HandleLocationError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verr validation.Errors
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", verr)
		return true
	}

	var inUse *InUseError
	if errors.As(err, &inUse) {
		response.ErrorWithDetails(c, http.StatusConflict, "CONFLICT", "Location still has collections", inUse)
		return true
	}

	switch {
	case errors.Is(err, ErrLocationNotFound):
		response.NotFound(c, "The specified location does not exist")
	case errors.Is(err, ErrYearNotFound):
		response.NotFound(c, "The specified year does not exist")
	case errors.Is(err, ErrDuplicateSlug):
		response.Conflict(c, "A location with a similar name already exists in this year")
	case errors.Is(err, asset.ErrAssetNotFound):
		response.NotFound(c, "The specified cover asset does not exist")
	default:
		logger.Error("location operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
	return true
}
