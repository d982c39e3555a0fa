package asset

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/logger"
)

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAssetInUse         = errors.New("asset is referenced by collections")
	ErrAssetAlreadyExists = errors.New("asset already exists")
)

// MissingAssetsError rejects a whole admission batch: if any requested asset
// is unknown, nothing is linked.
type MissingAssetsError struct {
	MissingIDs []uuid.UUID `json:"missing_ids"`
}

func (e *MissingAssetsError) Error() string {
	return fmt.Sprintf("%d of the requested assets do not exist", len(e.MissingIDs))
}

func (e *MissingAssetsError) Unwrap() error { return ErrAssetNotFound }

// InUseError blocks deleting an asset that collections still reference.
type InUseError struct {
	ReferencedBy []uuid.UUID `json:"referenced_by"`
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("asset referenced by %d collections", len(e.ReferencedBy))
}

func (e *InUseError) Unwrap() error { return ErrAssetInUse }

// HandleAssetError maps domain errors to HTTP responses.
func HandleAssetError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verr validation.Errors
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", verr)
		return true
	}

	var missing *MissingAssetsError
	if errors.As(err, &missing) {
		response.ErrorWithDetails(c, http.StatusNotFound, "NOT_FOUND", "One or more assets do not exist", missing)
		return true
	}

	var inUse *InUseError
	if errors.As(err, &inUse) {
		response.ErrorWithDetails(c, http.StatusConflict, "CONFLICT", "Asset is still referenced by collections", inUse)
		return true
	}

	switch {
	case errors.Is(err, ErrAssetNotFound):
		response.NotFound(c, "The specified asset does not exist")
	case errors.Is(err, ErrCollectionNotFound):
		response.NotFound(c, "The specified collection does not exist")
	case errors.Is(err, ErrAssetAlreadyExists):
		response.Conflict(c, "An asset with this id already exists")
	default:
		logger.Error("asset operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
	return true
}
