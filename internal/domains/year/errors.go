package year

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
	ErrYearNotFound = errors.New("year not found")
	ErrYearNotEmpty = errors.New("year still has locations or collections")
)

// InUseError carries the ids blocking a delete.
type InUseError struct {
	LocationIDs   []uuid.UUID `json:"location_ids"`
	CollectionIDs []uuid.UUID `json:"collection_ids"`
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("year still referenced by %d locations and %d collections",
		len(e.LocationIDs), len(e.CollectionIDs))
}

func (e *InUseError) Unwrap() error { return ErrYearNotEmpty }

// HandleYearError maps domain errors to HTTP responses.
func HandleYearError(c *gin.Context, err error) bool {
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
		response.ErrorWithDetails(c, http.StatusConflict, "CONFLICT", "Year still has content", inUse)
		return true
	}

	switch {
	case errors.Is(err, ErrYearNotFound):
		response.NotFound(c, "The specified year does not exist")
	default:
		logger.Error("year operation failed", err)
		response.InternalServerError(c, "Something went wrong")
	}
	return true
}
