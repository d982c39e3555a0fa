package audit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/logger"
)

var (
	ErrInvalidFilter = errors.New("invalid audit query filter")
	ErrQueryFailed   = errors.New("audit query failed")
)

// HandleAuditError maps domain errors to HTTP responses.
// Returns true when the error was handled.
func HandleAuditError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verr validation.Errors
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid query filters", verr)
		return true
	}

	if errors.Is(err, ErrInvalidFilter) {
		response.BadRequest(c, err.Error())
		return true
	}

	logger.Error("audit query failed", err)
	response.InternalServerError(c, "Something went wrong")
	return true
}
