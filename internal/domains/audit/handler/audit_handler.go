package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model "gallery-backend/internal/domains/audit"
	"gallery-backend/internal/shared/response"
)

// Handler exposes the read side of the ledger.
type Handler struct {
	service model.Service
}

func NewHandler(service model.Service) *Handler {
	return &Handler{service: service}
}

// QueryLog - GET /admin/audit
func (h *Handler) QueryLog(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.Query(c.Request.Context(), req)
	if model.HandleAuditError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Results, &response.Meta{
		Limit:   result.Limit,
		Offset:  result.Offset,
		Total:   result.Total,
		HasMore: result.HasMore,
	})
}

// PreviewRetention - GET /admin/audit/retention/preview
func (h *Handler) PreviewRetention(c *gin.Context) {
	var req model.RetentionPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	preview, err := h.service.PreviewRetention(c.Request.Context(), req)
	if model.HandleAuditError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, preview)
}
