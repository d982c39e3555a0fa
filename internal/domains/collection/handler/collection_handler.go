package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	model "gallery-backend/internal/domains/collection"
	"gallery-backend/internal/shared/middleware"
	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/cache"
)

const publicCacheTTL = 5 * time.Minute

// Handler exposes collection CRUD, the publish lifecycle and the public
// read path.
type Handler struct {
	service model.Service
	cache   cache.Cache
}

func NewHandler(service model.Service, cache cache.Cache) *Handler {
	return &Handler{service: service, cache: cache}
}

// GetCollection - GET /admin/collections/:id
func (h *Handler) GetCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	col, err := h.service.Get(c.Request.Context(), id)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, col)
}

// ListByYear - GET /admin/years/:id/collections
func (h *Handler) ListByYear(c *gin.Context) {
	yearID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid year id")
		return
	}

	collections, err := h.service.ListByYear(c.Request.Context(), yearID)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, collections)
}

// CreateCollection - POST /admin/collections
func (h *Handler) CreateCollection(c *gin.Context) {
	var req model.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	col, err := h.service.Create(c.Request.Context(), middleware.GetActor(c), req)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, col)
}

// UpdateCollection - PUT /admin/collections/:id
func (h *Handler) UpdateCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	col, err := h.service.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, col)
}

// DeleteCollection - DELETE /admin/collections/:id
func (h *Handler) DeleteCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetActor(c), id); model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// PublishCollection - POST /admin/collections/:id/publish
func (h *Handler) PublishCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.PublishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	col, err := h.service.Publish(c.Request.Context(), middleware.GetActor(c), id, req)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, col)
}

// UnpublishCollection - POST /admin/collections/:id/unpublish
func (h *Handler) UnpublishCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.UnpublishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	col, err := h.service.Unpublish(c.Request.Context(), middleware.GetActor(c), id, req)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, col)
}

// GetChecklist - GET /admin/collections/:id/checklist
func (h *Handler) GetChecklist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	report, err := h.service.Checklist(c.Request.Context(), id)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, report)
}

// GetHistory - GET /admin/collections/:id/history
func (h *Handler) GetHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.HistoryRequest
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil {
			req.Offset = o
		}
	}

	result, err := h.service.ListHistory(c.Request.Context(), id, req)
	if model.HandleCollectionError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Versions, &response.Meta{
		Limit:   result.Limit,
		Offset:  result.Offset,
		Total:   result.Total,
		HasMore: result.HasMore,
	})
}

// GetPublicCollection - GET /collections/:id
// Serves only published collections, through the tag-scoped cache so a
// publish or edit invalidates it.
func (h *Handler) GetPublicCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	cacheKey := "tag:collection:" + id.String() + ":detail"
	var cached model.Collection
	if found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && found {
		response.Success(c, http.StatusOK, &cached)
		return
	}

	col, err := h.service.Get(c.Request.Context(), id)
	if model.HandleCollectionError(c, err) {
		return
	}
	if !col.IsPublished() {
		response.NotFound(c, "The specified collection does not exist")
		return
	}

	_ = h.cache.Set(c.Request.Context(), cacheKey, col, publicCacheTTL)
	response.Success(c, http.StatusOK, col)
}
