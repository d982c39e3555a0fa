package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	model "gallery-backend/internal/domains/year"
	"gallery-backend/internal/shared/middleware"
	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/cache"
)

const publicCacheTTL = 5 * time.Minute

// Handler exposes year CRUD and the public year listing.
type Handler struct {
	service model.Service
	cache   cache.Cache
}

func NewHandler(service model.Service, cache cache.Cache) *Handler {
	return &Handler{service: service, cache: cache}
}

// GetYear - GET /admin/years/:id
func (h *Handler) GetYear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid year id")
		return
	}

	y, err := h.service.Get(c.Request.Context(), id)
	if model.HandleYearError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, y)
}

// ListYears - GET /admin/years
func (h *Handler) ListYears(c *gin.Context) {
	years, err := h.service.List(c.Request.Context())
	if model.HandleYearError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, years)
}

// CreateYear - POST /admin/years
func (h *Handler) CreateYear(c *gin.Context) {
	var req model.CreateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	y, err := h.service.Create(c.Request.Context(), middleware.GetActor(c), req)
	if model.HandleYearError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, y)
}

// UpdateYear - PUT /admin/years/:id
func (h *Handler) UpdateYear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid year id")
		return
	}

	var req model.UpdateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	y, err := h.service.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if model.HandleYearError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, y)
}

// DeleteYear - DELETE /admin/years/:id
func (h *Handler) DeleteYear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid year id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetActor(c), id); model.HandleYearError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// ListPublicYears - GET /years
// Only published years are visible, through the tag-scoped cache.
func (h *Handler) ListPublicYears(c *gin.Context) {
	const cacheKey = "tag:years:list"
	var cached []model.Year
	if found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && found {
		response.Success(c, http.StatusOK, cached)
		return
	}

	years, err := h.service.List(c.Request.Context())
	if model.HandleYearError(c, err) {
		return
	}

	published := make([]model.Year, 0, len(years))
	for _, y := range years {
		if y.Status == model.StatusPublished {
			published = append(published, y)
		}
	}

	_ = h.cache.Set(c.Request.Context(), cacheKey, published, publicCacheTTL)
	response.Success(c, http.StatusOK, published)
}
