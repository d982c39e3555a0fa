package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	model "gallery-backend/internal/domains/location"
	"gallery-backend/internal/shared/middleware"
	"gallery-backend/internal/shared/response"
)

// Handler exposes location CRUD nested under years.
type Handler struct {
	service model.Service
}

func NewHandler(service model.Service) *Handler {
	return &Handler{service: service}
}

// GetLocation - GET /admin/locations/:id
func (h *Handler) GetLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid location id")
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if model.HandleLocationError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, l)
}

// ListByYear - GET /admin/years/:id/locations
func (h *Handler) ListByYear(c *gin.Context) {
	yearID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid year id")
		return
	}

	locations, err := h.service.ListByYear(c.Request.Context(), yearID)
	if model.HandleLocationError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, locations)
}

// CreateLocation - POST /admin/years/:id/locations
func (h *Handler) CreateLocation(c *gin.Context) {
	yearID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid year id")
		return
	}

	var req model.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	l, err := h.service.Create(c.Request.Context(), middleware.GetActor(c), yearID, req)
	if model.HandleLocationError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, l)
}

// UpdateLocation - PUT /admin/locations/:id
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid location id")
		return
	}

	var req model.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	l, err := h.service.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if model.HandleLocationError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, l)
}

// DeleteLocation - DELETE /admin/locations/:id
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid location id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetActor(c), id); model.HandleLocationError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
