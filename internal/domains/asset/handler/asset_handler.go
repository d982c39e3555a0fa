package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	model "gallery-backend/internal/domains/asset"
	"gallery-backend/internal/shared/middleware"
	"gallery-backend/internal/shared/response"
)

// Handler exposes asset CRUD plus collection membership operations.
type Handler struct {
	service model.Service
}

func NewHandler(service model.Service) *Handler {
	return &Handler{service: service}
}

// GetAsset - GET /admin/assets/:id
func (h *Handler) GetAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid asset id")
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if model.HandleAssetError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, a)
}

// ListAssets - GET /admin/assets
func (h *Handler) ListAssets(c *gin.Context) {
	var req model.ListAssetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	assets, total, err := h.service.List(c.Request.Context(), req)
	if model.HandleAssetError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, assets, &response.Meta{
		Limit:   req.Limit,
		Offset:  req.Offset,
		Total:   total,
		HasMore: req.Offset+len(assets) < total,
	})
}

// CreateAsset - POST /admin/assets
func (h *Handler) CreateAsset(c *gin.Context) {
	var req model.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), middleware.GetActor(c), req)
	if model.HandleAssetError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// UpdateAsset - PUT /admin/assets/:id
func (h *Handler) UpdateAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid asset id")
		return
	}

	var req model.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	a, err := h.service.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if model.HandleAssetError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, a)
}

// DeleteAsset - DELETE /admin/assets/:id
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid asset id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetActor(c), id); model.HandleAssetError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// AddAssets - POST /admin/collections/:id/assets
// 201 when at least one link was created, 200 when the whole batch was
// already linked.
func (h *Handler) AddAssets(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.AddToCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.AddToCollection(c.Request.Context(), middleware.GetActor(c), collectionID, req)
	if model.HandleAssetError(c, err) {
		return
	}

	status := http.StatusCreated
	if result.NoOp() {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

// ReorderAssets - PUT /admin/collections/:id/assets/order
func (h *Handler) ReorderAssets(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}

	var req model.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Reorder(c.Request.Context(), middleware.GetActor(c), collectionID, req); model.HandleAssetError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"collection_id": collectionID})
}

// RemoveAsset - DELETE /admin/collections/:id/assets/:assetId
func (h *Handler) RemoveAsset(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid collection id")
		return
	}
	assetID, err := uuid.Parse(c.Param("assetId"))
	if err != nil {
		response.BadRequest(c, "Invalid asset id")
		return
	}

	if err := h.service.RemoveFromCollection(c.Request.Context(), middleware.GetActor(c), collectionID, assetID); model.HandleAssetError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"collection_id": collectionID, "asset_id": assetID})
}
