package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/shared/middleware"
	"gallery-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupPublicRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// PUBLIC ROUTES (no auth)
// ========================================
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/years", c.YearHandler.ListPublicYears)
	v1.GET("/collections/:id", c.CollectionHandler.GetPublicCollection)
}

// ========================================
// ADMIN ROUTES (JWT auth)
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin", middleware.AuthMiddleware(c.Config.JWT.Secret))

	years := admin.Group("/years")
	{
		years.GET("", c.YearHandler.ListYears)
		years.POST("", c.YearHandler.CreateYear)
		years.GET("/:id", c.YearHandler.GetYear)
		years.PUT("/:id", c.YearHandler.UpdateYear)
		years.DELETE("/:id", c.YearHandler.DeleteYear)

		years.GET("/:id/locations", c.LocationHandler.ListByYear)
		years.POST("/:id/locations", c.LocationHandler.CreateLocation)
		years.GET("/:id/collections", c.CollectionHandler.ListByYear)
	}

	locations := admin.Group("/locations")
	{
		locations.GET("/:id", c.LocationHandler.GetLocation)
		locations.PUT("/:id", c.LocationHandler.UpdateLocation)
		locations.DELETE("/:id", c.LocationHandler.DeleteLocation)
	}

	collections := admin.Group("/collections")
	{
		collections.POST("", c.CollectionHandler.CreateCollection)
		collections.GET("/:id", c.CollectionHandler.GetCollection)
		collections.PUT("/:id", c.CollectionHandler.UpdateCollection)
		collections.DELETE("/:id", c.CollectionHandler.DeleteCollection)

		collections.POST("/:id/publish", c.CollectionHandler.PublishCollection)
		collections.POST("/:id/unpublish", c.CollectionHandler.UnpublishCollection)
		collections.GET("/:id/checklist", c.CollectionHandler.GetChecklist)
		collections.GET("/:id/history", c.CollectionHandler.GetHistory)

		collections.POST("/:id/assets", c.AssetHandler.AddAssets)
		collections.PUT("/:id/assets/order", c.AssetHandler.ReorderAssets)
		collections.DELETE("/:id/assets/:assetId", c.AssetHandler.RemoveAsset)
	}

	assets := admin.Group("/assets")
	{
		assets.GET("", c.AssetHandler.ListAssets)
		assets.POST("", c.AssetHandler.CreateAsset)
		assets.GET("/:id", c.AssetHandler.GetAsset)
		assets.PUT("/:id", c.AssetHandler.UpdateAsset)
		assets.DELETE("/:id", c.AssetHandler.DeleteAsset)
	}

	auditGroup := admin.Group("/audit")
	{
		auditGroup.GET("", c.AuditHandler.QueryLog)
		auditGroup.GET("/retention/preview", c.AuditHandler.PreviewRetention)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"name":     c.Config.App.Name,
			"version":  c.Config.App.Version,
		})
	}
}
