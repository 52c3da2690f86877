package handlers

import (
	"cars-info-processing/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	AuthEnabled bool
	AuthToken   string
}

// NewRouter registers the car API routes. The health check is always public.
func NewRouter(carHandler *CarHandler, healthHandler *HealthHandler, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/api/v1/cars/health", healthHandler.HealthCheck)

	api := router.Group("/api/v1/cars")
	api.Use(middleware.BearerAuthMiddleware(logger, opts.AuthEnabled, opts.AuthToken))
	{
		api.POST("/process", carHandler.Process)
		api.POST("/validate", carHandler.Validate)
		api.GET("/batches/:id", carHandler.GetBatch)
	}

	return router
}
