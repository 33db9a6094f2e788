package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/api/handlers"
	"github.com/awadali7/pro-shopify-backend/internal/api/middleware"
	"github.com/awadali7/pro-shopify-backend/internal/config"
	"github.com/awadali7/pro-shopify-backend/internal/service"
	"github.com/awadali7/pro-shopify-backend/internal/shopify"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	client := shopify.NewClient(cfg.Shopify, logger)
	catalog := service.NewCatalogService(cfg.Shopify, logger)

	api := router.Group("/api")
	{
		api.POST("/save-email", handlers.HandleSaveEmail(client, logger))
		api.GET("/collection-products", handlers.HandleCollectionProducts(catalog, logger))
		api.GET("/price-rules", handlers.HandlePriceRules(client, logger))
	}

	// Catch-all route to help diagnose routing issues
	router.NoRoute(func(c *gin.Context) {
		logger.Info("Unmatched route",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
