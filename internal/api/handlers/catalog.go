package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/service"
	apperrors "github.com/awadali7/pro-shopify-backend/pkg/errors"
)

// HandleCollectionProducts handles GET /api/collection-products. The
// aggregation itself lives in service.CatalogService; this handler only maps
// failures onto response statuses.
func HandleCollectionProducts(catalog *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := catalog.CollectionProducts(c.Request.Context())
		if err != nil {
			logger.Error("Error in /api/collection-products", zap.Error(err))

			var emptyErr *apperrors.ErrEmptyCollection
			var upstreamErr *apperrors.ErrUpstream
			var unreachableErr *apperrors.ErrUnreachable
			switch {
			case errors.As(err, &emptyErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": "No products found in the collection"})
			case errors.As(err, &upstreamErr):
				c.JSON(upstreamErr.StatusCode, gin.H{
					"error":   upstreamBody(upstreamErr.Body),
					"message": "Error fetching collection products",
				})
			case errors.As(err, &unreachableErr):
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "No response received",
					"message": unreachableErr.Err.Error(),
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Error setting up the request",
					"message": err.Error(),
				})
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// upstreamBody returns the Shopify error body for relaying: parsed when it is
// valid JSON, as a plain string otherwise.
func upstreamBody(body json.RawMessage) interface{} {
	if json.Valid(body) {
		return body
	}
	return string(body)
}
