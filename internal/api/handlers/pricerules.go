package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/shopify"
)

// HandlePriceRules handles GET /api/price-rules. The Shopify body is relayed
// verbatim; every failure collapses to a plain 500.
func HandlePriceRules(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := client.ListPriceRules(c.Request.Context())
		if err != nil {
			logger.Error("Error fetching price rules", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "application/json", body)
	}
}
