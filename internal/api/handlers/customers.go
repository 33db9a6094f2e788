package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/shopify"
	apperrors "github.com/awadali7/pro-shopify-backend/pkg/errors"
)

// SaveEmailRequest is the save-email payload
type SaveEmailRequest struct {
	Email string `json:"email"`
}

// HandleSaveEmail handles POST /api/save-email. It creates a Shopify customer
// with marketing consent enabled and relays the created record.
func HandleSaveEmail(client *shopify.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		customer, err := client.CreateCustomer(c.Request.Context(), req.Email)
		if err != nil {
			logger.Error("Error saving email to Shopify", zap.Error(err))

			var upstreamErr *apperrors.ErrUpstream
			var unreachableErr *apperrors.ErrUnreachable
			switch {
			case errors.As(err, &upstreamErr):
				// API error from Shopify: relay its status and body
				c.JSON(upstreamErr.StatusCode, gin.H{
					"error":   upstreamBody(upstreamErr.Body),
					"message": "Failed to save email to Shopify",
				})
			case errors.As(err, &unreachableErr):
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "No response received from Shopify",
					"message": unreachableErr.Err.Error(),
				})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal server error",
					"message": err.Error(),
				})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Email saved successfully!",
			"customer": customer,
		})
	}
}
