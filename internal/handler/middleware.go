package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oleeahmmed/ecommerce/internal/settings"
)

// RequestID tags every request so persistence failures can be correlated
// in the logs without leaking detail to the shopper.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Maintenance blocks storefront traffic while the store is switched off;
// admin and health endpoints stay reachable.
func Maintenance(store *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store.Current().MaintenanceMode {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "MAINTENANCE",
				"message": "The store is temporarily closed for maintenance",
			})
			return
		}
		c.Next()
	}
}
