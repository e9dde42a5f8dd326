package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response. healthCheck pings the storage
// backend; a nil healthCheck always reports it as available.
func Health(driver string, healthCheck func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storageStatus := "connected"
		if healthCheck != nil && healthCheck(ctx) != nil {
			storageStatus = "error"
		}

		status := http.StatusOK
		if storageStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"storage": storageStatus,
			"driver":  driver,
		})
	}
}
