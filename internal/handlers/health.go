package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safar/pantry-pickup/internal/logger"
)

const healthTimeout = 2 * time.Second

// Health pings the database.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.cfg.DB.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Database unavailable", "status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "status": "ok"})
}
