package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/logger"
	"github.com/safar/pantry-pickup/internal/service"
	"github.com/safar/pantry-pickup/internal/store"
)

// respondServiceError maps service errors onto HTTP statuses. Anything
// unrecognised is logged and answered with a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"fields":  gin.H{ve.Field: ve.Message},
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order status"})
	case errors.Is(err, store.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cursor"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, database.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, database.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	case errors.Is(err, database.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"route", routeOf(c),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func parseID(c *gin.Context, param, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + what + " ID"})
		return 0, false
	}
	return id, true
}

// userIDQuery reads the required userId query parameter.
func userIDQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("userId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return 0, false
	}
	return id, true
}

// pageQuery reports whether the caller asked for a page (limit given) and
// returns the cursor and limit.
func pageQuery(c *gin.Context) (cursor string, limit int, paged bool, ok bool) {
	raw, present := c.GetQuery("limit")
	if !present {
		return "", 0, false, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
		return "", 0, false, false
	}
	return c.Query("cursor"), limit, true, true
}
