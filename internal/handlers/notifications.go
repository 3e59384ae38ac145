package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/pantry-pickup/internal/models"
)

// ListNotifications handles GET /notifications?userId=. Notifications are
// private to their recipient, vendors included.
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	if claimsFrom(c).UserID != userID {
		forbidden(c)
		return
	}

	ctx := c.Request.Context()
	notifications, err := h.cfg.Notifications.ListNotificationsForUser(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	unread, err := h.cfg.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Notifications retrieved successfully",
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead handles PATCH /notifications/:id. Repeating it is a no-op.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}

	if err := h.cfg.Notifications.MarkRead(c.Request.Context(), id, claimsFrom(c).UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
