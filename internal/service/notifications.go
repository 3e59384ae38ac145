package service

import (
	"context"
	"database/sql"

	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/logger"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/store"
)

type NotificationService struct {
	db *sql.DB
}

func NewNotificationService(db *sql.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListNotificationsForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	return store.ListNotifications(ctx, s.db, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return store.CountUnreadNotifications(ctx, s.db, userID)
}

// MarkRead flags the notification read. Only its owner may do so; any other
// caller gets database.ErrNotificationNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if err := store.MarkNotificationRead(ctx, s.db, notificationID, userID); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("notification marked read", "notification_id", notificationID)
	return nil
}

// Notify creates one unread notification using q, which is the enclosing
// transaction when called from a status change.
func (s *NotificationService) Notify(ctx context.Context, q database.Querier, userID int64, orderID *int64, message string) (*models.Notification, error) {
	return store.CreateNotification(ctx, q, userID, orderID, message)
}
