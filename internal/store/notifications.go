package store

import (
	"context"
	"fmt"

	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/models"
)

func CreateNotification(ctx context.Context, q database.Querier, userID int64, orderID *int64, message string) (*models.Notification, error) {
	n := &models.Notification{}

	query := `
		INSERT INTO notifications (user_id, order_id, message, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING id, user_id, order_id, message, is_read, created_at`

	err := q.QueryRowContext(ctx, query, userID, orderID, message).Scan(
		&n.ID,
		&n.UserID,
		&n.OrderID,
		&n.Message,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return n, nil
}

func ListNotifications(ctx context.Context, q database.Querier, userID int64) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, order_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.OrderID,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return notifications, nil
}

// MarkNotificationRead sets is_read on a notification owned by userID.
// Re-marking a read notification still matches the row, so the call is
// idempotent.
func MarkNotificationRead(ctx context.Context, q database.Querier, id, userID int64) error {
	result, err := q.ExecContext(ctx,
		`UPDATE notifications
		 SET is_read = TRUE
		 WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrNotificationNotFound
	}

	return nil
}

func CountUnreadNotifications(ctx context.Context, q database.Querier, userID int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
