package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/safar/pantry-pickup/internal/config"
	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/logger"
	"github.com/safar/pantry-pickup/internal/metrics"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/store"
)

type OrderService struct {
	db       *sql.DB
	notifier *NotificationService
	metrics  *metrics.Metrics
	cfg      config.OrdersConfig
}

func NewOrderService(db *sql.DB, notifier *NotificationService, m *metrics.Metrics, cfg config.OrdersConfig) *OrderService {
	return &OrderService{db: db, notifier: notifier, metrics: m, cfg: cfg}
}

// PlaceOrder creates a pending order. When fullName is blank the account's
// name is captured instead.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, fullName, items string) (*models.Order, error) {
	items = strings.TrimSpace(items)
	if items == "" {
		return nil, invalid("items", "must describe what is being ordered")
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		user, err := store.GetUser(ctx, s.db, userID)
		if err != nil {
			return nil, err
		}
		fullName = user.FullName
	} else {
		// a user deleted after this check still fails on the orders FK
		exists, err := store.UserExists(ctx, s.db, userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, database.ErrUserNotFound
		}
	}

	order, err := store.CreateOrder(ctx, s.db, userID, fullName, items)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order placed", "order_id", order.ID, "user_id", order.UserID)
	return order, nil
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return store.ListOrders(ctx, s.db, store.OrderFilter{UserID: &userID})
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return store.ListOrders(ctx, s.db, store.OrderFilter{})
}

// ListOrdersPage returns one page of orders, newest first. limit is clamped to
// [1, MaxPageSize].
func (s *OrderService) ListOrdersPage(ctx context.Context, filter store.OrderFilter, cursor string, limit int) (*store.CursorPage[models.Order], error) {
	if limit < 1 {
		limit = 1
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	return store.ListOrdersCursor(ctx, s.db, filter, cursor, limit)
}

// UpdateOrderStatus moves the order to newStatus. The status write and the
// "ready" notification commit together or not at all. With strict transitions
// enabled only pending -> ready -> completed is accepted.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	var (
		updated  *models.Order
		from     models.OrderStatus
		notified bool
	)

	err = database.WithRetry(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		notified = false

		current, err := store.GetOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		from = current.Status

		if s.cfg.StrictTransitions {
			if current.Status.Terminal() {
				return fmt.Errorf("%w: order %d is already %s", ErrInvalidTransition, orderID, current.Status)
			}
			if !models.CanTransition(current.Status, status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
			}
		}

		updated, err = store.UpdateOrderStatus(ctx, tx, orderID, status)
		if err != nil {
			return err
		}

		if status == models.OrderStatusReady {
			if _, err := s.notifier.Notify(ctx, tx, updated.UserID, &updated.ID, models.ReadyMessage(updated.Items)); err != nil {
				return err
			}
			notified = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusTransitions.WithLabelValues(string(from), string(status)).Inc()
	if notified {
		s.metrics.NotificationsCreated.Inc()
	}

	logger.FromContext(ctx).Info("order status updated",
		"order_id", orderID,
		"from", from,
		"to", status,
		"notified", notified,
	)

	return updated, nil
}
