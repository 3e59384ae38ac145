package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/models"
)

const orderColumns = `id, user_id, full_name, items, status, created_at, updated_at`

// OrderFilter narrows an order listing. A nil UserID lists every order.
type OrderFilter struct {
	UserID *int64
}

func CreateOrder(ctx context.Context, q database.Querier, userID int64, fullName, items string) (*models.Order, error) {
	order := &models.Order{}

	query := `
		INSERT INTO orders (user_id, full_name, items, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + orderColumns

	err := scanOrder(q.QueryRowContext(ctx, query, userID, fullName, items, models.OrderStatusPending), order)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// GetOrderForUpdate reads the order and holds its row lock until tx ends.
func GetOrderForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	err := scanOrder(tx.QueryRowContext(ctx, query, id), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return order, nil
}

func UpdateOrderStatus(ctx context.Context, q database.Querier, id int64, status models.OrderStatus) (*models.Order, error) {
	order := &models.Order{}

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + orderColumns

	err := scanOrder(q.QueryRowContext(ctx, query, status, id), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	return order, nil
}

// ListOrders returns every order matching filter, newest first.
func ListOrders(ctx context.Context, q database.Querier, filter OrderFilter) ([]models.Order, error) {
	where, args := filter.where(nil)

	query := `SELECT ` + orderColumns + ` FROM orders` + where + `
		ORDER BY created_at DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func ListOrdersCursor(ctx context.Context, q database.Querier, filter OrderFilter, cursor string, limit int) (*CursorPage[models.Order], error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	var conds []string
	var args []any
	if cursorData != nil {
		args = append(args, cursorData.CreatedAt, cursorData.ID)
		conds = append(conds, "(created_at, id) < ($1, $2)")
	}
	where, args := filter.where(args, conds...)

	args = append(args, limit+1)
	query := fmt.Sprintf(`SELECT %s FROM orders%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d`, orderColumns, where, len(args))

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		last := orders[len(orders)-1]
		nextCursor = EncodeCursor(Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return &CursorPage[models.Order]{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// where renders the filter as a WHERE clause, numbering its placeholders after
// the args already collected.
func (f OrderFilter) where(args []any, conds ...string) (string, []any) {
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, order *models.Order) error {
	return row.Scan(
		&order.ID,
		&order.UserID,
		&order.FullName,
		&order.Items,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}
