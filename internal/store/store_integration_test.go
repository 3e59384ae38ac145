package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/store"
	"github.com/safar/pantry-pickup/internal/testdb"
)

func createCustomer(t *testing.T, q database.Querier, email string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), q, "Test User", email, "hash", models.RoleCustomer)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return user
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	createCustomer(t, db, "dup@example.com")

	_, err := store.CreateUser(ctx, db, "Someone Else", "dup@example.com", "hash", models.RoleVendor)
	if !errors.Is(err, store.ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	if _, err := store.GetUser(ctx, db, 999); !errors.Is(err, database.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, db, "nobody@example.com"); !errors.Is(err, database.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}

	exists, err := store.UserExists(ctx, db, 999)
	if err != nil {
		t.Fatalf("User exists: %v", err)
	}
	if exists {
		t.Error("User 999 should not exist")
	}
}

func TestCreateOrderDefaults(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	user := createCustomer(t, db, "orders@example.com")

	order, err := store.CreateOrder(ctx, db, user.ID, "Test User", "1 sourdough loaf")
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if order.ID == 0 {
		t.Error("Order ID should not be 0")
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected status pending, got %s", order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestCreateOrderUnknownUser(t *testing.T) {
	db := testdb.Setup(t)

	_, err := store.CreateOrder(context.Background(), db, 424242, "Ghost", "tea")
	if !errors.Is(err, database.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	ada := createCustomer(t, db, "ada@example.com")
	grace := createCustomer(t, db, "grace@example.com")

	var adaOrders []int64
	for _, items := range []string{"first", "second", "third"} {
		order, err := store.CreateOrder(ctx, db, ada.ID, "Ada", items)
		if err != nil {
			t.Fatalf("Create order %s: %v", items, err)
		}
		adaOrders = append(adaOrders, order.ID)
	}
	if _, err := store.CreateOrder(ctx, db, grace.ID, "Grace", "other"); err != nil {
		t.Fatalf("Create order: %v", err)
	}

	orders, err := store.ListOrders(ctx, db, store.OrderFilter{UserID: &ada.ID})
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("Expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != adaOrders[2] {
		t.Errorf("Expected newest order %d first, got %d", adaOrders[2], orders[0].ID)
	}

	all, err := store.ListOrders(ctx, db, store.OrderFilter{})
	if err != nil {
		t.Fatalf("List all orders: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 orders, got %d", len(all))
	}
}

func TestListOrdersEmpty(t *testing.T) {
	db := testdb.Setup(t)
	user := createCustomer(t, db, "empty@example.com")

	orders, err := store.ListOrders(context.Background(), db, store.OrderFilter{UserID: &user.ID})
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", orders)
	}
}

func TestListOrdersCursor(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	user := createCustomer(t, db, "cursor@example.com")

	for i := 0; i < 15; i++ {
		if _, err := store.CreateOrder(ctx, db, user.ID, "Test User", "bagel"); err != nil {
			t.Fatalf("Create order %d: %v", i, err)
		}
	}

	filter := store.OrderFilter{UserID: &user.ID}

	page1, err := store.ListOrdersCursor(ctx, db, filter, "", 10)
	if err != nil {
		t.Fatalf("List orders page 1: %v", err)
	}
	if len(page1.Items) != 10 {
		t.Errorf("Expected 10 items on page 1, got %d", len(page1.Items))
	}
	if !page1.HasMore {
		t.Error("Page 1 should have more results")
	}
	if page1.NextCursor == "" {
		t.Error("Page 1 should have a next cursor")
	}

	page2, err := store.ListOrdersCursor(ctx, db, filter, page1.NextCursor, 10)
	if err != nil {
		t.Fatalf("List orders page 2: %v", err)
	}
	if len(page2.Items) != 5 {
		t.Errorf("Expected 5 items on page 2, got %d", len(page2.Items))
	}
	if page2.HasMore {
		t.Error("Page 2 should not have more results")
	}

	seen := map[int64]bool{}
	for _, o := range append(page1.Items, page2.Items...) {
		if seen[o.ID] {
			t.Errorf("Order %d returned twice", o.ID)
		}
		seen[o.ID] = true
	}

	if _, err := store.ListOrdersCursor(ctx, db, filter, "not-a-cursor", 10); !errors.Is(err, store.ErrInvalidCursor) {
		t.Errorf("Expected ErrInvalidCursor, got: %v", err)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	db := testdb.Setup(t)

	_, err := store.UpdateOrderStatus(context.Background(), db, 999, models.OrderStatusReady)
	if !errors.Is(err, database.ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got: %v", err)
	}
}

func TestNotificationsLifecycle(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	owner := createCustomer(t, db, "owner@example.com")
	other := createCustomer(t, db, "other@example.com")

	order, err := store.CreateOrder(ctx, db, owner.ID, "Owner", "muffins")
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	n, err := store.CreateNotification(ctx, db, owner.ID, &order.ID, models.ReadyMessage(order.Items))
	if err != nil {
		t.Fatalf("Create notification: %v", err)
	}
	if n.IsRead {
		t.Error("New notification should be unread")
	}

	count, err := store.CountUnreadNotifications(ctx, db, owner.ID)
	if err != nil {
		t.Fatalf("Count unread: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 unread, got %d", count)
	}

	if err := store.MarkNotificationRead(ctx, db, n.ID, other.ID); !errors.Is(err, database.ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound for non-owner, got: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.MarkNotificationRead(ctx, db, n.ID, owner.ID); err != nil {
			t.Fatalf("Mark read attempt %d: %v", i+1, err)
		}
	}

	list, err := store.ListNotifications(ctx, db, owner.ID)
	if err != nil {
		t.Fatalf("List notifications: %v", err)
	}
	if len(list) != 1 || !list[0].IsRead {
		t.Errorf("Expected one read notification, got %+v", list)
	}

	empty, err := store.ListNotifications(ctx, db, other.ID)
	if err != nil {
		t.Fatalf("List notifications: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no notifications for other user, got %d", len(empty))
	}
}
