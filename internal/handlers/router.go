package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/safar/pantry-pickup/internal/auth"
	"github.com/safar/pantry-pickup/internal/metrics"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/service"
	"github.com/safar/pantry-pickup/internal/store"
	"github.com/safar/pantry-pickup/internal/validation"
)

type AccountService interface {
	CreateAccount(ctx context.Context, in service.CreateAccountInput) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID int64, fullName, items string) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersPage(ctx context.Context, filter store.OrderFilter, cursor string, limit int) (*store.CursorPage[models.Order], error)
	UpdateOrderStatus(ctx context.Context, orderID int64, newStatus string) (*models.Order, error)
}

type NotificationService interface {
	ListNotificationsForUser(ctx context.Context, userID int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

// Pinger reports database reachability for the health check. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Config groups dependencies for the HTTP handlers.
type Config struct {
	Accounts      AccountService
	Orders        OrderService
	Notifications NotificationService
	Tokens        *auth.TokenIssuer
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	DB            Pinger
}

type Handler struct {
	cfg       Config
	validator *validatorv10.Validate
}

// NewRouter builds the gin engine serving the ordering API.
func NewRouter(cfg Config) *gin.Engine {
	h := &Handler{cfg: cfg, validator: validation.New()}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(cfg.Logger), Instrument(cfg.Metrics), Recovery())

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	r.POST("/accounts", h.CreateAccount)
	r.POST("/sessions", h.CreateSession)

	authed := r.Group("/", Authenticate(cfg.Tokens))
	{
		authed.GET("/sessions/current", h.CurrentSession)

		authed.POST("/orders", h.PlaceOrder)
		authed.GET("/orders", h.ListOrders)
		authed.GET("/orders/vendor", RequireRole(models.RoleVendor), h.ListVendorOrders)
		authed.PATCH("/orders/:id", RequireRole(models.RoleVendor), h.UpdateOrderStatus)

		authed.GET("/notifications", h.ListNotifications)
		authed.PATCH("/notifications/:id", h.MarkNotificationRead)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	return r
}
