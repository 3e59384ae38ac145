package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/pantry-pickup/internal/auth"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/store"
	"github.com/safar/pantry-pickup/internal/validation"
)

// actsFor reports whether the caller may act on behalf of userID. Customers
// are limited to themselves; vendors may act for anyone.
func actsFor(claims *auth.Claims, userID int64) bool {
	return claims.Role == models.RoleVendor || claims.UserID == userID
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to access another user's data"})
}

// PlaceOrder handles POST /orders.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req validation.PlaceOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	if !actsFor(claimsFrom(c), req.UserID) {
		forbidden(c)
		return
	}

	order, err := h.cfg.Orders.PlaceOrder(c.Request.Context(), req.UserID, req.FullName, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"order":   order,
	})
}

// ListOrders handles GET /orders?userId=, newest first. Passing limit switches
// to cursor pagination.
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	if !actsFor(claimsFrom(c), userID) {
		forbidden(c)
		return
	}

	h.listOrders(c, store.OrderFilter{UserID: &userID})
}

// ListVendorOrders handles GET /orders/vendor.
func (h *Handler) ListVendorOrders(c *gin.Context) {
	h.listOrders(c, store.OrderFilter{})
}

func (h *Handler) listOrders(c *gin.Context, filter store.OrderFilter) {
	cursor, limit, paged, ok := pageQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if paged {
		page, err := h.cfg.Orders.ListOrdersPage(ctx, filter, cursor, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		body := gin.H{
			"message": "Orders retrieved successfully",
			"orders":  page.Items,
		}
		if page.HasMore {
			body["nextCursor"] = page.NextCursor
		}
		c.JSON(http.StatusOK, body)
		return
	}

	var (
		orders []models.Order
		err    error
	)
	if filter.UserID != nil {
		orders, err = h.cfg.Orders.ListOrdersForUser(ctx, *filter.UserID)
	} else {
		orders, err = h.cfg.Orders.ListAllOrders(ctx)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"orders":  orders,
	})
}

// UpdateOrderStatus handles PATCH /orders/:id.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req validation.UpdateOrderStatusRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	order, err := h.cfg.Orders.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   order,
	})
}
