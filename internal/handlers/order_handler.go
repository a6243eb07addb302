package handlers

import (
	"errors"
	"net/http"

	"gameshop-api/internal/dto"
	"gameshop-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}
	if req.Total.LessThan(decimal.Zero) {
		abortBadRequest(c, "total must not be negative")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Games))
	for _, it := range req.Games {
		gameID, err := uuid.Parse(it.GameID)
		if err != nil {
			abortBadRequest(c, "invalid game id")
			return
		}
		items = append(items, service.OrderItemInput{GameID: gameID, Quantity: it.Quantity})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), currentUserID(c), items, req.Total)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.Is(err, service.ErrEmptyItems):
			abortBadRequest(c, "order must contain at least one game")
		case errors.Is(err, service.ErrNotFound):
			abortBadRequest(c, err.Error())
		case errors.As(err, &stockErr):
			abortBadRequest(c, stockErr.Error())
		default:
			abortInternal(c, h.log, "order creation failed", err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OrderFromModel(order))
}

// ListByUser returns a user's orders, newest first. Users see their
// own history; admins can inspect anyone's.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		abortBadRequest(c, "invalid user id")
		return
	}
	if userID != currentUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("cannot access another user's orders"))
		return
	}

	orders, err := h.orders.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		abortInternal(c, h.log, "order listing failed", err)
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, dto.OrderFromModel(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}
