package handlers

import (
	"errors"
	"net/http"

	"gameshop-api/internal/dto"
	"gameshop-api/internal/payment"
	"gameshop-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
	webhooks *service.WebhookService
	gateway  *payment.StripeClient
	log      *zap.Logger
}

func NewCheckoutHandler(
	checkout *service.CheckoutService,
	webhooks *service.WebhookService,
	gateway *payment.StripeClient,
	log *zap.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, webhooks: webhooks, gateway: gateway, log: log}
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	items := make([]service.CheckoutItem, 0, len(req.Games))
	for _, it := range req.Games {
		gameID, err := uuid.Parse(it.ID)
		if err != nil {
			abortBadRequest(c, "invalid game id")
			return
		}
		items = append(items, service.CheckoutItem{GameID: gameID, Quantity: it.Quantity})
	}

	url, orderID, err := h.checkout.CreateSession(c.Request.Context(), currentUserID(c), items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyItems):
			abortBadRequest(c, "no games provided for checkout")
		case errors.Is(err, service.ErrNotFound):
			abortBadRequest(c, err.Error())
		default:
			abortInternal(c, h.log, "checkout session creation failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url, OrderID: orderID})
}

// Webhook consumes the raw signed payload. Signature failure is the
// only non-200 outcome: once the event is verified, reconciliation
// problems are logged and the delivery is acknowledged so the provider
// does not retry forever.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		abortBadRequest(c, "cannot read request body")
		return
	}

	ev, err := h.gateway.VerifyEvent(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.log.Warn("webhook signature verification failed", zap.Error(err))
		abortBadRequest(c, "signature verification failed")
		return
	}

	if err := h.webhooks.HandleEvent(c.Request.Context(), ev); err != nil {
		h.log.Error("webhook reconciliation failed",
			zap.String("order_id", ev.OrderID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
