package dto

import (
	"time"

	"gameshop-api/internal/models"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	GameID   string `json:"gameId" binding:"required,uuid"`
	Quantity int32  `json:"quantity"`
}

type CreateOrderRequest struct {
	Games []OrderItemRequest `json:"games" binding:"required"`
	Total decimal.Decimal    `json:"total"`
}

type OrderItemResponse struct {
	GameID   string `json:"gameId"`
	Quantity int32  `json:"quantity"`
	Preorder bool   `json:"preorder"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	Total      decimal.Decimal     `json:"total"`
	Status     string              `json:"status"`
	GameTitles []string            `json:"gameTitles"`
	Items      []OrderItemResponse `json:"games"`
	CreatedAt  time.Time           `json:"createdAt"`
}

func OrderFromModel(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			GameID:   it.GameID.String(),
			Quantity: it.Quantity,
			Preorder: it.Preorder,
		})
	}
	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID.String(),
		Total:      o.Total,
		Status:     string(o.Status),
		GameTitles: o.GameTitles,
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
}

type CheckoutItemRequest struct {
	ID       string `json:"id" binding:"required,uuid"`
	Quantity int64  `json:"quantity"`
}

type CheckoutRequest struct {
	Games []CheckoutItemRequest `json:"games" binding:"required"`
}

type CheckoutResponse struct {
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
}
