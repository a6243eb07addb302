package service

import (
	"context"
	"fmt"
	"time"

	"gameshop-api/internal/payment"
	"gameshop-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService struct {
	games   repository.GameRepo
	gateway PaymentGateway
	now     func() time.Time
	log     *zap.Logger
}

func NewCheckoutService(games repository.GameRepo, gateway PaymentGateway, log *zap.Logger) *CheckoutService {
	return &CheckoutService{games: games, gateway: gateway, now: time.Now, log: log}
}

type CheckoutItem struct {
	GameID   uuid.UUID
	Quantity int64
}

// CreateSession builds a hosted payment session for the cart. Titles,
// prices and discounts come from the catalog, never from the client;
// the generated order identifier travels through provider metadata and
// becomes the idempotency key at webhook time.
func (s *CheckoutService) CreateSession(ctx context.Context, userID uuid.UUID, items []CheckoutItem) (string, string, error) {
	if len(items) == 0 {
		return "", "", ErrEmptyItems
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.GameID)
	}
	games, err := s.games.GetByIDs(ctx, ids)
	if err != nil {
		return "", "", err
	}
	byID := make(map[uuid.UUID]int, len(games))
	for i := range games {
		byID[games[i].ID] = i
	}

	orderID := uuid.NewString()
	cart := make([]payment.Item, 0, len(items))
	for _, it := range items {
		idx, ok := byID[it.GameID]
		if !ok {
			return "", "", fmt.Errorf("game %s: %w", it.GameID, ErrNotFound)
		}
		game := games[idx]

		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		cart = append(cart, payment.Item{
			ID:       game.ID.String(),
			Title:    game.Title,
			Price:    game.Price,
			Discount: game.Discount,
			Quantity: qty,
		})
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutInput{
		OrderID: orderID,
		UserID:  userID.String(),
		Items:   cart,
	})
	if err != nil {
		return "", "", err
	}
	return url, orderID, nil
}
