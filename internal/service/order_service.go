package service

import (
	"context"
	"fmt"
	"time"

	"gameshop-api/internal/models"
	"gameshop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderService struct {
	orders repository.OrderRepo
	games  repository.GameRepo
	now    func() time.Time
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepo, games repository.GameRepo, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, games: games, now: time.Now, log: log}
}

type OrderItemInput struct {
	GameID   uuid.UUID
	Quantity int32
}

// CreateOrder registers a manual order pending verification. Every
// item must reference an existing game and fit within its stock; the
// preorder flag is resolved from the catalog, not trusted from input.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, items []OrderItemInput, total decimal.Decimal) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.GameID)
	}
	games, err := s.games.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		game, ok := byID[it.GameID]
		if !ok {
			return nil, fmt.Errorf("game %s: %w", it.GameID, ErrNotFound)
		}

		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty > game.StockValue() {
			return nil, &InsufficientStockError{
				Title:     game.Title,
				Requested: qty,
				Available: game.StockValue(),
			}
		}

		orderItems = append(orderItems, models.OrderItem{
			GameID:   game.ID,
			Quantity: qty,
			Preorder: game.Preorder,
		})
		titles = append(titles, game.Title)
	}

	order := &models.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		Total:      total,
		Status:     models.OrderStatusAwaiting,
		GameTitles: titles,
		Items:      orderItems,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
