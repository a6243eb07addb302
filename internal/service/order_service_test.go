package service_test

import (
	"context"
	"errors"
	"testing"

	"gameshop-api/internal/models"
	"gameshop-api/internal/payment"
	"gameshop-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func int32Ptr(n int32) *int32 { return &n }

func TestOrderService_CreateOrder_Success(t *testing.T) {
	gameID := uuid.New()
	userID := uuid.New()

	games := &MockGameRepo{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
			return []models.Game{{ID: gameID, Title: "Elden Ring", Stock: int32Ptr(5), Preorder: true}}, nil
		},
	}
	var saved *models.Order
	orders := &MockOrderRepo{
		CreateFunc: func(ctx context.Context, o *models.Order) error {
			saved = o
			return nil
		},
	}

	svc := service.NewOrderService(orders, games, zap.NewNop())
	order, err := svc.CreateOrder(context.Background(), userID,
		[]service.OrderItemInput{{GameID: gameID, Quantity: 2}}, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if saved.Status != models.OrderStatusAwaiting {
		t.Errorf("expected awaiting_verification status, got %s", saved.Status)
	}
	if order.ID == "" {
		t.Error("expected a generated order id")
	}
	if len(saved.Items) != 1 || !saved.Items[0].Preorder {
		t.Errorf("expected preorder flag resolved from catalog, got %+v", saved.Items)
	}
	if len(saved.GameTitles) != 1 || saved.GameTitles[0] != "Elden Ring" {
		t.Errorf("expected denormalized titles, got %v", saved.GameTitles)
	}
}

func TestOrderService_CreateOrder_OverStock(t *testing.T) {
	gameID := uuid.New()
	games := &MockGameRepo{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
			return []models.Game{{ID: gameID, Title: "Rare Game", Stock: int32Ptr(1)}}, nil
		},
	}
	orders := &MockOrderRepo{
		CreateFunc: func(ctx context.Context, o *models.Order) error {
			t.Error("expected no order to be created")
			return nil
		},
	}

	svc := service.NewOrderService(orders, games, zap.NewNop())
	_, err := svc.CreateOrder(context.Background(), uuid.New(),
		[]service.OrderItemInput{{GameID: gameID, Quantity: 3}}, decimal.NewFromInt(30))

	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Requested != 3 || stockErr.Available != 1 {
		t.Errorf("expected requested=3 available=1, got %+v", stockErr)
	}
}

func TestOrderService_CreateOrder_NullStockUnavailable(t *testing.T) {
	// NULL stock is the unavailable sentinel, not unlimited.
	gameID := uuid.New()
	games := &MockGameRepo{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
			return []models.Game{{ID: gameID, Title: "Delisted", Stock: nil}}, nil
		},
	}

	svc := service.NewOrderService(&MockOrderRepo{}, games, zap.NewNop())
	_, err := svc.CreateOrder(context.Background(), uuid.New(),
		[]service.OrderItemInput{{GameID: gameID, Quantity: 1}}, decimal.NewFromInt(10))

	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
}

func TestOrderService_CreateOrder_UnknownGame(t *testing.T) {
	games := &MockGameRepo{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
			return nil, nil
		},
	}

	svc := service.NewOrderService(&MockOrderRepo{}, games, zap.NewNop())
	_, err := svc.CreateOrder(context.Background(), uuid.New(),
		[]service.OrderItemInput{{GameID: uuid.New(), Quantity: 1}}, decimal.NewFromInt(10))
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	svc := service.NewOrderService(&MockOrderRepo{}, &MockGameRepo{}, zap.NewNop())
	_, err := svc.CreateOrder(context.Background(), uuid.New(), nil, decimal.Zero)
	if !errors.Is(err, service.ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got %v", err)
	}
}

func TestCheckoutService_CreateSession_RepricesFromCatalog(t *testing.T) {
	gameID := uuid.New()
	games := &MockGameRepo{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
			return []models.Game{{
				ID:       gameID,
				Title:    "Hades II",
				Price:    decimal.RequireFromString("29.99"),
				Discount: 10,
			}}, nil
		},
	}

	var gotInput payment.CheckoutInput
	gateway := &MockPaymentGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, in payment.CheckoutInput) (string, error) {
			gotInput = in
			return "https://checkout.example/s1", nil
		},
	}

	svc := service.NewCheckoutService(games, gateway, zap.NewNop())
	url, orderID, err := svc.CreateSession(context.Background(), uuid.New(),
		[]service.CheckoutItem{{GameID: gameID, Quantity: 2}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if url != "https://checkout.example/s1" {
		t.Errorf("unexpected session url %q", url)
	}
	if orderID == "" || gotInput.OrderID != orderID {
		t.Errorf("expected the returned order id to ride in the metadata, got %q vs %q", orderID, gotInput.OrderID)
	}

	if len(gotInput.Items) != 1 {
		t.Fatalf("expected one cart item, got %d", len(gotInput.Items))
	}
	item := gotInput.Items[0]
	if !item.Price.Equal(decimal.RequireFromString("29.99")) || item.Discount != 10 {
		t.Errorf("expected catalog price and discount, got %+v", item)
	}
	if item.Title != "Hades II" || item.Quantity != 2 {
		t.Errorf("unexpected cart item %+v", item)
	}
}

func TestCheckoutService_CreateSession_UnknownGame(t *testing.T) {
	games := &MockGameRepo{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
			return nil, nil
		},
	}

	svc := service.NewCheckoutService(games, &MockPaymentGateway{}, zap.NewNop())
	_, _, err := svc.CreateSession(context.Background(), uuid.New(),
		[]service.CheckoutItem{{GameID: uuid.New(), Quantity: 1}})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
