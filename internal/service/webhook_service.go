package service

import (
	"context"
	"time"

	"gameshop-api/internal/models"
	"gameshop-api/internal/payment"
	"gameshop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WebhookService reconciles verified payment events against the order
// store. Everything past signature verification is best-effort: the
// provider retries on non-2xx, so internal failures are logged and the
// delivery is still acknowledged by the handler.
type WebhookService struct {
	orders repository.OrderRepo
	games  repository.GameRepo
	users  repository.UserRepo
	mail   MailSender
	now    func() time.Time
	log    *zap.Logger
}

func NewWebhookService(
	orders repository.OrderRepo,
	games repository.GameRepo,
	users repository.UserRepo,
	mail MailSender,
	log *zap.Logger,
) *WebhookService {
	return &WebhookService{
		orders: orders,
		games:  games,
		users:  users,
		mail:   mail,
		now:    time.Now,
		log:    log,
	}
}

func (s *WebhookService) HandleEvent(ctx context.Context, ev payment.Event) error {
	switch ev.Kind {
	case payment.EventCheckoutCompleted:
		return s.handleCompleted(ctx, ev)
	case payment.EventPaymentFailed:
		return s.handleFailed(ctx, ev)
	default:
		s.log.Debug("ignoring unhandled payment event")
		return nil
	}
}

// handleCompleted creates the paid order exactly once. The duplicate
// check and the insert are a single conditional statement, so two
// concurrent deliveries of the same event cannot both decrement stock.
func (s *WebhookService) handleCompleted(ctx context.Context, ev payment.Event) error {
	if ev.OrderID == "" {
		s.log.Warn("checkout completed event without order id")
		return nil
	}
	userID, err := uuid.Parse(ev.UserID)
	if err != nil {
		s.log.Warn("checkout completed event with invalid user id",
			zap.String("order_id", ev.OrderID), zap.String("user_id", ev.UserID))
		return nil
	}

	titles := itemTitles(ev.Items)
	order := &models.Order{
		ID:         ev.OrderID,
		UserID:     userID,
		Total:      centsToDecimal(ev.AmountCents),
		Status:     models.OrderStatusPaid,
		GameTitles: titles,
		Items:      orderItems(ev.OrderID, ev.Items),
	}

	created, err := s.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		// The payment already settled; at least tell the buyer the
		// fulfilment broke down.
		s.notifyFailure(ctx, userID, order.ID, titles)
		return err
	}
	if !created {
		s.log.Info("duplicate webhook delivery, order already exists",
			zap.String("order_id", ev.OrderID))
		return nil
	}

	for _, it := range ev.Items {
		gameID, err := uuid.Parse(it.ID)
		if err != nil {
			continue
		}
		updated, err := s.games.DecrementStock(ctx, gameID, int32(it.Quantity))
		if err != nil {
			s.log.Error("failed to decrement stock",
				zap.String("game_id", it.ID), zap.Error(err))
			continue
		}
		if !updated {
			s.log.Debug("stock not tracked for game", zap.String("game_id", it.ID))
		}
	}

	if user := s.lookupUser(ctx, userID); user != nil {
		if err := s.mail.SendOrderSuccess(user.Email, user.Username, order.ID, order.Total, titles, s.now()); err != nil {
			s.log.Warn("failed to send order confirmation email",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}
	return nil
}

// handleFailed records the failure without ever downgrading a paid
// order. When the event carries no item metadata, titles fall back to
// what the stored order already has.
func (s *WebhookService) handleFailed(ctx context.Context, ev payment.Event) error {
	if ev.OrderID == "" {
		s.log.Warn("payment failed event without order id")
		return nil
	}
	userID, err := uuid.Parse(ev.UserID)
	if err != nil {
		s.log.Warn("payment failed event with invalid user id",
			zap.String("order_id", ev.OrderID), zap.String("user_id", ev.UserID))
		return nil
	}

	titles := itemTitles(ev.Items)
	if len(titles) == 0 {
		if existing, err := s.orders.GetByID(ctx, ev.OrderID); err == nil && existing != nil {
			titles = existing.GameTitles
		}
	}

	s.notifyFailure(ctx, userID, ev.OrderID, titles)

	order := &models.Order{
		ID:         ev.OrderID,
		UserID:     userID,
		Total:      centsToDecimal(ev.AmountCents),
		Status:     models.OrderStatusFailed,
		GameTitles: titles,
		Items:      orderItems(ev.OrderID, ev.Items),
	}
	created, err := s.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		return err
	}
	if !created {
		marked, err := s.orders.MarkFailedIfNotPaid(ctx, ev.OrderID, order.Total, titles, s.now())
		if err != nil {
			return err
		}
		if !marked {
			s.log.Info("order already paid, keeping status",
				zap.String("order_id", ev.OrderID))
		}
	}
	return nil
}

// notifyFailure mails the buyer about a fulfilment breakdown. Delivery
// is best-effort, like every other notification here.
func (s *WebhookService) notifyFailure(ctx context.Context, userID uuid.UUID, orderID string, titles []string) {
	user := s.lookupUser(ctx, userID)
	if user == nil {
		return
	}
	if err := s.mail.SendOrderFailure(user.Email, user.Username, orderID, titles, s.now()); err != nil {
		s.log.Warn("failed to send fulfilment failure email",
			zap.String("order_id", orderID), zap.Error(err))
	}
}

func (s *WebhookService) lookupUser(ctx context.Context, id uuid.UUID) *models.User {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to load user for notification", zap.Error(err))
		return nil
	}
	if user == nil {
		s.log.Warn("no user found for payment event", zap.String("user_id", id.String()))
	}
	return user
}

func itemTitles(items []payment.Item) []string {
	titles := make([]string, 0, len(items))
	for _, it := range items {
		if it.Title != "" {
			titles = append(titles, it.Title)
		}
	}
	return titles
}

func orderItems(orderID string, items []payment.Item) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		gameID, err := uuid.Parse(it.ID)
		if err != nil {
			continue
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		out = append(out, models.OrderItem{
			OrderID:  orderID,
			GameID:   gameID,
			Quantity: int32(qty),
		})
	}
	return out
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
