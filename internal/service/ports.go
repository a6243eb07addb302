package service

import (
	"context"
	"time"

	"gameshop-api/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Claims is the validated content of an access token.
type Claims struct {
	UserID  uuid.UUID
	IsAdmin bool
	Exp     time.Time
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenProvider interface {
	Sign(ctx context.Context, sub uuid.UUID, isAdmin bool, ttl time.Duration) (string, time.Time, error)
	ParseAndValidate(ctx context.Context, token string) (*Claims, error)
}

type MailSender interface {
	SendVerification(to, username, token string) error
	SendPasswordReset(to, username, token string) error
	SendOrderSuccess(to, username, orderID string, total decimal.Decimal, titles []string, at time.Time) error
	SendOrderFailure(to, username, orderID string, titles []string, at time.Time) error
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (string, error)
}
