package service_test

import (
	"context"
	"time"

	"gameshop-api/internal/models"
	"gameshop-api/internal/payment"
	"gameshop-api/internal/repository"
	"gameshop-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Function-field mocks for all service dependencies.

type MockUserRepo struct {
	CreateFunc          func(ctx context.Context, u *models.User) error
	GetByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByResetTokenFunc func(ctx context.Context, email, token string, now time.Time) (*models.User, error)
	SetVerifiedFunc     func(ctx context.Context, id uuid.UUID) error
	SetResetTokenFunc   func(ctx context.Context, id uuid.UUID, token string, expires time.Time) error
	ResetPasswordFunc   func(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfileFunc   func(ctx context.Context, id uuid.UUID, username, profilePic *string) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByResetToken(ctx context.Context, email, token string, now time.Time) (*models.User, error) {
	if m.GetByResetTokenFunc != nil {
		return m.GetByResetTokenFunc(ctx, email, token, now)
	}
	return nil, nil
}

func (m *MockUserRepo) SetVerified(ctx context.Context, id uuid.UUID) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, token, expires)
	}
	return nil
}

func (m *MockUserRepo) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, username, profilePic *string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, username, profilePic)
	}
	return nil
}

type MockGameRepo struct {
	CreateFunc         func(ctx context.Context, g *models.Game) error
	UpdateFunc         func(ctx context.Context, g *models.Game) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]models.Game, error)
	ListFunc           func(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error)
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

func (m *MockGameRepo) Create(ctx context.Context, g *models.Game) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, g)
	}
	return nil
}

func (m *MockGameRepo) Update(ctx context.Context, g *models.Game) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, g)
	}
	return nil
}

func (m *MockGameRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockGameRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockGameRepo) List(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockGameRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

type MockOrderRepo struct {
	CreateFunc              func(ctx context.Context, o *models.Order) error
	CreateIfAbsentFunc      func(ctx context.Context, o *models.Order) (bool, error)
	GetByIDFunc             func(ctx context.Context, id string) (*models.Order, error)
	ListByUserFunc          func(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	MarkFailedIfNotPaidFunc func(ctx context.Context, id string, total decimal.Decimal, titles []string, at time.Time) (bool, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) CreateIfAbsent(ctx context.Context, o *models.Order) (bool, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, o)
	}
	return true, nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) MarkFailedIfNotPaid(ctx context.Context, id string, total decimal.Decimal, titles []string, at time.Time) (bool, error) {
	if m.MarkFailedIfNotPaidFunc != nil {
		return m.MarkFailedIfNotPaidFunc(ctx, id, total, titles, at)
	}
	return true, nil
}

type MockReviewRepo struct {
	CreateFunc        func(ctx context.Context, rv *models.Review) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListByGameFunc    func(ctx context.Context, gameID uuid.UUID) ([]repository.ReviewWithAuthor, error)
	UpdateContentFunc func(ctx context.Context, id uuid.UUID, rating int, comment string, at time.Time) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rv)
	}
	return nil
}

func (m *MockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReviewRepo) ListByGame(ctx context.Context, gameID uuid.UUID) ([]repository.ReviewWithAuthor, error) {
	if m.ListByGameFunc != nil {
		return m.ListByGameFunc(ctx, gameID)
	}
	return nil, nil
}

func (m *MockReviewRepo) UpdateContent(ctx context.Context, id uuid.UUID, rating int, comment string, at time.Time) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, id, rating, comment, at)
	}
	return nil
}

func (m *MockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

type MockTokenProvider struct {
	SignFunc             func(ctx context.Context, sub uuid.UUID, isAdmin bool, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateFunc func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) Sign(ctx context.Context, sub uuid.UUID, isAdmin bool, ttl time.Duration) (string, time.Time, error) {
	if m.SignFunc != nil {
		return m.SignFunc(ctx, sub, isAdmin, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidate(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseAndValidateFunc != nil {
		return m.ParseAndValidateFunc(ctx, token)
	}
	return &service.Claims{UserID: uuid.New(), Exp: time.Now().Add(time.Hour)}, nil
}

type MockMailSender struct {
	SendVerificationFunc  func(to, username, token string) error
	SendPasswordResetFunc func(to, username, token string) error
	SendOrderSuccessFunc  func(to, username, orderID string, total decimal.Decimal, titles []string, at time.Time) error
	SendOrderFailureFunc  func(to, username, orderID string, titles []string, at time.Time) error
}

func (m *MockMailSender) SendVerification(to, username, token string) error {
	if m.SendVerificationFunc != nil {
		return m.SendVerificationFunc(to, username, token)
	}
	return nil
}

func (m *MockMailSender) SendPasswordReset(to, username, token string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(to, username, token)
	}
	return nil
}

func (m *MockMailSender) SendOrderSuccess(to, username, orderID string, total decimal.Decimal, titles []string, at time.Time) error {
	if m.SendOrderSuccessFunc != nil {
		return m.SendOrderSuccessFunc(to, username, orderID, total, titles, at)
	}
	return nil
}

func (m *MockMailSender) SendOrderFailure(to, username, orderID string, titles []string, at time.Time) error {
	if m.SendOrderFailureFunc != nil {
		return m.SendOrderFailureFunc(to, username, orderID, titles, at)
	}
	return nil
}

type MockPaymentGateway struct {
	CreateCheckoutSessionFunc func(ctx context.Context, in payment.CheckoutInput) (string, error)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (string, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, in)
	}
	return "https://checkout.example/session", nil
}
