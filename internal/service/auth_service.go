package service

import (
	"context"
	"errors"
	"time"

	"gameshop-api/internal/models"
	"gameshop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	users  repository.UserRepo
	hasher PasswordHasher
	tokens TokenProvider
	mail   MailSender

	tokenTTL time.Duration
	resetTTL time.Duration
	now      func() time.Time

	log *zap.Logger
}

func NewAuthService(
	users repository.UserRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	mail MailSender,
	tokenTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mail:   mail,

		tokenTTL: tokenTTL,
		resetTTL: time.Hour,
		now:      time.Now,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	token, err := nanorand.Gen(32)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:                uuid.New(),
		Username:          username,
		Email:             email,
		Password:          hash,
		IsVerified:        false,
		VerificationToken: &token,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// имя пользователя занято
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	if err := s.mail.SendVerification(u.Email, u.Username, token); err != nil {
		s.log.Warn("failed to send verification email",
			zap.String("email", u.Email), zap.Error(err))
	}

	return u, nil
}

// Login checks credentials before the verification gate, so an
// unverified account with a wrong password still gets 401, not 403.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", time.Time{}, nil, ErrEmailNotVerified
	}

	token, exp, err := s.tokens.Sign(ctx, user.ID, user.IsAdmin, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return token, exp, user, nil
}

// VerifyEmail consumes the one-time verification token. The token
// check runs first: a cleared or mismatched token fails even for a
// verified account, while re-verifying with a still-matching token is
// an idempotent success.
func (s *AuthService) VerifyEmail(ctx context.Context, email, token string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.VerificationToken == nil || *user.VerificationToken != token {
		return ErrInvalidOrExpiredToken
	}
	if user.IsVerified {
		return nil
	}
	return s.users.SetVerified(ctx, user.ID)
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	token, err := nanorand.Gen(32)
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, s.now().Add(s.resetTTL)); err != nil {
		return err
	}

	if err := s.mail.SendPasswordReset(user.Email, user.Username, token); err != nil {
		s.log.Warn("failed to send password reset email",
			zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword validates email, token and expiry in a single
// conjunctive lookup, then replaces the password and clears the token.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := s.users.GetByResetToken(ctx, email, token, s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOrExpiredToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(ctx, user.ID, hash)
}

func (s *AuthService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, username, profilePic *string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := s.users.UpdateProfile(ctx, id, username, profilePic); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}
