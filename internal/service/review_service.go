package service

import (
	"context"
	"errors"
	"time"

	"gameshop-api/internal/models"
	"gameshop-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviews repository.ReviewRepo
	games   repository.GameRepo
	now     func() time.Time
	log     *zap.Logger
}

func NewReviewService(reviews repository.ReviewRepo, games repository.GameRepo, log *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, games: games, now: time.Now, log: log}
}

func (s *ReviewService) ListByGame(ctx context.Context, gameID uuid.UUID) ([]repository.ReviewWithAuthor, error) {
	return s.reviews.ListByGame(ctx, gameID)
}

// Create adds a review; one review per user per game, enforced by the
// unique index.
func (s *ReviewService) Create(ctx context.Context, userID, gameID uuid.UUID, rating int, comment string) (*models.Review, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}

	rv := &models.Review{
		GameID:  gameID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return rv, nil
}

// Update is owner-only; admins can delete reviews but not edit them.
func (s *ReviewService) Update(ctx context.Context, userID, id uuid.UUID, rating int, comment string) (*models.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, ErrNotFound
	}
	if rv.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.reviews.UpdateContent(ctx, id, rating, comment, s.now()); err != nil {
		return nil, err
	}
	rv.Rating = rating
	rv.Comment = comment
	rv.UpdatedAt = s.now()
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv == nil {
		return ErrNotFound
	}
	if !isAdmin && rv.UserID != userID {
		return ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}
