package repository

import (
	"context"
	"errors"
	"time"

	"gameshop-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewWithAuthor is the listing shape: review fields plus the author
// username, resolved in one join instead of per-row lookups.
type ReviewWithAuthor struct {
	ID        uuid.UUID `json:"id"`
	GameID    uuid.UUID `json:"gameId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewRepo interface {
	Create(ctx context.Context, rv *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]ReviewWithAuthor, error)
	UpdateContent(ctx context.Context, id uuid.UUID, rating int, comment string, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo { return &reviewRepo{db: db} }

func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var rv models.Review
	err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepo) ListByGame(ctx context.Context, gameID uuid.UUID) ([]ReviewWithAuthor, error) {
	var list []ReviewWithAuthor
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.game_id, reviews.user_id, reviews.rating, reviews.comment, reviews.created_at, reviews.updated_at, users.username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.game_id = ?", gameID).
		Order("reviews.created_at DESC").
		Scan(&list).Error
	return list, err
}

func (r *reviewRepo) UpdateContent(ctx context.Context, id uuid.UUID, rating int, comment string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(map[string]any{
		"rating":     rating,
		"comment":    comment,
		"updated_at": at,
	}).Error
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}
