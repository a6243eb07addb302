package repository

import (
	"context"
	"errors"
	"time"

	"gameshop-api/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	// CreateIfAbsent inserts the order only when its identifier is not
	// taken, in a single conditional statement. Reports whether the row
	// was created; false means a duplicate delivery.
	CreateIfAbsent(ctx context.Context, o *models.Order) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// MarkFailedIfNotPaid overwrites status/amount/titles unless the
	// order is already paid; paid is sticky.
	MarkFailedIfNotPaid(ctx context.Context, id string, total decimal.Decimal, titles []string, at time.Time) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) CreateIfAbsent(ctx context.Context, o *models.Order) (bool, error) {
	items := o.Items
	o.Items = nil
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(o)
	o.Items = items
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	if len(items) > 0 {
		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return true, err
		}
	}
	return true, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Items").
		Find(&list).Error
	return list, err
}

func (r *orderRepo) MarkFailedIfNotPaid(ctx context.Context, id string, total decimal.Decimal, titles []string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, models.OrderStatusPaid).
		Updates(map[string]any{
			"status":      models.OrderStatusFailed,
			"total":       total,
			"game_titles": pq.StringArray(titles),
			"updated_at":  at,
		})
	return tx.RowsAffected > 0, tx.Error
}
