package repository

import (
	"context"
	"errors"

	"gameshop-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GameListFilter is the store-level translation of the catalog query:
// the service resolves the type/sort special cases, the repo only builds
// the corresponding WHERE/ORDER clauses.
type GameListFilter struct {
	Genre    string // case-insensitive substring
	Platform string // exact
	System   string // exact

	TypeExact     *models.GameType
	PreorderUnion bool // type = preorder OR preorder flag set
	UpcomingOnly  bool

	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	InStock  bool

	OrderBy string // resolved from the fixed sort enumeration
	Limit   int
	Offset  int
}

type GameRepo interface {
	Create(ctx context.Context, g *models.Game) error
	Update(ctx context.Context, g *models.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error)
	List(ctx context.Context, f GameListFilter) ([]models.Game, int64, error)

	// DecrementStock subtracts qty atomically with a floor at zero.
	// Rows with the NULL stock sentinel are left untouched; returns
	// whether a row was updated.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

type gameRepo struct{ db *gorm.DB }

func NewGameRepo(db *gorm.DB) GameRepo { return &gameRepo{db: db} }

func (r *gameRepo) Create(ctx context.Context, g *models.Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gameRepo) Update(ctx context.Context, g *models.Game) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gameRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Game{}, "id = ?", id).Error
}

func (r *gameRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	var games []models.Game
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&games).Error
	return games, err
}

func (r *gameRepo) List(ctx context.Context, f GameListFilter) ([]models.Game, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Game{})

	if f.Genre != "" {
		q = q.Where("genre ILIKE ?", "%"+f.Genre+"%")
	}
	if f.Platform != "" {
		q = q.Where("platform = ?", f.Platform)
	}
	if f.System != "" {
		q = q.Where("system = ?", f.System)
	}
	switch {
	case f.PreorderUnion:
		q = q.Where("type = ? OR preorder = true", models.GameTypePreorder)
	case f.UpcomingOnly:
		q = q.Where("upcoming = true")
	case f.TypeExact != nil:
		q = q.Where("type = ?", *f.TypeExact)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.InStock {
		q = q.Where("stock > 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	var games []models.Game
	err := q.Order(orderBy).Limit(f.Limit).Offset(f.Offset).Find(&games).Error
	return games, total, err
}

func (r *gameRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE games
SET stock = GREATEST(stock - @q, 0),
    updated_at = now()
WHERE id = @id
  AND stock IS NOT NULL
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
