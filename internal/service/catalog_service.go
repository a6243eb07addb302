package service

import (
	"context"
	"time"

	"gameshop-api/internal/models"
	"gameshop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PageSize is the fixed catalog page size.
const PageSize = 9

// orderByFor maps the public sort keys onto ORDER BY clauses. Unknown
// keys fall back to newest-first.
var orderByFor = map[string]string{
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"discount":   "discount DESC",
	"reviews":    "reviews_avg DESC",
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
}

type CatalogService struct {
	games repository.GameRepo
	now   func() time.Time
	log   *zap.Logger
}

func NewCatalogService(games repository.GameRepo, log *zap.Logger) *CatalogService {
	return &CatalogService{games: games, now: time.Now, log: log}
}

type ListGamesQuery struct {
	Genre    string
	Platform string
	System   string
	Type     string
	Sort     string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	InStock  bool
	Page     int
}

type GameList struct {
	Items      []models.Game
	Total      int64
	Page       int
	TotalPages int
}

func (s *CatalogService) List(ctx context.Context, q ListGamesQuery) (*GameList, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	f := repository.GameListFilter{
		Genre:    q.Genre,
		Platform: q.Platform,
		System:   q.System,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		InStock:  q.InStock,
		OrderBy:  orderByFor[q.Sort],
		Limit:    PageSize,
		Offset:   (page - 1) * PageSize,
	}

	switch q.Type {
	case "", "all":
		// без фильтра по типу
	case "preorder":
		f.PreorderUnion = true
	case "upcoming":
		f.UpcomingOnly = true
	default:
		t := models.GameType(q.Type)
		f.TypeExact = &t
	}

	items, total, err := s.games.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &GameList{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

func (s *CatalogService) Create(ctx context.Context, g *models.Game) error {
	models.NormalizeGame(g)
	return s.games.Create(ctx, g)
}

func (s *CatalogService) Update(ctx context.Context, g *models.Game) error {
	existing, err := s.games.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	g.CreatedAt = existing.CreatedAt
	models.NormalizeGame(g)
	return s.games.Update(ctx, g)
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.games.Delete(ctx, id)
}
