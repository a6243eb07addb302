package service_test

import (
	"context"
	"testing"

	"gameshop-api/internal/models"
	"gameshop-api/internal/repository"
	"gameshop-api/internal/service"

	"go.uber.org/zap"
)

func TestCatalogService_List_Pagination(t *testing.T) {
	// 20 items, page 2, size 9: offset 9, totalPages 3.
	var gotFilter repository.GameListFilter
	games := &MockGameRepo{
		ListFunc: func(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error) {
			gotFilter = f
			return make([]models.Game, 9), 20, nil
		},
	}

	svc := service.NewCatalogService(games, zap.NewNop())
	list, err := svc.List(context.Background(), service.ListGamesQuery{Page: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotFilter.Limit != 9 {
		t.Errorf("expected limit 9, got %d", gotFilter.Limit)
	}
	if gotFilter.Offset != 9 {
		t.Errorf("expected offset 9, got %d", gotFilter.Offset)
	}
	if list.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", list.TotalPages)
	}
	if list.Page != 2 {
		t.Errorf("expected page 2, got %d", list.Page)
	}
}

func TestCatalogService_List_PageFloor(t *testing.T) {
	games := &MockGameRepo{
		ListFunc: func(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error) {
			if f.Offset != 0 {
				t.Errorf("expected offset 0 for page below 1, got %d", f.Offset)
			}
			return nil, 0, nil
		},
	}

	svc := service.NewCatalogService(games, zap.NewNop())
	list, err := svc.List(context.Background(), service.ListGamesQuery{Page: -3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if list.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", list.Page)
	}
}

func TestCatalogService_List_PreorderUnion(t *testing.T) {
	games := &MockGameRepo{
		ListFunc: func(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error) {
			if !f.PreorderUnion {
				t.Error("expected preorder union filter")
			}
			if f.TypeExact != nil {
				t.Error("expected no exact type filter for preorder")
			}
			return nil, 0, nil
		},
	}

	svc := service.NewCatalogService(games, zap.NewNop())
	if _, err := svc.List(context.Background(), service.ListGamesQuery{Type: "preorder"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCatalogService_List_TypeAllIsNoFilter(t *testing.T) {
	games := &MockGameRepo{
		ListFunc: func(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error) {
			if f.PreorderUnion || f.UpcomingOnly || f.TypeExact != nil {
				t.Errorf("expected no type constraints for type=all, got %+v", f)
			}
			return nil, 0, nil
		},
	}

	svc := service.NewCatalogService(games, zap.NewNop())
	if _, err := svc.List(context.Background(), service.ListGamesQuery{Type: "all"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCatalogService_List_SortMapping(t *testing.T) {
	cases := []struct {
		sort    string
		orderBy string
	}{
		{"price_asc", "price ASC"},
		{"price_desc", "price DESC"},
		{"discount", "discount DESC"},
		{"reviews", "reviews_avg DESC"},
		{"newest", "created_at DESC"},
		{"oldest", "created_at ASC"},
		{"bogus", ""}, // repo falls back to newest
	}

	for _, tc := range cases {
		games := &MockGameRepo{
			ListFunc: func(ctx context.Context, f repository.GameListFilter) ([]models.Game, int64, error) {
				if f.OrderBy != tc.orderBy {
					t.Errorf("sort %q: expected order %q, got %q", tc.sort, tc.orderBy, f.OrderBy)
				}
				return nil, 0, nil
			},
		}
		svc := service.NewCatalogService(games, zap.NewNop())
		if _, err := svc.List(context.Background(), service.ListGamesQuery{Sort: tc.sort}); err != nil {
			t.Fatalf("sort %q: expected no error, got %v", tc.sort, err)
		}
	}
}

func TestCatalogService_Create_NormalizesPreorder(t *testing.T) {
	var saved *models.Game
	games := &MockGameRepo{
		CreateFunc: func(ctx context.Context, g *models.Game) error {
			saved = g
			return nil
		},
	}

	svc := service.NewCatalogService(games, zap.NewNop())
	game := &models.Game{Title: "Soon", Type: models.GameTypeGame, Preorder: true}
	if err := svc.Create(context.Background(), game); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved.Type != models.GameTypeDemo {
		t.Errorf("expected preorder item to be classified as demo, got %s", saved.Type)
	}
}

func TestCatalogService_Create_NormalizesUpcomingStock(t *testing.T) {
	var saved *models.Game
	games := &MockGameRepo{
		CreateFunc: func(ctx context.Context, g *models.Game) error {
			saved = g
			return nil
		},
	}

	stock := int32(50)
	svc := service.NewCatalogService(games, zap.NewNop())
	game := &models.Game{Title: "Later", Type: models.GameTypeGame, Upcoming: true, Stock: &stock}
	if err := svc.Create(context.Background(), game); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved.Stock == nil || *saved.Stock != 0 {
		t.Errorf("expected upcoming item stock forced to 0, got %v", saved.Stock)
	}
}
