package dto

import (
	"time"

	"gameshop-api/internal/models"

	"github.com/shopspring/decimal"
)

type GameResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Genre        string          `json:"genre"`
	Price        decimal.Decimal `json:"price"`
	Discount     float64         `json:"discount"`
	Stock        *int32          `json:"stock"`
	Platform     string          `json:"platform"`
	System       string          `json:"system"`
	Type         string          `json:"type"`
	Preorder     bool            `json:"preorder"`
	Upcoming     bool            `json:"upcoming"`
	Description  string          `json:"description"`
	TrailerURL   string          `json:"trailerUrl"`
	DLCLink      string          `json:"dlcLink"`
	BaseGameLink string          `json:"baseGameLink"`
	ImageURL     string          `json:"imageUrl"`
	ReviewsAvg   float64         `json:"reviewsAvg"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func GameFromModel(g *models.Game) GameResponse {
	return GameResponse{
		ID:           g.ID.String(),
		Title:        g.Title,
		Genre:        g.Genre,
		Price:        g.Price,
		Discount:     g.Discount,
		Stock:        g.Stock,
		Platform:     g.Platform,
		System:       g.System,
		Type:         string(g.Type),
		Preorder:     g.Preorder,
		Upcoming:     g.Upcoming,
		Description:  g.Description,
		TrailerURL:   g.TrailerURL,
		DLCLink:      g.DLCLink,
		BaseGameLink: g.BaseGameLink,
		ImageURL:     g.ImageURL,
		ReviewsAvg:   g.ReviewsAvg,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type GameListResponse struct {
	Games      []GameResponse `json:"games"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}
