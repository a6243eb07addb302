package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gameshop-api/internal/dto"
	"gameshop-api/internal/models"
	"gameshop-api/internal/service"
	"gameshop-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type GameHandler struct {
	catalog *service.CatalogService
	uploads *storage.DiskStore
	log     *zap.Logger
}

func NewGameHandler(catalog *service.CatalogService, uploads *storage.DiskStore, log *zap.Logger) *GameHandler {
	return &GameHandler{catalog: catalog, uploads: uploads, log: log}
}

func (h *GameHandler) List(c *gin.Context) {
	q := service.ListGamesQuery{
		Genre:    c.Query("genre"),
		Platform: c.Query("platform"),
		System:   c.Query("system"),
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
		InStock:  c.Query("inStock") == "true",
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			abortBadRequest(c, "invalid page")
			return
		}
		q.Page = page
	}
	if v := c.Query("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			abortBadRequest(c, "invalid minPrice")
			return
		}
		q.PriceMin = &d
	}
	if v := c.Query("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			abortBadRequest(c, "invalid maxPrice")
			return
		}
		q.PriceMax = &d
	}

	list, err := h.catalog.List(c.Request.Context(), q)
	if err != nil {
		abortInternal(c, h.log, "catalog listing failed", err)
		return
	}

	games := make([]dto.GameResponse, 0, len(list.Items))
	for i := range list.Items {
		games = append(games, dto.GameFromModel(&list.Items[i]))
	}
	c.JSON(http.StatusOK, dto.GameListResponse{
		Games:      games,
		Total:      list.Total,
		Page:       list.Page,
		TotalPages: list.TotalPages,
	})
}

func (h *GameHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, "invalid game id")
		return
	}

	game, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("game not found"))
			return
		}
		abortInternal(c, h.log, "game lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.GameFromModel(game))
}

// Create accepts multipart form data so the catalog image can be
// uploaded together with the fields.
func (h *GameHandler) Create(c *gin.Context) {
	game := &models.Game{Type: models.GameTypeGame}
	if ok := h.applyForm(c, game); !ok {
		return
	}
	if game.Title == "" {
		abortBadRequest(c, "title is required")
		return
	}

	if err := h.catalog.Create(c.Request.Context(), game); err != nil {
		abortInternal(c, h.log, "game creation failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.GameFromModel(game))
}

func (h *GameHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, "invalid game id")
		return
	}

	game, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("game not found"))
			return
		}
		abortInternal(c, h.log, "game lookup failed", err)
		return
	}

	oldImage := game.ImageURL
	if ok := h.applyForm(c, game); !ok {
		return
	}

	if err := h.catalog.Update(c.Request.Context(), game); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("game not found"))
			return
		}
		abortInternal(c, h.log, "game update failed", err)
		return
	}

	if oldImage != "" && oldImage != game.ImageURL {
		if err := h.uploads.Remove(oldImage); err != nil {
			h.log.Warn("failed to remove replaced game image", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, dto.GameFromModel(game))
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, "invalid game id")
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("game not found"))
			return
		}
		abortInternal(c, h.log, "game deletion failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// applyForm overlays multipart form fields onto the game. Only fields
// present in the form are touched, so PUT keeps untouched values.
// Reports false after writing an error response.
func (h *GameHandler) applyForm(c *gin.Context, game *models.Game) bool {
	if v, ok := c.GetPostForm("title"); ok {
		game.Title = v
	}
	if v, ok := c.GetPostForm("genre"); ok {
		game.Genre = v
	}
	if v, ok := c.GetPostForm("price"); ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			abortBadRequest(c, "invalid price")
			return false
		}
		game.Price = d
	}
	if v, ok := c.GetPostForm("discount"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 100 {
			abortBadRequest(c, "invalid discount")
			return false
		}
		game.Discount = f
	}
	if v, ok := c.GetPostForm("stock"); ok {
		if v == "" {
			game.Stock = nil
		} else {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil || n < 0 {
				abortBadRequest(c, "invalid stock")
				return false
			}
			stock := int32(n)
			game.Stock = &stock
		}
	}
	if v, ok := c.GetPostForm("platform"); ok {
		game.Platform = v
	}
	if v, ok := c.GetPostForm("system"); ok {
		game.System = v
	}
	if v, ok := c.GetPostForm("type"); ok && v != "" {
		game.Type = models.GameType(v)
	}
	if v, ok := c.GetPostForm("preorder"); ok {
		game.Preorder = v == "true"
	}
	if v, ok := c.GetPostForm("upcoming"); ok {
		game.Upcoming = v == "true"
	}
	if v, ok := c.GetPostForm("description"); ok {
		game.Description = v
	}
	if v, ok := c.GetPostForm("trailerUrl"); ok {
		game.TrailerURL = v
	}
	if v, ok := c.GetPostForm("dlcLink"); ok {
		game.DLCLink = v
	}
	if v, ok := c.GetPostForm("baseGameLink"); ok {
		game.BaseGameLink = v
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := h.uploads.Save(file)
		if err != nil {
			abortInternal(c, h.log, "image upload failed", err)
			return false
		}
		game.ImageURL = url
	}
	return true
}
