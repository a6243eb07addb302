package handlers

import (
	"errors"
	"net/http"

	"gameshop-api/internal/dto"
	"gameshop-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(reviews *service.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

func (h *ReviewHandler) ListByGame(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		abortBadRequest(c, "invalid game id")
		return
	}

	list, err := h.reviews.ListByGame(c.Request.Context(), gameID)
	if err != nil {
		abortInternal(c, h.log, "review listing failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		abortBadRequest(c, "invalid game id")
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	rv, err := h.reviews.Create(c.Request.Context(), currentUserID(c), gameID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("game not found"))
		case errors.Is(err, service.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.NewConflictError("you have already reviewed this game"))
		default:
			abortInternal(c, h.log, "review creation failed", err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ReviewFromModel(rv))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, "invalid review id")
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	rv, err := h.reviews.Update(c.Request.Context(), currentUserID(c), id, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("review not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.NewForbiddenError("not allowed to edit this review"))
		default:
			abortInternal(c, h.log, "review update failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ReviewFromModel(rv))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, "invalid review id")
		return
	}

	err = h.reviews.Delete(c.Request.Context(), currentUserID(c), isAdmin(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("review not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.NewForbiddenError("not allowed to delete this review"))
		default:
			abortInternal(c, h.log, "review deletion failed", err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
