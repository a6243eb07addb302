package handlers

import (
	"net/http"

	"gameshop-api/internal/dto"
	"gameshop-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := service.UserIDFromContext(c.Request.Context())
	return id
}

func isAdmin(c *gin.Context) bool {
	return service.IsAdminFromContext(c.Request.Context())
}

func abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationError(msg, nil))
}

func abortBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.BaseError{
		Code:    "validation_error",
		Message: "invalid request body",
		Details: err.Error(),
	})
}

func abortInternal(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewInternalError(msg))
}
