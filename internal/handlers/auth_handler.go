package handlers

import (
	"errors"
	"net/http"

	"gameshop-api/internal/dto"
	"gameshop-api/internal/service"
	"gameshop-api/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth    *service.AuthService
	uploads *storage.DiskStore
	log     *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, uploads *storage.DiskStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, uploads: uploads, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, dto.NewConflictError("email or username already in use"))
			return
		}
		abortInternal(c, h.log, "registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "registration complete, check your email for the verification link",
		UserID:  user.ID.String(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	token, _, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid credentials"))
		case errors.Is(err, service.ErrEmailNotVerified):
			c.JSON(http.StatusForbidden, dto.NewForbiddenError("verify your email first"))
		default:
			abortInternal(c, h.log, "login failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.UserFromModel(user)})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")
	if email == "" || token == "" {
		abortBadRequest(c, "email and token are required")
		return
	}

	if err := h.auth.VerifyEmail(c.Request.Context(), email, token); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			abortBadRequest(c, "user not found")
		case errors.Is(err, service.ErrInvalidOrExpiredToken):
			abortBadRequest(c, "invalid or expired token")
		default:
			abortInternal(c, h.log, "email verification failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "email verified, you can now log in"})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			abortBadRequest(c, "user not found")
			return
		}
		abortInternal(c, h.log, "password reset request failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset email sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBindError(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredToken) {
			abortBadRequest(c, "invalid or expired token")
			return
		}
		abortInternal(c, h.log, "password reset failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.auth.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("user not found"))
			return
		}
		abortInternal(c, h.log, "profile lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// UpdateProfile accepts multipart form data: an optional username
// field and an optional profilePic image.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var username *string
	if v, ok := c.GetPostForm("username"); ok && v != "" {
		username = &v
	}

	var profilePic *string
	var oldPic string
	if file, err := c.FormFile("profilePic"); err == nil {
		if existing, err := h.auth.GetProfile(c.Request.Context(), currentUserID(c)); err == nil && existing.ProfilePic != nil {
			oldPic = *existing.ProfilePic
		}
		url, err := h.uploads.Save(file)
		if err != nil {
			abortInternal(c, h.log, "profile picture upload failed", err)
			return
		}
		profilePic = &url
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), currentUserID(c), username, profilePic)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewNotFoundError("user not found"))
		case errors.Is(err, service.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.NewConflictError("username already in use"))
		default:
			abortInternal(c, h.log, "profile update failed", err)
		}
		return
	}

	if profilePic != nil && oldPic != "" && oldPic != *profilePic {
		if err := h.uploads.Remove(oldPic); err != nil {
			h.log.Warn("failed to remove replaced profile picture", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"user":    dto.UserFromModel(user),
	})
}
