package service

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxUserIDKey  ctxKey = "auth.user_id"
	ctxIsAdminKey ctxKey = "auth.is_admin"
)

func WithUser(ctx context.Context, id uuid.UUID, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, ctxUserIDKey, id)
	return context.WithValue(ctx, ctxIsAdminKey, isAdmin)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(ctxUserIDKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, _ := v.(uuid.UUID)
	return id, id != uuid.Nil
}

func IsAdminFromContext(ctx context.Context) bool {
	v := ctx.Value(ctxIsAdminKey)
	if v == nil {
		return false
	}
	admin, _ := v.(bool)
	return admin
}
