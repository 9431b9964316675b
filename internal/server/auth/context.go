package auth

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type userCtxKey struct{}

// ContextWithUser stores the authenticated identity in ctx.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the identity stored by ContextWithUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*models.User)
	return u, ok && u != nil
}
