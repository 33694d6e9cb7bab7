package auth

import (
	"context"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

type userKey struct{}

// WithUser attaches the authenticated user to ctx.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*domain.User)
	return user, ok && user != nil
}
