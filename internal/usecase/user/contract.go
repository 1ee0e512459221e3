package user

import (
	"context"

	"github.com/campushare/notehub/internal/domain"
)

// Repository persists accounts.
type Repository interface {
	Create(ctx context.Context, username, email, hashedPassword string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// SessionStore issues and revokes opaque session tokens.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, token string) error
}
