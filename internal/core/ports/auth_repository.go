package ports

import (
	"context"
	"time"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionStore tracks the single active bearer credential per user.
// Replacing the stored token invalidates any previously issued one.
type SessionStore interface {
	Save(ctx context.Context, userID, token string, ttl time.Duration) error
	Active(ctx context.Context, userID string) (string, error)
	Revoke(ctx context.Context, userID string) error
}
