package ports

import (
	"context"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// AuthResult carries the outcome of a successful register or login call.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration, login and logout. The session
// policy is one active token per user, re-issued on every login.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error
}
