package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

// AuthService implements registration, login and logout. Credentials are
// HS256-signed bearer tokens; a token is only honoured while it matches
// the user's active session, so logout and re-login both invalidate any
// previously issued token.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, created)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// never reveal whether the username exists
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if _, err := s.sessions.Active(ctx, userID); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, userID)
}

// issueToken mints a signed token and stores it as the user's single
// active session, replacing whatever was there before.
func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	if err := s.sessions.Save(ctx, user.ID, token, s.tokenTTL); err != nil {
		return "", err
	}
	return token, nil
}
