package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// SessionStore keeps the single active bearer token per user.
// Key format: session:<user_id> → token, expiring with the token itself.
// Writing a new token overwrites the old key, which is what enforces the
// one-session-per-user policy.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save records token as the user's active session.
func (s *SessionStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Active returns the user's current token, or domain.ErrNoActiveSession.
func (s *SessionStore) Active(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoActiveSession
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return token, nil
}

// Revoke deletes the user's active session, invalidating the token.
func (s *SessionStore) Revoke(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(userID string) string {
	return "session:" + userID
}
