package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byUsername map[string]*domain.User
	nextID     int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byUsername: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byUsername[user.Username] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubSessionStore struct {
	active map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{active: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, userID, token string, _ time.Duration) error {
	s.active[userID] = token
	return nil
}

func (s *stubSessionStore) Active(_ context.Context, userID string) (string, error) {
	token, ok := s.active[userID]
	if !ok {
		return "", domain.ErrNoActiveSession
	}
	return token, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, userID string) error {
	delete(s.active, userID)
	return nil
}

// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, "secret", time.Hour)

	result, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User.Username != "alice" {
		t.Fatalf("unexpected username %q", result.User.Username)
	}

	stored := users.byUsername["alice"]
	if stored.PasswordHash == "pw1" {
		t.Fatalf("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")) != nil {
		t.Fatalf("stored hash does not match password")
	}
	if sessions.active[result.User.ID] != result.Token {
		t.Fatalf("token not recorded as active session")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "pw2")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), "secret", time.Hour)

	for _, tc := range [][2]string{{"", "pw"}, {"alice", ""}, {"", ""}} {
		if _, err := svc.Register(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("register(%q,%q): expected ErrInvalidCredentials, got %v", tc[0], tc[1], err)
		}
	}
}

func TestAuthService_Login_ReissuesToken(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, "secret", time.Hour)

	reg, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// sign at a different second so the exp claim (and token) changes
	time.Sleep(1100 * time.Millisecond)

	login, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == reg.Token {
		t.Fatalf("login must re-issue the token")
	}
	if sessions.active[reg.User.ID] != login.Token {
		t.Fatalf("active session must be the newest token")
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	// unknown usernames are indistinguishable from wrong passwords
	if _, err := svc.Login(context.Background(), "mallory", "pw1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	sessions := newStubSessionStore()
	svc := NewAuthService(newStubUserRepo(), sessions, "secret", time.Hour)

	reg, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(context.Background(), reg.User.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.active[reg.User.ID]; ok {
		t.Fatalf("session not revoked")
	}

	if err := svc.Logout(context.Background(), reg.User.ID); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("second logout: expected ErrNoActiveSession, got %v", err)
	}
}
