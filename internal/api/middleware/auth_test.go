package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

type stubSessionStore struct {
	active map[string]string
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

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"user_id":  "user-1",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	sessions := &stubSessionStore{active: map[string]string{"user-1": signed}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", sessions)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("username") != "alice" {
			t.Fatalf("username not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubSessionStore{active: map[string]string{}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubSessionStore{active: map[string]string{}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubSessionStore{active: map[string]string{"user-1": signed}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubSessionStore{active: map[string]string{"user-1": signed}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Signature is fine but no session is stored: logout already happened.
	mw := Auth("secret", &stubSessionStore{active: map[string]string{}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_SupersededToken(t *testing.T) {
	e := echo.New()
	old := signToken(t, "secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Add(-time.Minute).Unix(),
	})
	fresh := signToken(t, "secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(2 * time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+old)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Re-login replaced the active session; the older token must stop working.
	mw := Auth("secret", &stubSessionStore{active: map[string]string{"user-1": fresh}})
	err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
