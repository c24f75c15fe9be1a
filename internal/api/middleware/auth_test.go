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
	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/core/domain"
)

const testSecret = "secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func aliceToken(t *testing.T) string {
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":      "u1",
		"username": "alice",
		"role":     "user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
}

func mustNotReach(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func run(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

// ---------------------------------------------------------------------------

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken(t))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testSecret)(func(c echo.Context) error {
		called = true
		actor, ok := c.Get(ActorKey).(domain.Actor)
		if !ok {
			t.Fatalf("actor not set")
		}
		if actor.ID != "u1" || actor.Username != "alice" || actor.Role != domain.RoleUser {
			t.Fatalf("unexpected actor: %+v", actor)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+aliceToken(t), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	run(e, c, Auth(testSecret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}))
	if !called {
		t.Fatalf("expected query token to authenticate, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	run(e, c, Auth(testSecret)(mustNotReach(t)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	run(e, c, Auth(testSecret)(mustNotReach(t)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	run(e, c, Auth(testSecret)(mustNotReach(t)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestParseActor(t *testing.T) {
	if _, err := ParseActor(testSecret, signToken(t, "other-secret", jwt.MapClaims{"sub": "u1"})); err == nil {
		t.Error("expected wrong signature to fail")
	}
	expired := signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()})
	if _, err := ParseActor(testSecret, expired); err == nil {
		t.Error("expected expired token to fail")
	}
	if _, err := ParseActor(testSecret, signToken(t, testSecret, jwt.MapClaims{"username": "nobody"})); err == nil {
		t.Error("expected token without subject to fail")
	}
}

func TestOptionalAuth_GuestPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := OptionalAuth(testSecret)(func(c echo.Context) error {
		called = true
		if c.Get(ActorKey) != nil {
			t.Fatalf("guest should have no actor")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

// ---------------------------------------------------------------------------

type stubBans struct {
	banned map[string]bool
	err    error
}

func (s stubBans) IsBanned(_ context.Context, userID string) (bool, error) {
	return s.banned[userID], s.err
}

type stubDirectory map[string]*domain.User

func (d stubDirectory) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := d[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func TestActiveUser_RejectsBanned(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.Set(ActorKey, domain.Actor{ID: "u1", Role: domain.RoleUser})

	err := ActiveUser(stubBans{banned: map[string]bool{"u1": true}}, stubDirectory{}, zerolog.Nop())(mustNotReach(t))(c)
	if !errors.Is(err, domain.ErrBanned) {
		t.Fatalf("expected ErrBanned, got %v", err)
	}
}

func TestActiveUser_CacheFailureFallsBackToDirectory(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.Set(ActorKey, domain.Actor{ID: "u1", Role: domain.RoleUser})

	dir := stubDirectory{"u1": {ID: "u1", Role: domain.RoleUser, IsBanned: true}}
	err := ActiveUser(stubBans{err: errors.New("redis down")}, dir, zerolog.Nop())(mustNotReach(t))(c)
	if !errors.Is(err, domain.ErrBanned) {
		t.Fatalf("expected ErrBanned from directory, got %v", err)
	}
}

func TestActiveUser_CacheFailureActiveUserPasses(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.Set(ActorKey, domain.Actor{ID: "u1", Role: domain.RoleUser})

	called := false
	dir := stubDirectory{"u1": {ID: "u1", Role: domain.RoleUser}}
	err := ActiveUser(stubBans{err: errors.New("redis down")}, dir, zerolog.Nop())(func(echo.Context) error {
		called = true
		return nil
	})(c)
	if err != nil || !called {
		t.Fatalf("expected pass-through, err=%v called=%v", err, called)
	}
}

func TestActiveUser_CacheFailureDeletedAccount(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.Set(ActorKey, domain.Actor{ID: "gone", Role: domain.RoleUser})

	err := ActiveUser(stubBans{err: errors.New("redis down")}, stubDirectory{}, zerolog.Nop())(mustNotReach(t))(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
