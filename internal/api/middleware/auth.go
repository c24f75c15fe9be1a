package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// ActorKey is the echo.Context key holding the authenticated domain.Actor.
const ActorKey = "actor"

var (
	errMissingToken = errors.New("missing token")
	errInvalidToken = errors.New("invalid token")
)

// ParseActor validates an HS256 token and returns the identity it carries.
func ParseActor(jwtSecret, token string) (domain.Actor, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Actor{}, errInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.Actor{}, errInvalidToken
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Actor{ID: sub, Username: username, Role: role}, nil
}

// bearerToken reads the token from the Authorization header, falling back to
// the "token" query parameter used by browser WebSocket clients.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		if q := c.QueryParam("token"); q != "" {
			return q, nil
		}
		return "", errMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", errInvalidToken
	}
	return parts[1], nil
}

// Auth requires a valid JWT and injects the actor into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if errors.Is(err, errMissingToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := ParseActor(jwtSecret, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// OptionalAuth injects the actor when a valid token is present and otherwise
// lets the request through as a guest.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, err := bearerToken(c); err == nil {
				if actor, err := ParseActor(jwtSecret, token); err == nil {
					c.Set(ActorKey, actor)
				}
			}
			return next(c)
		}
	}
}

// BanChecker reports whether a user is currently banned.
type BanChecker interface {
	IsBanned(ctx context.Context, userID string) (bool, error)
}

// UserLookup reads the user directory, the source of truth for ban state
// and role.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// ActiveUser rejects banned actors. It must run after Auth. The ban cache is
// consulted first; when it cannot answer, the user directory decides.
func ActiveUser(bans BanChecker, users UserLookup, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ActorKey).(domain.Actor)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			ctx := c.Request().Context()

			banned, err := bans.IsBanned(ctx, actor.ID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", actor.ID).Msg("ban cache lookup failed, reading directory")
				u, lerr := users.FindByID(ctx, actor.ID)
				if errors.Is(lerr, domain.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
				}
				if lerr != nil {
					return lerr
				}
				banned = u.IsBanned
			}
			if banned {
				return domain.ErrBanned
			}
			return next(c)
		}
	}
}
