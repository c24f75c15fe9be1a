package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// RBAC enforces role-based access control. The token claim is a fast
// pre-check; the role stored in the directory decides, so demotions and bans
// apply to tokens issued before them.
func RBAC(users UserLookup, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(ActorKey).(domain.Actor)
			if _, ok := allowed[actor.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			u, err := users.FindByID(c.Request().Context(), actor.ID)
			if errors.Is(err, domain.ErrNotFound) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			if err != nil {
				return err
			}
			if _, ok := allowed[u.Role]; !ok || u.IsBanned {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			actor.Role = u.Role
			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
