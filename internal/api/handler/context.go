package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/api/middleware"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// ctxActor extracts the actor injected by the Auth middleware. A missing
// actor means the route was wired without Auth and is rejected with 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get(middleware.ActorKey).(domain.Actor)
	if !ok || actor.ID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// viewerID returns the optional viewer on public routes, or "" for guests.
func viewerID(c echo.Context) string {
	actor, _ := c.Get(middleware.ActorKey).(domain.Actor)
	return actor.ID
}

// pageQuery reads the page and limit query parameters. Normalisation to
// defaults happens in the services.
func pageQuery(c echo.Context) (ports.PageRequest, error) {
	var req ports.PageRequest
	err := echo.QueryParamsBinder(c).
		Int("page", &req.Page).
		Int("limit", &req.Limit).
		BindError()
	if err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return req, nil
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, name+" must be true or false")
	}
	return &v, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
