package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/core/ports"
)

// UserHandler serves public profiles, search and leaderboards.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile handles GET /api/users/:id.
//
// @Summary      Public profile
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.users.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Questions handles GET /api/users/:id/questions.
//
// @Summary      Questions asked by a user
// @Tags         users
// @Produce      json
// @Param        id     path      string  true   "User ID"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  questionListResponse
// @Router       /users/{id}/questions [get]
func (h *UserHandler) Questions(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.users.Questions(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionListResponse{Questions: result.Questions, Pagination: result.Pagination})
}

// Answers handles GET /api/users/:id/answers.
//
// @Summary      Answers written by a user
// @Tags         users
// @Produce      json
// @Param        id     path      string  true   "User ID"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  answerListResponse
// @Router       /users/{id}/answers [get]
func (h *UserHandler) Answers(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.users.Answers(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answerListResponse{Answers: result.Answers, Pagination: result.Pagination})
}

// Activity handles GET /api/users/:id/activity.
//
// @Summary      Activity overview of a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  activityResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/activity [get]
func (h *UserHandler) Activity(c echo.Context) error {
	activity, err := h.users.Activity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityResponse{
		Stats:           activity.Stats,
		RecentQuestions: activity.RecentQuestions,
		RecentAnswers:   activity.RecentAnswers,
	})
}

// Search handles GET /api/users/search.
//
// @Summary      Search users by username or email
// @Tags         users
// @Produce      json
// @Param        q      query     string  true   "At least 2 characters"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  userListResponse
// @Failure      400    {object}  errorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.users.Search(c.Request().Context(), c.QueryParam("q"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: result.Users, Pagination: result.Pagination})
}

// Leaderboard handles GET /api/users/leaderboard.
//
// @Summary      Top users
// @Tags         users
// @Produce      json
// @Param        type   query     string  false  "reputation | questions | answers | accepted"
// @Param        limit  query     int     false  "Number of users"
// @Success      200    {object}  leaderboardResponse
// @Failure      400    {object}  errorResponse
// @Router       /users/leaderboard [get]
func (h *UserHandler) Leaderboard(c echo.Context) error {
	kind := ports.LeaderboardType(c.QueryParam("type"))
	if kind == "" {
		kind = ports.LeaderboardReputation
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.users.Leaderboard(c.Request().Context(), kind, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leaderboardResponse{Type: string(kind), Users: users})
}
