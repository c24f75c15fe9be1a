package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/core/ports"
)

// AdminHandler exposes the moderation operations. Routes are mounted behind
// RBAC(admin).
type AdminHandler struct {
	moderation ports.ModerationService
}

func NewAdminHandler(moderation ports.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// Dashboard handles GET /api/admin/dashboard.
//
// @Summary      Moderation dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Dashboard
// @Failure      403  {object}  errorResponse
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.moderation.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Username or email"
// @Param        role    query     string  false  "user | admin"
// @Param        banned  query     bool    false  "Filter by ban state"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  userListResponse
// @Failure      403     {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	banned, err := boolQuery(c, "banned")
	if err != nil {
		return err
	}

	result, err := h.moderation.ListUsers(c.Request().Context(), ports.AdminUserFilter{
		Search:      c.QueryParam("search"),
		Role:        c.QueryParam("role"),
		Banned:      banned,
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: result.Users, Pagination: result.Pagination})
}

// SetBan handles PUT /api/admin/users/:id/ban.
//
// @Summary      Ban or unban a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "User ID"
// @Param        body  body      banRequest  true  "Ban state"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id}/ban [put]
func (h *AdminHandler) SetBan(c echo.Context) error {
	var req banRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.moderation.SetBan(c.Request().Context(), c.Param("id"), req.IsBanned, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// SetRole handles PUT /api/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User ID"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) SetRole(c echo.Context) error {
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.moderation.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// DeleteUser handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user
// @Description  Soft-deletes the user's content, purges their notifications and removes the account.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  deleteUserResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	result, err := h.moderation.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteUserResponse{Message: "user deleted", Deleted: result})
}

// ListQuestions handles GET /api/admin/questions.
//
// @Summary      List questions for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Full-text search"
// @Param        status  query     string  false  "all | active | deleted"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  questionListResponse
// @Failure      400     {object}  errorResponse
// @Router       /admin/questions [get]
func (h *AdminHandler) ListQuestions(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.moderation.ListQuestions(c.Request().Context(), ports.AdminQuestionFilter{
		Search:      c.QueryParam("search"),
		Status:      c.QueryParam("status"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionListResponse{Questions: result.Questions, Pagination: result.Pagination})
}

// RestoreQuestion handles PUT /api/admin/questions/:id/restore.
//
// @Summary      Restore a deleted question
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  questionResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/questions/{id}/restore [put]
func (h *AdminHandler) RestoreQuestion(c echo.Context) error {
	q, err := h.moderation.RestoreQuestion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionResponse{Question: q})
}

// Broadcast handles POST /api/admin/notifications/broadcast.
//
// @Summary      Broadcast a notice to all active users
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      broadcastRequest  true  "Notice"
// @Success      200   {object}  broadcastResponse
// @Failure      400   {object}  errorResponse
// @Router       /admin/notifications/broadcast [post]
func (h *AdminHandler) Broadcast(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req broadcastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.moderation.Broadcast(c.Request().Context(), actor, req.Title, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, broadcastResponse{Message: "broadcast sent", Recipients: n})
}

// Report handles GET /api/admin/reports.
//
// @Summary      On-demand report
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        type  query     string  false  "general | user-activity | content-stats"
// @Success      200   {object}  ports.Report
// @Failure      400   {object}  errorResponse
// @Router       /admin/reports [get]
func (h *AdminHandler) Report(c echo.Context) error {
	report, err := h.moderation.Report(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
