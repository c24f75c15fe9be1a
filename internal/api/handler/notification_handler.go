package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/core/ports"
)

// NotificationHandler serves the authenticated user's inbox.
type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications.
//
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int   false  "Page number"
// @Param        limit       query     int   false  "Page size (max 100)"
// @Param        unreadOnly  query     bool  false  "Only unread notifications"
// @Success      200         {object}  notificationListResponse
// @Failure      401         {object}  errorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	unreadOnly, err := boolQuery(c, "unreadOnly")
	if err != nil {
		return err
	}

	result, err := h.notifications.List(c.Request().Context(), actor.ID, page, unreadOnly != nil && *unreadOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{
		Notifications: result.Notifications,
		Pagination:    result.Pagination,
		UnreadCount:   result.UnreadCount,
	})
}

// UnreadCount handles GET /api/notifications/unread-count.
//
// @Summary      Count my unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadCountResponse
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	n, err := h.notifications.UnreadCount(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{UnreadCount: n})
}

// MarkRead handles PUT /api/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  notificationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	n, err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationResponse{Notification: n})
}

// MarkAllRead handles PUT /api/notifications/read-all.
//
// @Summary      Mark all my notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Router       /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	n, err := h.notifications.MarkAllRead(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Message: "all notifications marked as read", Count: n})
}

// MarkMany handles PUT /api/notifications/read-multiple.
//
// @Summary      Mark several notifications as read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      markManyRequest  true  "Notification IDs"
// @Success      200   {object}  countResponse
// @Failure      400   {object}  errorResponse
// @Router       /notifications/read-multiple [put]
func (h *NotificationHandler) MarkMany(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req markManyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.notifications.MarkMany(c.Request().Context(), req.NotificationIDs, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Message: "notifications marked as read", Count: n})
}

// Delete handles DELETE /api/notifications/:id.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.Request().Context(), c.Param("id"), actor.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification deleted"})
}

// ClearAll handles DELETE /api/notifications/clear-all.
//
// @Summary      Delete all my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Router       /notifications/clear-all [delete]
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	n, err := h.notifications.ClearAll(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Message: "all notifications cleared", Count: n})
}
