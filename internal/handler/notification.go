package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/service"
)

// NotificationHandler exposes the per-user notification endpoints.  Every
// operation is implicitly scoped to the authenticated user.
type NotificationHandler struct {
	Notifications *service.NotificationService
}

func NewNotificationHandler(s *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: s}
}

// List returns the caller's notifications, ?unread=true for unread only.
func (h *NotificationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)
	if c.QueryParam("unread") == "true" {
		ns, err := h.Notifications.ListUnread(ctx, userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, ns)
	}
	ns, err := h.Notifications.ListForUser(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ns)
}

// UnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	n, err := h.Notifications.CountUnread(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": n})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Notifications.MarkRead(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead flags every unread notification and reports the count.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	n, err := h.Notifications.MarkAllRead(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"marked": n})
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Notifications.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
