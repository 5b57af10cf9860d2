package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/core/ports"
)

type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the current principal's notifications.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /user/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListForRecipient(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead marks one of the principal's notifications as read.
//
// @Summary      Mark notification read
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification ID"
// @Success      204
// @Router       /user/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), principal.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
