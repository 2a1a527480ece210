package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/backend/internal/db"
)

// NotificationStore is the read/toggle surface for notification listings.
// *db.Repository implements it.
type NotificationStore interface {
	NotificationsByRecipient(ctx context.Context, recipientID, page, pageSize int) ([]db.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int) (bool, error)
}

// Notifications handles GET /api/v1/notifications
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {array} rest.Notification
// @Failure 400,500 {object} map[string]string
// @Router /api/v1/notifications [get]
func (h *Handler) Notifications(c echo.Context) error {
	userID, _, err := h.actor(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid actor headers")
	}

	var req NotificationsRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	page, pageSize := defaultPage, defaultPageSize
	if req.Page != nil {
		page = *req.Page
	}
	if req.PageSize != nil {
		pageSize = *req.PageSize
	}

	notifications, err := h.notifications.NotificationsByRecipient(
		c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, Map(notifications, NewNotification))
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 204 {string} string ""
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/notifications/{id}/read [post]
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	ok, err := h.notifications.MarkNotificationRead(c.Request().Context(), notificationID)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	if !ok {
		return h.handleError(c, nil, http.StatusNotFound, "notification not found")
	}

	return c.NoContent(http.StatusNoContent)
}

var _ NotificationStore = (*db.Repository)(nil)
