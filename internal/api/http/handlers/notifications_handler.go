package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melhem/content-hub/internal/api/dto"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/service"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// NotificationsHandler exposes the per-viewer notification feed.
type NotificationsHandler struct {
	cases *service.CaseService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(caseService *service.CaseService) *NotificationsHandler {
	return &NotificationsHandler{cases: caseService}
}

// List handles GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	notifications := h.cases.NotificationsFor(principal.Viewer)
	return c.JSON(fiber.Map{
		"data": dto.FromNotifications(notifications),
	})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"data": dto.UnreadCountResponse{Unread: h.cases.UnreadCount(principal.Viewer)},
	})
}

// MarkAllRead handles POST /notifications/read-all. Only the viewer's own
// notifications are touched.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	h.cases.MarkAllNotificationsRead(c.Context(), principal.Viewer)
	return c.JSON(fiber.Map{
		"data": fiber.Map{"read": true},
	})
}

// MarkOneRead handles POST /notifications/:id/read. Unknown ids are a no-op.
func (h *NotificationsHandler) MarkOneRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	h.cases.MarkNotificationRead(c.Context(), principal.Viewer, c.Params("id"))
	return c.JSON(fiber.Map{
		"data": fiber.Map{"read": true},
	})
}
