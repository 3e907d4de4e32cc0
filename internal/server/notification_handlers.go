package server

import (
	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications handles GET /api/notifications. Pass unread=true to see
// only unread entries.
func (s *Server) ListNotifications(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	unreadOnly := c.Query("unread") == "true"

	items, err := s.notificationService.List(c.UserContext(), currentUserID(c), unreadOnly, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"notifications": items,
		"count":         len(items),
	})
}

// MarkNotificationsRead handles POST /api/notifications/read.
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req.IDs) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At least one notification ID is required"))
	}

	if err := s.notificationService.MarkRead(c.UserContext(), currentUserID(c), req.IDs); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications marked read"})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.UserContext(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked read"})
}
