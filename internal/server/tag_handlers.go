package server

import (
	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /api/tags.
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"tags":  tags,
		"count": len(tags),
	})
}

// CreateTag handles POST /api/tags.
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.CreateTag(c.UserContext(), service.CreateTagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:tagId. Tags are global, so deletion is
// restricted to site admins.
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	tagID, err := s.parseID(c, "tagId")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if !user.IsAdmin {
		return respondServiceError(c,
			models.NewPermissionDeniedError("Only site admins can delete tags"))
	}

	if err := s.tagService.DeleteTag(c.UserContext(), tagID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}
