package server

import (
	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateClub handles POST /api/clubs.
func (s *Server) CreateClub(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"is_private"`
		BookID      *uint  `json:"book_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	club, err := s.membershipService.CreateClub(c.UserContext(), service.CreateClubInput{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		BookID:      req.BookID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(club)
}

// GetClub handles GET /api/clubs/:clubId.
func (s *Server) GetClub(c *fiber.Ctx) error {
	clubID, err := s.parseID(c, "clubId")
	if err != nil {
		return nil
	}

	club, err := s.membershipService.GetClub(c.UserContext(), clubID)
	if err != nil {
		return respondServiceError(c, err)
	}

	role, err := s.membershipService.RoleOf(c.UserContext(), currentUserID(c), clubID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"club": club,
		"role": role,
	})
}

// JoinClub handles POST /api/clubs/join. Public clubs are joined by ID,
// private clubs by invitation code.
func (s *Server) JoinClub(c *fiber.Ctx) error {
	var req struct {
		ClubID         uint   `json:"club_id"`
		InvitationCode string `json:"invitation_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	membership, err := s.membershipService.Join(c.UserContext(), service.JoinClubInput{
		UserID:         currentUserID(c),
		ClubID:         req.ClubID,
		InvitationCode: req.InvitationCode,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// LeaveClub handles DELETE /api/clubs/:clubId/membership.
func (s *Server) LeaveClub(c *fiber.Ctx) error {
	clubID, err := s.parseID(c, "clubId")
	if err != nil {
		return nil
	}

	if err := s.membershipService.Leave(c.UserContext(), currentUserID(c), clubID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Left club"})
}

// ListMembers handles GET /api/clubs/:clubId/members.
func (s *Server) ListMembers(c *fiber.Ctx) error {
	clubID, err := s.parseID(c, "clubId")
	if err != nil {
		return nil
	}

	members, err := s.membershipService.ListMembers(c.UserContext(), currentUserID(c), clubID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"members": members,
		"count":   len(members),
	})
}
