package server

import (
	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportPost handles POST /api/posts/:id/report. Each user may report a given
// post once.
func (s *Server) ReportPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.moderationService.FileReport(c.UserContext(), service.FileReportInput{
		PostID:      postID,
		ReporterID:  currentUserID(c),
		Reason:      models.ReportReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// ResolveReport handles POST /api/reports/:reportId/resolve (moderators only).
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	reportID, err := s.parseID(c, "reportId")
	if err != nil {
		return nil
	}

	report, err := s.moderationService.Resolve(c.UserContext(), reportID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// ListClubReports handles GET /api/clubs/:clubId/reports (moderators only).
// An optional resolved=true|false query parameter filters by state.
func (s *Server) ListClubReports(c *fiber.Ctx) error {
	clubID, err := s.parseID(c, "clubId")
	if err != nil {
		return nil
	}

	var resolved *bool
	if raw := c.Query("resolved"); raw != "" {
		v := raw == "true"
		resolved = &v
	}

	reports, err := s.moderationService.ListReports(c.UserContext(), clubID, currentUserID(c), resolved)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"reports": reports,
		"count":   len(reports),
	})
}
