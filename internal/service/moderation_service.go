package service

import (
	"context"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

// ModerationService owns reports: filing, listing and resolution. Reports
// never act on posts themselves; resolution is a human-triggered state flip.
type ModerationService struct {
	reportRepo repository.ReportRepository
	postRepo   repository.PostRepository
	clubRepo   repository.ClubRepository
}

// FileReportInput carries the fields for reporting a post.
type FileReportInput struct {
	PostID      uint
	ReporterID  uint
	Reason      models.ReportReason
	Description string
}

// NewModerationService returns a new ModerationService.
func NewModerationService(
	reportRepo repository.ReportRepository,
	postRepo repository.PostRepository,
	clubRepo repository.ClubRepository,
) *ModerationService {
	return &ModerationService{
		reportRepo: reportRepo,
		postRepo:   postRepo,
		clubRepo:   clubRepo,
	}
}

// FileReport flags a post. A user may report a given post at most once.
func (s *ModerationService) FileReport(ctx context.Context, in FileReportInput) (*models.Report, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}
	if !in.Reason.Valid() {
		return nil, models.NewValidationError("Invalid report reason")
	}

	exists, err := s.reportRepo.Exists(ctx, in.PostID, in.ReporterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateError("You have already reported this post")
	}

	report := &models.Report{
		PostID:      in.PostID,
		ReporterID:  in.ReporterID,
		Reason:      in.Reason,
		Description: in.Description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Resolve marks a report handled. Only a moderator/admin of the reported
// post's club may resolve; resolving twice is a no-op success.
func (s *ModerationService) Resolve(ctx context.Context, reportID, actorID uint) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, report.PostID, 0)
	if err != nil {
		return nil, err
	}
	role, err := s.clubRepo.RoleOf(ctx, actorID, post.ClubID)
	if err != nil {
		return nil, err
	}
	if !role.CanModerate() {
		return nil, models.NewPermissionDeniedError("Only club moderators and admins can resolve reports")
	}

	if report.IsResolved {
		return report, nil
	}

	report.IsResolved = true
	report.ResolvedByUserID = &actorID
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns a club's reports for its moderators.
func (s *ModerationService) ListReports(ctx context.Context, clubID, actorID uint, resolved *bool) ([]models.Report, error) {
	role, err := s.clubRepo.RoleOf(ctx, actorID, clubID)
	if err != nil {
		return nil, err
	}
	if !role.CanModerate() {
		return nil, models.NewPermissionDeniedError("Only club moderators and admins can view reports")
	}
	return s.reportRepo.ListByClub(ctx, clubID, resolved)
}
