package service

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moderationFixture struct {
	svc        *ModerationService
	reportRepo *fakeReportRepo
	postRepo   *fakePostRepo
	clubRepo   *fakeClubRepo
}

func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()
	f := &moderationFixture{
		reportRepo: newFakeReportRepo(),
		postRepo:   newFakePostRepo(),
		clubRepo:   newFakeClubRepo(),
	}
	f.svc = NewModerationService(f.reportRepo, f.postRepo, f.clubRepo)
	return f
}

func (f *moderationFixture) seedPost(t *testing.T, clubID, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{ClubID: clubID, UserID: authorID, Title: "t", Content: "c"}
	require.NoError(t, f.postRepo.Create(context.Background(), post))
	return post
}

func TestFileReport(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	post := f.seedPost(t, 10, 1)

	report, err := f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: 2, Reason: models.ReportReasonSpam, Description: "ad for socks",
	})
	require.NoError(t, err)
	assert.False(t, report.IsResolved)
	assert.Nil(t, report.ResolvedByUserID)
}

func TestFileReport_InvalidReason(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	post := f.seedPost(t, 10, 1)

	_, err := f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: 2, Reason: "boring",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestFileReport_DuplicateReporter(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	post := f.seedPost(t, 10, 1)

	_, err := f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: 2, Reason: models.ReportReasonHarassment,
	})
	require.NoError(t, err)

	_, err = f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: 2, Reason: models.ReportReasonSpam,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicate, appErr.Code)

	// A different user may still report the same post.
	_, err = f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: 3, Reason: models.ReportReasonSpam,
	})
	require.NoError(t, err)
}

func TestFileReport_MissingPost(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)

	_, err := f.svc.FileReport(ctx, FileReportInput{
		PostID: 404, ReporterID: 2, Reason: models.ReportReasonSpam,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestResolve_GateAndIdempotence(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)

	const clubID = uint(10)
	const reporter, member, moderator = uint(2), uint(4), uint(5)
	f.clubRepo.addMemberWithRole(member, clubID, models.RoleMember)
	f.clubRepo.addMemberWithRole(moderator, clubID, models.RoleModerator)

	post := f.seedPost(t, clubID, 1)
	report, err := f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: reporter, Reason: models.ReportReasonOther, Description: "odd",
	})
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, report.ID, member)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)

	resolved, err := f.svc.Resolve(ctx, report.ID, moderator)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	require.NotNil(t, resolved.ResolvedByUserID)
	assert.Equal(t, moderator, *resolved.ResolvedByUserID)

	// Resolving again is a no-op success and keeps the original resolver.
	again, err := f.svc.Resolve(ctx, report.ID, moderator)
	require.NoError(t, err)
	assert.True(t, again.IsResolved)
	assert.Equal(t, moderator, *again.ResolvedByUserID)
}

func TestListReports_ModeratorOnly(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)

	const clubID = uint(10)
	const member, moderator = uint(2), uint(3)
	f.clubRepo.addMemberWithRole(member, clubID, models.RoleMember)
	f.clubRepo.addMemberWithRole(moderator, clubID, models.RoleModerator)

	post := f.seedPost(t, clubID, 1)
	_, err := f.svc.FileReport(ctx, FileReportInput{
		PostID: post.ID, ReporterID: member, Reason: models.ReportReasonSpam,
	})
	require.NoError(t, err)

	_, err = f.svc.ListReports(ctx, clubID, member, nil)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)

	reports, err := f.svc.ListReports(ctx, clubID, moderator, nil)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	resolvedOnly := true
	reports, err = f.svc.ListReports(ctx, clubID, moderator, &resolvedOnly)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
