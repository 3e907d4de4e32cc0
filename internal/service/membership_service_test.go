package service

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipFixture(t *testing.T) (*MembershipService, *fakeClubRepo) {
	t.Helper()
	repo := newFakeClubRepo()
	return NewMembershipService(repo), repo
}

func TestCreateClub_CreatorBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMembershipFixture(t)

	club, err := svc.CreateClub(ctx, CreateClubInput{
		UserID: 1, Name: "Mystery Lovers", Description: "whodunits only",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, club.InvitationCode)

	role, err := repo.RoleOf(ctx, 1, club.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	assert.True(t, role.CanModerate())
}

func TestCreateClub_NameValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipFixture(t)

	for _, name := range []string{"", "ab", "admin"} {
		_, err := svc.CreateClub(ctx, CreateClubInput{UserID: 1, Name: name})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr, "name %q", name)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	}
}

func TestJoin_PublicClubByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipFixture(t)

	club, err := svc.CreateClub(ctx, CreateClubInput{UserID: 1, Name: "Open Shelf"})
	require.NoError(t, err)

	membership, err := svc.Join(ctx, JoinClubInput{UserID: 2, ClubID: club.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, membership.Role)

	// Joining twice is a duplicate.
	_, err = svc.Join(ctx, JoinClubInput{UserID: 2, ClubID: club.ID})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicate, appErr.Code)
}

func TestJoin_PrivateClubRequiresInvitation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipFixture(t)

	club, err := svc.CreateClub(ctx, CreateClubInput{UserID: 1, Name: "Secret Society", IsPrivate: true})
	require.NoError(t, err)

	_, err = svc.Join(ctx, JoinClubInput{UserID: 2, ClubID: club.ID})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)

	membership, err := svc.Join(ctx, JoinClubInput{UserID: 2, InvitationCode: club.InvitationCode})
	require.NoError(t, err)
	assert.Equal(t, club.ID, membership.ClubID)
}

func TestLeave(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMembershipFixture(t)

	club, err := svc.CreateClub(ctx, CreateClubInput{UserID: 1, Name: "Leavers"})
	require.NoError(t, err)
	_, err = svc.Join(ctx, JoinClubInput{UserID: 2, ClubID: club.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Leave(ctx, 2, club.ID))

	role, err := repo.RoleOf(ctx, 2, club.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)

	// Leaving a club you are not in is a not-found.
	err = svc.Leave(ctx, 2, club.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestListMembers_MemberGated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipFixture(t)

	club, err := svc.CreateClub(ctx, CreateClubInput{UserID: 1, Name: "Readers"})
	require.NoError(t, err)
	_, err = svc.Join(ctx, JoinClubInput{UserID: 2, ClubID: club.ID})
	require.NoError(t, err)

	_, err = svc.ListMembers(ctx, 99, club.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodePermissionDenied, appErr.Code)

	members, err := svc.ListMembers(ctx, 2, club.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
