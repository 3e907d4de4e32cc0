package service

import (
	"context"
	"strings"

	"bookclub/internal/models"
	"bookclub/internal/repository"
	"bookclub/internal/validation"

	"github.com/google/uuid"
)

// MembershipService owns clubs and membership records and is the single
// authority on who may do what inside a club.
type MembershipService struct {
	clubRepo repository.ClubRepository
}

// CreateClubInput carries the fields for creating a club.
type CreateClubInput struct {
	UserID      uint
	Name        string
	Description string
	IsPrivate   bool
	BookID      *uint
}

// JoinClubInput identifies the club to join, either directly (public clubs)
// or through an invitation code (private clubs).
type JoinClubInput struct {
	UserID         uint
	ClubID         uint
	InvitationCode string
}

// NewMembershipService returns a new MembershipService.
func NewMembershipService(clubRepo repository.ClubRepository) *MembershipService {
	return &MembershipService{clubRepo: clubRepo}
}

// RoleOf resolves a user's capability within a club. RoleNone means the user
// is not a member.
func (s *MembershipService) RoleOf(ctx context.Context, userID, clubID uint) (models.Role, error) {
	return s.clubRepo.RoleOf(ctx, userID, clubID)
}

// IsMember reports whether the user belongs to the club in any role.
func (s *MembershipService) IsMember(ctx context.Context, userID, clubID uint) (bool, error) {
	role, err := s.clubRepo.RoleOf(ctx, userID, clubID)
	if err != nil {
		return false, err
	}
	return role.IsMember(), nil
}

// CreateClub creates a club and makes the creator its admin.
func (s *MembershipService) CreateClub(ctx context.Context, in CreateClubInput) (*models.Club, error) {
	if err := validation.ValidateClubName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	club := &models.Club{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		IsPrivate:      in.IsPrivate,
		InvitationCode: uuid.NewString(),
		CreatedByID:    in.UserID,
		CurrentBookID:  in.BookID,
	}
	if err := s.clubRepo.CreateClub(ctx, club, in.UserID); err != nil {
		return nil, err
	}
	return club, nil
}

// GetClub returns a club by ID.
func (s *MembershipService) GetClub(ctx context.Context, clubID uint) (*models.Club, error) {
	return s.clubRepo.GetClubByID(ctx, clubID)
}

// Join adds the user as a member. Private clubs require the invitation code;
// public clubs accept the club ID directly.
func (s *MembershipService) Join(ctx context.Context, in JoinClubInput) (*models.ClubMembership, error) {
	var club *models.Club
	var err error

	if in.InvitationCode != "" {
		club, err = s.clubRepo.GetClubByInvitationCode(ctx, in.InvitationCode)
	} else {
		club, err = s.clubRepo.GetClubByID(ctx, in.ClubID)
	}
	if err != nil {
		return nil, err
	}

	if club.IsPrivate && in.InvitationCode == "" {
		return nil, models.NewPermissionDeniedError("This club requires an invitation")
	}

	role, err := s.clubRepo.RoleOf(ctx, in.UserID, club.ID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleNone {
		return nil, models.NewDuplicateError("Already a member of this club")
	}

	membership := &models.ClubMembership{
		ClubID: club.ID,
		UserID: in.UserID,
		Role:   models.RoleMember,
	}
	if err := s.clubRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Leave removes the user's membership.
func (s *MembershipService) Leave(ctx context.Context, userID, clubID uint) error {
	role, err := s.clubRepo.RoleOf(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if role == models.RoleNone {
		return models.NewNotFoundError("Membership", clubID)
	}
	return s.clubRepo.RemoveMember(ctx, userID, clubID)
}

// ListMembers returns the club's memberships, visible to members only.
func (s *MembershipService) ListMembers(ctx context.Context, actorID, clubID uint) ([]models.ClubMembership, error) {
	role, err := s.clubRepo.RoleOf(ctx, actorID, clubID)
	if err != nil {
		return nil, err
	}
	if !role.IsMember() {
		return nil, models.NewPermissionDeniedError("You must be a member to view the member list")
	}
	return s.clubRepo.ListMembers(ctx, clubID)
}
