package repository

import (
	"context"
	"errors"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// ClubRepository defines persistence operations for clubs and memberships.
// RoleOf is the single source of truth for capability resolution; every gated
// operation in the service layer goes through it.
type ClubRepository interface {
	CreateClub(ctx context.Context, club *models.Club, creatorID uint) error
	GetClubByID(ctx context.Context, id uint) (*models.Club, error)
	GetClubByInvitationCode(ctx context.Context, code string) (*models.Club, error)
	RoleOf(ctx context.Context, userID, clubID uint) (models.Role, error)
	AddMember(ctx context.Context, membership *models.ClubMembership) error
	RemoveMember(ctx context.Context, userID, clubID uint) error
	ListMemberIDs(ctx context.Context, clubID uint) ([]uint, error)
	ListMembers(ctx context.Context, clubID uint) ([]models.ClubMembership, error)
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository returns a new ClubRepository implementation.
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// CreateClub inserts the club and its creator's admin membership in one
// transaction.
func (r *clubRepository) CreateClub(ctx context.Context, club *models.Club, creatorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		return tx.Create(&models.ClubMembership{
			ClubID: club.ID,
			UserID: creatorID,
			Role:   models.RoleAdmin,
		}).Error
	})
}

func (r *clubRepository) GetClubByID(ctx context.Context, id uint) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).Preload("CurrentBook").First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Club", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &club, nil
}

func (r *clubRepository) GetClubByInvitationCode(ctx context.Context, code string) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).Where("invitation_code = ?", code).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Club", code)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &club, nil
}

// RoleOf resolves a user's role within a club. RoleNone means no membership;
// it is not an error.
func (r *clubRepository) RoleOf(ctx context.Context, userID, clubID uint) (models.Role, error) {
	var membership models.ClubMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, models.NewInternalError(err)
	}
	return membership.Role, nil
}

func (r *clubRepository) AddMember(ctx context.Context, membership *models.ClubMembership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewDuplicateError("Already a member of this club")
	}
	return err
}

func (r *clubRepository) RemoveMember(ctx context.Context, userID, clubID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Delete(&models.ClubMembership{}).Error
}

func (r *clubRepository) ListMemberIDs(ctx context.Context, clubID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ClubMembership{}).
		Where("club_id = ?", clubID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *clubRepository) ListMembers(ctx context.Context, clubID uint) ([]models.ClubMembership, error) {
	var memberships []models.ClubMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("club_id = ?", clubID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}
