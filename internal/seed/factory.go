// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bookclub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	src := rand.NewSource(time.Now().UnixNano())
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rnd: rand.New(src)}
}

// CreateUser persists a user with a deterministic demo password.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rnd.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(8),
	}
	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateClub persists a club and its creator's admin membership.
func (f *Factory) CreateClub(ctx context.Context, creator *models.User) (*models.Club, error) {
	club := &models.Club{
		Name:           gofakeit.BookTitle() + " Readers",
		Description:    gofakeit.Paragraph(1, 2, 8, " "),
		IsPrivate:      f.rnd.Intn(4) == 0,
		InvitationCode: uuid.NewString(),
		CreatedByID:    creator.ID,
	}

	return club, f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		membership := &models.ClubMembership{
			ClubID: club.ID,
			UserID: creator.ID,
			Role:   models.RoleAdmin,
		}
		return tx.Create(membership).Error
	})
}

// AddMember joins a user to a club with the given role.
func (f *Factory) AddMember(ctx context.Context, club *models.Club, user *models.User, role models.Role) error {
	membership := &models.ClubMembership{
		ClubID: club.ID,
		UserID: user.ID,
		Role:   role,
	}
	return f.db.WithContext(ctx).Create(membership).Error
}

// CreateTag persists a tag with a slug derived from its name.
func (f *Factory) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{
		Name:  name,
		Slug:  slug.Make(name),
		Color: "#007bff",
	}
	if err := f.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

var postCategories = []models.PostCategory{
	models.PostCategoryDiscussion,
	models.PostCategoryQuestion,
	models.PostCategoryQuote,
	models.PostCategoryNote,
}

// CreatePost persists a post with a created_at spread over the past 90 days.
func (f *Factory) CreatePost(ctx context.Context, club *models.Club, author *models.User, tags []models.Tag) (*models.Post, error) {
	chapter := f.rnd.Intn(40) + 1
	post := &models.Post{
		ClubID:   club.ID,
		UserID:   author.ID,
		Title:    gofakeit.Sentence(6),
		Content:  gofakeit.Paragraph(2, 4, 10, "\n"),
		Category: postCategories[f.rnd.Intn(len(postCategories))],
		Chapter:  &chapter,
	}

	daysBack := f.rnd.Intn(90)
	hoursBack := f.rnd.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if err := f.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		picked := tags[f.rnd.Intn(len(tags))]
		if err := f.db.WithContext(ctx).Model(post).Association("Tags").Append(&picked); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// CreateComment persists a comment, optionally as a reply to parent.
func (f *Factory) CreateComment(ctx context.Context, post *models.Post, author *models.User, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  author.ID,
		Content: gofakeit.Sentence(12),
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := f.db.WithContext(ctx).Omit("Seq").Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// LikePost records a like, ignoring duplicates.
func (f *Factory) LikePost(ctx context.Context, post *models.Post, user *models.User) error {
	like := &models.PostLike{PostID: post.ID, UserID: user.ID}
	err := f.db.WithContext(ctx).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
