package repository

import (
	"context"
	"errors"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListByPost returns all of a post's comments ordered by (created_at, seq)
	// ascending, the sibling order the display traversal relies on.
	ListByPost(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error)
	// DeleteSubtree removes the comment and all of its descendants, with
	// their likes, in one transaction. The descendant set is resolved
	// inside the transaction so a concurrently added reply cannot survive
	// under a deleted ancestor.
	DeleteSubtree(ctx context.Context, rootID uint) error
	IsLiked(ctx context.Context, userID, commentID uint) (bool, error)
	Like(ctx context.Context, userID, commentID uint) error
	Unlike(ctx context.Context, userID, commentID uint) error
	CountLikes(ctx context.Context, commentID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	// Seq comes from the database sequence; never set by callers.
	return r.db.WithContext(ctx).Omit("Seq").Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(
	ctx context.Context,
	postID uint,
	currentUserID uint,
) ([]*models.Comment, error) {
	likedExpr := "FALSE AS liked"
	args := []interface{}{}
	if currentUserID != 0 {
		likedExpr = "EXISTS(SELECT 1 FROM comment_likes cl WHERE cl.comment_id = comments.id AND cl.user_id = ?) AS liked"
		args = append(args, currentUserID)
	}

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(
			"comments.*, "+
				"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count, "+
				likedExpr,
			args...,
		).
		Preload("User").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC, comments.seq ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// subtreeCTE selects the IDs of a comment and all of its descendants.
const subtreeCTE = `WITH RECURSIVE subtree AS (
	SELECT id FROM comments WHERE id = ?
	UNION ALL
	SELECT c.id FROM comments c INNER JOIN subtree s ON c.parent_id = s.id
)`

func (r *commentRepository) DeleteSubtree(ctx context.Context, rootID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(subtreeCTE+
			` DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM subtree)`,
			rootID).Error
		if err != nil {
			return err
		}
		return tx.Exec(subtreeCTE+
			` UPDATE comments SET deleted_at = NOW() WHERE deleted_at IS NULL AND id IN (SELECT id FROM subtree)`,
			rootID).Error
	})
}

func (r *commentRepository) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *commentRepository) Like(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *commentRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}
