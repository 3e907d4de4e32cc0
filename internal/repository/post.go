package repository

import (
	"context"
	"errors"

	"bookclub/internal/cache"
	"bookclub/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows a club's post listing.
type PostFilter struct {
	Category models.PostCategory
	TagSlug  string
	Search   string
	Limit    int
	Offset   int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	ListByClub(ctx context.Context, clubID uint, filter PostFilter, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SetPinned(ctx context.Context, post *models.Post, pinned bool) error
	SetLocked(ctx context.Context, post *models.Post, locked bool) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, post *models.Post) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	// LikedPostIDs reports which of the given posts the user has liked,
	// letting callers overlay the liked flag onto a shared cached listing.
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	CountLikes(ctx context.Context, postID uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails selects posts with computed likes_count, comments_count
// and, when currentUserID is set, the liked flag for that user.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	likedExpr := "FALSE AS liked"
	args := []interface{}{}
	if currentUserID != 0 {
		likedExpr = "EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = posts.id AND pl.user_id = ?) AS liked"
		args = append(args, currentUserID)
	}
	return db.Model(&models.Post{}).Select(
		"posts.*, "+
			"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS likes_count, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count, "+
			likedExpr,
		args...,
	)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.Invalidate(ctx, cache.ClubPostsKey(post.ClubID))
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Tags").
		First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListByClub returns a club's posts pinned-first then newest-first, narrowed
// by the filter.
func (r *postRepository) ListByClub(ctx context.Context, clubID uint, filter PostFilter, currentUserID uint) ([]*models.Post, error) {
	query := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Tags").
		Where("posts.club_id = ?", clubID)

	if filter.Category != "" {
		query = query.Where("posts.category = ?", filter.Category)
	}
	if filter.TagSlug != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("posts.title ILIKE ? OR posts.content ILIKE ?", pattern, pattern)
	}

	var posts []*models.Post
	err := query.
		Order("posts.is_pinned DESC, posts.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit("Tags").Save(post).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID, post.ClubID)
	}
	return err
}

func (r *postRepository) SetPinned(ctx context.Context, post *models.Post, pinned bool) error {
	err := r.db.WithContext(ctx).Model(post).Update("is_pinned", pinned).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID, post.ClubID)
	}
	return err
}

func (r *postRepository) SetLocked(ctx context.Context, post *models.Post, locked bool) error {
	err := r.db.WithContext(ctx).Model(post).Update("is_locked", locked).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID, post.ClubID)
	}
	return err
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

// Delete removes the post and everything hanging off it in one transaction:
// comment likes, comments, post likes, reports, tag links, then the post.
func (r *postRepository) Delete(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", post.ID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", post.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, post.ID, post.ClubID)
	}
	return err
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	liked := make(map[uint]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// Like is idempotent: the unique (user_id, post_id) index absorbs the race
// when two toggles from the same user arrive concurrently.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Create(&models.PostLike{UserID: userID, PostID: postID}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{}).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return err
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
