package models

import (
	"time"

	"gorm.io/gorm"
)

// PostCategory classifies a discussion post.
type PostCategory string

const (
	// PostCategoryDiscussion is a general discussion thread.
	PostCategoryDiscussion PostCategory = "discussion"
	// PostCategoryQuestion is a question to the club.
	PostCategoryQuestion PostCategory = "question"
	// PostCategoryQuote shares a passage from the book.
	PostCategoryQuote PostCategory = "quote"
	// PostCategoryNote is a personal reading note.
	PostCategoryNote PostCategory = "note"
)

// Valid reports whether the category is one of the known values.
func (c PostCategory) Valid() bool {
	switch c {
	case PostCategoryDiscussion, PostCategoryQuestion, PostCategoryQuote, PostCategoryNote:
		return true
	}
	return false
}

// Post is a top-level discussion entry within a club. ClubID is immutable
// for the post's lifetime.
type Post struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	ClubID   uint         `gorm:"not null;index:idx_posts_club_created" json:"club_id"`
	Club     *Club        `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	UserID   uint         `gorm:"not null;index" json:"user_id"`
	User     User         `gorm:"foreignKey:UserID" json:"user"`
	Title    string       `gorm:"size:200;not null" json:"title"`
	Content  string       `gorm:"type:text;not null" json:"content"`
	Category PostCategory `gorm:"type:varchar(20);not null;default:'discussion'" json:"category"`
	Chapter  *int         `json:"chapter,omitempty"`
	Tags     []Tag        `gorm:"many2many:post_tags" json:"tags"`
	IsPinned bool         `gorm:"not null;default:false" json:"is_pinned"`
	IsLocked bool         `gorm:"not null;default:false" json:"is_locked"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `gorm:"index:idx_posts_club_created,sort:desc" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostLike records one user's like on a post.
// The combination of UserID and PostID must be unique; the store's unique
// index is what serializes concurrent toggles.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
