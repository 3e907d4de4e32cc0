package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply node attached to a post. ParentID, when set, points at
// another comment of the same post, forming a forest of trees per post.
//
// Seq is assigned by the database at insert and strictly increases across
// comments. Display ordering sorts siblings by (CreatedAt, Seq) so that
// creation-timestamp collisions still order deterministically by insertion.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	PostID     uint           `gorm:"not null;index" json:"post_id"`
	Post       *Post          `gorm:"foreignKey:PostID" json:"post,omitempty"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	ParentID   *uint          `gorm:"index" json:"parent_id,omitempty"`
	Seq        int64          `gorm:"type:bigserial;uniqueIndex" json:"seq"`
	LikesCount int            `gorm:"->" json:"likes_count"`
	Liked      bool           `gorm:"->" json:"liked"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CommentLike records one user's like on a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
