package models

import "time"

// NotificationVerb names the fact a notification describes.
type NotificationVerb string

const (
	// VerbNewPost is emitted to club members when a post is created.
	VerbNewPost NotificationVerb = "new_post"
	// VerbNewComment is emitted to a post's author when someone comments.
	VerbNewComment NotificationVerb = "new_comment"
	// VerbReply is emitted to a comment's author when someone replies to it.
	VerbReply NotificationVerb = "reply"
)

// Notification is one notification-worthy fact for one recipient, produced
// by a mutating operation and handed to the sink. Mutations construct one
// record per recipient and never address the acting user.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	Actor       *User            `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	RecipientID uint             `gorm:"not null;index:idx_notifications_recipient" json:"recipient_id"`
	Verb        NotificationVerb `gorm:"type:varchar(20);not null" json:"verb"`
	// SubjectID identifies the entity the verb acted on (post or comment).
	SubjectID uint `gorm:"not null" json:"subject_id"`
	// TargetID identifies the surrounding context (club for posts, post for comments).
	TargetID    uint      `gorm:"not null" json:"target_id"`
	Description string    `gorm:"type:text" json:"description"`
	Unread      bool      `gorm:"not null;default:true;index:idx_notifications_recipient" json:"unread"`
	CreatedAt   time.Time `json:"created_at"`
}
