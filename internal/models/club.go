package models

import "time"

// Role is a user's capability within a single club. Every gated operation
// resolves exactly one of these values and branches on it; permission logic
// lives nowhere else.
type Role string

const (
	// RoleNone indicates the user is not a member of the club.
	RoleNone Role = ""
	// RoleMember is the default membership role.
	RoleMember Role = "member"
	// RoleModerator can lock, pin and moderate discussions.
	RoleModerator Role = "moderator"
	// RoleAdmin has full control over the club.
	RoleAdmin Role = "admin"
)

// IsMember reports whether the role grants basic membership.
func (r Role) IsMember() bool {
	return r == RoleMember || r == RoleModerator || r == RoleAdmin
}

// CanModerate reports whether the role grants moderation capabilities.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// Club is a named group of users sharing a reading agenda.
type Club struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	IsPrivate      bool      `gorm:"not null;default:false" json:"is_private"`
	InvitationCode string    `gorm:"size:36;uniqueIndex;not null" json:"-"`
	CreatedByID    uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy      *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CurrentBookID  *uint     `json:"current_book_id,omitempty"`
	CurrentBook    *Book     `gorm:"foreignKey:CurrentBookID" json:"current_book,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClubMembership maps users to clubs and tracks their role.
type ClubMembership struct {
	ClubID    uint      `gorm:"primaryKey;autoIncrement:false" json:"club_id"`
	Club      *Club     `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
