package models

import "time"

// Tag is a named, colored label attached to posts. Tags are global and have
// an independent lifecycle; deleting a tag detaches it from posts without
// deleting them.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Color     string    `gorm:"size:7;not null;default:'#007bff'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
