package models

import "time"

// Book is a catalog entry referenced by clubs as their current read. The
// discussion core never inspects it beyond the reference.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:300;not null" json:"title"`
	Author    string    `gorm:"size:200;not null" json:"author"`
	Genre     string    `gorm:"size:100" json:"genre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
