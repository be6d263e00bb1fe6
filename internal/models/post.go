package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey"`                  // Unique identifier
	Title     string    `gorm:"size:100;not null"`           // Post title
	Content   string    `gorm:"type:text;not null"`          // Post body
	CreatedAt time.Time `gorm:"not null;index"`              // Creation time, UTC
	Likes     int       `gorm:"not null;default:0"`          // Like counter
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE"` // Loaded only by the detail lookup
}

func (Post) TableName() string { return "post" }
