package models

type Comment struct {
	ID     uint   `gorm:"primaryKey"`        // Unique identifier
	Body   string `gorm:"size:200;not null"` // Comment text
	PostID uint   `gorm:"not null;index"`    // Post the comment belongs to
}

func (Comment) TableName() string { return "comment" }
