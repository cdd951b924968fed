package models

import (
	"time"
)

// Comment represents a reader's comment on a post
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Text      string    `gorm:"type:text;not null;column:text"`
	AuthorID  int64     `gorm:"not null;column:author_id"`
	PostID    int64     `gorm:"not null;index;column:post_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Author *User `gorm:"foreignKey:AuthorID;references:ID"`
	Post   *Post `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "blog_comments"
}
