package models

import (
	"database/sql"
	"time"
)

// Post represents an authored post
type Post struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	Text      string        `gorm:"type:text;not null;column:text"`
	Image     string        `gorm:"type:varchar(1024);not null;default:'';column:image"`
	AuthorID  int64         `gorm:"not null;index;column:author_id"`
	GroupID   sql.NullInt64 `gorm:"index;column:group_id"`
	CreatedAt time.Time     `gorm:"not null;index;column:created_at"`

	// Relationships
	Author   *User     `gorm:"foreignKey:AuthorID;references:ID"`
	Group    *Group    `gorm:"foreignKey:GroupID;references:ID"`
	Comments []Comment `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "blog_posts"
}
