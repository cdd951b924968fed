package models

import (
	"time"
)

// User represents an author identity
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username    string    `gorm:"type:varchar(150);not null;uniqueIndex:blog_users_ux1;column:username"`
	DisplayName string    `gorm:"type:varchar(150);not null;default:'';column:display_name"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Posts    []Post    `gorm:"foreignKey:AuthorID;references:ID"`
	Comments []Comment `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "blog_users"
}
