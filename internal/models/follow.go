package models

import (
	"time"
)

// Follow represents a directed follow edge between two users.
// Uniqueness of (follower, followed) is the composite primary key;
// the no-self-follow rule is enforced both here and at the mutation
// boundary.
type Follow struct {
	FollowerID int64     `gorm:"primaryKey;column:follower_id;check:blog_follows_no_self,follower_id <> followed_id"`
	FollowedID int64     `gorm:"primaryKey;column:followed_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower *User `gorm:"foreignKey:FollowerID;references:ID"`
	Followed *User `gorm:"foreignKey:FollowedID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "blog_follows"
}
