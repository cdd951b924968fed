package db

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/inkwell/inkwell/internal/models"
)

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// CreateIfAbsent inserts a follow edge unless it already exists.
// The composite primary key makes the insert race-safe under
// concurrent requests from the same follower.
func (r *FollowRepository) CreateIfAbsent(ctx context.Context, followerID, followedID int64) error {
	follow := models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow).Error
}

// Delete removes a follow edge. Removing a nonexistent edge is a no-op.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether follower follows followed
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerCount returns how many users follow the given user
func (r *FollowRepository) FollowerCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FollowingCount returns how many users the given user follows
func (r *FollowRepository) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FollowingIDs returns the IDs of every user the given user follows
func (r *FollowRepository) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
