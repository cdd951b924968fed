package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell/inkwell/internal/models"
)

// PostFilter narrows a feed query. Zero value selects every post.
type PostFilter struct {
	GroupID   *int64
	AuthorID  *int64
	AuthorIDs []int64
}

func (f PostFilter) apply(q *gorm.DB) *gorm.DB {
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if len(f.AuthorIDs) > 0 {
		q = q.Where("author_id IN ?", f.AuthorIDs)
	}
	return q
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetByIDAndAuthor retrieves a post by ID scoped to the given author username
func (r *PostRepository) GetByIDAndAuthor(ctx context.Context, id int64, username string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Joins("JOIN blog_users ON blog_users.id = blog_posts.author_id").
		Where("blog_posts.id = ? AND blog_users.username = ?", id, username).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// ListFeed retrieves a page of posts matching the filter, newest first
func (r *PostRepository) ListFeed(ctx context.Context, filter PostFilter, offset, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	q := filter.apply(r.db.WithContext(ctx).Model(&models.Post{}))
	if err := q.Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountFeed returns the number of posts matching the filter
func (r *PostRepository) CountFeed(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	q := filter.apply(r.db.WithContext(ctx).Model(&models.Post{}))
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByAuthor returns the number of posts written by the given author
func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
