package blog

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/models"
	"github.com/inkwell/inkwell/pkg/logging"
)

// ErrNotOwner is returned when someone other than the post's author
// tries to edit it. The HTTP boundary turns this into a soft redirect
// to the post detail view rather than an error page.
var ErrNotOwner = errors.New("not the post owner")

// PostStore persists posts
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
}

// CommentStore persists comments
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
}

// FollowStore persists follow edges
type FollowStore interface {
	CreateIfAbsent(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
}

// UserStore resolves users
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// GroupStore resolves groups
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*models.Group, error)
}

// PostInput carries the editable fields of a post
type PostInput struct {
	Text    string
	GroupID *int64
	Image   string
}

// Service implements the mutating operations of the content model.
// Every operation takes the acting identity as an explicit argument.
type Service struct {
	posts    PostStore
	comments CommentStore
	follows  FollowStore
	users    UserStore
	groups   GroupStore
	logger   *zap.Logger
}

// NewService creates a blog service
func NewService(posts PostStore, comments CommentStore, follows FollowStore, users UserStore, groups GroupStore) *Service {
	return &Service{
		posts:    posts,
		comments: comments,
		follows:  follows,
		users:    users,
		groups:   groups,
		logger:   logging.WithComponent("blog-service"),
	}
}

// CreatePost stores a new post owned by author
func (s *Service) CreatePost(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	groupID, err := s.resolveGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		Image:    in.Image,
		AuthorID: author.ID,
		GroupID:  groupID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Post created",
		zap.Int64("post_id", post.ID),
		zap.String("author", author.Username))

	return post, nil
}

// EditPost updates a post's editable fields. Only the owning user may
// edit; anyone else gets ErrNotOwner and the post stays unchanged.
func (s *Service) EditPost(ctx context.Context, actor *models.User, postID int64, in PostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.ID {
		return nil, ErrNotOwner
	}

	groupID, err := s.resolveGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = groupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment stores a comment by author on the given post. Fails with
// the store's NotFound error when the post does not exist; no comment
// row is created in that case.
func (s *Service) AddComment(ctx context.Context, author *models.User, postID int64, text string) (*models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: author.ID,
		PostID:   post.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Follow creates a follow edge from follower to the named user.
// Idempotent: a duplicate follow or a self-follow is a no-op. Returns
// the target user for the caller's redirect.
func (s *Service) Follow(ctx context.Context, follower *models.User, targetUsername string) (*models.User, error) {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if follower.ID == target.ID {
		return target, nil
	}
	if err := s.follows.CreateIfAbsent(ctx, follower.ID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow removes the follow edge from follower to the named user.
// Idempotent: removing an absent edge is a no-op.
func (s *Service) Unfollow(ctx context.Context, follower *models.User, targetUsername string) (*models.User, error) {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if err := s.follows.Delete(ctx, follower.ID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) resolveGroup(ctx context.Context, groupID *int64) (sql.NullInt64, error) {
	if groupID == nil {
		return sql.NullInt64{}, nil
	}
	group, err := s.groups.GetByID(ctx, *groupID)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: group.ID, Valid: true}, nil
}
