package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/db"
	"github.com/inkwell/inkwell/internal/models"
	"github.com/inkwell/inkwell/internal/pagination"
	"github.com/inkwell/inkwell/pkg/logging"
)

// PostSource supplies filtered post listings
type PostSource interface {
	ListFeed(ctx context.Context, filter db.PostFilter, offset, limit int) ([]*models.Post, error)
	CountFeed(ctx context.Context, filter db.PostFilter) (int64, error)
}

// GroupSource resolves groups by slug
type GroupSource interface {
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
}

// UserSource resolves users by username
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SocialGraph supplies follow-edge queries
type SocialGraph interface {
	FollowerCount(ctx context.Context, userID int64) (int64, error)
	FollowingCount(ctx context.Context, userID int64) (int64, error)
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
}

// AuthorFeed bundles an author's posts with their social-graph counts
type AuthorFeed struct {
	Author     *models.User
	Page       *pagination.Page
	TotalCount int64
	Followers  int64
	Followings int64
}

// Assembler builds paginated post feeds
type Assembler struct {
	posts   PostSource
	groups  GroupSource
	users   UserSource
	follows SocialGraph
	pager   pagination.Pager
	logger  *zap.Logger
}

// NewAssembler creates a feed assembler with a fixed page size
func NewAssembler(posts PostSource, groups GroupSource, users UserSource, follows SocialGraph, perPage int) *Assembler {
	return &Assembler{
		posts:   posts,
		groups:  groups,
		users:   users,
		follows: follows,
		pager:   pagination.NewPager(perPage),
		logger:  logging.WithComponent("feed-assembler"),
	}
}

// Global returns a page of all posts, newest first
func (a *Assembler) Global(ctx context.Context, pageNumber int) (*pagination.Page, error) {
	return a.page(ctx, db.PostFilter{}, pageNumber)
}

// Group returns a page of a group's posts. Returns db.ErrNotFound for
// an unknown slug.
func (a *Assembler) Group(ctx context.Context, slug string, pageNumber int) (*models.Group, *pagination.Page, error) {
	group, err := a.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	page, err := a.page(ctx, db.PostFilter{GroupID: &group.ID}, pageNumber)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// Author returns a page of an author's posts together with the
// author's follower and following counts. Returns db.ErrNotFound for
// an unknown username.
func (a *Assembler) Author(ctx context.Context, username string, pageNumber int) (*AuthorFeed, error) {
	author, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	page, err := a.page(ctx, db.PostFilter{AuthorID: &author.ID}, pageNumber)
	if err != nil {
		return nil, err
	}

	followers, err := a.follows.FollowerCount(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	followings, err := a.follows.FollowingCount(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	return &AuthorFeed{
		Author:     author,
		Page:       page,
		TotalCount: page.TotalCount,
		Followers:  followers,
		Followings: followings,
	}, nil
}

// Followed returns a page of posts authored by anyone the given user
// follows. A user following nobody gets an empty page, not an error.
func (a *Assembler) Followed(ctx context.Context, userID int64, pageNumber int) (*pagination.Page, error) {
	ids, err := a.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &pagination.Page{
			Items:    []*models.Post{},
			Number:   1,
			PerPage:  a.pager.PerPage,
			NumPages: 1,
		}, nil
	}
	return a.page(ctx, db.PostFilter{AuthorIDs: ids}, pageNumber)
}

// SocialCounts returns a user's follower and following counts
func (a *Assembler) SocialCounts(ctx context.Context, userID int64) (followers, followings int64, err error) {
	followers, err = a.follows.FollowerCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	followings, err = a.follows.FollowingCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, followings, nil
}

// Following reports whether viewer follows author
func (a *Assembler) Following(ctx context.Context, viewerID, authorID int64) (bool, error) {
	return a.follows.Exists(ctx, viewerID, authorID)
}

func (a *Assembler) page(ctx context.Context, filter db.PostFilter, pageNumber int) (*pagination.Page, error) {
	total, err := a.posts.CountFeed(ctx, filter)
	if err != nil {
		a.logger.Error("Feed count failed", zap.Error(err))
		return nil, err
	}

	number := a.pager.Clamp(pageNumber, total)
	offset, limit := a.pager.Window(number)

	items, err := a.posts.ListFeed(ctx, filter, offset, limit)
	if err != nil {
		a.logger.Error("Feed query failed", zap.Error(err))
		return nil, err
	}

	return &pagination.Page{
		Items:      items,
		Number:     number,
		PerPage:    a.pager.PerPage,
		NumPages:   a.pager.NumPages(total),
		TotalCount: total,
	}, nil
}
