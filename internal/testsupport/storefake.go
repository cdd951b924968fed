// Package testsupport provides in-memory stand-ins for the database
// repositories so service-level behavior can be tested without a
// database.
package testsupport

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/inkwell/inkwell/internal/db"
	"github.com/inkwell/inkwell/internal/models"
)

// StoreFake implements the query and mutation interfaces of the feed
// and blog packages over plain maps and slices.
type StoreFake struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	Users    map[int64]*models.User
	Groups   map[int64]*models.Group
	Posts    map[int64]*models.Post
	Comments []*models.Comment
	Follows  map[[2]int64]*models.Follow
}

// NewStoreFake creates an empty fake store
func NewStoreFake() *StoreFake {
	return &StoreFake{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Users:   make(map[int64]*models.User),
		Groups:  make(map[int64]*models.Group),
		Posts:   make(map[int64]*models.Post),
		Follows: make(map[[2]int64]*models.Follow),
	}
}

func (s *StoreFake) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *StoreFake) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

// AddUser seeds a user
func (s *StoreFake) AddUser(username string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &models.User{ID: s.id(), Username: username, CreatedAt: s.tick()}
	s.Users[user.ID] = user
	return user
}

// AddGroup seeds a group
func (s *StoreFake) AddGroup(title, slug string) *models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := &models.Group{ID: s.id(), Title: title, Slug: slug}
	s.Groups[group.ID] = group
	return group
}

// AddPost seeds a post; each post is newer than the previous one
func (s *StoreFake) AddPost(author *models.User, group *models.Group, text string) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		ID:        s.id(),
		Text:      text,
		AuthorID:  author.ID,
		Author:    author,
		CreatedAt: s.tick(),
	}
	if group != nil {
		post.GroupID = sql.NullInt64{Int64: group.ID, Valid: true}
		post.Group = group
	}
	s.Posts[post.ID] = post
	return post
}

// GetByUsername implements feed.UserSource and blog.UserStore
func (s *StoreFake) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, db.ErrNotFound
}

// GetBySlug implements feed.GroupSource
func (s *StoreFake) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, group := range s.Groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, db.ErrNotFound
}

// GetByID implements blog.GroupStore
func (s *StoreFake) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.Groups[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return group, nil
}

func (s *StoreFake) match(post *models.Post, filter db.PostFilter) bool {
	if filter.GroupID != nil {
		if !post.GroupID.Valid || post.GroupID.Int64 != *filter.GroupID {
			return false
		}
	}
	if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
		return false
	}
	if len(filter.AuthorIDs) > 0 {
		found := false
		for _, id := range filter.AuthorIDs {
			if post.AuthorID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *StoreFake) filtered(filter db.PostFilter) []*models.Post {
	var posts []*models.Post
	for _, post := range s.Posts {
		if s.match(post, filter) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

// ListFeed implements feed.PostSource
func (s *StoreFake) ListFeed(ctx context.Context, filter db.PostFilter, offset, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.filtered(filter)
	if offset >= len(posts) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

// CountFeed implements feed.PostSource
func (s *StoreFake) CountFeed(ctx context.Context, filter db.PostFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.filtered(filter))), nil
}

// GetPostByID implements blog.PostStore's GetByID through PostStoreFake
type postStoreView struct{ *StoreFake }

// PostStore returns a view satisfying blog.PostStore. The method set
// clashes with blog.GroupStore's GetByID, hence the separate view.
func (s *StoreFake) PostStore() interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
} {
	return postStoreView{s}
}

func (v postStoreView) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	post, ok := v.Posts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return post, nil
}

func (v postStoreView) Create(ctx context.Context, post *models.Post) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	post.ID = v.id()
	post.CreatedAt = v.tick()
	if author, ok := v.Users[post.AuthorID]; ok {
		post.Author = author
	}
	v.Posts[post.ID] = post
	return nil
}

func (v postStoreView) Update(ctx context.Context, post *models.Post) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.Posts[post.ID] = post
	return nil
}

// GetByIDAndAuthor returns a post scoped to its author's username
func (s *StoreFake) GetByIDAndAuthor(ctx context.Context, id int64, username string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.Posts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	author, ok := s.Users[post.AuthorID]
	if !ok || author.Username != username {
		return nil, db.ErrNotFound
	}
	return post, nil
}

// CountByAuthor returns the number of posts by the given author
func (s *StoreFake) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, post := range s.Posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// Create implements blog.CommentStore
func (s *StoreFake) Create(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.id()
	comment.CreatedAt = s.tick()
	s.Comments = append(s.Comments, comment)
	return nil
}

// ListByPost returns a post's comments, oldest first
func (s *StoreFake) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := []*models.Comment{}
	for _, comment := range s.Comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

// CreateIfAbsent implements blog.FollowStore
func (s *StoreFake) CreateIfAbsent(ctx context.Context, followerID, followedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int64{followerID, followedID}
	if _, ok := s.Follows[key]; ok {
		return nil
	}
	s.Follows[key] = &models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  s.tick(),
	}
	return nil
}

// Delete implements blog.FollowStore
func (s *StoreFake) Delete(ctx context.Context, followerID, followedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Follows, [2]int64{followerID, followedID})
	return nil
}

// Exists implements feed.SocialGraph
func (s *StoreFake) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.Follows[[2]int64{followerID, followedID}]
	return ok, nil
}

// FollowerCount implements feed.SocialGraph
func (s *StoreFake) FollowerCount(ctx context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key := range s.Follows {
		if key[1] == userID {
			count++
		}
	}
	return count, nil
}

// FollowingCount implements feed.SocialGraph
func (s *StoreFake) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key := range s.Follows {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

// FollowingIDs implements feed.SocialGraph
func (s *StoreFake) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for key := range s.Follows {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// FollowCount returns the total number of stored follow edges
func (s *StoreFake) FollowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Follows)
}

// PostCount returns the total number of stored posts
func (s *StoreFake) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Posts)
}

// CommentCount returns the total number of stored comments
func (s *StoreFake) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Comments)
}
