// Package objects defines the wire shapes handed to the external
// view renderer inside template contexts.
package objects

import (
	"time"

	"github.com/inkwell/inkwell/internal/models"
	"github.com/inkwell/inkwell/internal/pagination"
)

// User is the wire shape of an author identity
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// NewUser builds a user view
func NewUser(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

// Group is the wire shape of a post group
type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// NewGroup builds a group view
func NewGroup(g *models.Group) *Group {
	if g == nil {
		return nil
	}
	return &Group{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

// Post is the wire shape of a post
type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Author    *User     `json:"author"`
	Group     *Group    `json:"group,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost builds a post view
func NewPost(p *models.Post) *Post {
	if p == nil {
		return nil
	}
	return &Post{
		ID:        p.ID,
		Text:      p.Text,
		Image:     p.Image,
		Author:    NewUser(p.Author),
		Group:     NewGroup(p.Group),
		CreatedAt: p.CreatedAt,
	}
}

// Comment is the wire shape of a comment
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    *User     `json:"author"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment builds a comment view
func NewComment(c *models.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:        c.ID,
		Text:      c.Text,
		Author:    NewUser(c.Author),
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
}

// NewComments builds comment views preserving order
func NewComments(comments []*models.Comment) []*Comment {
	views := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewComment(c))
	}
	return views
}

// Page is the wire shape of one listing window
type Page struct {
	Items       []*Post `json:"items"`
	Number      int     `json:"number"`
	PerPage     int     `json:"per_page"`
	NumPages    int     `json:"num_pages"`
	TotalCount  int64   `json:"total_count"`
	HasNext     bool    `json:"has_next"`
	HasPrevious bool    `json:"has_previous"`
}

// NewPage builds a page view
func NewPage(p *pagination.Page) *Page {
	items := make([]*Post, 0, len(p.Items))
	for _, post := range p.Items {
		items = append(items, NewPost(post))
	}
	return &Page{
		Items:       items,
		Number:      p.Number,
		PerPage:     p.PerPage,
		NumPages:    p.NumPages,
		TotalCount:  p.TotalCount,
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}
}
