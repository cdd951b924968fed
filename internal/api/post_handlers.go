package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/api/objects"
	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/pagination"
)

// postForm carries a post submission
type postForm struct {
	Text  string `form:"text" binding:"required"`
	Group *int64 `form:"group"`
}

// formErrors maps binding failures to field-level messages
func formErrors(err error) gin.H {
	fields := gin.H{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = "this field is invalid: " + fe.Tag()
		}
	} else {
		fields["__all__"] = err.Error()
	}
	return fields
}

// profile serves an author's feed with their social-graph counts
func (r *Router) profile(c *gin.Context) {
	pageNumber := pagination.ParsePageNumber(c.Query("page"))

	af, err := r.assembler.Author(c.Request.Context(), c.Param("username"), pageNumber)
	if err != nil {
		r.respondError(c, err)
		return
	}

	following := false
	if viewer, ok := auth.CurrentUser(c); ok {
		following, err = r.assembler.Following(c.Request.Context(), viewer.ID, af.Author.ID)
		if err != nil {
			r.respondError(c, err)
			return
		}
	}

	r.render(c, http.StatusOK, "profile.html", gin.H{
		"author":     objects.NewUser(af.Author),
		"page":       objects.NewPage(af.Page),
		"count":      af.TotalCount,
		"following":  following,
		"followers":  af.Followers,
		"followings": af.Followings,
	})
}

func parsePostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// postDetail serves a single post with its comments
func (r *Router) postDetail(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		r.notFound(c)
		return
	}

	post, err := r.posts.GetByIDAndAuthor(c.Request.Context(), id, c.Param("username"))
	if err != nil {
		r.respondError(c, err)
		return
	}

	count, err := r.posts.CountByAuthor(c.Request.Context(), post.AuthorID)
	if err != nil {
		r.respondError(c, err)
		return
	}

	comments, err := r.comments.ListByPost(c.Request.Context(), post.ID)
	if err != nil {
		r.respondError(c, err)
		return
	}

	followers, followings, err := r.assembler.SocialCounts(c.Request.Context(), post.AuthorID)
	if err != nil {
		r.respondError(c, err)
		return
	}

	r.render(c, http.StatusOK, "post.html", gin.H{
		"post":       objects.NewPost(post),
		"author":     objects.NewUser(post.Author),
		"count":      count,
		"comments":   objects.NewComments(comments),
		"form":       gin.H{},
		"followers":  followers,
		"followings": followings,
	})
}

// newPostForm serves the empty post form
func (r *Router) newPostForm(c *gin.Context) {
	r.render(c, http.StatusOK, "newpost.html", gin.H{
		"form": gin.H{},
	})
}

// createPost stores a new post and redirects to the global feed
func (r *Router) createPost(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		r.render(c, http.StatusUnprocessableEntity, "newpost.html", gin.H{
			"form": gin.H{"errors": formErrors(err)},
		})
		return
	}

	image, err := r.storeImage(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	_, err = r.service.CreatePost(c.Request.Context(), actor, blog.PostInput{
		Text:    form.Text,
		GroupID: form.Group,
		Image:   image,
	})
	if err != nil {
		r.respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// editPostForm serves the pre-filled edit form to the owner; anyone
// else is redirected to the read-only post detail view.
func (r *Router) editPostForm(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	username := c.Param("username")

	id, ok := parsePostID(c)
	if !ok {
		r.notFound(c)
		return
	}

	if actor.Username != username {
		c.Redirect(http.StatusFound, postDetailPath(username, id))
		return
	}

	post, err := r.posts.GetByIDAndAuthor(c.Request.Context(), id, username)
	if err != nil {
		r.respondError(c, err)
		return
	}

	form := gin.H{"text": post.Text, "image": post.Image}
	if post.GroupID.Valid {
		form["group"] = post.GroupID.Int64
	}

	r.render(c, http.StatusOK, "postedit.html", gin.H{
		"form": form,
		"post": objects.NewPost(post),
	})
}

// editPost applies an edit and redirects to the post detail view.
// A non-owner submission changes nothing and gets the same redirect.
func (r *Router) editPost(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	username := c.Param("username")

	id, ok := parsePostID(c)
	if !ok {
		r.notFound(c)
		return
	}

	if actor.Username != username {
		c.Redirect(http.StatusFound, postDetailPath(username, id))
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		r.render(c, http.StatusUnprocessableEntity, "postedit.html", gin.H{
			"form": gin.H{"errors": formErrors(err)},
		})
		return
	}

	image, err := r.storeImage(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	_, err = r.service.EditPost(c.Request.Context(), actor, id, blog.PostInput{
		Text:    form.Text,
		GroupID: form.Group,
		Image:   image,
	})
	if err == blog.ErrNotOwner {
		c.Redirect(http.StatusFound, postDetailPath(username, id))
		return
	}
	if err != nil {
		r.respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(username, id))
}

// storeImage hands an uploaded image to blob storage and returns the
// stored reference. No upload, or disabled storage, yields an empty
// reference.
func (r *Router) storeImage(c *gin.Context) (string, error) {
	if r.media == nil {
		return "", nil
	}
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ref, err := r.media.Put(c.Request.Context(), header.Filename, file)
	if err != nil {
		return "", err
	}
	r.logger.Debug("Image stored", zap.String("ref", ref))
	return ref, nil
}

func postDetailPath(username string, id int64) string {
	return "/" + username + "/" + strconv.FormatInt(id, 10) + "/"
}
