package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell/internal/auth"
)

// commentForm carries a comment submission
type commentForm struct {
	Text string `form:"text" binding:"required"`
}

// addComment stores a comment and redirects to the post detail view
func (r *Router) addComment(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	username := c.Param("username")

	id, ok := parsePostID(c)
	if !ok {
		r.notFound(c)
		return
	}

	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		r.render(c, http.StatusUnprocessableEntity, "post.html", gin.H{
			"form": gin.H{"errors": formErrors(err)},
		})
		return
	}

	if _, err := r.service.AddComment(c.Request.Context(), actor, id, form.Text); err != nil {
		r.respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(username, id))
}

// follow creates a follow edge and redirects to the author profile.
// Self-follows and duplicates are no-ops.
func (r *Router) follow(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	username := c.Param("username")

	if _, err := r.service.Follow(c.Request.Context(), actor, username); err != nil {
		r.respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/"+username+"/")
}

// unfollow removes a follow edge and redirects to the author profile.
// Removing an absent edge is a no-op.
func (r *Router) unfollow(c *gin.Context) {
	actor, _ := auth.CurrentUser(c)
	username := c.Param("username")

	if _, err := r.service.Unfollow(c.Request.Context(), actor, username); err != nil {
		r.respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/"+username+"/")
}
