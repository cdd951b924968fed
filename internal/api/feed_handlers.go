package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell/internal/api/objects"
	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/pagination"
)

// globalFeedRoute is the listing cache's route identity for the
// global feed.
const globalFeedRoute = "feed:global"

// index serves the global feed. The rendered response is cached for a
// fixed window, so a post written inside the window only shows up
// after the window elapses or the cache is cleared.
func (r *Router) index(c *gin.Context) {
	pageNumber := pagination.ParsePageNumber(c.Query("page"))

	if body, ok := r.listing.Get(globalFeedRoute, pageNumber); ok {
		c.Data(http.StatusOK, contentType, body)
		return
	}

	page, err := r.assembler.Global(c.Request.Context(), pageNumber)
	if err != nil {
		r.respondError(c, err)
		return
	}

	body, err := r.renderBytes("index.html", gin.H{
		"page": objects.NewPage(page),
	})
	if err != nil {
		r.respondError(c, err)
		return
	}

	r.listing.Put(globalFeedRoute, pageNumber, body)
	c.Data(http.StatusOK, contentType, body)
}

// groupFeed serves a group's posts
func (r *Router) groupFeed(c *gin.Context) {
	pageNumber := pagination.ParsePageNumber(c.Query("page"))

	group, page, err := r.assembler.Group(c.Request.Context(), c.Param("slug"), pageNumber)
	if err != nil {
		r.respondError(c, err)
		return
	}

	r.render(c, http.StatusOK, "group.html", gin.H{
		"group": objects.NewGroup(group),
		"page":  objects.NewPage(page),
	})
}

// followIndex serves posts from authors the viewer follows
func (r *Router) followIndex(c *gin.Context) {
	viewer, _ := auth.CurrentUser(c)
	pageNumber := pagination.ParsePageNumber(c.Query("page"))

	page, err := r.assembler.Followed(c.Request.Context(), viewer.ID, pageNumber)
	if err != nil {
		r.respondError(c, err)
		return
	}

	r.render(c, http.StatusOK, "follow.html", gin.H{
		"page": objects.NewPage(page),
	})
}
