package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/db"
)

// respondError translates service errors into client responses.
// NotFound becomes a 404 page; anything else is an internal error.
func (r *Router) respondError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrNotFound) {
		r.notFound(c)
		return
	}
	r.logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	r.render(c, http.StatusInternalServerError, "misc/500.html", gin.H{})
}

func (r *Router) notFound(c *gin.Context) {
	r.render(c, http.StatusNotFound, "misc/404.html", gin.H{
		"path": c.Request.URL.Path,
	})
}
