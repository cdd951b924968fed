package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Renderer is the external view-rendering collaborator: given a
// template name and a context mapping it produces the response body.
type Renderer interface {
	Render(template string, context gin.H) ([]byte, error)
}

// JSONRenderer serializes the template name and context so a
// downstream renderer (or API client) can produce the final markup.
type JSONRenderer struct{}

// Render implements Renderer
func (JSONRenderer) Render(template string, context gin.H) ([]byte, error) {
	return json.Marshal(gin.H{
		"template": template,
		"context":  context,
	})
}

const contentType = "application/json; charset=utf-8"

func (r *Router) render(c *gin.Context, status int, template string, context gin.H) {
	body, err := r.renderer.Render(template, context)
	if err != nil {
		r.logger.Error("Render failed", zap.String("template", template), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(status, contentType, body)
}

// renderBytes renders without writing, for responses that get cached
func (r *Router) renderBytes(template string, context gin.H) ([]byte, error) {
	return r.renderer.Render(template, context)
}
