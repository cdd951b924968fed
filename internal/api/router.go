package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/cache"
	"github.com/inkwell/inkwell/internal/feed"
	"github.com/inkwell/inkwell/internal/media"
	"github.com/inkwell/inkwell/internal/models"
	"github.com/inkwell/inkwell/pkg/logging"
)

// PostReader reads posts for the detail view
type PostReader interface {
	GetByIDAndAuthor(ctx context.Context, id int64, username string) (*models.Post, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// CommentReader reads a post's comments
type CommentReader interface {
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
}

// Deps collects the collaborators behind the HTTP boundary
type Deps struct {
	Assembler *feed.Assembler
	Service   *blog.Service
	Auth      *auth.Authenticator
	Listing   *cache.ListingCache
	Posts     PostReader
	Comments  CommentReader
	Media     media.Store
	Renderer  Renderer
}

// Router wires HTTP routes to the content model
type Router struct {
	assembler *feed.Assembler
	service   *blog.Service
	auth      *auth.Authenticator
	listing   *cache.ListingCache
	posts     PostReader
	comments  CommentReader
	media     media.Store
	renderer  Renderer
	logger    *zap.Logger
}

// NewRouter creates a router over the given collaborators
func NewRouter(deps Deps) *Router {
	renderer := deps.Renderer
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	return &Router{
		assembler: deps.Assembler,
		service:   deps.Service,
		auth:      deps.Auth,
		listing:   deps.Listing,
		posts:     deps.Posts,
		comments:  deps.Comments,
		media:     deps.Media,
		renderer:  renderer,
		logger:    logging.WithComponent("api-router"),
	}
}

// SetupRoutes registers all routes on the engine
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(tracing())

	optional := r.auth.Optional()
	required := r.auth.Required()

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Feeds
	engine.GET("/", optional, r.index)
	engine.GET("/group/:slug/", optional, r.groupFeed)
	engine.GET("/follow/", required, r.followIndex)

	// Post authoring
	engine.GET("/new/", required, r.newPostForm)
	engine.POST("/new/", required, r.createPost)

	// Author profile and post detail
	engine.GET("/:username/", optional, r.profile)
	engine.GET("/:username/:post_id/", optional, r.postDetail)
	engine.GET("/:username/:post_id/edit/", required, r.editPostForm)
	engine.POST("/:username/:post_id/edit/", required, r.editPost)
	engine.POST("/:username/:post_id/comment/", required, r.addComment)

	// Follow management
	engine.GET("/:username/follow/", required, r.follow)
	engine.GET("/:username/unfollow/", required, r.unfollow)

	engine.NoRoute(r.notFound)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "inkwell-api",
	})
}
