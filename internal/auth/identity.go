package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/internal/models"
	"github.com/inkwell/inkwell/pkg/config"
	"github.com/inkwell/inkwell/pkg/logging"
)

// ErrUnauthenticated is returned when a request carries no usable
// identity. The HTTP boundary answers it with a redirect to the
// login flow.
var ErrUnauthenticated = errors.New("authentication required")

const identityKey = "auth.identity"

// UserResolver loads the user row behind a verified token
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator resolves the acting identity from bearer tokens
// issued by the external identity provider.
type Authenticator struct {
	secret   string
	loginURL string
	users    UserResolver
	logger   *zap.Logger
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(cfg *config.AuthConfig, users UserResolver) *Authenticator {
	return &Authenticator{
		secret:   cfg.JWTSecret,
		loginURL: cfg.LoginURL,
		users:    users,
		logger:   logging.WithComponent("auth"),
	}
}

// LoginURL returns the login flow redirect target
func (a *Authenticator) LoginURL() string {
	return a.loginURL
}

// ParseUsername validates a token and extracts the username claim
func (a *Authenticator) ParseUsername(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrUnauthenticated
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", ErrUnauthenticated
	}
	return username, nil
}

func tokenFromHeader(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func (a *Authenticator) resolve(c *gin.Context) (*models.User, error) {
	token := tokenFromHeader(c)
	if token == "" {
		return nil, ErrUnauthenticated
	}
	username, err := a.ParseUsername(token)
	if err != nil {
		return nil, err
	}
	user, err := a.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		// A token naming an unknown user carries no identity
		return nil, fmt.Errorf("%w: unknown user %q", ErrUnauthenticated, username)
	}
	return user, nil
}

// Optional resolves the identity when a token is present and lets the
// request through either way.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.resolve(c); err == nil {
			c.Set(identityKey, user)
		}
		c.Next()
	}
}

// Required resolves the identity and redirects unauthenticated
// requests to the login flow.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolve(c)
		if err != nil {
			c.Redirect(http.StatusFound, a.loginURL)
			c.Abort()
			return
		}
		c.Set(identityKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity resolved for this request, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
