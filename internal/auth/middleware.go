package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUser      = "auth_user"
	ContextKeyUserID    = "auth_user_id"
	ContextKeyTokenUsed = "auth_token" // plaintext token that authenticated the request
)

// Middleware resolves Authorization: Bearer tokens into users.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// Handler returns a Gin handler that rejects unauthenticated requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		user, err := m.service.ValidateToken(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyTokenUsed, token)
		c.Next()
	}
}

// RequireAdmin returns a handler that rejects non-admin users.
// Must run after Handler.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Unauthorized. Admin access required.",
			})
			return
		}
		c.Next()
	}
}

// GetUser extracts the authenticated user from the Gin context.
func GetUser(c *gin.Context) *entities.User {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(*entities.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}

// GetToken extracts the plaintext token that authenticated the request.
func GetToken(c *gin.Context) string {
	return c.GetString(ContextKeyTokenUsed)
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthenticated",
	})
}
