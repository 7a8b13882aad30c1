package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

const userContextKey = "currentUser"

// Auth verifies the bearer token and loads the acting user into the request
// context. Disabled accounts are rejected here, before any handler runs.
func Auth(tokens *auth.TokenManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(token, auth.TokenBearer)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		if user.Status == model.UserStatusDisabled {
			response.Forbidden(c, "account disabled")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes; must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
