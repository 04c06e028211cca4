package middleware

import (
	"net/http"
	"strings"

	"goit/contacts-api/internal/auth"
	"goit/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewAuthMiddleware validates the bearer access token and resolves the
// calling user (through the cache when possible) before any handler runs.
// Handlers read the result with CurrentUser.
func NewAuthMiddleware(resolver *auth.UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Could not validate credentials",
				"requestID": requestID,
			})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")

		user, err := resolver.Resolve(c.Request.Context(), raw)
		if err != nil {
			if err == auth.ErrUnauthorized {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Could not validate credentials",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resolve current user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// NewRoleMiddleware rejects requests from users without the given role. Must
// run after the auth middleware.
func NewRoleMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Insufficient permissions",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user the auth middleware resolved, or nil on
// unprotected routes.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}

	user, ok := v.(*model.User)
	if !ok {
		return nil
	}

	return user
}
