// Package user contains endpoints operating on the current account.
package user

import (
	"net/http"

	"goit/contacts-api/internal"
	"goit/contacts-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's snapshot, exactly as the auth
// middleware resolved it (possibly a cached copy up to 300s old).
func Me(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
