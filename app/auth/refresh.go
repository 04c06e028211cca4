package auth

import (
	"net/http"
	"strings"

	"goit/contacts-api/internal"
	"goit/contacts-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Refresh rotates a session: the bearer refresh token is exchanged for a new
// access/refresh pair. A valid token that doesn't match the stored one means
// it was already rotated (or stolen), so the stored token gets cleared and
// the session ends server-side.
func Refresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Could not validate credentials",
			"requestID": requestID,
		})
		return
	}

	raw := strings.TrimPrefix(header, "Bearer ")

	claims, err := d.Tokens.VerifyToken(raw, auth.ScopeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Could not validate credentials",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.ByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Could not validate credentials",
			"requestID": requestID,
		})
		return
	}

	if user.RefreshToken == nil || *user.RefreshToken != raw {
		if err := d.Users.UpdateRefreshToken(c.Request.Context(), user.ID, nil); err != nil {
			zap.L().Error("Failed to clear refresh token", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid refresh token",
			"requestID": requestID,
		})
		return
	}

	accessToken, err := d.Tokens.CreateAccessToken(user.Email, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	refreshToken, err := d.Tokens.CreateRefreshToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Users.UpdateRefreshToken(c.Request.Context(), user.ID, &refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}
