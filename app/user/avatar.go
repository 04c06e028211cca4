package user

import (
	"net/http"

	"goit/contacts-api/internal"
	"goit/contacts-api/pkg/middleware"
	"goit/contacts-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvatarUpdate replaces the current user's avatar with an uploaded image.
// The cached user snapshot is not touched, it ages out within its TTL.
func AvatarUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := middleware.CurrentUser(c)

	if d.S3 == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Avatar storage is not configured",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	f, contentType, err := validators.AvatarValidator(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	url, err := d.S3.UploadAvatar(c.Request.Context(), f, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	updated, err := d.Users.UpdateAvatar(c.Request.Context(), user.Email, url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store avatar URL", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, updated)
}
