package auth

import (
	"net/http"

	"goit/contacts-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Confirm handles the link from the verification mail.
func Confirm(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("token")

	email, err := d.Tokens.EmailFromToken(token)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "Invalid token for email verification",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.ByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification error",
			"requestID": requestID,
		})
		return
	}

	if user.Confirmed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Your email is already confirmed",
		})
		return
	}

	if err := d.Users.Confirm(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to confirm user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email confirmed",
	})
}
