package auth

import (
	"net/http"

	"goit/contacts-api/internal"
	"goit/contacts-api/internal/service"
	"goit/contacts-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resendBody struct {
	Email string `json:"email"`
}

// Resend sends the verification mail again. The response is the same whether
// or not the address is registered, so the endpoint can't be used to probe
// for accounts.
func Resend(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.ByEmail(c.Request.Context(), data.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user != nil && user.Confirmed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Your email is already confirmed",
		})
		return
	}

	if user != nil {
		emailToken, err := d.Tokens.CreateEmailToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create email token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		go func() {
			if err := service.SendVerificationMail(emailToken, data.Email); err != nil {
				zap.L().Warn("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Check your email for confirmation.",
	})
}
