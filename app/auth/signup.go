// Package auth contains the registration, login and token endpoints.
package auth

import (
	"net/http"
	"time"

	"goit/contacts-api/internal"
	"goit/contacts-api/internal/model"
	"goit/contacts-api/internal/service"
	"goit/contacts-api/pkg/security"
	"goit/contacts-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Unconfirmed accounts are cleaned up after a week
const confirmDeadline = time.Hour * 24 * 7

type signupBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Signup(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signupBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Username field can't be empty",
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

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	found, err := d.Users.Exists(c.Request.Context(), data.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email is already registered. Please login or use a different email",
			"requestID": requestID,
		})
		return
	}

	hash, err := security.HashPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	deadline := time.Now().Add(confirmDeadline)

	user := model.User{
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		ExpiresAt:    &deadline,
	}

	if err := d.Users.Create(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	emailToken, err := d.Tokens.CreateEmailToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create email token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The account is already created, a lost mail can be re-requested
	// through /auth/request_email, so a send failure is not fatal here
	go func() {
		if err := service.SendVerificationMail(emailToken, user.Email); err != nil {
			zap.L().Warn("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		}
	}()

	c.JSON(http.StatusCreated, user)
}
