package contact

import (
	"net/http"

	"goit/contacts-api/internal"
	"goit/contacts-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := middleware.CurrentUser(c)

	id, ok := contactID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid contact ID provided",
			"requestID": requestID,
		})
		return
	}

	deleted, err := d.Contacts.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Contact not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, deleted)
}
