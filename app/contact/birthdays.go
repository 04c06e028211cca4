package contact

import (
	"net/http"

	"goit/contacts-api/internal"
	"goit/contacts-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Birthdays lists the user's contacts with a birthday in the next week,
// compared by month and day only.
func Birthdays(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := middleware.CurrentUser(c)

	upcoming, err := d.Contacts.UpcomingBirthdays(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch upcoming birthdays", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, upcoming)
}
