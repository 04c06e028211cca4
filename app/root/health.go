// Package root contains endpoints that don't belong to any resource.
package root

import (
	"net/http"

	"goit/contacts-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Heartbeat only proves the process is alive.
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Healthchecker proves the database connection still works.
func Healthchecker(c *gin.Context, d *internal.Deps) {
	var one int

	err := d.DB.WithContext(c.Request.Context()).
		Raw("SELECT 1").
		Scan(&one).
		Error
	if err != nil || one != 1 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error connecting to the database",
		})

		zap.L().Error("Healthcheck query failed", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contacts API is up",
	})
}
